package domain

// Age bucket labels, in display order.
const (
	Bucket7to9       = "7-9"
	Bucket10to12     = "10-12"
	Bucket13to15     = "13-15"
	Bucket16to18     = "16-18"
	Bucket18Plus     = "18+"
	BucketUnassigned = "Unassigned"
)

// AgeBuckets lists every bucket in the order the workspace shows them.
var AgeBuckets = []string{Bucket7to9, Bucket10to12, Bucket13to15, Bucket16to18, Bucket18Plus, BucketUnassigned}

// AgeBucket classifies an optional age for display grouping.
func AgeBucket(age *int) string {
	if age == nil {
		return BucketUnassigned
	}
	switch a := *age; {
	case a >= 7 && a <= 9:
		return Bucket7to9
	case a >= 10 && a <= 12:
		return Bucket10to12
	case a >= 13 && a <= 15:
		return Bucket13to15
	case a >= 16 && a <= 18:
		return Bucket16to18
	case a >= 19:
		return Bucket18Plus
	}
	return BucketUnassigned
}
