package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestAgeBucket(t *testing.T) {
	cases := []struct {
		name string
		age  *int
		want string
	}{
		{"nil", nil, BucketUnassigned},
		{"too young", intPtr(6), BucketUnassigned},
		{"zero", intPtr(0), BucketUnassigned},
		{"negative", intPtr(-3), BucketUnassigned},
		{"seven", intPtr(7), "7-9"},
		{"eight", intPtr(8), "7-9"},
		{"nine", intPtr(9), "7-9"},
		{"ten", intPtr(10), "10-12"},
		{"twelve", intPtr(12), "10-12"},
		{"thirteen", intPtr(13), "13-15"},
		{"fifteen", intPtr(15), "13-15"},
		{"sixteen", intPtr(16), "16-18"},
		{"eighteen", intPtr(18), "16-18"},
		{"nineteen", intPtr(19), "18+"},
		{"twenty one", intPtr(21), "18+"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AgeBucket(tc.age))
		})
	}
}

func TestAgeBucketsCoverEveryLabel(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range AgeBuckets {
		seen[b] = true
	}
	for age := -1; age < 40; age++ {
		a := age
		assert.True(t, seen[AgeBucket(&a)], "bucket for age %d missing from AgeBuckets", age)
	}
}
