package domain

import "time"

// SharedDrill records that a drill file was sent to a player.
type SharedDrill struct {
	ID           int64     `db:"id" bson:"_id" json:"id"`
	PlayerID     int64     `db:"player_id" bson:"playerId" json:"playerId"`
	InstructorID int64     `db:"instructor_id" bson:"instructorId" json:"instructorId"`
	Filename     string    `db:"filename" bson:"filename" json:"filename"`
	Title        string    `db:"title" bson:"title,omitempty" json:"title,omitempty"`
	SentAt       time.Time `db:"sent_at" bson:"sentAt" json:"sentAt"`
}

// DisplayTitle returns the title, falling back to the filename.
func (d *SharedDrill) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Filename
}
