package domain

import "time"

// Star marks a player as a favorite of one instructor.
// An instructor can star a given player at most once.
type Star struct {
	ID           int64     `db:"id" bson:"_id" json:"id"`
	InstructorID int64     `db:"instructor_id" bson:"instructorId" json:"instructorId"`
	PlayerID     int64     `db:"player_id" bson:"playerId" json:"playerId"`
	CreatedAt    time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}

// StarToggle is the outcome of toggling a star.
type StarToggle struct {
	Active bool `json:"active"` // Whether the star exists after the toggle
	Count  int  `json:"count"`  // Number of players starred by the instructor
}
