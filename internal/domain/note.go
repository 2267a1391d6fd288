package domain

import "time"

// Note is an instructor's remark about a player. A player only sees notes
// that were shared with them.
type Note struct {
	ID               int64     `db:"id" bson:"_id" json:"id"`
	PlayerID         int64     `db:"player_id" bson:"playerId" json:"playerId"`
	InstructorID     int64     `db:"instructor_id" bson:"instructorId" json:"instructorId"`
	Text             string    `db:"text" bson:"text" json:"text"`
	SharedWithPlayer bool      `db:"shared_with_player" bson:"sharedWithPlayer" json:"sharedWithPlayer"`
	CreatedAt        time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}
