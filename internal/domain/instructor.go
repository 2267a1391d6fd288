package domain

import "time"

// DefaultInstructorName is used when an instructor is created without a name.
const DefaultInstructorName = "Coach"

// MasterInstructorName is the display name of the instructor seeded with the master code.
const MasterInstructorName = "Head Coach"

// Instructor is a coach who manages players. Instructors log in with their code.
type Instructor struct {
	ID        int64     `db:"id" bson:"_id" json:"id"`
	Name      string    `db:"name" bson:"name" json:"name"`
	Code      string    `db:"code" bson:"code" json:"-"` // Login credential, unique among instructors
	CreatedAt time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}
