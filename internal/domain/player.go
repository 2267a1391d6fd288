package domain

import "time"

// Player is an athlete managed by the instructors. Players log in with their code
// and can only see their own dashboard.
type Player struct {
	ID        int64     `db:"id" bson:"_id" json:"id"`
	Name      string    `db:"name" bson:"name" json:"name"`
	Age       *int      `db:"age" bson:"age,omitempty" json:"age,omitempty"`
	Code      string    `db:"code" bson:"code" json:"code"` // Login credential, unique among players
	Phone     string    `db:"phone" bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoKey  string    `db:"photo_key" bson:"photoKey,omitempty" json:"-"` // Storage key of the uploaded photo
	CreatedAt time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}

// HasPhone reports whether a text message can be addressed to the player.
func (p *Player) HasPhone() bool {
	return p != nil && p.Phone != ""
}
