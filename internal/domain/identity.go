package domain

// PrincipalKind distinguishes the two kinds of users that can log in.
type PrincipalKind string

const (
	PrincipalPlayer     PrincipalKind = "player"
	PrincipalInstructor PrincipalKind = "instructor"
)

// Identity is who is asking. The zero value is the anonymous identity.
type Identity struct {
	Kind PrincipalKind `json:"type"`
	ID   int64         `json:"id"`
	Name string        `json:"name"`
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

func (i Identity) IsAnonymous() bool {
	return i.Kind == "" || i.ID == 0
}

func (i Identity) IsInstructor() bool {
	return i.Kind == PrincipalInstructor && i.ID != 0
}

func (i Identity) IsPlayer() bool {
	return i.Kind == PrincipalPlayer && i.ID != 0
}

// InstructorIdentity builds the session identity of an instructor.
func InstructorIdentity(in *Instructor) Identity {
	return Identity{Kind: PrincipalInstructor, ID: in.ID, Name: in.Name}
}

// PlayerIdentity builds the session identity of a player.
func PlayerIdentity(p *Player) Identity {
	return Identity{Kind: PrincipalPlayer, ID: p.ID, Name: p.Name}
}
