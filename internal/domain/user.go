package domain

import "time"

// User represents an authenticated user account in the system.
type User struct {
	Record
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Stored hashed, never serialized
	DisplayName  string    `json:"display_name"`
	IsStaff      bool      `json:"is_staff"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// Actor is the identity initiating a request: an authenticated user or nobody.
// A nil *User (the zero Actor) means the request is anonymous.
type Actor struct {
	User *User
}

// AnonymousActor returns an actor with no identity.
func AnonymousActor() Actor {
	return Actor{}
}

// ActorFor returns an actor wrapping the given user.
func ActorFor(u *User) Actor {
	return Actor{User: u}
}

// IsAuthenticated reports whether the actor has an identity.
func (a Actor) IsAuthenticated() bool {
	return a.User != nil
}

// IsStaff reports whether the actor is an authenticated staff member.
func (a Actor) IsStaff() bool {
	return a.User != nil && a.User.IsStaff
}

// ID returns the actor's user ID, or empty string for anonymous actors.
func (a Actor) ID() string {
	if a.User == nil {
		return ""
	}
	return a.User.ID
}
