package domain

// User represents an account and its friend set. The friend relation is
// symmetric: if A's set contains B, B's set contains A. That pairing is
// maintained by the user service, not by the model or the store.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email" validate:"required,email"`
	Login string `json:"login" validate:"required,excludesall=0x20"`
	// Name is the display name. When left blank it defaults to Login.
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"required"`
	Friends  IDSet  `json:"friends"`
}

// Clone returns a deep copy of the user, so callers can't mutate stored
// state through a shared friend set.
func (u *User) Clone() *User {
	clone := *u
	clone.Friends = u.Friends.Clone()
	return &clone
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	All() []User
	ByID(id int) (*User, error)
	Create(user *User) error
	Update(user *User) error
	AddFriend(id, friendID int) error
	RemoveFriend(id, friendID int) error
	Friends(id int) ([]User, error)
	CommonFriends(id, otherID int) ([]User, error)
	Reset()
}

// UserIndex is the read-only view of the user store that other services use
// for existence checks. It deliberately exposes no way to read or write user
// records.
type UserIndex interface {
	Exists(id int) bool
}
