package domain

import "time"

// User represents a registered account of the task manager.
// The ID and CreatedAt fields are assigned by the store; a User returned
// from a store call always carries the persisted values.
type User struct {
	ID             int64     `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User ready for insertion. The caller is responsible for
// hashing the password; plaintext passwords never reach this type.
// Returns an error if validation fails.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
