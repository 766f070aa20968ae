package storage

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Repository interface {
	// CreateUser stores a new user, hashing password. ErrDuplicate when the email
	// is taken.
	CreateUser(fullName, email, password string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	// Authenticate returns the user when the password matches, ErrNotFound otherwise.
	Authenticate(email, password string) (*User, error)
	CreateStructure(userID uint, name string, data []byte) (*Structure, error)
	// ListStructures returns a user's structures oldest first.
	ListStructures(userID uint) ([]Structure, error)
}
