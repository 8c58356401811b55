package users

import "context"

// UserService defines the interface for user business logic
type UserService interface {
	// RegisterUser creates the user or updates name, email and role of an existing one
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Upsert(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
