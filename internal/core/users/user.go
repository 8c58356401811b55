package users

import (
	"time"

	"github.com/carolcampos22/chatterbox/internal/auth"
)

// User is an account that can author and react to posts.
// Only the fields the posts feature reads are tracked here.
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      auth.Role `json:"role" db:"role"`
}

// RegisterUserRequest represents the input for registering or refreshing a user
type RegisterUserRequest struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

// Payload returns the identity a credential for this user carries
func (u *User) Payload() auth.TokenPayload {
	return auth.TokenPayload{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}
