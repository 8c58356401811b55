package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/carolcampos22/chatterbox/internal/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const maxNameLength = 64

type userService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// RegisterUser validates and stores a user
func (s *userService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Role == "" {
		req.Role = auth.RoleNormal
	}

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	return s.userRepo.Upsert(ctx, &User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
}

// GetUserByID retrieves a user by id
func (s *userService) GetUserByID(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("id is required")
	}
	return s.userRepo.GetByID(ctx, id)
}

func validateRegisterRequest(req RegisterUserRequest) error {
	if req.ID == "" {
		return &InvalidFieldError{Field: "id", Reason: "required"}
	}
	if req.Name == "" {
		return &InvalidFieldError{Field: "name", Reason: "required"}
	}
	if len(req.Name) > maxNameLength {
		return &InvalidFieldError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return &InvalidFieldError{Field: "email", Reason: "invalid format"}
	}
	if !req.Role.IsValid() {
		return &InvalidFieldError{Field: "role", Reason: fmt.Sprintf("must be %s or %s", auth.RoleNormal, auth.RoleAdmin)}
	}
	return nil
}
