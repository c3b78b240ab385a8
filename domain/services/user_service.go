package services

import (
	"context"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	// Authenticate resolves a bearer token to an existing user.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	// DeleteAccount removes the user's tasks and then the user, atomically.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
