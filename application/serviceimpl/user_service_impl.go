package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	taskRepo  repositories.TaskRepository
	tx        repositories.Transactor
	cache     ports.TaskListCachePort // nil disables list caching
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time

	comparePassword func(hashed, password []byte) error
}

var (
	unknownUserHashOnce  sync.Once
	unknownUserHashBytes []byte
)

// unknownUserHash is compared against when the login email does not exist, so
// both failure paths pay for one bcrypt comparison.
func unknownUserHash() []byte {
	unknownUserHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("no such user"), bcrypt.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("bcrypt: %v", err))
		}
		unknownUserHashBytes = hash
	})
	return unknownUserHashBytes
}

func NewUserService(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	tx repositories.Transactor,
	cache ports.TaskListCachePort,
	jwtSecret string,
	tokenTTL time.Duration,
) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		tx:        tx,
		cache:     cache,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       utcNow,

		comparePassword: bcrypt.CompareHashAndPassword,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error) {
	email := strings.TrimSpace(req.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", nil, models.NewValidationError("password", "Password must be 72 bytes or less")
		}
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return "", nil, err
	}

	now := s.now()
	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if existing != nil {
			return models.ErrDuplicateEmail
		}
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			logger.WarnContext(ctx, "Email already registered", "email", email)
		} else {
			logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		}
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	var user *models.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			_ = s.comparePassword(unknownUserHash(), []byte(req.Password))
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.comparePassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed", "user_id", user.ID)
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := utils.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", models.ErrInvalidToken)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user *models.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if removed, err = s.taskRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, userID)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete account", "user_id", userID, "error", err)
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTaskList(ctx, userID); err != nil {
			logger.WarnContext(ctx, "Task list cache invalidation failed", "user_id", userID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Account deleted", "user_id", userID, "tasks_removed", removed)
	return nil
}

func (s *UserServiceImpl) issueToken(user *models.User) (string, error) {
	return utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL, s.now())
}
