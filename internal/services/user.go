package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UnknownUsername is the display sentinel for any id that no longer
// resolves to a user.
const UnknownUsername = "Unknown"

type UserService struct {
	userRepo *repository.UserRepository
	producer queue.Publisher
	logger   *logger.Logger
}

func NewUserService(userRepo *repository.UserRepository, producer queue.Publisher, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates the account. Email is deliberately unconstrained; only
// the username is unique. A concurrent insert losing to the uniqueness
// constraint reports the same ErrUsernameTaken as the pre-check.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event := queue.Event{
		Type:      queue.EventUserRegistered,
		Timestamp: user.CreatedAt,
		Data: map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		},
	}
	if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish user registered event")
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Login returns the user on success and a single undifferentiated
// ErrAuthFailed otherwise; callers cannot tell a bad username from a bad
// password.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrAuthFailed
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// ResolveUsername is for display contexts only: it degrades to the
// "Unknown" sentinel for any unresolvable or malformed id and never fails.
func (s *UserService) ResolveUsername(ctx context.Context, userID string) string {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UnknownUsername
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil || user == nil {
		return UnknownUsername
	}
	return user.Username
}

// Search matches query as a case-sensitive substring of usernames; an empty
// query returns every username.
func (s *UserService) Search(ctx context.Context, query string) ([]string, error) {
	usernames, err := s.userRepo.SearchUsernames(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return usernames, nil
}
