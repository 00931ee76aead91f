package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user accounts.
type UserService struct {
	repo   *repository.UserRepository
	mailer Mailer
}

// Mailer is the outbound email capability the user flows need.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository, mailer Mailer) *UserService {
	return &UserService{
		repo:   repo,
		mailer: mailer,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("all fields are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	existing, _ := s.repo.GetUserByEmail(ctx, email)
	if existing != nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, fmt.Errorf("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser checks credentials and returns the matching user.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return user, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile updates name and/or email.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	update := bson.M{"updated_at": time.Now()}
	if name != "" {
		update["name"] = name
	}
	if email != "" {
		if !emailRegex.MatchString(email) {
			return nil, fmt.Errorf("invalid email format")
		}
		update["email"] = email
	}
	return s.repo.UpdateUser(ctx, id, update)
}

// UpdatePassword verifies the current password and stores a new hash.
func (s *UserService) UpdatePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return fmt.Errorf("incorrect current password")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	_, err = s.repo.UpdateUser(ctx, id, bson.M{"hashed_password": string(hashed), "updated_at": time.Now()})
	return err
}

// UpdateTheme stores the user's UI theme preference.
func (s *UserService) UpdateTheme(ctx context.Context, id primitive.ObjectID, theme string) (*models.User, error) {
	return s.repo.UpdateUser(ctx, id, bson.M{"theme": theme, "updated_at": time.Now()})
}

// SavePushSubscription stores or replaces the user's push subscription.
// A nil subscription drops it (used after a permanent delivery failure).
func (s *UserService) SavePushSubscription(ctx context.Context, id primitive.ObjectID, sub *models.PushSubscription) error {
	_, err := s.repo.UpdateUser(ctx, id, bson.M{"push_subscription": sub, "updated_at": time.Now()})
	return err
}

// RequestPasswordReset emails a time-limited reset token to the user.
func (s *UserService) RequestPasswordReset(ctx context.Context, userEmail string) error {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	resetToken := uuid.NewString()
	_, err = s.repo.UpdateUser(ctx, user.ID, bson.M{
		"reset_token":     resetToken,
		"reset_token_exp": time.Now().Add(1 * time.Hour),
		"updated_at":      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to save reset token")
	}

	body := fmt.Sprintf("Use the token below to reset your DreamPath password:\n\n%s", resetToken)
	if err := s.mailer.Send(user.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	logrus.Infof("Password reset email sent to %s", userEmail)
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	_, err = s.repo.UpdateUser(ctx, user.ID, bson.M{
		"hashed_password": string(hashed),
		"reset_token":     "",
		"updated_at":      time.Now(),
	})
	return err
}
