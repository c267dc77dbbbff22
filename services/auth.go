package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"hostel-server/models"
	"hostel-server/storage"
	"hostel-server/utils"
	"net/http"
	"strings"
	"time"

	"github.com/kataras/golog"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost             = 10
	verificationTokenTTL   = 24 * time.Hour
	passwordResetTokenTTL  = time.Hour
	invalidCredentialsText = "Invalid email or password"
)

type AuthService struct {
	users    *storage.UserStore
	tokens   *TokenService
	notifier *Notifier
	uploader Uploader
	logger   *golog.Logger
	now      func() time.Time
}

func NewAuthService(users *storage.UserStore, tokens *TokenService, notifier *Notifier, uploader Uploader, logger *golog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

type RegisterInput struct {
	FullName  string
	Email     string
	Password  string
	CNICFront string
	CNICBack  string
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict("User with this email already exists")
	}

	front, err := storeImage(ctx, s.uploader, in.CNICFront, CNICFolder)
	if err != nil {
		return nil, fmt.Errorf("uploading CNIC front image: %w", err)
	}
	back, err := storeImage(ctx, s.uploader, in.CNICBack, CNICFolder)
	if err != nil {
		return nil, fmt.Errorf("uploading CNIC back image: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(verificationTokenTTL)

	user := &models.User{
		FullName:                 strings.TrimSpace(in.FullName),
		Email:                    email,
		Password:                 hash,
		CNICFront:                front,
		CNICBack:                 back,
		Role:                     models.RoleUser,
		EmailVerificationToken:   token,
		EmailVerificationExpires: &expires,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.notifier.SendVerificationEmail(ctx, user, token); err != nil {
		s.logger.Warnf("verification email to %s failed: %v", user.Email, err)
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.users.FindByVerificationToken(ctx, token, s.now())
	if storage.IsNotFound(err) {
		return nil, utils.BadRequest("Invalid or expired verification token")
	}
	if err != nil {
		return nil, err
	}
	if user.IsEmailVerified {
		return nil, utils.BadRequest("Email is already verified")
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues tokens. With adminOnly set, accounts
// without the admin role are refused.
func (s *AuthService) Login(ctx context.Context, email, password string, adminOnly bool) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if storage.IsNotFound(err) {
		return nil, nil, utils.Unauthorized(invalidCredentialsText)
	}
	if err != nil {
		return nil, nil, err
	}
	if !checkPassword(user.Password, password) {
		return nil, nil, utils.Unauthorized(invalidCredentialsText)
	}
	if adminOnly && !user.IsAdmin() {
		return nil, nil, utils.Forbidden("Access denied. Admin privileges required.")
	}
	if !user.IsEmailVerified {
		return nil, nil, utils.Forbidden("Please verify your email address before logging in.")
	}

	pair, err := s.tokens.CreateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ForgotPassword never reveals whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if storage.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(passwordResetTokenTTL)
	user.PasswordResetToken = token
	user.PasswordResetExpires = &expires
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.notifier.SendPasswordResetEmail(ctx, user, token); err != nil {
		s.logger.Errorf("password reset email to %s failed: %v", user.Email, err)
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if err := s.users.Save(ctx, user); err != nil {
			s.logger.Errorf("clearing reset token for %s: %v", user.Email, err)
		}
		return utils.NewError(http.StatusInternalServerError, "Failed to send password reset email. Please try again later.")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.users.FindByResetToken(ctx, token, s.now())
	if storage.IsNotFound(err) {
		return utils.BadRequest("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	return s.users.Save(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	if !checkPassword(user.Password, current) {
		return utils.Unauthorized("Current password is incorrect")
	}
	if current == next {
		return utils.BadRequest("New password must be different from current password")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Save(ctx, user)
}

// Refresh rotates a refresh token into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	userID, err := s.tokens.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, utils.Unauthorized("Invalid or expired refresh token")
	}
	user, err := s.users.FindByID(ctx, userID)
	if storage.IsNotFound(err) {
		return nil, nil, utils.Unauthorized("User not found. Please login again.")
	}
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.tokens.CreateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeRefreshToken(ctx, refreshToken)
}
