package storage

import (
	"context"
	"hostel-server/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

type UserFilter struct {
	Search string
	Role   models.Role
	Page   int
	Limit  int
}

type UserCounts struct {
	Total      int64
	Verified   int64
	Unverified int64
	Admins     int64
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists mirrors the lookup done before registration.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (s *UserStore) FindByVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email_verification_token = ? AND email_verification_expires > ?", token, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", token, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *UserStore) List(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.Role != "" {
			db = db.Where("role = ?", f.Role)
		}
		if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
			p := likePattern(search)
			db = db.Where(likeAny("full_name", "email"), p, p)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	err := s.db.WithContext(ctx).
		Scopes(scope, paginate(f.Page, f.Limit)).
		Order("created_at DESC").Order("id DESC").
		Find(&users).Error
	return users, total, err
}

// Counts reports regular users separately from admins.
func (s *UserStore) Counts(ctx context.Context) (UserCounts, error) {
	var c UserCounts
	users := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleUser)
	}
	if err := users().Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := users().Where("is_email_verified = ?", true).Count(&c.Verified).Error; err != nil {
		return c, err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&c.Admins).Error; err != nil {
		return c, err
	}
	c.Unverified = c.Total - c.Verified
	return c, nil
}
