package storage

import (
	"context"
	"hostel-server/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

type BookingFilter struct {
	UserID uint
	RoomID uint
	// Status is ignored unless it is a known booking status.
	Status models.BookingStatus
	// Search matches the booking owner's name or email.
	Search string
	Page   int
	Limit  int
}

type BookingCounts struct {
	Total     int64
	Pending   int64
	Approved  int64
	CheckedIn int64
}

func withUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "email", "role", "is_email_verified")
}

func (s *BookingStore) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("User", withUserSummary).Preload("Room")
}

func (s *BookingStore) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.preloaded(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Omit("User", "Room").Create(booking).Error
}

// Update writes the mutable columns only.
func (s *BookingStore) Update(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Model(booking).
		Updates(map[string]interface{}{
			"status":         string(booking.Status),
			"payment_status": string(booking.PaymentStatus),
			"notes":          booking.Notes,
		}).Error
}

// BlockingCandidates returns the bookings of a room in one of statuses that
// end after from. The caller applies the exact overlap test.
func (s *BookingStore) BlockingCandidates(ctx context.Context, roomID uint, statuses []models.BookingStatus, from time.Time, excludeID uint) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).
		Where("room_id = ? AND status IN ? AND check_out_date > ?", roomID, statusStrings(statuses), from)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	bookings := []models.Booking{}
	err := q.Order("check_in_date ASC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingStore) userSearch(search string) *gorm.DB {
	p := likePattern(strings.ToLower(strings.TrimSpace(search)))
	return s.db.Model(&models.User{}).Select("id").
		Where(likeAny("full_name", "email"), p, p)
}

func (s *BookingStore) List(ctx context.Context, f BookingFilter) ([]models.Booking, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.UserID != 0 {
			db = db.Where("user_id = ?", f.UserID)
		}
		if f.RoomID != 0 {
			db = db.Where("room_id = ?", f.RoomID)
		}
		if f.Status.Valid() {
			db = db.Where("status = ?", f.Status)
		}
		if strings.TrimSpace(f.Search) != "" {
			db = db.Where("user_id IN (?)", s.userSearch(f.Search))
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	bookings := []models.Booking{}
	err := s.preloaded(ctx).
		Scopes(scope, paginate(f.Page, f.Limit)).
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, total, err
}

// ListCheckedIn backs the residents view. Search matches the resident's
// name, email or room number.
func (s *BookingStore) ListCheckedIn(ctx context.Context, search string, page, limit int) ([]models.Booking, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("status = ?", models.BookingCheckedIn)
		if q := strings.TrimSpace(search); q != "" {
			rooms := s.db.Model(&models.Room{}).Select("id").
				Where(likeAny("room_number"), likePattern(strings.ToLower(q)))
			db = db.Where("user_id IN (?) OR room_id IN (?)", s.userSearch(q), rooms)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	bookings := []models.Booking{}
	err := s.preloaded(ctx).
		Scopes(scope, paginate(page, limit)).
		Order("check_in_date DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, total, err
}

func (s *BookingStore) Counts(ctx context.Context) (BookingCounts, error) {
	var c BookingCounts
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&c.Total).Error; err != nil {
		return c, err
	}

	type row struct {
		Status models.BookingStatus
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return c, err
	}
	for _, r := range rows {
		switch r.Status {
		case models.BookingPending:
			c.Pending = r.Count
		case models.BookingApproved:
			c.Approved = r.Count
		case models.BookingCheckedIn:
			c.CheckedIn = r.Count
		}
	}
	return c, nil
}
