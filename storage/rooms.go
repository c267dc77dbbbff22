package storage

import (
	"context"
	"hostel-server/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

type RoomStore struct {
	db *gorm.DB
}

func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{db: db}
}

type RoomFilter struct {
	RoomType models.RoomType
	Status   models.RoomStatus
	IsActive *bool
	Floor    *int
	Search   string

	// Rooms holding a booking in BookedStatuses that overlaps
	// [CheckIn, CheckOut) are left out when both dates are set.
	CheckIn        *time.Time
	CheckOut       *time.Time
	BookedStatuses []models.BookingStatus

	Page  int
	Limit int
}

type RoomCounts struct {
	Total         int64
	Active        int64
	AvailableBeds int64
}

func (s *RoomStore) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// RoomNumberTaken reports whether another room already uses number.
func (s *RoomStore) RoomNumberTaken(ctx context.Context, number string, excludeID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Room{}).Where("room_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (s *RoomStore) Create(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Create(room).Error
}

func (s *RoomStore) Save(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Save(room).Error
}

func (s *RoomStore) Delete(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
}

func (s *RoomStore) List(ctx context.Context, f RoomFilter) ([]models.Room, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.RoomType != "" {
			db = db.Where("room_type = ?", f.RoomType)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.IsActive != nil {
			db = db.Where("is_active = ?", *f.IsActive)
		}
		if f.Floor != nil {
			db = db.Where("floor = ?", *f.Floor)
		}
		if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
			p := likePattern(search)
			db = db.Where(likeAny("room_number", "title", "description"), p, p, p)
		}
		if f.CheckIn != nil && f.CheckOut != nil && len(f.BookedStatuses) > 0 {
			booked := s.db.Model(&models.Booking{}).
				Select("room_id").
				Where("status IN ? AND check_in_date < ? AND check_out_date > ?",
					statusStrings(f.BookedStatuses), *f.CheckOut, *f.CheckIn)
			db = db.Where("id NOT IN (?)", booked)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rooms := []models.Room{}
	err := s.db.WithContext(ctx).
		Scopes(scope, paginate(f.Page, f.Limit)).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, total, err
}

func (s *RoomStore) Counts(ctx context.Context) (RoomCounts, error) {
	var c RoomCounts
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Where("is_active = ?", true).Count(&c.Active).Error; err != nil {
		return c, err
	}
	err := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(available_beds), 0)").
		Scan(&c.AvailableBeds).Error
	return c, err
}

func statusStrings(statuses []models.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
