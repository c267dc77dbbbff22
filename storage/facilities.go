package storage

import (
	"context"
	"hostel-server/models"

	"gorm.io/gorm"
)

type FacilityStore struct {
	db *gorm.DB
}

func NewFacilityStore(db *gorm.DB) *FacilityStore {
	return &FacilityStore{db: db}
}

func (s *FacilityStore) List(ctx context.Context, availableOnly bool) ([]models.Facility, error) {
	q := s.db.WithContext(ctx)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	facilities := []models.Facility{}
	err := q.Order("sort_order ASC").Order("id ASC").Find(&facilities).Error
	return facilities, err
}

func (s *FacilityStore) FindByID(ctx context.Context, id string) (*models.Facility, error) {
	var facility models.Facility
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&facility).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

func (s *FacilityStore) SetAvailable(ctx context.Context, facility *models.Facility, available bool) error {
	facility.IsAvailable = available
	return s.db.WithContext(ctx).Model(facility).Update("is_available", available).Error
}

func (s *FacilityStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Facility{}).Count(&count).Error
	return count, err
}

// SeedIfEmpty inserts facilities only when the table has no rows.
func (s *FacilityStore) SeedIfEmpty(ctx context.Context, facilities []models.Facility) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil || count > 0 {
		return false, err
	}
	if err := s.db.WithContext(ctx).Create(&facilities).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Replace removes every facility and inserts the given ones.
func (s *FacilityStore) Replace(ctx context.Context, facilities []models.Facility) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Facility{}).Error; err != nil {
			return err
		}
		return tx.Create(&facilities).Error
	})
}
