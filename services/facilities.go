package services

import (
	"context"
	"hostel-server/models"
	"hostel-server/storage"
	"hostel-server/utils"
)

type FacilityService struct {
	facilities *storage.FacilityStore
}

func NewFacilityService(facilities *storage.FacilityStore) *FacilityService {
	return &FacilityService{facilities: facilities}
}

func (s *FacilityService) List(ctx context.Context, availableOnly bool) ([]models.Facility, error) {
	return s.facilities.List(ctx, availableOnly)
}

func (s *FacilityService) Get(ctx context.Context, id string) (*models.Facility, error) {
	facility, err := s.facilities.FindByID(ctx, id)
	if storage.IsNotFound(err) {
		return nil, utils.NotFound("Facility not found.")
	}
	return facility, err
}

func (s *FacilityService) SetAvailability(ctx context.Context, id string, available bool) (*models.Facility, error) {
	facility, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.facilities.SetAvailable(ctx, facility, available); err != nil {
		return nil, err
	}
	return facility, nil
}

// SeedDefaults installs the default catalogue. Existing rows are kept
// unless reset is set, in which case the table is replaced.
func (s *FacilityService) SeedDefaults(ctx context.Context, reset bool) (bool, error) {
	if reset {
		if err := s.facilities.Replace(ctx, models.DefaultFacilities()); err != nil {
			return false, err
		}
		return true, nil
	}
	return s.facilities.SeedIfEmpty(ctx, models.DefaultFacilities())
}
