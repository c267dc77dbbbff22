package services

import (
	"context"
	"fmt"
	"hostel-server/models"
	"hostel-server/storage"
	"hostel-server/utils"
)

type DashboardStats struct {
	Users struct {
		Total      int64 `json:"total"`
		Verified   int64 `json:"verified"`
		Unverified int64 `json:"unverified"`
	} `json:"users"`
	Admins struct {
		Total int64 `json:"total"`
	} `json:"admins"`
	Rooms struct {
		Total         int64 `json:"total"`
		Active        int64 `json:"active"`
		AvailableBeds int64 `json:"availableBeds"`
	} `json:"rooms"`
	Bookings struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Approved  int64 `json:"approved"`
		CheckedIn int64 `json:"checkedIn"`
	} `json:"bookings"`
	Residents struct {
		Total int64 `json:"total"`
	} `json:"residents"`
}

type AdminService struct {
	users    *storage.UserStore
	rooms    *storage.RoomStore
	bookings *storage.BookingStore
}

func NewAdminService(users *storage.UserStore, rooms *storage.RoomStore, bookings *storage.BookingStore) *AdminService {
	return &AdminService{users: users, rooms: rooms, bookings: bookings}
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	rooms, err := s.rooms.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting rooms: %w", err)
	}
	bookings, err := s.bookings.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}

	stats := &DashboardStats{}
	stats.Users.Total = users.Total
	stats.Users.Verified = users.Verified
	stats.Users.Unverified = users.Unverified
	stats.Admins.Total = users.Admins
	stats.Rooms.Total = rooms.Total
	stats.Rooms.Active = rooms.Active
	stats.Rooms.AvailableBeds = rooms.AvailableBeds
	stats.Bookings.Total = bookings.Total
	stats.Bookings.Pending = bookings.Pending
	stats.Bookings.Approved = bookings.Approved
	stats.Bookings.CheckedIn = bookings.CheckedIn
	// Every checked-in booking is one resident.
	stats.Residents.Total = bookings.CheckedIn
	return stats, nil
}

func (s *AdminService) Users(ctx context.Context, f storage.UserFilter) ([]models.User, int64, error) {
	return s.users.List(ctx, f)
}

func (s *AdminService) SetRole(ctx context.Context, actor *models.User, id uint, role models.Role) (*models.User, error) {
	if actor.ID == id {
		return nil, utils.BadRequest("You cannot change your own role")
	}
	user, err := s.users.FindByID(ctx, id)
	if storage.IsNotFound(err) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("updating role: %w", err)
	}
	return user, nil
}

// CreateAdmin adds a verified admin account. It fails with a conflict when
// the email is already registered.
func CreateAdmin(ctx context.Context, users *storage.UserStore, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict("User with this email already exists")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.User{
		FullName:        fullName,
		Email:           email,
		Password:        hash,
		CNICFront:       "admin-cnic-front",
		CNICBack:        "admin-cnic-back",
		IsEmailVerified: true,
		Role:            models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	return admin, nil
}
