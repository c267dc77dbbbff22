package services

import (
	"context"
	"fmt"
	"hostel-server/models"
	"hostel-server/storage"
	"hostel-server/utils"
	"strings"
	"time"

	"github.com/kataras/golog"
)

type CreateBookingInput struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Notes    string
	// OnBehalfOf is honoured for admins only.
	OnBehalfOf uint
}

type UpdateBookingInput struct {
	Status        *models.BookingStatus `json:"status" validate:"omitempty,oneof=pending approved rejected checked_in checked_out cancelled"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=unpaid paid"`
	Notes         *string               `json:"notes" validate:"omitempty,max=500"`
}

// onlyMarksPaid is true when the update does nothing but mark the booking paid.
func (in UpdateBookingInput) onlyMarksPaid() bool {
	return in.Status == nil && in.Notes == nil &&
		in.PaymentStatus != nil && *in.PaymentStatus == models.PaymentPaid
}

type BookingQuery struct {
	Status models.BookingStatus
	RoomID uint
	UserID uint
	Search string
	Page   int
	Limit  int
}

type BookingService struct {
	bookings *storage.BookingStore
	rooms    *storage.RoomStore
	users    *storage.UserStore
	notifier *Notifier
	logger   *golog.Logger
}

func NewBookingService(bookings *storage.BookingStore, rooms *storage.RoomStore, users *storage.UserStore, notifier *Notifier, logger *golog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// checkAvailability returns a conflict when a booking of the room in one of
// statuses overlaps [checkIn, checkOut).
func (s *BookingService) checkAvailability(ctx context.Context, roomID uint, checkIn, checkOut time.Time, statuses []models.BookingStatus, excludeID uint, message string) error {
	candidates, err := s.bookings.BlockingCandidates(ctx, roomID, statuses, checkIn, excludeID)
	if err != nil {
		return fmt.Errorf("checking availability: %w", err)
	}
	if firstOverlap(candidates, checkIn, checkOut) != nil {
		return utils.Conflict(message)
	}
	return nil
}

func (s *BookingService) Create(ctx context.Context, actor *models.User, in CreateBookingInput) (*models.Booking, error) {
	checkIn, checkOut := in.CheckIn.UTC(), in.CheckOut.UTC()
	if !checkOut.After(checkIn) {
		return nil, utils.ValidationError(utils.FieldError{
			Field:   "checkOutDate",
			Message: "Check-out date must be after check-in date",
		})
	}

	ownerID := actor.ID
	if actor.IsAdmin() && in.OnBehalfOf != 0 {
		owner, err := s.users.FindByID(ctx, in.OnBehalfOf)
		if storage.IsNotFound(err) {
			return nil, utils.NotFound("User not found")
		}
		if err != nil {
			return nil, err
		}
		ownerID = owner.ID
	}

	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if storage.IsNotFound(err) {
		return nil, utils.NotFound("Room not found")
	}
	if err != nil {
		return nil, err
	}

	err = s.checkAvailability(ctx, room.ID, checkIn, checkOut, CreateBlockingStatuses, 0,
		"Room is not available for the selected dates")
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:        ownerID,
		RoomID:        room.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentUnpaid,
		TotalAmount:   TotalAmount(checkIn, checkOut, room.PricePerBed),
		Notes:         strings.TrimSpace(in.Notes),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	return s.bookings.FindByID(ctx, booking.ID)
}

// List shows non-admins their own bookings only.
func (s *BookingService) List(ctx context.Context, actor *models.User, q BookingQuery) ([]models.Booking, int64, error) {
	f := storage.BookingFilter{
		RoomID: q.RoomID,
		Status: q.Status,
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	}
	if actor.IsAdmin() {
		f.UserID = q.UserID
	} else {
		f.UserID = actor.ID
	}
	return s.bookings.List(ctx, f)
}

func (s *BookingService) Get(ctx context.Context, actor *models.User, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if storage.IsNotFound(err) {
		return nil, utils.NotFound("Booking not found")
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.ID {
		return nil, utils.Forbidden("Forbidden")
	}
	return booking, nil
}

// Update applies a partial update.
//
// Admins may make any allowed status transition. Owners may cancel a
// pending booking, edit its notes, or mark any of their bookings paid.
// Approving or checking in re-checks the room against committed bookings.
func (s *BookingService) Update(ctx context.Context, actor *models.User, id uint, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !in.onlyMarksPaid() {
		if in.Status != nil && *in.Status != models.BookingCancelled {
			return nil, utils.Forbidden("Only admins can change status to something other than cancelled")
		}
		if booking.Status != models.BookingPending {
			return nil, utils.BadRequest("Only pending bookings can be cancelled")
		}
	}

	previous := booking.Status
	if in.Status != nil {
		next := *in.Status
		if !CanTransition(previous, next) {
			return nil, utils.BadRequest(fmt.Sprintf("Invalid status transition from %s to %s", previous, next))
		}
		if next == models.BookingApproved || next == models.BookingCheckedIn {
			err := s.checkAvailability(ctx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate,
				MutateBlockingStatuses, booking.ID, "Room is not available for these dates")
			if err != nil {
				return nil, err
			}
		}
		booking.Status = next
	}
	if in.PaymentStatus != nil {
		booking.PaymentStatus = *in.PaymentStatus
	}
	if in.Notes != nil {
		booking.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("updating booking: %w", err)
	}

	if booking.Status != previous {
		s.notifyStatus(ctx, booking)
	}
	return s.bookings.FindByID(ctx, booking.ID)
}

func (s *BookingService) notifyStatus(ctx context.Context, booking *models.Booking) {
	user, err := s.users.FindByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Warnf("booking %d status email: loading user: %v", booking.ID, err)
		return
	}
	if err := s.notifier.SendBookingStatusEmail(ctx, user, booking); err != nil {
		s.logger.Warnf("booking %d status email to %s failed: %v", booking.ID, user.Email, err)
	}
}

// CheckOut ends a resident's stay and returns the resident as checked out.
func (s *BookingService) CheckOut(ctx context.Context, id uint) (*models.Resident, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if storage.IsNotFound(err) || (err == nil && booking.Status != models.BookingCheckedIn) {
		return nil, utils.NotFound("Resident not found")
	}
	if err != nil {
		return nil, err
	}
	booking.Status = models.BookingCheckedOut
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("checking out booking: %w", err)
	}
	s.notifyStatus(ctx, booking)
	r := models.NewResident(*booking)
	r.Status = models.ResidentCheckedOut
	return &r, nil
}

func (s *BookingService) Resident(ctx context.Context, id uint) (*models.Resident, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if storage.IsNotFound(err) || (err == nil && booking.Status != models.BookingCheckedIn) {
		return nil, utils.NotFound("Resident not found")
	}
	if err != nil {
		return nil, err
	}
	r := models.NewResident(*booking)
	return &r, nil
}

func (s *BookingService) Residents(ctx context.Context, search string, page, limit int) ([]models.Resident, int64, error) {
	bookings, total, err := s.bookings.ListCheckedIn(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	residents := make([]models.Resident, 0, len(bookings))
	for _, b := range bookings {
		residents = append(residents, models.NewResident(b))
	}
	return residents, total, nil
}
