package services

import (
	"hostel-server/models"
	"math"
	"time"
)

var (
	// CreateBlockingStatuses hold a room against new booking requests,
	// including requests still awaiting approval.
	CreateBlockingStatuses = []models.BookingStatus{
		models.BookingPending,
		models.BookingApproved,
		models.BookingCheckedIn,
	}

	// MutateBlockingStatuses are checked when a booking is approved or
	// checked in. Other pending requests do not block that decision.
	MutateBlockingStatuses = []models.BookingStatus{
		models.BookingApproved,
		models.BookingCheckedIn,
	}
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights counts started days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func TotalAmount(checkIn, checkOut time.Time, pricePerBed float64) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerBed
}

var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingApproved, models.BookingRejected, models.BookingCancelled},
	models.BookingApproved:  {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn: {models.BookingCheckedOut},
}

// CanTransition reports whether a booking may move from one status to another.
// Setting the current status again is always allowed.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func firstOverlap(bookings []models.Booking, checkIn, checkOut time.Time) *models.Booking {
	for i := range bookings {
		b := &bookings[i]
		if Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			return b
		}
	}
	return nil
}
