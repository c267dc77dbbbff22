package models

import "time"

const (
	ResidentActive     = "active"
	ResidentCheckedOut = "checked_out"
)

// Resident is a checked-in booking presented as a person and a room.
type Resident struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	AssignedRoom string    `json:"assignedRoom"`
	RoomID       uint      `json:"roomId"`
	Status       string    `json:"status"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
}

// NewResident expects b.User and b.Room to be preloaded.
func NewResident(b Booking) Resident {
	r := Resident{
		ID:           b.ID,
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		Status:       ResidentActive,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
	}
	if b.User != nil {
		r.FullName = b.User.FullName
		r.Email = b.User.Email
	}
	if b.Room != nil {
		r.AssignedRoom = b.Room.RoomNumber
	}
	return r
}
