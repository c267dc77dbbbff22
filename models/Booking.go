package models

import (
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingApproved   BookingStatus = "approved"
	BookingRejected   BookingStatus = "rejected"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingApproved,
	BookingRejected,
	BookingCheckedIn,
	BookingCheckedOut,
	BookingCancelled,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	Base
	UserID        uint          `json:"userId" gorm:"index;not null"`
	User          *User         `json:"user,omitempty"`
	RoomID        uint          `json:"roomId" gorm:"index;not null"`
	Room          *Room         `json:"room,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CheckInDate   time.Time     `json:"checkInDate" gorm:"not null"`
	CheckOutDate  time.Time     `json:"checkOutDate" gorm:"not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(10);not null"`
	TotalAmount   float64       `json:"totalAmount" gorm:"not null"`
	Notes         string        `json:"notes" gorm:"size:500"`
}
