package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomDorm   RoomType = "dorm"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	Base
	RoomNumber    string         `json:"roomNumber" gorm:"size:50;uniqueIndex;not null"`
	RoomType      RoomType       `json:"roomType" gorm:"type:varchar(10);not null"`
	TotalBeds     int            `json:"totalBeds" gorm:"not null"`
	AvailableBeds int            `json:"availableBeds" gorm:"not null"`
	PricePerBed   float64        `json:"pricePerBed" gorm:"not null"`
	Floor         int            `json:"floor"`
	Amenities     datatypes.JSON `json:"amenities"`
	Images        datatypes.JSON `json:"images"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Status        RoomStatus     `json:"status" gorm:"type:varchar(15);index;not null"`
	IsActive      bool           `json:"isActive" gorm:"index"`
}

// StringList encodes values as a JSON array column, never null.
func StringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

// Strings decodes a JSON array column written by StringList.
func Strings(column datatypes.JSON) []string {
	var out []string
	if len(column) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(column, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
