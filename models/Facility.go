package models

import "time"

// Facility is keyed by a slug such as "wifi".
type Facility struct {
	ID          string    `json:"id" gorm:"primaryKey;size:50"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" gorm:"size:50"`
	Color       string    `json:"color" gorm:"size:50"`
	IsAvailable bool      `json:"isAvailable"`
	Order       int       `json:"order" gorm:"column:sort_order;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func DefaultFacilities() []Facility {
	return []Facility{
		{ID: "wifi", Name: "High-Speed WiFi", Description: "Free unlimited high-speed internet access throughout the premises", Icon: "wifi", Color: "text-primary", IsAvailable: true, Order: 1},
		{ID: "laundry", Name: "Laundry Service", Description: "Self-service washing machines and dryers available 24/7", Icon: "laundry", Color: "text-stat-residents", IsAvailable: true, Order: 2},
		{ID: "kitchen", Name: "Mess / Kitchen", Description: "Fully equipped communal kitchen with dining area", Icon: "kitchen", Color: "text-accent", IsAvailable: true, Order: 3},
		{ID: "security", Name: "24/7 Security", Description: "Round-the-clock security with CCTV surveillance", Icon: "security", Color: "text-stat-available", IsAvailable: true, Order: 4},
		{ID: "parking", Name: "Parking Area", Description: "Secure parking space for residents' vehicles", Icon: "parking", Color: "text-muted-foreground", IsAvailable: false, Order: 5},
		{ID: "gym", Name: "Fitness Center", Description: "Well-equipped gym with modern exercise equipment", Icon: "gym", Color: "text-stat-occupied", IsAvailable: true, Order: 6},
		{ID: "cafe", Name: "Common Lounge", Description: "Comfortable lounge area with TV and coffee machine", Icon: "cafe", Color: "text-primary", IsAvailable: true, Order: 7},
		{ID: "ac", Name: "Air Conditioning", Description: "Climate control in all rooms and common areas", Icon: "ac", Color: "text-stat-rooms", IsAvailable: true, Order: 8},
	}
}
