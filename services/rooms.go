package services

import (
	"context"
	"fmt"
	"hostel-server/models"
	"hostel-server/storage"
	"hostel-server/utils"
	"strings"
	"time"
)

type RoomInput struct {
	RoomNumber    string            `json:"roomNumber" validate:"required,max=50"`
	RoomType      models.RoomType   `json:"roomType" validate:"required,oneof=single double triple dorm"`
	TotalBeds     int               `json:"totalBeds" validate:"min=1"`
	AvailableBeds int               `json:"availableBeds" validate:"min=0,ltefield=TotalBeds"`
	PricePerBed   float64           `json:"pricePerBed" validate:"gt=0"`
	Floor         *int              `json:"floor"`
	Amenities     []string          `json:"amenities" validate:"omitempty,dive,required,max=100"`
	Images        []string          `json:"images" validate:"omitempty,dive,image"`
	Title         string            `json:"title" validate:"required,max=200"`
	Description   string            `json:"description" validate:"max=2000"`
	Status        models.RoomStatus `json:"status" validate:"omitempty,oneof=available full maintenance"`
	IsActive      *bool             `json:"isActive"`
}

type RoomQuery struct {
	RoomType models.RoomType
	Status   models.RoomStatus
	IsActive *bool
	Floor    *int
	Search   string
	CheckIn  *time.Time
	CheckOut *time.Time
	Page     int
	Limit    int
}

type RoomService struct {
	rooms    *storage.RoomStore
	uploader Uploader
}

func NewRoomService(rooms *storage.RoomStore, uploader Uploader) *RoomService {
	return &RoomService{rooms: rooms, uploader: uploader}
}

func (s *RoomService) apply(ctx context.Context, room *models.Room, in RoomInput) error {
	number := strings.TrimSpace(in.RoomNumber)
	title := strings.TrimSpace(in.Title)
	var details []utils.FieldError
	if number == "" {
		details = append(details, utils.FieldError{Field: "roomNumber", Message: "Room number is required"})
	}
	if title == "" {
		details = append(details, utils.FieldError{Field: "title", Message: "Title is required"})
	}
	if len(details) > 0 {
		return utils.ValidationError(details...)
	}

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		stored, err := storeImage(ctx, s.uploader, img, RoomsFolder)
		if err != nil {
			return fmt.Errorf("uploading room image: %w", err)
		}
		images = append(images, stored)
	}

	room.RoomNumber = number
	room.RoomType = in.RoomType
	room.TotalBeds = in.TotalBeds
	room.AvailableBeds = in.AvailableBeds
	room.PricePerBed = in.PricePerBed
	room.Floor = 0
	if in.Floor != nil {
		room.Floor = *in.Floor
	}
	room.Amenities = models.StringList(in.Amenities)
	room.Images = models.StringList(images)
	room.Title = title
	room.Description = strings.TrimSpace(in.Description)
	room.Status = models.RoomAvailable
	if in.Status != "" {
		room.Status = in.Status
	}
	room.IsActive = true
	if in.IsActive != nil {
		room.IsActive = *in.IsActive
	}
	return nil
}

func (s *RoomService) ensureNumberFree(ctx context.Context, number string, excludeID uint) error {
	taken, err := s.rooms.RoomNumberTaken(ctx, strings.TrimSpace(number), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return utils.Conflict("Room number already exists")
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	if err := s.ensureNumberFree(ctx, in.RoomNumber, 0); err != nil {
		return nil, err
	}
	room := &models.Room{}
	if err := s.apply(ctx, room, in); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if storage.IsNotFound(err) {
		return nil, utils.NotFound("Room not found")
	}
	return room, err
}

// Update replaces every field of the room with the input.
func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNumberFree(ctx, in.RoomNumber, room.ID); err != nil {
		return nil, err
	}
	if err := s.apply(ctx, room, in); err != nil {
		return nil, err
	}
	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("updating room: %w", err)
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.rooms.Delete(ctx, room)
}

// List applies the filters. A date range hides rooms that already hold a
// booking blocking new requests for those dates.
func (s *RoomService) List(ctx context.Context, q RoomQuery) ([]models.Room, int64, error) {
	f := storage.RoomFilter{
		RoomType: q.RoomType,
		Status:   q.Status,
		IsActive: q.IsActive,
		Floor:    q.Floor,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.CheckIn != nil && q.CheckOut != nil {
		if !q.CheckOut.After(*q.CheckIn) {
			return nil, 0, utils.ValidationError(utils.FieldError{
				Field:   "checkOut",
				Message: "Check-out date must be after check-in date",
			})
		}
		f.CheckIn = q.CheckIn
		f.CheckOut = q.CheckOut
		f.BookedStatuses = CreateBlockingStatuses
	}
	return s.rooms.List(ctx, f)
}

// RoomTypeInfo describes a room category shown on the marketing pages.
type RoomTypeInfo struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Capacity        string   `json:"capacity"`
	Price           float64  `json:"price"`
	PriceUnit       string   `json:"priceUnit"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Amenities       []string `json:"amenities"`
	Featured        bool     `json:"featured"`
	Size            string   `json:"size"`
	BedType         string   `json:"bedType"`
}

var roomTypeCatalogue = []RoomTypeInfo{
	{
		Slug:            "single-room",
		Title:           "Single Room",
		Capacity:        "1 Person",
		Price:           450,
		PriceUnit:       "/month",
		Description:     "Perfect for solo travelers seeking privacy and comfort. A cozy space designed for focused work and rest.",
		FullDescription: "Our Single Room offers the perfect sanctuary for solo travelers who value privacy and tranquility.",
		Amenities:       []string{"WiFi", "Attached Washroom", "AC", "Study Table", "Cupboard", "Daily Housekeeping"},
		Size:            "12 sqm",
		BedType:         "Single Bed",
	},
	{
		Slug:            "double-room",
		Title:           "Double Room",
		Capacity:        "2 Persons",
		Price:           350,
		PriceUnit:       "/person/month",
		Description:     "Ideal for couples or friends. Spacious accommodation with modern amenities and a private balcony.",
		FullDescription: "Our Double Room is perfect for couples or friends traveling together.",
		Amenities:       []string{"WiFi", "Attached Washroom", "AC", "Study Table", "Cupboard", "Balcony", "Mini Fridge"},
		Featured:        true,
		Size:            "18 sqm",
		BedType:         "Double Bed",
	},
	{
		Slug:            "shared-dormitory",
		Title:           "Shared Dormitory",
		Capacity:        "4-6 Persons",
		Price:           180,
		PriceUnit:       "/person/month",
		Description:     "Budget-friendly option for social travelers. Comfortable shared space with privacy curtains and personal lockers.",
		FullDescription: "Our Shared Dormitory is the perfect choice for budget-conscious travelers.",
		Amenities:       []string{"WiFi", "Shared Washroom", "Fan", "Personal Locker", "Charging Point", "Privacy Curtains"},
		Size:            "25 sqm",
		BedType:         "Bunk Beds",
	},
}

func RoomTypes() []RoomTypeInfo {
	return roomTypeCatalogue
}

func RoomTypeBySlug(slug string) (RoomTypeInfo, error) {
	for _, t := range roomTypeCatalogue {
		if t.Slug == slug {
			return t, nil
		}
	}
	return RoomTypeInfo{}, utils.NotFound("Room type not found")
}
