package storage

import (
	"context"
	"fmt"
	"hostel-server/models"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

type fixture struct {
	ctx      context.Context
	users    *UserStore
	rooms    *RoomStore
	bookings *BookingStore
}

func newFixture(t *testing.T) *fixture {
	db := openTestDB(t)
	return &fixture{
		ctx:      context.Background(),
		users:    NewUserStore(db),
		rooms:    NewRoomStore(db),
		bookings: NewBookingStore(db),
	}
}

func (f *fixture) user(t *testing.T, name, email string, role models.Role, verified bool) *models.User {
	t.Helper()
	u := &models.User{FullName: name, Email: email, Password: "x", Role: role, IsEmailVerified: verified}
	if err := f.users.Create(f.ctx, u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

func (f *fixture) room(t *testing.T, number string, active bool) *models.Room {
	t.Helper()
	r := &models.Room{
		RoomNumber:    number,
		RoomType:      models.RoomDouble,
		TotalBeds:     2,
		AvailableBeds: 2,
		PricePerBed:   100,
		Amenities:     models.StringList(nil),
		Images:        models.StringList(nil),
		Title:         "Room " + number,
		Status:        models.RoomAvailable,
		IsActive:      active,
	}
	if err := f.rooms.Create(f.ctx, r); err != nil {
		t.Fatalf("creating room: %v", err)
	}
	return r
}

func (f *fixture) booking(t *testing.T, user *models.User, room *models.Room, in, out string, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{
		UserID:        user.ID,
		RoomID:        room.ID,
		CheckInDate:   day(in),
		CheckOutDate:  day(out),
		Status:        status,
		PaymentStatus: models.PaymentUnpaid,
		TotalAmount:   100,
	}
	if err := f.bookings.Create(f.ctx, b); err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	return b
}

func TestBlockingCandidates(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "Ali Khan", "ali@example.com", models.RoleUser, true)
	room := f.room(t, "101", true)
	other := f.room(t, "102", true)

	early := f.booking(t, u, room, "2030-01-01", "2030-01-05", models.BookingApproved)
	f.booking(t, u, room, "2030-01-10", "2030-01-12", models.BookingPending)
	f.booking(t, u, room, "2030-01-03", "2030-01-04", models.BookingCancelled)
	f.booking(t, u, other, "2030-01-01", "2030-01-05", models.BookingApproved)

	got, err := f.bookings.BlockingCandidates(f.ctx, room.ID,
		[]models.BookingStatus{models.BookingApproved, models.BookingCheckedIn}, day("2030-01-04"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != early.ID {
		t.Fatalf("expected only booking %d, got %+v", early.ID, got)
	}

	got, err = f.bookings.BlockingCandidates(f.ctx, room.ID,
		[]models.BookingStatus{models.BookingApproved}, day("2030-01-04"), early.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("excluded booking was returned: %+v", got)
	}

	// A booking ending exactly at the start is not a candidate.
	got, err = f.bookings.BlockingCandidates(f.ctx, room.ID,
		[]models.BookingStatus{models.BookingApproved}, day("2030-01-05"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("adjacent booking was returned: %+v", got)
	}
}

func TestRoomListExcludesBookedRooms(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "Sara", "sara@example.com", models.RoleUser, true)
	booked := f.room(t, "201", true)
	f.room(t, "202", true)
	cancelled := f.room(t, "203", true)
	f.booking(t, u, booked, "2030-02-01", "2030-02-05", models.BookingPending)
	f.booking(t, u, cancelled, "2030-02-01", "2030-02-05", models.BookingCancelled)

	blocking := []models.BookingStatus{models.BookingPending, models.BookingApproved, models.BookingCheckedIn}
	tests := []struct {
		name     string
		in, out  string
		expected []string
	}{
		{"overlapping range", "2030-02-04", "2030-02-06", []string{"202", "203"}},
		{"adjacent range", "2030-02-05", "2030-02-07", []string{"201", "202", "203"}},
		{"range before", "2030-01-28", "2030-02-01", []string{"201", "202", "203"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := day(tt.in), day(tt.out)
			rooms, total, err := f.rooms.List(f.ctx, RoomFilter{
				CheckIn:        &in,
				CheckOut:       &out,
				BookedStatuses: blocking,
				Page:           1,
				Limit:          10,
			})
			if err != nil {
				t.Fatal(err)
			}
			if int(total) != len(tt.expected) || len(rooms) != len(tt.expected) {
				t.Fatalf("expected %v, got %d rooms (total %d)", tt.expected, len(rooms), total)
			}
			for i, r := range rooms {
				if r.RoomNumber != tt.expected[i] {
					t.Errorf("room %d: expected %s, got %s", i, tt.expected[i], r.RoomNumber)
				}
			}
		})
	}
}

func TestRoomListFiltersAndPaging(t *testing.T) {
	f := newFixture(t)
	f.room(t, "301", true)
	f.room(t, "302", false)
	f.room(t, "303", true)

	active := true
	rooms, total, err := f.rooms.List(f.ctx, RoomFilter{IsActive: &active, Page: 2, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(rooms) != 1 || rooms[0].RoomNumber != "303" {
		t.Fatalf("unexpected page: total=%d rooms=%+v", total, rooms)
	}

	rooms, _, err = f.rooms.List(f.ctx, RoomFilter{Search: "ROOM 302", Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || rooms[0].RoomNumber != "302" {
		t.Fatalf("search returned %+v", rooms)
	}
}

func TestRoomNumberTaken(t *testing.T) {
	f := newFixture(t)
	r := f.room(t, "401", true)

	taken, err := f.rooms.RoomNumberTaken(f.ctx, "401", 0)
	if err != nil || !taken {
		t.Fatalf("expected taken, got %v (%v)", taken, err)
	}
	taken, err = f.rooms.RoomNumberTaken(f.ctx, "401", r.ID)
	if err != nil || taken {
		t.Fatalf("own number should be free, got %v (%v)", taken, err)
	}
}

func TestRoomDeleteRemovesBookings(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "Omar", "omar@example.com", models.RoleUser, true)
	r := f.room(t, "501", true)
	b := f.booking(t, u, r, "2030-03-01", "2030-03-02", models.BookingPending)

	if err := f.rooms.Delete(f.ctx, r); err != nil {
		t.Fatal(err)
	}
	if _, err := f.rooms.FindByID(f.ctx, r.ID); !IsNotFound(err) {
		t.Fatalf("room still present: %v", err)
	}
	if _, err := f.bookings.FindByID(f.ctx, b.ID); !IsNotFound(err) {
		t.Fatalf("booking still present: %v", err)
	}
}

func TestBookingListSearchAndCheckedIn(t *testing.T) {
	f := newFixture(t)
	ali := f.user(t, "Ali Khan", "ali@example.com", models.RoleUser, true)
	sara := f.user(t, "Sara Malik", "sara@example.com", models.RoleUser, true)
	r1 := f.room(t, "601", true)
	r2 := f.room(t, "602", true)
	f.booking(t, ali, r1, "2030-04-01", "2030-04-03", models.BookingCheckedIn)
	f.booking(t, sara, r2, "2030-04-01", "2030-04-03", models.BookingCheckedIn)
	f.booking(t, sara, r1, "2030-05-01", "2030-05-03", models.BookingPending)

	bookings, total, err := f.bookings.List(f.ctx, BookingFilter{Search: "sara", Page: 1, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(bookings) != 2 {
		t.Fatalf("expected 2 of Sara's bookings, got %d", total)
	}
	for _, b := range bookings {
		if b.User == nil || b.User.Email != "sara@example.com" || b.Room == nil {
			t.Fatalf("booking not preloaded: %+v", b)
		}
	}

	bookings, total, err = f.bookings.List(f.ctx, BookingFilter{UserID: ali.ID, Search: "sara", Page: 1, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(bookings) != 0 {
		t.Fatalf("user filter and search should intersect, got %d", total)
	}

	residents, total, err := f.bookings.ListCheckedIn(f.ctx, "602", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || residents[0].UserID != sara.ID {
		t.Fatalf("room search returned %+v", residents)
	}

	statuses := []struct {
		status models.BookingStatus
		want   int64
	}{
		{models.BookingPending, 1},
		{models.BookingCheckedIn, 2},
		{"", 3},
		{"archived", 3},
	}
	for _, tt := range statuses {
		_, total, err := f.bookings.List(f.ctx, BookingFilter{Status: tt.status, Page: 1, Limit: 20})
		if err != nil {
			t.Fatal(err)
		}
		if total != tt.want {
			t.Errorf("status %q: got %d bookings, want %d", tt.status, total, tt.want)
		}
	}
}

func TestSearchWildcardsAreLiteral(t *testing.T) {
	f := newFixture(t)
	f.user(t, "Ali Khan", "ali@example.com", models.RoleUser, true)
	f.user(t, "Sara Malik", "sara@example.com", models.RoleUser, true)
	f.user(t, "Omar 100%", "omar_1@example.com", models.RoleUser, true)

	tests := []struct {
		search string
		want   int64
	}{
		{"%", 1},
		{"_", 1},
		{"omar_", 1},
		{`\`, 0},
		{"example", 3},
	}
	for _, tt := range tests {
		_, total, err := f.users.List(f.ctx, UserFilter{Search: tt.search, Page: 1, Limit: 20})
		if err != nil {
			t.Fatal(err)
		}
		if total != tt.want {
			t.Errorf("search %q: got %d users, want %d", tt.search, total, tt.want)
		}
	}
}

func TestCounts(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "A", "a@example.com", models.RoleUser, true)
	f.user(t, "B", "b@example.com", models.RoleUser, false)
	f.user(t, "Admin", "admin@example.com", models.RoleAdmin, true)
	r := f.room(t, "701", true)
	f.room(t, "702", false)
	f.booking(t, u, r, "2030-06-01", "2030-06-02", models.BookingPending)
	f.booking(t, u, r, "2030-06-03", "2030-06-04", models.BookingCheckedIn)

	uc, err := f.users.Counts(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if uc != (UserCounts{Total: 2, Verified: 1, Unverified: 1, Admins: 1}) {
		t.Errorf("user counts: %+v", uc)
	}

	rc, err := f.rooms.Counts(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rc != (RoomCounts{Total: 2, Active: 1, AvailableBeds: 2}) {
		t.Errorf("room counts: %+v", rc)
	}

	bc, err := f.bookings.Counts(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if bc != (BookingCounts{Total: 2, Pending: 1, CheckedIn: 1}) {
		t.Errorf("booking counts: %+v", bc)
	}
}

func TestFacilitySeedAndToggle(t *testing.T) {
	store := NewFacilityStore(openTestDB(t))
	ctx := context.Background()

	seeded, err := store.SeedIfEmpty(ctx, models.DefaultFacilities())
	if err != nil || !seeded {
		t.Fatalf("first seed: %v %v", seeded, err)
	}
	seeded, err = store.SeedIfEmpty(ctx, models.DefaultFacilities())
	if err != nil || seeded {
		t.Fatalf("second seed should be skipped: %v %v", seeded, err)
	}

	gym, err := store.FindByID(ctx, "gym")
	if err != nil {
		t.Fatal(err)
	}
	if gym.Name != "Fitness Center" || gym.Icon != "gym" || gym.Color != "text-stat-occupied" {
		t.Fatalf("unexpected seeded row %+v", gym)
	}

	available, err := store.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 7 {
		t.Fatalf("expected 7 available facilities, got %d", len(available))
	}

	parking, err := store.FindByID(ctx, "parking")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetAvailable(ctx, parking, true); err != nil {
		t.Fatal(err)
	}
	all, err := store.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 8 {
		t.Fatalf("expected 8 available facilities, got %d", len(all))
	}
}
