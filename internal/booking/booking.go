// Package booking manages grinding-service appointments.
package booking

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/kv"
)

const storeKey = "grindingBookings"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var (
	ErrNotFound      = errors.New("booking not found")
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrInvalid       = errors.New("invalid booking")
	ErrSlotTaken     = errors.New("time slot already booked")
)

// Slots is the daily grinding schedule.
var Slots = []string{
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"02:00 PM - 03:00 PM",
	"03:00 PM - 04:00 PM",
	"04:00 PM - 05:00 PM",
}

var statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

func ValidStatus(s string) bool { return slices.Contains(statuses, s) }

type Booking struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone,omitempty"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"timeSlot"`
	Items        []string  `json:"items"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateRequest payload of a new booking.
// swagger:model CreateBookingRequest
type CreateRequest struct {
	UserID       string   `json:"userId"`
	CustomerName string   `json:"customerName" example:"Priya"`
	Phone        string   `json:"phone"`
	Date         string   `json:"date" example:"2025-08-15"`
	TimeSlot     string   `json:"timeSlot" example:"10:00 AM - 11:00 AM"`
	Items        []string `json:"items" example:"Coconut,Groundnut"`
	Notes        string   `json:"notes"`
}

func (r CreateRequest) validate() error {
	if strings.TrimSpace(r.CustomerName) == "" || len(r.Items) == 0 {
		return ErrInvalid
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return ErrInvalid
	}
	if !slices.Contains(Slots, r.TimeSlot) {
		return ErrInvalid
	}
	return nil
}

// Service keeps the whole booking list under a single key, so writes are
// serialized in-process.
type Service struct {
	mu    sync.Mutex
	store kv.Store
	now   func() time.Time
}

func NewService(store kv.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) load(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if _, err := kv.GetJSON(ctx, s.store, storeKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Booking{}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(free(all, req.Date), req.TimeSlot) {
		return nil, ErrSlotTaken
	}

	b := Booking{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        req.Phone,
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		Items:        req.Items,
		Status:       StatusPending,
		Notes:        req.Notes,
		CreatedAt:    s.now().UTC(),
	}
	all = append(all, b)
	if err := kv.SetJSON(ctx, s.store, storeKey, all); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings in creation order; a non-empty userID narrows to one user.
func (s *Service) List(ctx context.Context, userID string) ([]Booking, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return all, nil
	}
	out := []Booking{}
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		all[i].Status = status
		if err := kv.SetJSON(ctx, s.store, storeKey, all); err != nil {
			return nil, err
		}
		b := all[i]
		return &b, nil
	}
	return nil, ErrNotFound
}

// AvailableSlots lists the slots of date not held by a live booking.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, ErrInvalid
	}
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return free(all, date), nil
}

func free(all []Booking, date string) []string {
	taken := map[string]bool{}
	for _, b := range all {
		if b.Date == date && b.Status != StatusCancelled {
			taken[b.TimeSlot] = true
		}
	}
	out := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		if !taken[slot] {
			out = append(out, slot)
		}
	}
	return out
}
