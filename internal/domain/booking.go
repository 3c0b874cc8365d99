package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID         int64         `json:"id"`
	Reference  string        `json:"reference"`
	UserID     int64         `json:"user_id"`
	FlightID   int64         `json:"flight_id"`
	Seats      int           `json:"seats"`
	TotalCents int64         `json:"total_cents"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BookingDetail is a booking with its referenced flight and user resolved.
// Flight and User are nil when the referenced row no longer exists; a
// booking does not own either side of the reference.
type BookingDetail struct {
	Booking
	Flight *Flight `json:"flight,omitempty"`
	User   *User   `json:"user,omitempty"`
}
