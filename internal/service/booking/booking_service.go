package booking

import (
	"context"
	"errors"
	"log"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.BookingDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID   int64
	FlightID int64
	Seats    int
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		users:        users,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books seats on a flight for the calling user. The price is fixed
// at booking time from the flight's current price. The availability check
// here is advisory; the repository repeats it inside the insert transaction,
// so a stale read can only lead to ErrInsufficientSeats, never to oversell.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Seats <= 0 {
		return nil, errors.New("number of seats must be positive")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats < input.Seats {
		return nil, repository.ErrInsufficientSeats
	}

	booking := &domain.Booking{
		Reference:  uuid.NewString(),
		UserID:     input.UserID,
		FlightID:   input.FlightID,
		Seats:      input.Seats,
		TotalCents: int64(input.Seats) * flight.PriceCents,
		Status:     domain.BookingStatusConfirmed,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateStatus patches the booking status and nothing else. Seats and total
// price are fixed at creation time.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	if status == "" {
		return nil, errors.New("booking status is required")
	}
	return s.bookings.UpdateStatus(ctx, id, domain.BookingStatus(status))
}

// Delete removes the booking and returns its seats to the flight. When the
// flight no longer exists the seats are silently not restored.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_cancelled", booking)
	return nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	email := ""
	if user, err := s.users.GetByID(ctx, booking.UserID); err == nil {
		email = user.Email
	}

	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  booking.Reference,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		FlightID:   booking.FlightID,
		Seats:      booking.Seats,
		TotalCents: booking.TotalCents,
		Status:     string(booking.Status),
		Email:      email,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.Reference, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, booking.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
