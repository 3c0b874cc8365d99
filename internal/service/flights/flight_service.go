package flights

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/repository"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	Origin         string
	Destination    string
	Date           time.Time
	PriceCents     int64
	AvailableSeats int
}

// UpdateFlightInput carries the fields an admin is allowed to change.
// Nil fields are left untouched.
type UpdateFlightInput struct {
	Origin         *string
	Destination    *string
	Date           *time.Time
	PriceCents     *int64
	AvailableSeats *int
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.Origin == "" || input.Destination == "" {
		return nil, errors.New("origin and destination are required")
	}
	if input.AvailableSeats < 0 {
		return nil, errors.New("available seats must not be negative")
	}
	if input.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	flight := &domain.Flight{
		Origin:         input.Origin,
		Destination:    input.Destination,
		Date:           input.Date,
		PriceCents:     input.PriceCents,
		AvailableSeats: input.AvailableSeats,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	return s.repo.Search(ctx, origin, destination, date)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Origin != nil {
		flight.Origin = *input.Origin
	}
	if input.Destination != nil {
		flight.Destination = *input.Destination
	}
	if input.Date != nil {
		flight.Date = *input.Date
	}
	if input.PriceCents != nil {
		flight.PriceCents = *input.PriceCents
	}
	if input.AvailableSeats != nil {
		flight.AvailableSeats = *input.AvailableSeats
	}
	if flight.AvailableSeats < 0 {
		return nil, errors.New("available seats must not be negative")
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
