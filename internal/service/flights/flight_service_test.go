package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, date)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleFlight() domain.Flight {
	return domain.Flight{
		ID:             4,
		Origin:         "Moscow",
		Destination:    "Saint Petersburg",
		Date:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		PriceCents:     500000,
		AvailableSeats: 149,
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flights := []domain.Flight{sampleFlight()}

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flights := []domain.Flight{sampleFlight()}

	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_List_CacheError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flights := []domain.Flight{sampleFlight()}

	// A broken cache must not break reads.
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), errors.New("cache error")).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	expectedErr := errors.New("database error")
	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(([]domain.Flight)(nil), expectedErr).Once()

	result, err := service.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_Create_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	input := CreateFlightInput{
		Origin:         "Moscow",
		Destination:    "Kazan",
		Date:           time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		PriceCents:     350000,
		AvailableSeats: 120,
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, "Moscow", flight.Origin)
	assert.Equal(t, "Kazan", flight.Destination)
	assert.Equal(t, int64(350000), flight.PriceCents)
	assert.Equal(t, 120, flight.AvailableSeats)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_Invalid(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	cases := []CreateFlightInput{
		{Origin: "", Destination: "Kazan", AvailableSeats: 10},
		{Origin: "Moscow", Destination: "", AvailableSeats: 10},
		{Origin: "Moscow", Destination: "Kazan", AvailableSeats: -1},
		{Origin: "Moscow", Destination: "Kazan", AvailableSeats: 10, PriceCents: -100},
	}

	for _, input := range cases {
		flight, err := service.Create(ctx, input)
		assert.Error(t, err)
		assert.Nil(t, flight)
	}

	mockRepo.AssertNotCalled(t, "Create")
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_Update_PartialFields(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	existing := sampleFlight()

	newPrice := int64(420000)
	newSeats := 80

	mockRepo.On("GetByID", ctx, int64(4)).Return(&existing, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	updated, err := service.Update(ctx, 4, UpdateFlightInput{
		PriceCents:     &newPrice,
		AvailableSeats: &newSeats,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(420000), updated.PriceCents)
	assert.Equal(t, 80, updated.AvailableSeats)
	// Fields not present in the input keep their stored values.
	assert.Equal(t, "Moscow", updated.Origin)
	assert.Equal(t, "Saint Petersburg", updated.Destination)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Update_NegativeSeats(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	existing := sampleFlight()
	badSeats := -5

	mockRepo.On("GetByID", ctx, int64(4)).Return(&existing, nil).Once()

	updated, err := service.Update(ctx, 4, UpdateFlightInput{AvailableSeats: &badSeats})

	assert.Error(t, err)
	assert.Nil(t, updated)

	mockRepo.AssertNotCalled(t, "Update")
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_Delete_Invalidates(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(4)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.Delete(ctx, 4)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Search_Passthrough(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	flights := []domain.Flight{sampleFlight()}

	mockRepo.On("Search", ctx, "Moscow", "Saint Petersburg", date).Return(flights, nil).Once()

	result, err := service.Search(ctx, "Moscow", "Saint Petersburg", date)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "GetFlights")
}

func TestFlightService_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	flights := []domain.Flight{sampleFlight()}

	mockRepo.On("List", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertExpectations(t)
}
