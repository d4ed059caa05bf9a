package create_reservation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, r)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	// Как и БД, возвращаем переданную запись с присвоенным ID
	r.ID = int64(args.Int(0))
	return r, nil
}

type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) Validate(ctx context.Context, spaceID int64, date time.Time, excludeID *int64) error {
	args := m.Called(ctx, spaceID, date, excludeID)
	return args.Error(0)
}

type MockSpaceClient struct {
	mock.Mock
}

func (m *MockSpaceClient) GetSpaceWithGracefulDegradation(ctx context.Context, spaceID int64) (*spaceservice.Space, error) {
	args := m.Called(ctx, spaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spaceservice.Space), args.Error(1)
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// commitConflictTxManager выполняет fn и отклоняет коммит как PostgreSQL при конфликте сериализации
type commitConflictTxManager struct{}

func (commitConflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: "40001"})
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow   = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	eventDay  = time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	openSpace = &spaceservice.Space{ID: 10, Name: "Salão", Capacity: 100, IsActive: true}
)

type fixture struct {
	repo   *MockReservationRepository
	avail  *MockAvailability
	spaces *MockSpaceClient
	uc     *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:   new(MockReservationRepository),
		avail:  new(MockAvailability),
		spaces: new(MockSpaceClient),
	}
	f.uc = NewUseCase(f.repo, f.avail, f.spaces, inlineTxManager{}, nopLogger{})
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		SpaceID:    10,
		CustomerID: 20,
		EventDate:  eventDay.Add(18 * time.Hour),
		TotalDue:   decimal.RequireFromString("1500.005"),
		Notes:      ptr.Ptr("aniversário"),
	}
}

func TestExecute_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(openSpace, nil)
	f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(nil)
	f.repo.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.StatusAwaitingDeposit &&
			r.TotalDue.String() == "1500.01" &&
			r.EventDate.String() == "2025-04-20" &&
			len(r.Payments) == 0
	})).Return(77, nil)

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "AWAITING_DEPOSIT", resp.Status)
	assert.Equal(t, "1500.01", resp.Balance)
	assert.Equal(t, "0.00", resp.TotalPaid)

	f.spaces.AssertExpectations(t)
	f.avail.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestExecute_InputValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"no space", func(r *Request) { r.SpaceID = 0 }, ErrInvalidInput},
		{"no customer", func(r *Request) { r.CustomerID = -1 }, ErrInvalidInput},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1)) }, ErrInvalidInput},
		{"zero total", func(r *Request) { r.TotalDue = decimal.Zero }, ErrInvalidInput},
		{"negative total", func(r *Request) { r.TotalDue = decimal.NewFromInt(-5) }, domain.ErrInvalidAmount},
		{"null date", func(r *Request) { r.EventDate = time.Time{} }, domain.ErrInvalidEventDate},
		{"same day", func(r *Request) { r.EventDate = testNow }, domain.ErrInvalidEventDate},
		{"too far", func(r *Request) { r.EventDate = testNow.AddDate(0, 0, 366) }, domain.ErrInvalidEventDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_SpaceLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(nil, spaceservice.ErrSpaceNotFound)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSpaceNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).
			Return(&spaceservice.Space{ID: 10, IsActive: false}, nil)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSpaceInactive)
	})

	t.Run("degraded catalogue still books", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(nil, spaceservice.ErrServiceDegraded)
		f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(nil)
		f.repo.On("Create", ctx, mock.Anything).Return(1, nil)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.NoError(t, err)
	})
}

func TestExecute_Availability(t *testing.T) {
	ctx := context.Background()

	t.Run("taken by another reservation", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(openSpace, nil)
		f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(availability.ErrSpaceUnavailable)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSpaceUnavailable)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index race", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(openSpace, nil)
		f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(nil)
		f.repo.On("Create", ctx, mock.Anything).Return(0, reservationRepo.ErrSpaceTaken)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSpaceUnavailable)
	})

	t.Run("serialization failure at commit", func(t *testing.T) {
		f := newFixture()
		f.uc.txManager = commitConflictTxManager{}
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(openSpace, nil)
		f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(nil)
		f.repo.On("Create", ctx, mock.Anything).Return(78, nil)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSpaceUnavailable)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.spaces.On("GetSpaceWithGracefulDegradation", ctx, int64(10)).Return(openSpace, nil)
		f.avail.On("Validate", ctx, int64(10), eventDay, (*int64)(nil)).Return(availability.ErrInternal)

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}
