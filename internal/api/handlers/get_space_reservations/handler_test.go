package get_space_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) GetSpaceReservations(ctx context.Context, req *models.GetSpaceReservationsRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *MockReservationService, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spaces/4/reservations?"+rawQuery, nil)
	req = mux.SetURLVars(req, map[string]string{"spaceId": "4"})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		req, err := ToServiceRequest(4, url.Values{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), req.SpaceID)
		assert.Nil(t, req.StartDate)
		assert.Nil(t, req.Status)
		assert.False(t, req.IncludeInactive)
	})

	t.Run("single date", func(t *testing.T) {
		req, err := ToServiceRequest(4, url.Values{"date": {"01/06/2025"}})
		require.NoError(t, err)
		assert.Equal(t, june, *req.StartDate)
		assert.Equal(t, june, *req.EndDate)
	})

	t.Run("range and status", func(t *testing.T) {
		req, err := ToServiceRequest(4, url.Values{
			"startDate":       {"2025-06-01"},
			"endDate":         {"2025-07-01"},
			"status":          {"confirmed"},
			"includeInactive": {"true"},
		})
		require.NoError(t, err)
		assert.Equal(t, june, *req.StartDate)
		assert.Equal(t, july, *req.EndDate)
		assert.Equal(t, "CONFIRMED", *req.Status)
		assert.True(t, req.IncludeInactive)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, q := range []url.Values{
			{"date": {"2025-06-01"}, "startDate": {"2025-06-01"}},
			{"startDate": {"yesterday"}},
			{"includeInactive": {"maybe"}},
		} {
			_, err := ToServiceRequest(4, q)
			assert.Error(t, err, q.Encode())
		}
	})
}

func TestHandle_OK(t *testing.T) {
	svc := new(MockReservationService)
	svc.On("GetSpaceReservations", mock.Anything, mock.MatchedBy(func(r *models.GetSpaceReservationsRequest) bool {
		return r.SpaceID == 4 && r.Status != nil && *r.Status == "SETTLED"
	})).Return(&models.ReservationListResponse{
		Reservations: []models.ReservationResponse{{ID: 1, SpaceID: 4, Status: "SETTLED"}},
		Total:        1,
	}, nil)

	rec := serve(svc, "status=SETTLED")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ReservationListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("bad query", func(t *testing.T) {
		svc := new(MockReservationService)
		rec := serve(svc, "includeInactive=x")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetSpaceReservations", mock.Anything, mock.Anything)
	})

	t.Run("invalid filter from service", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("GetSpaceReservations", mock.Anything, mock.Anything).Return(nil, reservations.ErrInvalidInput)
		rec := serve(svc, "status=UNKNOWN")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("GetSpaceReservations", mock.Anything, mock.Anything).Return(nil, reservations.ErrInternal)
		rec := serve(svc, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
