package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *MockReservationService) Cancel(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *MockReservationService, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Cancel", mock.Anything, int64(3)).
			Return(&models.ReservationResponse{ID: 3, Status: "CANCELLED", TotalPaid: "0.00"}, nil)

		rec := serve(svc, "3")
		require.Equal(t, http.StatusOK, rec.Code)

		var body models.ReservationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "CANCELLED", body.Status)
		assert.Equal(t, "0.00", body.TotalPaid)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Cancel", mock.Anything, int64(3)).Return(nil, reservations.ErrReservationNotFound)
		assert.Equal(t, http.StatusNotFound, serve(svc, "3").Code)
	})

	t.Run("internal", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Cancel", mock.Anything, int64(3)).Return(nil, reservations.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, serve(svc, "3").Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockReservationService)
		assert.Equal(t, http.StatusBadRequest, serve(svc, "abc").Code)
		svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})
}
