package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*models.ReservationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *MockUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createReservation.Request) bool {
		return r.SpaceID == 10 &&
			r.EventDate.Equal(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)) &&
			r.TotalDue.StringFixed(2) == "1200.50"
	})).Return(&models.ReservationResponse{ID: 3, SpaceID: 10, Status: "AWAITING_DEPOSIT"}, nil)

	rec := serve(uc, `{"spaceId":10,"customerId":7,"eventDate":"15/10/2025","totalDue":"1200.50"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(3), body.ID)
	uc.AssertExpectations(t)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"spaceId":`},
		{"unknown field", `{"spaceId":1,"price":10}`},
		{"bad date", `{"spaceId":1,"customerId":1,"eventDate":"2025/10/15","totalDue":10}`},
		{"missing total", `{"spaceId":1,"customerId":1,"eventDate":"2025-10-15"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			rec := serve(uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"too soon", &domain.EventDateError{Reason: domain.EventDateTooSoon}, http.StatusBadRequest, "too_soon"},
		{"space not found", createReservation.ErrSpaceNotFound, http.StatusNotFound, ""},
		{"space taken", createReservation.ErrSpaceUnavailable, http.StatusConflict, ""},
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest, ""},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, `{"spaceId":10,"customerId":7,"eventDate":"2025-10-15","totalDue":100}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}
