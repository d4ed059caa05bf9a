package register_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/payments"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	registerPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/register_payment"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *registerPayment.Request) (*registerPayment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registerPayment.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *MockUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/8/payments", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": "8"})
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

const depositBody = `{"amount":100.00,"kind":"DEPOSIT","method":"PIX"}`

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *registerPayment.Request) bool {
		return r.ReservationID == 8 && r.Kind == "DEPOSIT" && r.Amount.StringFixed(2) == "100.00"
	})).Return(&registerPayment.Response{
		Payment:        models.PaymentResponse{ID: 1, Amount: "100.00", Kind: "DEPOSIT"},
		PreviousStatus: "AWAITING_DEPOSIT",
		Reservation:    &models.ReservationResponse{ID: 8, Status: "CONFIRMED"},
	}, nil)

	rec := serve(uc, depositBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body registerPayment.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "CONFIRMED", body.Reservation.Status)
	uc.AssertExpectations(t)
}

func TestHandle_MissingAmount(t *testing.T) {
	uc := new(MockUseCase)
	rec := serve(uc, `{"kind":"FULL","method":"PIX"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"amount mismatch", fmt.Errorf("%w: expected=100.00", payments.ErrAmountMismatch), http.StatusUnprocessableEntity, "amount_mismatch"},
		{"not first", payments.ErrNotFirstPayment, http.StatusUnprocessableEntity, "not_first_payment"},
		{"no deposit", payments.ErrNoPriorDeposit, http.StatusUnprocessableEntity, "no_prior_deposit"},
		{"prior sequence", payments.ErrInvalidPriorSequence, http.StatusUnprocessableEntity, "invalid_prior_sequence"},
		{"settled", payments.ErrAlreadySettled, http.StatusUnprocessableEntity, "already_settled"},
		{"kind", payments.ErrInvalidPaymentKind, http.StatusUnprocessableEntity, "invalid_payment_kind"},
		{"method", fmt.Errorf("%w: %w", registerPayment.ErrInvalidInput, domain.ErrInvalidPaymentMethod), http.StatusBadRequest, ""},
		{"not found", registerPayment.ErrReservationNotFound, http.StatusNotFound, ""},
		{"terminal", domain.ErrTerminalState, http.StatusConflict, ""},
		{"internal", registerPayment.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, depositBody)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}
