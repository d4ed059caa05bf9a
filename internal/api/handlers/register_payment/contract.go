package register_payment

import (
	"context"

	registerPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/register_payment"
)

type RegisterPaymentUseCase interface {
	Execute(ctx context.Context, req *registerPayment.Request) (*registerPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
