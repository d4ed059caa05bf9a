package register_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/payments"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// UseCase use case регистрации платежа:
// проверка допустимости -> сохранение -> классификация -> переход статуса -> сохранение статуса
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	classifier      Classifier
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	classifier Classifier,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		classifier:      classifier,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case регистрации платежа
// Бронирование блокируется (FOR UPDATE) на всё время проверки и записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterPayment: reservation id=%d, kind=%s, method=%s, amount=%s",
		req.ReservationID, req.Kind, req.Method, req.Amount.StringFixed(2))

	// 1. Валидация входных данных
	payment, err := buildPayment(req)
	if err != nil {
		uc.logger.Warn("RegisterPayment: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Reservation
		from   domain.ReservationStatus
	)

	// 2. Проверка, запись платежа и смена статуса в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.LockByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RegisterPayment: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RegisterPayment: failed to lock reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to lock reservation: %v", ErrInternal, err)
		}
		from = reservation.Status

		// 2.1. Допустимость платежа по истории платежей
		if err := payments.Validate(payment, reservation); err != nil {
			uc.logger.Warn("RegisterPayment: payment rejected for reservation id=%d (status=%s, payments=%d): %v",
				reservation.ID, reservation.Status, len(reservation.Payments), err)
			return err
		}

		// 2.2. Сохранение платежа
		created, err := uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			uc.logger.Error("RegisterPayment: failed to save payment for reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to save payment: %v", ErrInternal, err)
		}
		reservation.AddPayment(created)

		// 2.3. Классификация и переход по таблице; ошибка откатывает запись платежа
		next, err := uc.classifier.ClassifyAndTransition(reservation, created)
		if err != nil {
			uc.logger.Warn("RegisterPayment: transition rejected for reservation id=%d: %v", reservation.ID, err)
			return err
		}

		// 2.4. Сохранение статуса
		if next != from {
			if err := uc.reservationRepo.UpdateStatus(txCtx, reservation.ID, next); err != nil {
				uc.logger.Error("RegisterPayment: failed to update status of reservation id=%d: %v", reservation.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
		}

		result = reservation
		return nil
	})
	if err != nil {
		if isRejection(err) {
			uc.metrics.ObservePayment(string(payment.Kind), resultRejected)
		}
		return nil, err
	}

	uc.metrics.ObservePayment(string(payment.Kind), resultAccepted)
	uc.logger.Info("RegisterPayment: accepted %s payment id=%d for reservation id=%d, %s -> %s, balance=%s",
		payment.Kind, payment.ID, result.ID, from, result.Status, balanceOf(result))

	// 3. После коммита: метрики и событие; ошибка публикации не отменяет платёж
	if from != result.Status {
		uc.metrics.ObserveTransition(string(from), string(result.Status))

		event := events.NewStatusChangedEvent(result, from, events.ReasonPayment, uc.timeProvider.Now())
		if err := uc.publisher.PublishStatusChanged(ctx, event); err != nil {
			uc.logger.Warn("RegisterPayment: failed to publish status change for reservation id=%d: %v", result.ID, err)
		}
	}

	reservation := models.FromDomainReservation(result)
	return &Response{
		Payment:        reservation.Payments[len(reservation.Payments)-1],
		PreviousStatus: string(from),
		Reservation:    reservation,
	}, nil
}

// isRejection отделяет бизнес-отказы от инфраструктурных ошибок
func isRejection(err error) bool {
	for _, target := range []error{
		payments.ErrNotFirstPayment,
		payments.ErrAmountMismatch,
		payments.ErrNoPriorDeposit,
		payments.ErrInvalidPriorSequence,
		payments.ErrAlreadySettled,
		payments.ErrInvalidPaymentKind,
		payments.ErrNoMatchingStrategy,
		domain.ErrIllegalTransition,
		domain.ErrTerminalState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func balanceOf(r *domain.Reservation) string {
	balance, err := r.Balance()
	if err != nil {
		return "n/a"
	}
	return balance.String()
}
