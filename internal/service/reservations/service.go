package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения, отмены и смены статуса бронирований
type Service struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID вместе с платежами, суммой оплат и остатком
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	// Бронирование и его платежи читаются из одного снимка
	var reservation *domain.Reservation
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d, status=%s", id, reservation.Status)
	return models.FromDomainReservation(reservation), nil
}

// GetSpaceReservations получает бронирования пространства с фильтрацией
// По умолчанию возвращаются только активные бронирования
func (s *Service) GetSpaceReservations(ctx context.Context, req *models.GetSpaceReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetSpaceReservations: fetching reservations for space=%d", req.SpaceID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetSpaceReservations: endDate before startDate for space=%d", req.SpaceID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpaceReservations: invalid filter for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.GetBySpaceWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("GetSpaceReservations: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: GetSpaceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpaceReservations: successfully fetched %d reservations for space=%d", len(reservations), req.SpaceID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование из любого статуса, включая терминальные.
// История платежей удаляется, статус принудительно становится CANCELLED.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	var (
		result *domain.Reservation
		from   domain.ReservationStatus
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.lock(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		from = reservation.Status
		reservation.Cancel()

		deleted, err := s.paymentRepo.DeleteByReservationID(txCtx, id)
		if err != nil {
			s.logger.Error("Cancel: failed to delete payments of reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - failed to delete payments: %v", ErrInternal, err)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, reservation.Status); err != nil {
			s.logger.Error("Cancel: failed to update status of reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - failed to update status: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: reservation id=%d %s -> %s, payments removed=%d", id, from, reservation.Status, deleted)
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, result, from, events.ReasonCancellation)
	return models.FromDomainReservation(result), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов.
// Разрешённый таблицей переход в CANCELLED дополнительно удаляет платежи.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d, target=%s", id, req.Status)

	target, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result *domain.Reservation
		from   domain.ReservationStatus
	)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.lock(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		from = reservation.Status
		if err := reservation.TransitionTo(target); err != nil {
			s.logger.Warn("UpdateStatus: transition rejected for reservation id=%d: %v", id, err)
			return err
		}

		if from == reservation.Status {
			s.logger.Info("UpdateStatus: reservation id=%d already in status=%s", id, from)
			result = reservation
			return nil
		}

		if reservation.Status == domain.StatusCancelled {
			reservation.Cancel()
			deleted, err := s.paymentRepo.DeleteByReservationID(txCtx, id)
			if err != nil {
				s.logger.Error("UpdateStatus: failed to delete payments of reservation id=%d: %v", id, err)
				return fmt.Errorf("%w: UpdateStatus - failed to delete payments: %v", ErrInternal, err)
			}
			s.logger.Info("UpdateStatus: reservation id=%d cancelled, payments removed=%d", id, deleted)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, reservation.Status); err != nil {
			s.logger.Error("UpdateStatus: failed to update status of reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - failed to update status: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	reason := events.ReasonManual
	if result.Status == domain.StatusCancelled {
		reason = events.ReasonCancellation
	}
	s.afterTransition(ctx, result, from, reason)
	return models.FromDomainReservation(result), nil
}

func (s *Service) lock(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.LockByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: failed to lock reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to lock reservation: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// afterTransition вызывается после коммита: ошибка публикации не откатывает смену статуса
func (s *Service) afterTransition(ctx context.Context, r *domain.Reservation, from domain.ReservationStatus, reason string) {
	if from == r.Status {
		return
	}

	s.metrics.ObserveTransition(string(from), string(r.Status))

	event := events.NewStatusChangedEvent(r, from, reason, s.timeProvider.Now())
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish status change for reservation id=%d: %v", reason, r.ID, err)
	}
}
