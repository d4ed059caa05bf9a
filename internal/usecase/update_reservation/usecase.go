package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	spaceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case для изменения даты, пространства, стоимости и заметок бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityChecker
	spaceClient     SpaceServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availability AvailabilityChecker,
	spaceClient SpaceServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availability,
		spaceClient:     spaceClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения бронирования
// При смене пространства или даты доступность перепроверяется без учёта самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("UpdateReservation: reservation id=%d", req.ID)

	// 1. Валидация входных данных
	c, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("UpdateReservation: validation failed for reservation id=%d: %v", req.ID, err)
		return nil, err
	}

	// 2. Новое пространство в каталоге
	if c.spaceID != nil {
		if err := uc.checkSpace(ctx, *c.spaceID); err != nil {
			return nil, err
		}
	}

	var result *domain.Reservation

	// 3. Изменение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.LockByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to lock reservation id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to lock reservation: %v", ErrInternal, err)
		}

		if reservation.Status.IsTerminal() {
			uc.logger.Warn("UpdateReservation: reservation id=%d is %s", req.ID, reservation.Status)
			return fmt.Errorf("%w: status=%s", ErrReservationClosed, reservation.Status)
		}

		moved, err := c.apply(reservation)
		if err != nil {
			uc.logger.Warn("UpdateReservation: reservation id=%d: %v", req.ID, err)
			return err
		}

		if moved {
			err := uc.availability.Validate(txCtx, reservation.SpaceID, reservation.EventDate.Time(), &reservation.ID)
			if err != nil {
				if errors.Is(err, availability.ErrSpaceUnavailable) {
					uc.logger.Warn("UpdateReservation: space=%d unavailable on %s", reservation.SpaceID, reservation.EventDate)
					return fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
				}
				uc.logger.Error("UpdateReservation: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
		}

		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSpaceTaken):
				uc.logger.Warn("UpdateReservation: space=%d taken concurrently on %s", reservation.SpaceID, reservation.EventDate)
				return fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})
	if err != nil {
		// Проигравшая конкурентная транзакция отклоняется при коммите
		if errors.Is(err, txmanager.ErrCommitTx) && reservationRepo.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateReservation: concurrent reservation of the same space and date: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d (space=%d, date=%s, total=%s)",
		result.ID, result.SpaceID, result.EventDate, result.TotalDue)
	return models.FromDomainReservation(result), nil
}

// checkSpace проверяет новое пространство в каталоге.
// При недоступности каталога изменение продолжается: занятость проверяется по собственной БД.
func (uc *UseCase) checkSpace(ctx context.Context, spaceID int64) error {
	space, err := uc.spaceClient.GetSpaceWithGracefulDegradation(ctx, spaceID)
	if err != nil {
		switch {
		case errors.Is(err, spaceClient.ErrSpaceNotFound):
			uc.logger.Warn("UpdateReservation: space id=%d not found", spaceID)
			return ErrSpaceNotFound
		case errors.Is(err, spaceClient.ErrServiceDegraded):
			uc.logger.Warn("UpdateReservation: space catalogue degraded, skipping lookup for space id=%d", spaceID)
			return nil
		default:
			uc.logger.Error("UpdateReservation: failed to get space id=%d: %v", spaceID, err)
			return fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
		}
	}

	if !space.IsActive {
		uc.logger.Warn("UpdateReservation: space id=%d is inactive", spaceID)
		return ErrSpaceInactive
	}

	return nil
}
