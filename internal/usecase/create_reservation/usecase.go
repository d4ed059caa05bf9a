package create_reservation

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

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: space=%d, customer=%d, date=%s, total=%s",
		req.SpaceID, req.CustomerID, req.EventDate.Format(domain.DateFormat), req.TotalDue.StringFixed(2))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата мероприятия относительно текущего времени
	eventDate, err := domain.NewEventDate(req.EventDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateReservation: event date rejected: %v", err)
		return nil, err
	}

	// 3. Стоимость
	totalDue, err := parseTotalDue(req.TotalDue)
	if err != nil {
		uc.logger.Warn("CreateReservation: total rejected: %v", err)
		return nil, err
	}

	// 4. Пространство в каталоге
	if err := uc.checkSpace(ctx, req.SpaceID); err != nil {
		return nil, err
	}

	var result *domain.Reservation

	// 5. Проверка доступности и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.availability.Validate(txCtx, req.SpaceID, eventDate.Time(), nil); err != nil {
			if errors.Is(err, availability.ErrSpaceUnavailable) {
				uc.logger.Warn("CreateReservation: space=%d unavailable on %s", req.SpaceID, eventDate)
				return fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
			}
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		reservation := domain.NewReservation(req.SpaceID, req.CustomerID, eventDate, totalDue, req.Notes)

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSpaceTaken) {
				uc.logger.Warn("CreateReservation: space=%d taken concurrently on %s", req.SpaceID, eventDate)
				return fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Проигравшая конкурентная транзакция отклоняется при коммите
		if errors.Is(err, txmanager.ErrCommitTx) && reservationRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: concurrent reservation of the same space and date: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSpaceUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, status=%s", result.ID, result.Status)
	return models.FromDomainReservation(result), nil
}

// checkSpace проверяет пространство в каталоге.
// При недоступности каталога бронирование продолжается: занятость проверяется по собственной БД.
func (uc *UseCase) checkSpace(ctx context.Context, spaceID int64) error {
	space, err := uc.spaceClient.GetSpaceWithGracefulDegradation(ctx, spaceID)
	if err != nil {
		switch {
		case errors.Is(err, spaceClient.ErrSpaceNotFound):
			uc.logger.Warn("CreateReservation: space id=%d not found", spaceID)
			return ErrSpaceNotFound
		case errors.Is(err, spaceClient.ErrServiceDegraded):
			uc.logger.Warn("CreateReservation: space catalogue degraded, skipping lookup for space id=%d", spaceID)
			return nil
		default:
			uc.logger.Error("CreateReservation: failed to get space id=%d: %v", spaceID, err)
			return fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
		}
	}

	if !space.IsActive {
		uc.logger.Warn("CreateReservation: space id=%d is inactive", spaceID)
		return ErrSpaceInactive
	}

	return nil
}
