package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/spaceservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// AvailabilityChecker проверка занятости пространства на дату
type AvailabilityChecker interface {
	Validate(ctx context.Context, spaceID int64, date time.Time, excludeID *int64) error
}

// SpaceServiceClient интерфейс клиента каталога пространств
type SpaceServiceClient interface {
	GetSpaceWithGracefulDegradation(ctx context.Context, spaceID int64) (*spaceservice.Space, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
