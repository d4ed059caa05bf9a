package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const (
	tableReservations = "reservations"
	tablePayments     = "payments"

	// pgUniqueViolation код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
	// pgSerializationFailure код ошибки PostgreSQL serialization_failure
	pgSerializationFailure = "40001"
)

var reservationColumns = []string{
	"id",
	"space_id",
	"customer_id",
	"event_date",
	"total_due",
	"notes",
	"status",
	"created_at",
	"updated_at",
}

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"kind",
	"method",
	"transaction_ref",
	"created_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий бронирований
// Загружает агрегат вместе с историей платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса (space_id, event_date) для активных статусов возвращает ErrSpaceTaken.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"space_id",
			"customer_id",
			"event_date",
			"total_due",
			"notes",
			"status",
		).
		Values(
			reservation.SpaceID,
			reservation.CustomerID,
			reservation.EventDate.Time(),
			reservation.TotalDue.Decimal(),
			reservation.Notes,
			reservation.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSpaceConflict(err) {
			return nil, ErrSpaceTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time
	if reservation.Payments == nil {
		reservation.Payments = []*domain.Payment{}
	}

	return reservation, nil
}

// GetByID получает бронирование по ID вместе с платежами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, false)
}

// LockByID получает бронирование с блокировкой строки (FOR UPDATE) вместе с платежами
// Должен вызываться внутри транзакции
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	payments, err := r.loadPayments(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	reservation.Payments = payments

	return reservation, nil
}

// ListBySpaceAndDate получает все бронирования пространства на дату, включая неактивные
// Используется проверкой доступности; платежи не загружаются
func (r *Repository) ListBySpaceAndDate(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{
			"space_id":   spaceID,
			"event_date": domain.RestoreEventDate(date).Time(),
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpaceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpaceAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetBySpaceWithFilter получает бронирования пространства с фильтрацией
// По умолчанию возвращаются только активные бронирования
//
// Примеры:
//
// 1. Все активные бронирования пространства:
//    filter := domain.SpaceReservationsFilter{SpaceID: 12}
//
// 2. Бронирования за месяц, включая отменённые:
//    filter := domain.SpaceReservationsFilter{SpaceID: 12, StartDate: &start, EndDate: &end, IncludeInactive: true}
func (r *Repository) GetBySpaceWithFilter(ctx context.Context, filter domain.SpaceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"space_id": filter.SpaceID}).
		OrderBy("event_date ASC", "id ASC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": domain.RestoreEventDate(*filter.StartDate).Time()})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": domain.RestoreEventDate(*filter.EndDate).Time()})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.InactiveStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update сохраняет изменяемые поля бронирования (пространство, дата, сумма, заметки, статус)
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("space_id", reservation.SpaceID).
		Set("event_date", reservation.EventDate.Time()).
		Set("total_due", reservation.TotalDue.Decimal()).
		Set("notes", reservation.Notes).
		Set("status", reservation.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		if isSpaceConflict(err) {
			return ErrSpaceTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// loadPayments загружает платежи бронирования в порядке создания
func (r *Repository) loadPayments(ctx context.Context, executor DBExecutor, reservationID int64) ([]*domain.Payment, error) {
	query, args, err := psqlbuilder.Select(paymentColumns...).
		From(tablePayments).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadPayments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var (
			p      domain.Payment
			amount decimal.Decimal
		)

		if err := rows.Scan(
			&p.ID,
			&p.ReservationID,
			&amount,
			&p.Kind,
			&p.Method,
			&p.TransactionRef,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: loadPayments - scan row: %v", ErrScanRow, err)
		}

		p.Amount, err = domain.NewMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: loadPayments - payment id=%d: %v", ErrScanRow, p.ID, err)
		}

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// scanReservation сканирует одну строку бронирования (без платежей)
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		eventDate            time.Time
		totalDue             decimal.Decimal
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.CustomerID,
		&eventDate,
		&totalDue,
		&reservation.Notes,
		&reservation.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(totalDue)
	if err != nil {
		return nil, err
	}

	reservation.EventDate = domain.RestoreEventDate(eventDate)
	reservation.TotalDue = money
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time
	reservation.Payments = []*domain.Payment{}

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// isSpaceConflict: конкурентная запись на ту же дату проигрывает либо уникальному индексу,
// либо проверке сериализуемости
func isSpaceConflict(err error) bool {
	return hasCode(err, pgUniqueViolation) || hasCode(err, pgSerializationFailure)
}

// IsSerializationFailure сообщает, что транзакция отклонена проверкой сериализуемости
// (в том числе при коммите)
func IsSerializationFailure(err error) bool {
	return hasCode(err, pgSerializationFailure)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
