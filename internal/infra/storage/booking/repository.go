package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// pqUniqueViolation код ошибки postgres при нарушении UNIQUE (booking_date, start_time)
	pqUniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"booking_date",
	"start_time",
	"guests",
	"name",
	"contact",
	"created_at",
}

// Repository репозиторий бронирований в postgres
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и назначает ему новый идентификатор.
// Если в контексте есть транзакция, использует её.
// Уникальность (booking_date, start_time) гарантируется индексом - при гонке вернется ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"booking_date",
			"start_time",
			"guests",
			"name",
			"contact",
		).
		Values(
			booking.ID,
			booking.Date,
			booking.Time,
			booking.Guests,
			booking.Name,
			booking.Contact,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapInsertError(err)
	}
	defer rows.Close()

	// Ошибка INSERT в lib/pq может прийти как при Query, так и при чтении первой строки
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, mapInsertError(err)
		}
		return nil, fmt.Errorf("%w: Create - insert returned no rows", ErrExecQuery)
	}
	if err := rows.Scan(&booking.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - scan created_at: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if !isBookingID(id) {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns()...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает все бронирования в порядке добавления
func (r *Repository) List(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns()...).
		From(tableBookings).
		OrderBy("seq ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByDate возвращает бронирования на указанную дату.
// Внутри транзакции строки блокируются (FOR UPDATE) на время проверки доступности слота.
func (r *Repository) ListByDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns()...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование (физическое удаление, истории не остается)
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !isBookingID(id) {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&booking.Time,
		&booking.Guests,
		&booking.Name,
		&booking.Contact,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// selectColumns booking_date хранится как DATE, отдаем его строкой YYYY-MM-DD
func selectColumns() []string {
	cols := make([]string, len(bookingColumns))
	copy(cols, bookingColumns)
	cols[1] = "to_char(booking_date, 'YYYY-MM-DD') AS booking_date"
	return cols
}

// mapInsertError нарушение UNIQUE (booking_date, start_time) означает занятый слот.
// Остальные ошибки сохраняют *pq.Error в цепочке, чтобы менеджер транзакций мог распознать 40001.
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrSlotTaken
	}
	return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
}

// isBookingID id хранится в колонке UUID, иначе postgres вернет ошибку синтаксиса вместо пустого результата
func isBookingID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
