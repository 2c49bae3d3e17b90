package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/locktxmanager"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) IncBookingsCreated() {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *countingMetrics) IncSlotConflicts() {
	m.mu.Lock()
	m.conflicts++
	m.mu.Unlock()
}

// fakeRepository репозиторий с подменяемыми функциями
type fakeRepository struct {
	createFunc     func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	listByDateFunc func(ctx context.Context, date string) ([]*domain.Booking, error)
}

func (f *fakeRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return f.createFunc(ctx, booking)
}

func (f *fakeRepository) ListByDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	return f.listByDateFunc(ctx, date)
}

func validRequest() *Request {
	return &Request{
		Date:    "2024-01-01",
		Time:    "10:00",
		Guests:  "2",
		Name:    "A",
		Contact: "x",
	}
}

func newUseCase(repo BookingRepository, m BookingMetrics) *UseCase {
	return NewUseCase(repo, domain.DefaultSlotCatalog(), locktxmanager.NewTransactionManager(), m, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	repo := bookingRepo.NewMemoryRepository()
	metrics := &countingMetrics{}
	uc := newUseCase(repo, metrics)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2024-01-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time.String())
	assert.Equal(t, 2, resp.Guests)
	assert.Equal(t, "A", resp.Name)
	assert.Equal(t, "x", resp.Contact)
	assert.Equal(t, 1, metrics.created)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExecute_ConflictLeavesStoreUnchanged(t *testing.T) {
	repo := bookingRepo.NewMemoryRepository()
	metrics := &countingMetrics{}
	uc := newUseCase(repo, metrics)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.Name = "B"
	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, metrics.conflicts)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Name)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing date", mutate: func(r *Request) { r.Date = "" }, wantErr: ErrInvalidInput},
		{name: "missing time", mutate: func(r *Request) { r.Time = "" }, wantErr: ErrInvalidInput},
		{name: "missing guests", mutate: func(r *Request) { r.Guests = "" }, wantErr: ErrInvalidInput},
		{name: "blank name", mutate: func(r *Request) { r.Name = "   " }, wantErr: ErrInvalidInput},
		{name: "missing contact", mutate: func(r *Request) { r.Contact = "" }, wantErr: ErrInvalidInput},
		{name: "zero guests", mutate: func(r *Request) { r.Guests = "0" }, wantErr: ErrInvalidGuests},
		{name: "negative guests", mutate: func(r *Request) { r.Guests = "-3" }, wantErr: ErrInvalidGuests},
		{name: "non numeric guests", mutate: func(r *Request) { r.Guests = "two" }, wantErr: ErrInvalidGuests},
		{name: "fractional guests", mutate: func(r *Request) { r.Guests = "2.5" }, wantErr: ErrInvalidGuests},
		{name: "NaN guests", mutate: func(r *Request) { r.Guests = "NaN" }, wantErr: ErrInvalidGuests},
		{name: "infinite guests", mutate: func(r *Request) { r.Guests = "Inf" }, wantErr: ErrInvalidGuests},
		{name: "fractional below one", mutate: func(r *Request) { r.Guests = "0.5" }, wantErr: ErrInvalidGuests},
		{name: "bad date format", mutate: func(r *Request) { r.Date = "01/01/2024" }, wantErr: ErrInvalidDate},
		{name: "time outside catalog", mutate: func(r *Request) { r.Time = "18:00" }, wantErr: ErrInvalidTimeSlot},
		{name: "time between slots", mutate: func(r *Request) { r.Time = "10:30" }, wantErr: ErrInvalidTimeSlot},
		{name: "malformed time", mutate: func(r *Request) { r.Time = "ten" }, wantErr: ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := bookingRepo.NewMemoryRepository()
			uc := newUseCase(repo, nil)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			all, listErr := repo.List(context.Background())
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestExecute_IntegralGuestsInAnyNumberForm(t *testing.T) {
	for _, raw := range []string{"3", "3.0", "3e0", "0.3e1"} {
		t.Run(raw, func(t *testing.T) {
			uc := newUseCase(bookingRepo.NewMemoryRepository(), nil)

			req := validRequest()
			req.Guests = raw

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 3, resp.Guests)
		})
	}
}

func TestExecute_NilRequest(t *testing.T) {
	uc := newUseCase(bookingRepo.NewMemoryRepository(), nil)

	_, err := uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TrimsFields(t *testing.T) {
	uc := newUseCase(bookingRepo.NewMemoryRepository(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:    " 2024-01-01 ",
		Time:    " 12:00",
		Guests:  " 4 ",
		Name:    " Alice ",
		Contact: "alice@example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", resp.Date)
	assert.Equal(t, 4, resp.Guests)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Contact)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	repo := bookingRepo.NewMemoryRepository()
	uc := newUseCase(repo, nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 15, conflicts)
}

func TestExecute_StorageRejectsDuplicate(t *testing.T) {
	repo := &fakeRepository{
		listByDateFunc: func(ctx context.Context, date string) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		},
	}
	uc := newUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := &fakeRepository{
		listByDateFunc: func(ctx context.Context, date string) ([]*domain.Booking, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := newUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SameTimeOtherDateIsFree(t *testing.T) {
	uc := newUseCase(bookingRepo.NewMemoryRepository(), nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.Date = "2024-01-02"
	_, err = uc.Execute(context.Background(), other)
	assert.NoError(t, err)
}

// fakeTx и fakeBeginner дают txmanager транзакцию без базы
type fakeTx struct{}

func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeBeginner struct {
	begun int
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return fakeTx{}, nil
}

func TestExecute_SerializationFailureRetriedAsConflict(t *testing.T) {
	// Параллельная транзакция заняла слот: первая вставка падает с 40001,
	// повтор видит чужое бронирование и отвечает конфликтом
	var attempts int
	repo := &fakeRepository{
		listByDateFunc: func(ctx context.Context, date string) ([]*domain.Booking, error) {
			if attempts == 0 {
				return nil, nil
			}
			return []*domain.Booking{{ID: "other", Date: date, Time: "10:00", Guests: 4}}, nil
		},
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			attempts++
			return nil, fmt.Errorf("%w: Create - execute insert: %w",
				bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
		},
	}
	db := &fakeBeginner{}
	metrics := &countingMetrics{}
	uc := NewUseCase(repo, domain.DefaultSlotCatalog(), txmanager.NewTransactionManager(db), metrics, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 2, db.begun)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, metrics.conflicts)
}

func TestExecute_SerializationFailureOnOtherSlotSucceedsOnRetry(t *testing.T) {
	var attempts int
	repo := &fakeRepository{
		listByDateFunc: func(ctx context.Context, date string) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			attempts++
			if attempts == 1 {
				return nil, fmt.Errorf("%w: Create - execute insert: %w",
					bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
			}
			created := *booking
			created.ID = "new"
			return &created, nil
		},
	}
	uc := NewUseCase(repo, domain.DefaultSlotCatalog(), txmanager.NewTransactionManager(&fakeBeginner{}), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "new", resp.ID)
	assert.Equal(t, 2, attempts)
}
