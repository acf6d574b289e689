package confirm_payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/KH-BookingService/internal/integrations/payments"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeBookingRepo in-memory репозиторий бронирований
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.Reference == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) ListConfirmedOverlapping(_ context.Context, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.Status == domain.StatusConfirmed && b.OverlapsRange(checkIn, checkOut) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountConfirmedByMonth(_ context.Context, year int, month time.Month) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.bookings {
		if b.Status == domain.StatusConfirmed && b.CheckIn.Year() == year && b.CheckIn.Month() == month {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) ConfirmWithPayment(_ context.Context, id int64, orderID, paymentID, signature string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			if b.Status != domain.StatusPending {
				return bookingRepo.ErrInvalidTransition
			}
			b.Status = domain.StatusConfirmed
			b.PaymentOrderID = &orderID
			b.PaymentID = &paymentID
			b.PaymentSignature = &signature
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) statusOf(reference string) domain.BookingStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.Reference == reference {
			return b.Status
		}
	}
	return ""
}

// fakeNotifier запоминает подтвержденные бронирования
type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, booking.Reference)
	return nil
}

// fakeTxManager сериализует транзакции глобальным mutex
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// noopLogger логгер-заглушка для тестов
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const testKeySecret = "test_secret"

// sign считает подпись так же, как это делает платежный шлюз
func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func pendingBooking(reference string) *domain.Booking {
	orderID := "order_1"
	return &domain.Booking{
		ID:             1,
		Reference:      reference,
		GuestName:      "Priya Sharma",
		Email:          "priya@example.com",
		GuestsCount:    2,
		CheckIn:        date("2024-06-01"),
		CheckOut:       date("2024-06-03"),
		TotalAmount:    14000,
		Status:         domain.StatusPending,
		PaymentOrderID: &orderID,
	}
}

func newTestUseCase(repo *fakeBookingRepo, notifier *fakeNotifier) *UseCase {
	verifier := payments.NewClient("http://gateway", "key_id", testKeySecret, time.Second, noopLogger{})
	return NewUseCase(repo, verifier, notifier, &fakeTxManager{}, domain.DefaultMonthlyBookingCap, noopLogger{})
}

// TestExecute_Success тестирует успешное подтверждение оплаты
func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{pendingBooking("ref-1")}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "pay_1", resp.PaymentID)
	assert.Equal(t, domain.StatusConfirmed, repo.statusOf("ref-1"))
	assert.Equal(t, []string{"ref-1"}, notifier.confirmed)
}

// TestExecute_SignatureMismatch тестирует отказ при неверной подписи
// Бронирование переводится в failed и не занимает даты
func TestExecute_SignatureMismatch(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{pendingBooking("ref-1")}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "forged",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, domain.StatusFailed, repo.statusOf("ref-1"))
	assert.Empty(t, notifier.confirmed)
}

// TestExecute_ForeignOrderSignature тестирует подмену заказа: подпись валидна,
// но заказ не тот, что был выписан бронированию при создании.
// Чужой дешёвый заказ не должен подтверждать бронирование на полную сумму
func TestExecute_ForeignOrderSignature(t *testing.T) {
	expensiveOrder := "order_expensive"
	booking := pendingBooking("ref-1")
	booking.TotalAmount = 140000
	booking.PaymentOrderID = &expensiveOrder
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_cheap",
		PaymentID: "pay_attacker",
		Signature: sign("order_cheap", "pay_attacker"),
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	// Бронирование остаётся pending - гость может оплатить свой заказ
	assert.Equal(t, domain.StatusPending, repo.statusOf("ref-1"))
	assert.Empty(t, notifier.confirmed)
}

// TestExecute_MissingStoredOrder тестирует подтверждение бронирования,
// которому заказ так и не был привязан
func TestExecute_MissingStoredOrder(t *testing.T) {
	booking := pendingBooking("ref-1")
	booking.PaymentOrderID = nil
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

// TestExecute_BookingNotFound тестирует подтверждение несуществующего бронирования
func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "missing",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// TestExecute_AlreadyConfirmed тестирует повторное подтверждение
func TestExecute_AlreadyConfirmed(t *testing.T) {
	booking := pendingBooking("ref-1")
	booking.Status = domain.StatusConfirmed
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

// TestExecute_DatesTakenDuringPayment тестирует гонку: пока гость оплачивал,
// другой гость успел подтвердить пересекающееся бронирование
func TestExecute_DatesTakenDuringPayment(t *testing.T) {
	competitor := &domain.Booking{
		ID:        2,
		Reference: "ref-2",
		Status:    domain.StatusConfirmed,
		CheckIn:   date("2024-06-02"),
		CheckOut:  date("2024-06-04"),
	}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{pendingBooking("ref-1"), competitor}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.Equal(t, domain.StatusFailed, repo.statusOf("ref-1"))
	assert.Empty(t, notifier.confirmed)
}

// TestExecute_QuotaFilledDuringPayment тестирует гонку за месячный лимит:
// пока гость оплачивал, другие подтверждения добрали квоту месяца заезда
func TestExecute_QuotaFilledDuringPayment(t *testing.T) {
	bookings := []*domain.Booking{pendingBooking("ref-1")}
	for i := 0; i < domain.DefaultMonthlyBookingCap; i++ {
		bookings = append(bookings, &domain.Booking{
			ID:        int64(100 + i),
			Reference: "other",
			Status:    domain.StatusConfirmed,
			CheckIn:   date("2024-06-10"),
			CheckOut:  date("2024-06-11"),
		})
	}
	repo := &fakeBookingRepo{bookings: bookings}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "ref-1",
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: sign("order_1", "pay_1"),
	})
	assert.ErrorIs(t, err, ErrMonthlyLimitReached)
	assert.Equal(t, domain.StatusFailed, repo.statusOf("ref-1"))
	assert.Empty(t, notifier.confirmed)
}

// TestExecute_ConcurrentConfirms тестирует гонку двух подтверждений
// на пересекающиеся даты: ровно одно выигрывает, второе переводится в failed
func TestExecute_ConcurrentConfirms(t *testing.T) {
	secondOrder := "order_2"
	first := pendingBooking("ref-1")
	second := &domain.Booking{
		ID:             2,
		Reference:      "ref-2",
		GuestName:      "Rahul Verma",
		Email:          "rahul@example.com",
		GuestsCount:    3,
		CheckIn:        date("2024-06-02"),
		CheckOut:       date("2024-06-04"),
		TotalAmount:    14000,
		Status:         domain.StatusPending,
		PaymentOrderID: &secondOrder,
	}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{first, second}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	run := func(i int, reference, orderID string) {
		defer wg.Done()
		_, errs[i] = uc.Execute(context.Background(), &Request{
			Reference: reference,
			OrderID:   orderID,
			PaymentID: "pay_1",
			Signature: sign(orderID, "pay_1"),
		})
	}
	wg.Add(2)
	go run(0, "ref-1", "order_1")
	go run(1, "ref-2", "order_2")
	wg.Wait()

	statuses := map[domain.BookingStatus]int{}
	statuses[repo.statusOf("ref-1")]++
	statuses[repo.statusOf("ref-2")]++
	assert.Equal(t, 1, statuses[domain.StatusConfirmed])
	assert.Equal(t, 1, statuses[domain.StatusFailed])

	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrDatesUnavailable)
	} else {
		assert.ErrorIs(t, errs[0], ErrDatesUnavailable)
		assert.NoError(t, errs[1])
	}
	assert.Len(t, notifier.confirmed, 1)
}

// TestExecute_MissingFields тестирует валидацию входных данных
func TestExecute_MissingFields(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeNotifier{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "empty reference", req: &Request{OrderID: "o", PaymentID: "p", Signature: "s"}},
		{name: "empty order id", req: &Request{Reference: "r", PaymentID: "p", Signature: "s"}},
		{name: "empty payment id", req: &Request{Reference: "r", OrderID: "o", Signature: "s"}},
		{name: "empty signature", req: &Request{Reference: "r", OrderID: "o", PaymentID: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
