package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/KH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
// Проверка доступности дат и вставка выполняются в одной сериализуемой
// транзакции, поэтому две конкурирующие заявки на пересекающиеся даты
// не могут пройти проверку одновременно
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     RuleRepository
	gateway      PaymentGateway
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	defaultRate int64 // Цена за ночь по умолчанию, в рупиях
	monthlyCap  int   // Максимум подтвержденных бронирований в месяц
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	defaultRate int64,
	monthlyCap int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		defaultRate:  defaultRate,
		monthlyCap:   monthlyCap,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Порядок проверок: входные данные, диапазон дат, занятость дат,
// заблокированные даты, месячная квота. Сумма всегда рассчитывается
// сервером - значения с клиента не принимаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%s, checkIn=%s, checkOut=%s, guests=%d",
		req.GuestName, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.GuestsCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация диапазона дат
	now := uc.timeProvider.Now()
	if err := validateDates(req.CheckIn, req.CheckOut, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	checkIn := truncateToDay(req.CheckIn)
	checkOut := truncateToDay(req.CheckOut)

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Проверка доступности и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем пересекающиеся подтвержденные бронирования (FOR UPDATE)
		overlapping, err := uc.bookingRepo.ListConfirmedOverlapping(txCtx, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: %d overlapping bookings for %s - %s",
				len(overlapping), checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat))
			return ErrDatesUnavailable
		}

		// 3.2. Проверяем календарные правила на заблокированные даты
		rules, err := uc.ruleRepo.ListRange(txCtx, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list calendar rules: %v", err)
			return fmt.Errorf("%w: failed to list calendar rules: %v", ErrInternal, err)
		}

		index := domain.NewAvailabilityIndex(nil, rules, uc.defaultRate)
		if index.HasBlockedDate(checkIn, checkOut) {
			uc.logger.Warn("CreateBooking: blocked date in range %s - %s",
				checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat))
			return ErrDatesUnavailable
		}

		// 3.3. Проверяем месячную квоту по месяцу заезда
		count, err := uc.bookingRepo.CountConfirmedByMonth(txCtx, checkIn.Year(), checkIn.Month())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count monthly bookings: %v", err)
			return fmt.Errorf("%w: failed to count monthly bookings: %v", ErrInternal, err)
		}
		if count >= uc.monthlyCap {
			uc.logger.Warn("CreateBooking: monthly limit reached for %d-%02d: %d bookings",
				checkIn.Year(), checkIn.Month(), count)
			return ErrMonthlyLimitReached
		}

		// 3.4. Рассчитываем итоговую сумму по ценам из календарных правил
		total := index.TotalPrice(checkIn, checkOut)
		if total <= 0 {
			return fmt.Errorf("%w: computed total is not positive", ErrInternal)
		}

		// 3.5. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			Reference:   uuid.New().String(),
			GuestName:   req.GuestName,
			Email:       req.Email,
			Phone:       req.Phone,
			GuestsCount: req.GuestsCount,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			TotalAmount: total,
			Status:      domain.StatusPending,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDatesUnavailable) {
				return ErrDatesUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking reference=%s, total=%d", result.Reference, result.TotalAmount)

	// 4. Создаем заказ в платежном шлюзе уже после коммита
	// Если шлюз недоступен, бронирование останется pending и истечёт по TTL
	order, err := uc.gateway.CreateOrder(ctx, result.TotalAmount, result.Reference)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment order for reference=%s: %v", result.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentOrderFailed, err)
	}

	if err := uc.bookingRepo.UpdateOrderID(ctx, result.ID, order.ID); err != nil {
		// Заказ уже создан, не роняем запрос - подпись проверяется по order_id из шлюза
		uc.logger.Error("CreateBooking: failed to store order id for reference=%s: %v", result.Reference, err)
	}

	return &Response{
		Reference:   result.Reference,
		GuestName:   result.GuestName,
		CheckIn:     result.CheckIn,
		CheckOut:    result.CheckOut,
		Nights:      result.Nights(),
		GuestsCount: result.GuestsCount,
		TotalAmount: result.TotalAmount,
		Status:      string(result.Status),
		Order: &PaymentOrder{
			OrderID:  order.ID,
			Amount:   order.Amount,
			Currency: order.Currency,
		},
		CreatedAt: result.CreatedAt,
	}, nil
}
