package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/KH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/KH-BookingService/internal/integrations/payments"
)

// UseCase use case для подтверждения оплаты бронирования
// Подпись проверяется до транзакции, переход pending -> confirmed
// и повторная проверка занятости дат выполняются в сериализуемой транзакции
type UseCase struct {
	bookingRepo BookingRepository
	verifier    PaymentVerifier
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger

	monthlyCap int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	verifier PaymentVerifier,
	notifier Notifier,
	txManager TransactionManager,
	monthlyCap int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		verifier:    verifier,
		notifier:    notifier,
		txManager:   txManager,
		monthlyCap:  monthlyCap,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения оплаты
// При неверной подписи бронирование переводится в failed
// Если даты успели занять, пока шла оплата, бронирование тоже переводится в failed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: reference=%s, order=%s, payment=%s", req.Reference, req.OrderID, req.PaymentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем подпись платежа локально, без обращения к шлюзу
	if err := uc.verifier.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, payments.ErrSignatureMismatch) {
			uc.logger.Warn("ConfirmPayment: signature mismatch for reference=%s", req.Reference)
			uc.markFailed(ctx, req.Reference)
			return nil, ErrVerificationFailed
		}
		uc.logger.Error("ConfirmPayment: signature verification error for reference=%s: %v", req.Reference, err)
		return nil, fmt.Errorf("%w: signature verification: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Подтверждаем бронирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку бронирования (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.Reference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to fetch booking reference=%s: %v", req.Reference, err)
			return fmt.Errorf("%w: failed to fetch booking: %v", ErrInternal, err)
		}

		if !booking.CanBeConfirmed() {
			uc.logger.Warn("ConfirmPayment: booking reference=%s in status=%s cannot be confirmed",
				req.Reference, booking.Status)
			return ErrInvalidState
		}

		// 3.2. Подпись валидна, но заказ обязан быть тем самым, что был
		// выписан этому бронированию при создании. Иначе подпись чужого
		// дешёвого заказа подтвердила бы любое pending бронирование
		if booking.PaymentOrderID == nil || *booking.PaymentOrderID != req.OrderID {
			uc.logger.Warn("ConfirmPayment: order mismatch for reference=%s, got order=%s",
				req.Reference, req.OrderID)
			return ErrVerificationFailed
		}

		// 3.3. Повторно проверяем занятость дат: пока шла оплата,
		// другой гость мог подтвердить пересекающееся бронирование
		overlapping, err := uc.bookingRepo.ListConfirmedOverlapping(txCtx, booking.CheckIn, booking.CheckOut)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to list overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("ConfirmPayment: dates taken while payment was processing, reference=%s", req.Reference)
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusFailed); err != nil {
				uc.logger.Error("ConfirmPayment: failed to mark booking failed: %v", err)
			}
			return ErrDatesUnavailable
		}

		// 3.4. Повторно проверяем месячный лимит: пока шла оплата,
		// другие подтверждения могли добрать квоту месяца заезда
		count, err := uc.bookingRepo.CountConfirmedByMonth(txCtx, booking.CheckIn.Year(), booking.CheckIn.Month())
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to count confirmed bookings: %v", err)
			return fmt.Errorf("%w: failed to count confirmed bookings: %v", ErrInternal, err)
		}
		if count >= uc.monthlyCap {
			uc.logger.Warn("ConfirmPayment: monthly limit reached while payment was processing, reference=%s", req.Reference)
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusFailed); err != nil {
				uc.logger.Error("ConfirmPayment: failed to mark booking failed: %v", err)
			}
			return ErrMonthlyLimitReached
		}

		// 3.5. Переводим в confirmed и сохраняем реквизиты платежа
		if err := uc.bookingRepo.ConfirmWithPayment(txCtx, booking.ID, req.OrderID, req.PaymentID, req.Signature); err != nil {
			if errors.Is(err, bookingRepo.ErrDatesUnavailable) {
				return ErrDatesUnavailable
			}
			if errors.Is(err, bookingRepo.ErrInvalidTransition) {
				return ErrInvalidState
			}
			uc.logger.Error("ConfirmPayment: failed to confirm booking reference=%s: %v", req.Reference, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.PaymentID = &req.PaymentID
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: booking reference=%s confirmed", result.Reference)

	// 4. Ставим уведомления в очередь уже после коммита
	if err := uc.notifier.BookingConfirmed(ctx, result); err != nil {
		uc.logger.Error("ConfirmPayment: failed to enqueue notification for reference=%s: %v", result.Reference, err)
	}

	return &Response{
		Reference:   result.Reference,
		GuestName:   result.GuestName,
		CheckIn:     result.CheckIn,
		CheckOut:    result.CheckOut,
		Nights:      result.Nights(),
		TotalAmount: result.TotalAmount,
		Status:      string(result.Status),
		PaymentID:   req.PaymentID,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Reference) == "" {
		return fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PaymentID) == "" {
		return fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Signature) == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}
	return nil
}

// markFailed переводит pending бронирование в failed после неуспешной оплаты
// Ошибка здесь не критична - бронирование истечёт по TTL воркером
func (uc *UseCase) markFailed(ctx context.Context, reference string) {
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByReference(txCtx, reference)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPending {
			return nil
		}
		return uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusFailed)
	})
	if err != nil {
		uc.logger.Warn("ConfirmPayment: failed to mark booking reference=%s as failed: %v", reference, err)
	}
}
