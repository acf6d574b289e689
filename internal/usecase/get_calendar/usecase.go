package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
	"github.com/m04kA/KH-BookingService/pkg/types"
)

// UseCase use case для получения снимка календаря
// Возвращает занятые диапазоны и правила цен/блокировок для отрисовки
// календаря на клиенте. Персональные данные гостей не раскрываются
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     RuleRepository
	timeProvider TimeProvider
	logger       Logger

	defaultRate int64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	defaultRate int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		timeProvider: &RealTimeProvider{},
		defaultRate:  defaultRate,
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря
// Учитываются только подтвержденные бронирования, начиная с сегодняшнего дня
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	bookings, err := uc.bookingRepo.ListConfirmedFrom(ctx, today)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	rules, err := uc.ruleRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list rules: %v", err)
		return nil, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
	}

	index := domain.NewAvailabilityIndex(bookings, rules, uc.defaultRate)

	ranges := index.BookedRanges()
	bookedRanges := make([]BookedRange, 0, len(ranges))
	for _, r := range ranges {
		bookedRanges = append(bookedRanges, BookedRange{
			CheckIn:  types.NewDateString(r.Start),
			CheckOut: types.NewDateString(r.End),
		})
	}

	ruleMap := make(map[string]Rule, len(rules))
	for date, r := range index.Rules() {
		ruleMap[date] = Rule{
			Price:  r.Price,
			Status: string(r.Status),
		}
	}

	uc.logger.Info("GetCalendar: %d booked ranges, %d rules", len(bookedRanges), len(ruleMap))
	return &Response{
		BookedRanges: bookedRanges,
		Rules:        ruleMap,
	}, nil
}
