package domain

import "time"

// DateRange полуоткрытый диапазон дат [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// AvailabilityIndex is a read-only projection of confirmed bookings and
// calendar rules, answering date-level availability and pricing queries.
// Снимок состояния на момент построения, пересобирается на каждый запрос.
type AvailabilityIndex struct {
	defaultRate int64
	occupied    []*Booking
	rules       map[string]*CalendarRule // ключ - дата в формате YYYY-MM-DD
}

// NewAvailabilityIndex builds an index from the current bookings and rules.
// Даты занимают только подтвержденные бронирования; pending, cancelled и
// failed в занятость не попадают
func NewAvailabilityIndex(bookings []*Booking, rules []*CalendarRule, defaultRate int64) *AvailabilityIndex {
	occupied := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == StatusConfirmed {
			occupied = append(occupied, b)
		}
	}

	ruleIndex := make(map[string]*CalendarRule, len(rules))
	for _, r := range rules {
		ruleIndex[r.Date.Format(DateFormat)] = r
	}

	return &AvailabilityIndex{
		defaultRate: defaultRate,
		occupied:    occupied,
		rules:       ruleIndex,
	}
}

// IsUnavailable returns true if the date is blocked by a rule or falls
// within [check_in, check_out) of a confirmed booking.
// День выезда не занят: в него возможен новый заезд
func (ix *AvailabilityIndex) IsUnavailable(date time.Time) bool {
	if rule, ok := ix.rules[date.Format(DateFormat)]; ok && rule.IsBlocked() {
		return true
	}
	for _, b := range ix.occupied {
		if b.Occupies(date) {
			return true
		}
	}
	return false
}

// PriceFor returns the nightly rate for the date: the rule price if present
// and positive, otherwise the default rate
func (ix *AvailabilityIndex) PriceFor(date time.Time) int64 {
	if rule, ok := ix.rules[date.Format(DateFormat)]; ok {
		return rule.EffectivePrice(ix.defaultRate)
	}
	return ix.defaultRate
}

// TotalPrice sums PriceFor over each night in [checkIn, checkOut).
// Для пустого или перевернутого диапазона возвращает 0 - вызывающий код
// обязан отклонить такой запрос, а не принять его как бесплатное бронирование
func (ix *AvailabilityIndex) TotalPrice(checkIn, checkOut time.Time) int64 {
	start := dateOnly(checkIn)
	end := dateOnly(checkOut)
	if !end.After(start) {
		return 0
	}

	var total int64
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		total += ix.PriceFor(d)
	}
	return total
}

// HasOverlap returns true if [checkIn, checkOut) intersects any confirmed booking
func (ix *AvailabilityIndex) HasOverlap(checkIn, checkOut time.Time) bool {
	for _, b := range ix.occupied {
		if b.OverlapsRange(checkIn, checkOut) {
			return true
		}
	}
	return false
}

// HasBlockedDate returns true if any date in [checkIn, checkOut) has a blocked rule
func (ix *AvailabilityIndex) HasBlockedDate(checkIn, checkOut time.Time) bool {
	start := dateOnly(checkIn)
	end := dateOnly(checkOut)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if rule, ok := ix.rules[d.Format(DateFormat)]; ok && rule.IsBlocked() {
			return true
		}
	}
	return false
}

// BookedRanges returns the occupied intervals of all confirmed bookings
// Используется клиентским календарем для отрисовки занятых дат
func (ix *AvailabilityIndex) BookedRanges() []DateRange {
	ranges := make([]DateRange, 0, len(ix.occupied))
	for _, b := range ix.occupied {
		ranges = append(ranges, DateRange{Start: dateOnly(b.CheckIn), End: dateOnly(b.CheckOut)})
	}
	return ranges
}

// Rules returns the rule index keyed by date string (YYYY-MM-DD)
func (ix *AvailabilityIndex) Rules() map[string]*CalendarRule {
	return ix.rules
}
