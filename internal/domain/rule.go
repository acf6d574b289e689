package domain

import "time"

// RuleStatus represents the availability override of a calendar rule
type RuleStatus string

const (
	RuleStatusAvailable RuleStatus = "available"
	RuleStatusBlocked   RuleStatus = "blocked"
)

// CalendarRule represents an admin override for a single calendar date:
// цена за ночь и/или блокировка даты
// На одну дату существует не больше одного правила (last-write-wins при обновлении)
type CalendarRule struct {
	ID        int64
	Date      time.Time
	Price     *int64 // nil = действует базовая ставка
	Status    RuleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocked returns true if the date is blocked for booking
func (r *CalendarRule) IsBlocked() bool {
	return r.Status == RuleStatusBlocked
}

// EffectivePrice returns the rule price if set and positive, otherwise defaultRate
// Правило со статусом available без цены означает базовую ставку
func (r *CalendarRule) EffectivePrice(defaultRate int64) int64 {
	if r.Price != nil && *r.Price > 0 {
		return *r.Price
	}
	return defaultRate
}
