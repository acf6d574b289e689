package domain

// Default business values
// Ставка за ночь и месячный лимит переопределяются в config.toml
const (
	DefaultNightlyRate       = 7000 // рупий за ночь
	DefaultMonthlyBookingCap = 15   // подтвержденных заездов в календарный месяц
)

// Guest validation constants
const (
	MinGuestsCount = 1
	MaxGuestsCount = 12
	MinStayNights  = 1
	MaxStayNights  = 30
)

// Validation patterns
// Телефон - индийский мобильный номер, опционально с кодом страны
const (
	GuestNamePattern = `^[A-Za-z\s]{3,}$`
	EmailPattern     = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	PhonePattern     = `^(\+91)?[6-9]\d{9}$`
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusFailed,
}
