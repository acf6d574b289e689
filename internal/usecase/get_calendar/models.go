package get_calendar

import "github.com/m04kA/KH-BookingService/pkg/types"

// BookedRange занятый диапазон дат, check-out не включается
type BookedRange struct {
	CheckIn  types.DateString `json:"checkIn"`
	CheckOut types.DateString `json:"checkOut"`
}

// Rule правило для одной даты
type Rule struct {
	Price  *int64 `json:"price,omitempty"`
	Status string `json:"status"`
}

// Response снимок календаря для клиента
type Response struct {
	BookedRanges []BookedRange   `json:"bookedRanges"`
	Rules        map[string]Rule `json:"rules"`
}
