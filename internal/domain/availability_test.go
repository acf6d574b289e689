package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func confirmedBooking(checkIn, checkOut string) *Booking {
	return &Booking{
		Status:   StatusConfirmed,
		CheckIn:  date(checkIn),
		CheckOut: date(checkOut),
	}
}

// TestTotalPrice тестирует расчет итоговой суммы за проживание
func TestTotalPrice(t *testing.T) {
	customPrice := int64(9000)

	tests := []struct {
		name     string
		rules    []*CalendarRule
		checkIn  string
		checkOut string
		want     int64
	}{
		{
			name:     "two nights at default rate",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-03",
			want:     14000,
		},
		{
			name:     "one night at default rate",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-02",
			want:     7000,
		},
		{
			name: "rule price overrides default for one night",
			rules: []*CalendarRule{
				{Date: date("2024-06-02"), Price: &customPrice, Status: RuleStatusAvailable},
			},
			checkIn:  "2024-06-01",
			checkOut: "2024-06-03",
			want:     16000,
		},
		{
			name: "checkout day price is not charged",
			rules: []*CalendarRule{
				{Date: date("2024-06-03"), Price: &customPrice, Status: RuleStatusAvailable},
			},
			checkIn:  "2024-06-01",
			checkOut: "2024-06-03",
			want:     14000,
		},
		{
			name:     "empty range costs zero",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-01",
			want:     0,
		},
		{
			name:     "inverted range costs zero",
			checkIn:  "2024-06-03",
			checkOut: "2024-06-01",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := NewAvailabilityIndex(nil, tt.rules, DefaultNightlyRate)
			assert.Equal(t, tt.want, index.TotalPrice(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

// TestHasOverlap тестирует пересечение диапазонов дат
func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name     string
		existing *Booking
		checkIn  string
		checkOut string
		want     bool
	}{
		{
			name:     "date inside existing booking overlaps",
			existing: confirmedBooking("2024-06-01", "2024-06-05"),
			checkIn:  "2024-06-04",
			checkOut: "2024-06-06",
			want:     true,
		},
		{
			name:     "identical range overlaps",
			existing: confirmedBooking("2024-06-01", "2024-06-05"),
			checkIn:  "2024-06-01",
			checkOut: "2024-06-05",
			want:     true,
		},
		{
			name:     "range containing existing overlaps",
			existing: confirmedBooking("2024-06-02", "2024-06-04"),
			checkIn:  "2024-06-01",
			checkOut: "2024-06-05",
			want:     true,
		},
		{
			name:     "check-in on existing check-out day does not overlap",
			existing: confirmedBooking("2024-06-01", "2024-06-05"),
			checkIn:  "2024-06-05",
			checkOut: "2024-06-07",
			want:     false,
		},
		{
			name:     "check-out on existing check-in day does not overlap",
			existing: confirmedBooking("2024-06-05", "2024-06-07"),
			checkIn:  "2024-06-03",
			checkOut: "2024-06-05",
			want:     false,
		},
		{
			name:     "disjoint ranges do not overlap",
			existing: confirmedBooking("2024-06-01", "2024-06-03"),
			checkIn:  "2024-06-10",
			checkOut: "2024-06-12",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := NewAvailabilityIndex([]*Booking{tt.existing}, nil, DefaultNightlyRate)
			assert.Equal(t, tt.want, index.HasOverlap(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

// TestPendingDoesNotOccupyDates проверяет, что даты занимают только confirmed
func TestPendingDoesNotOccupyDates(t *testing.T) {
	bookings := []*Booking{
		{Status: StatusPending, CheckIn: date("2024-06-01"), CheckOut: date("2024-06-05")},
		{Status: StatusCancelled, CheckIn: date("2024-06-01"), CheckOut: date("2024-06-05")},
		{Status: StatusFailed, CheckIn: date("2024-06-01"), CheckOut: date("2024-06-05")},
	}

	index := NewAvailabilityIndex(bookings, nil, DefaultNightlyRate)

	assert.False(t, index.HasOverlap(date("2024-06-02"), date("2024-06-04")))
	assert.Empty(t, index.BookedRanges())
}

// TestHasBlockedDate тестирует проверку заблокированных дат в диапазоне
func TestHasBlockedDate(t *testing.T) {
	blocked := []*CalendarRule{
		{Date: date("2024-06-10"), Status: RuleStatusBlocked},
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{
			name:     "blocked date inside range",
			checkIn:  "2024-06-09",
			checkOut: "2024-06-11",
			want:     true,
		},
		{
			name:     "blocked date on check-in",
			checkIn:  "2024-06-10",
			checkOut: "2024-06-12",
			want:     true,
		},
		{
			name:     "blocked date on check-out is allowed",
			checkIn:  "2024-06-08",
			checkOut: "2024-06-10",
			want:     false,
		},
		{
			name:     "range without blocked dates",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-05",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := NewAvailabilityIndex(nil, blocked, DefaultNightlyRate)
			assert.Equal(t, tt.want, index.HasBlockedDate(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

// TestIsUnavailable тестирует занятость отдельной даты
func TestIsUnavailable(t *testing.T) {
	bookings := []*Booking{confirmedBooking("2024-06-01", "2024-06-03")}
	rules := []*CalendarRule{{Date: date("2024-06-10"), Status: RuleStatusBlocked}}

	index := NewAvailabilityIndex(bookings, rules, DefaultNightlyRate)

	assert.True(t, index.IsUnavailable(date("2024-06-01")))
	assert.True(t, index.IsUnavailable(date("2024-06-02")))
	// День выезда свободен для нового заезда
	assert.False(t, index.IsUnavailable(date("2024-06-03")))
	assert.True(t, index.IsUnavailable(date("2024-06-10")))
	assert.False(t, index.IsUnavailable(date("2024-06-15")))
}

// TestBookedRanges тестирует выдачу занятых диапазонов для календаря
func TestBookedRanges(t *testing.T) {
	bookings := []*Booking{
		confirmedBooking("2024-06-01", "2024-06-03"),
		{Status: StatusPending, CheckIn: date("2024-06-10"), CheckOut: date("2024-06-12")},
	}

	index := NewAvailabilityIndex(bookings, nil, DefaultNightlyRate)
	ranges := index.BookedRanges()

	require.Len(t, ranges, 1)
	assert.Equal(t, date("2024-06-01"), ranges[0].Start)
	assert.Equal(t, date("2024-06-03"), ranges[0].End)
}
