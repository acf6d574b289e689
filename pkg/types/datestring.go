package types

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateString календарная дата в формате "YYYY-MM-DD" (например, "2024-06-01")
// Используется на границах API и как ключ правил календаря.
// Хранит только дату, без времени и часового пояса.
type DateString string

// NewDateString создает DateString из time.Time (время отбрасывается)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString парсит строку "YYYY-MM-DD" в DateString
func NewDateStringFromString(s string) (DateString, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date string format: %v", err)
	}
	return DateString(s), nil
}

// Validate проверяет корректность формата даты
func (d DateString) Validate() error {
	_, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return fmt.Errorf("invalid date string format: %v", err)
	}
	return nil
}

// Time конвертирует DateString в time.Time (полночь UTC)
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date string format: %v", err)
	}
	return t, nil
}

// AddDays возвращает дату, сдвинутую на n дней
// Для некорректной даты возвращает ошибку
func (d DateString) AddDays(n int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, n)), nil
}

// IsBefore сравнивает даты лексикографически (формат YYYY-MM-DD это позволяет)
func (d DateString) IsBefore(other DateString) bool {
	return string(d) < string(other)
}

// IsAfter проверяет, что дата строго позже other
func (d DateString) IsAfter(other DateString) bool {
	return string(d) > string(other)
}

// IsZero проверяет, что дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}

// MarshalJSON сериализует дату как JSON строку
func (d DateString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// UnmarshalJSON десериализует дату из JSON строки с проверкой формата
func (d *DateString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewDateStringFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
