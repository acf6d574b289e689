package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KH-BookingService/internal/domain"
	createBooking "github.com/m04kA/KH-BookingService/internal/usecase/create_booking"
)

// fakeUseCase запоминает запрос и возвращает заготовленный ответ
type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestHandle_ClientTotalIgnored тестирует, что присланная клиентом сумма
// принимается, но не влияет на итог: сумма всегда считается на сервере
func TestHandle_ClientTotalIgnored(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			Reference:   "ref-1",
			GuestName:   "Priya Sharma",
			CheckIn:     date("2024-06-01"),
			CheckOut:    date("2024-06-03"),
			Nights:      2,
			GuestsCount: 2,
			TotalAmount: 14000,
			Status:      string(domain.StatusPending),
			CreatedAt:   date("2024-05-01"),
		},
	}
	handler := NewHandler(uc, noopLogger{})

	body, err := json.Marshal(map[string]interface{}{
		"guestName":   "Priya Sharma",
		"email":       "priya@example.com",
		"phone":       "+919876543210",
		"guestsCount": 2,
		"checkIn":     "2024-06-01",
		"checkOut":    "2024-06-03",
		"totalAmount": 1, // Клиент пытается навязать свою цену
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "Priya Sharma", uc.gotReq.GuestName)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(14000), resp.TotalAmount)
}

// TestHandle_UnknownFieldRejected тестирует отказ на неизвестное поле в теле
func TestHandle_UnknownFieldRejected(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		bytes.NewReader([]byte(`{"guestName":"Priya Sharma","bogus":true}`)))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
