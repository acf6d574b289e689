package calendarsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/KH-BookingService/pkg/types"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsync client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календарного сервиса
	ErrInvalidResponse = errors.New("calendarsync client: invalid response")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StayEvent событие проживания для внешнего календаря
type StayEvent struct {
	Reference string           `json:"reference"`
	GuestName string           `json:"guest_name"`
	CheckIn   types.DateString `json:"check_in"`
	CheckOut  types.DateString `json:"check_out"`
}

// createEventRequest тело запроса на создание события
// Событие на весь день: start - дата заезда, end - дата выезда (не включается)
type createEventRequest struct {
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Client клиент календарного сервиса
// События создаются best-effort после подтверждения бронирования
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр календарного клиента
func NewClient(baseURL, calendarID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateStayEvent создает в календаре событие проживания гостя
func (c *Client) CreateStayEvent(ctx context.Context, event *StayEvent) error {
	body, err := json.Marshal(&createEventRequest{
		Summary: fmt.Sprintf("Stay: %s (%s)", event.GuestName, event.Reference),
		Start:   event.CheckIn.String(),
		End:     event.CheckOut.String(),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, c.calendarID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("calendarsync: stay event created reference=%s", event.Reference)
	return nil
}
