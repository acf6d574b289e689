package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент транзакционного почтового сервиса
// Письма отправляются best-effort после подтверждения бронирования,
// ошибка отправки не влияет на само бронирование
type Client struct {
	baseURL    string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation отправляет гостю письмо-подтверждение бронирования
func (c *Client) SendConfirmation(ctx context.Context, email *ConfirmationEmail) error {
	body, err := json.Marshal(&sendRequest{
		From:    c.from,
		To:      email.To,
		Subject: fmt.Sprintf("Booking Confirmation - %s", email.Reference),
		HTML:    confirmationHTML(email),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal send request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/send", c.baseURL)
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("mailer: confirmation sent to=%s reference=%s", email.To, email.Reference)
	return nil
}

// confirmationHTML собирает тело письма-подтверждения
func confirmationHTML(email *ConfirmationEmail) string {
	return fmt.Sprintf(`<h1>Booking Confirmed!</h1>
<p>Dear %s,</p>
<p>Thank you for booking with us.</p>
<h3>Booking Details:</h3>
<ul>
  <li><strong>Booking ID:</strong> %s</li>
  <li><strong>Check-in:</strong> %s</li>
  <li><strong>Check-out:</strong> %s</li>
  <li><strong>Guests:</strong> %d</li>
  <li><strong>Total Amount:</strong> &#8377;%d</li>
</ul>
<p>We look forward to hosting you!</p>`,
		email.GuestName, email.Reference, email.CheckIn, email.CheckOut, email.GuestsCount, email.TotalAmount)
}
