package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// TestVerifySignature тестирует локальную проверку подписи платежа
func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	client := NewClient("http://gateway", "key_id", secret, time.Second, noopLogger{})

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_1|pay_1"))
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		wantErr   error
	}{
		{
			name:      "valid signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: valid,
		},
		{
			name:      "forged signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: "deadbeef",
			wantErr:   ErrSignatureMismatch,
		},
		{
			name:      "signature for different order",
			orderID:   "order_2",
			paymentID: "pay_1",
			signature: valid,
			wantErr:   ErrSignatureMismatch,
		},
		{
			name:      "empty signature",
			orderID:   "order_1",
			paymentID: "pay_1",
			signature: "",
			wantErr:   ErrSignatureMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.VerifySignature(tt.orderID, tt.paymentID, tt.signature)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
