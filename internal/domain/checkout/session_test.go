package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRequest(t *testing.T) *SessionRequest {
	t.Helper()
	li, err := NewLineItem("T-shirt", "20.00", "usd", 1)
	require.NoError(t, err)
	return &SessionRequest{
		PaymentMethodTypes: []string{"card"},
		LineItems:          []*LineItem{li},
		Mode:               PaymentModePayment,
		SuccessURL:         "http://localhost:3000/success",
		CancelURL:          "http://localhost:3000/cancel",
	}
}

func TestSessionRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*SessionRequest)
		wantError bool
	}{
		{
			name:      "正常系: 既定のリクエスト",
			modify:    func(*SessionRequest) {},
			wantError: false,
		},
		{
			name:      "異常系: 明細が空",
			modify:    func(r *SessionRequest) { r.LineItems = nil },
			wantError: true,
		},
		{
			name:      "異常系: 決済手段が空",
			modify:    func(r *SessionRequest) { r.PaymentMethodTypes = []string{} },
			wantError: true,
		},
		{
			name:      "異常系: 成功URLが不正",
			modify:    func(r *SessionRequest) { r.SuccessURL = "not a url" },
			wantError: true,
		},
		{
			name:      "異常系: キャンセルURLが空",
			modify:    func(r *SessionRequest) { r.CancelURL = "" },
			wantError: true,
		},
		{
			name:      "異常系: 未知のモード",
			modify:    func(r *SessionRequest) { r.Mode = "donation" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestSessionRequest(t)
			tt.modify(req)

			err := req.Validate()
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidSessionRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionRequest_ValidateNil(t *testing.T) {
	var req *SessionRequest
	assert.ErrorIs(t, req.Validate(), ErrInvalidSessionRequest)
}

func TestPaymentMode_Valid(t *testing.T) {
	assert.True(t, PaymentModePayment.Valid())
	assert.True(t, PaymentModeSetup.Valid())
	assert.False(t, PaymentMode("").Valid())
	assert.Equal(t, "payment", PaymentModePayment.String())
}

func TestNewSession(t *testing.T) {
	s := NewSession("cs_test_123", "https://checkout.stripe.com/c/pay/cs_test_123")
	assert.Equal(t, "cs_test_123", s.ID())
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", s.URL())
}
