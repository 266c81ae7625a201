package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError_Is(t *testing.T) {
	tests := []struct {
		kind   ErrorKind
		target error
	}{
		{ErrorKindAuthentication, ErrProviderAuthentication},
		{ErrorKindPermission, ErrProviderPermission},
		{ErrorKindRejected, ErrProviderRejected},
		{ErrorKindRateLimited, ErrProviderRateLimited},
		{ErrorKindUnavailable, ErrProviderUnavailable},
		{ErrorKindTimeout, ErrProviderTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewProviderError(tt.kind, 400, "req_1", errors.New("boom")))
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestProviderError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError(ErrorKindUnavailable, 0, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrProviderAuthentication)
	assert.Equal(t, "payment provider unavailable error: connection refused", err.Error())
}

func TestProviderError_MessageIncludesStatus(t *testing.T) {
	err := NewProviderError(ErrorKindAuthentication, 401, "req_1", errors.New("Invalid API Key provided"))
	assert.Contains(t, err.Error(), "status 401")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, ErrorKindInvalidRequest, KindOf(fmt.Errorf("x: %w", ErrInvalidLineItem)))
	assert.Equal(t, ErrorKindInvalidRequest, KindOf(ErrInvalidSessionRequest))
	assert.Equal(t, ErrorKindUnknown, KindOf(errors.New("other")))
}
