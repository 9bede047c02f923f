package errno

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil", nil, 0},
		{"plain errno", ErrInvalidSeedLength, 20101},
		{"wrapped errno", fmt.Errorf("seed: 20 bytes: %w", ErrInvalidSeedLength), 20101},
		{"pointer errno", &Errno{Code: 20401, Message: "x"}, 20401},
		{"foreign error", errors.New("boom"), InternalError.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := Decode(tt.err)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWrappedErrnoMatches(t *testing.T) {
	err := fmt.Errorf("subseed 5L: %w", ErrKeyDerivationExhausted)
	assert.True(t, errors.Is(err, ErrKeyDerivationExhausted))
	assert.False(t, errors.Is(err, ErrInvalidSeedLength))
	_, msg := Decode(err)
	assert.Equal(t, "subseed 5L: nonce range exceeded", msg)
}
