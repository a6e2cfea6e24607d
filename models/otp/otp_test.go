package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{
			name:      "future expiry is not expired",
			expiresAt: time.Now().Add(5 * time.Minute),
			expected:  false,
		},
		{
			name:      "past expiry is expired",
			expiresAt: time.Now().Add(-1 * time.Minute),
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OTP{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expected, o.IsExpired())
		})
	}
}

func TestIsValid(t *testing.T) {
	future := time.Now().Add(5 * time.Minute)

	tests := []struct {
		name     string
		otp      OTP
		expected bool
	}{
		{
			name:     "fresh OTP is valid",
			otp:      OTP{ExpiresAt: future},
			expected: true,
		},
		{
			name:     "used OTP is invalid",
			otp:      OTP{ExpiresAt: future, IsUsed: true},
			expected: false,
		},
		{
			name:     "expired OTP is invalid",
			otp:      OTP{ExpiresAt: time.Now().Add(-1 * time.Minute)},
			expected: false,
		},
		{
			name:     "blocked OTP is invalid",
			otp:      OTP{ExpiresAt: future, IsBlocked: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.otp.IsValid())
		})
	}
}

func TestIncrementRetryBlocksAtMax(t *testing.T) {
	o := OTP{
		ExpiresAt:  time.Now().Add(5 * time.Minute),
		MaxRetries: 3,
	}

	o.IncrementRetry()
	assert.Equal(t, 1, o.RetryCount)
	assert.False(t, o.IsBlocked)
	assert.True(t, o.CanRetry())

	o.IncrementRetry()
	assert.Equal(t, 2, o.RetryCount)
	assert.False(t, o.IsBlocked)

	o.IncrementRetry()
	assert.Equal(t, 3, o.RetryCount)
	assert.True(t, o.IsBlocked)
	require.NotNil(t, o.BlockedUntil)
	assert.True(t, o.BlockedUntil.After(time.Now()))
	assert.False(t, o.CanRetry())
}

func TestIsCurrentlyBlocked(t *testing.T) {
	pastBlock := time.Now().Add(-1 * time.Minute)
	futureBlock := time.Now().Add(10 * time.Minute)

	tests := []struct {
		name     string
		otp      OTP
		expected bool
	}{
		{
			name:     "not blocked",
			otp:      OTP{},
			expected: false,
		},
		{
			name:     "blocked with no deadline is permanent",
			otp:      OTP{IsBlocked: true},
			expected: true,
		},
		{
			name:     "block window still open",
			otp:      OTP{IsBlocked: true, BlockedUntil: &futureBlock},
			expected: true,
		},
		{
			name:     "block window elapsed",
			otp:      OTP{IsBlocked: true, BlockedUntil: &pastBlock},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.otp.IsCurrentlyBlocked())
		})
	}
}

func TestReset(t *testing.T) {
	now := time.Now()
	o := OTP{
		RetryCount:    3,
		IsBlocked:     true,
		BlockedUntil:  &now,
		LastAttemptAt: &now,
	}

	o.Reset()

	assert.Equal(t, 0, o.RetryCount)
	assert.False(t, o.IsBlocked)
	assert.Nil(t, o.BlockedUntil)
	assert.Nil(t, o.LastAttemptAt)
}
