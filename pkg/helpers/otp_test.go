package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTPDigest(t *testing.T) {
	secret := []byte("s3cret")
	d := OTPDigest(secret, "123456")

	assert.True(t, CheckOTP(secret, "123456", d))
	assert.True(t, CheckOTP(secret, " 123456 ", d))
	assert.False(t, CheckOTP(secret, "123457", d))
	assert.False(t, CheckOTP([]byte("other"), "123456", d))
	assert.False(t, CheckOTP(secret, "123456", ""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", h)
	assert.True(t, CompareHashAndPassword(h, "hunter22"))
	assert.False(t, CompareHashAndPassword(h, "hunter23"))
	assert.False(t, CompareHashAndPassword("", "hunter22"))
}
