package helpers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// GenOTPCode returns a uniformly random six-digit code in [100000, 999999].
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}

// OTPDigest binds a code to the server secret so it can travel inside a token.
func OTPDigest(secret []byte, code string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckOTP compares a submitted code with a digest in constant time.
func CheckOTP(secret []byte, code, digest string) bool {
	if digest == "" {
		return false
	}
	return hmac.Equal([]byte(OTPDigest(secret, code)), []byte(digest))
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
