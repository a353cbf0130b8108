package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// OTPValidity is the acceptance window for an email OTP.
	OTPValidity = 5 * time.Minute
	// ResetTokenValidity is the acceptance window for a password reset token.
	ResetTokenValidity = 30 * time.Minute
)

// EmailOTP is the one 6-digit code outstanding for a user. Re-issuing
// replaces the code, which makes the old one unusable immediately.
type EmailOTP struct {
	ID        string
	UserID    string
	Code      string
	CreatedAt time.Time
}

func (o *EmailOTP) IsValid(now time.Time) bool {
	return now.Before(o.CreatedAt.Add(OTPValidity))
}

// GenerateOTPCode returns a random 6-digit numeric code.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// PasswordResetToken is a single-use token mailed out as a reset link.
// A user may hold several outstanding tokens; all of them are deleted
// when any one is consumed.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > ResetTokenValidity
}
