package auth

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAdminLoginOnly     = errors.New("admin accounts must use the admin login")
	ErrAccountBanned      = errors.New("account is banned")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPhone       = errors.New("invalid tunisian phone number")

	ErrAlreadyVerified   = errors.New("email already verified")
	ErrNoActiveCode      = errors.New("no active verification code")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrInvalidCodeFormat = errors.New("verification code must be 6 digits")

	ErrMailDispatch = errors.New("verification email dispatch failed")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenReused  = errors.New("refresh token reuse detected")
)

// VerificationBlockedError is returned while the 15-minute block window is
// open. Submissions during the window never touch the attempt counter.
type VerificationBlockedError struct {
	RetryAfterMinutes int
}

func (e *VerificationBlockedError) Error() string {
	return fmt.Sprintf("verification blocked, retry in %d minutes", e.RetryAfterMinutes)
}

// InvalidCodeError reports a failed comparison and how many attempts remain
// before the block window opens.
type InvalidCodeError struct {
	RemainingAttempts int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code, %d attempts remaining", e.RemainingAttempts)
}

// ResendCooldownError is returned when a resend arrives before the 60-second
// cooldown has elapsed.
type ResendCooldownError struct {
	RetryAfterSeconds int
}

func (e *ResendCooldownError) Error() string {
	return fmt.Sprintf("resend cooldown active, retry in %d seconds", e.RetryAfterSeconds)
}
