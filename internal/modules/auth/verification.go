package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

var codeRegex = regexp.MustCompile(`^\d{6}$`)

// VerifyEmail checks a submitted code against the hash stored on the user
// row and returns the verified user on success. Outcomes are checked
// strictly in this order: unknown user, already verified, block window open,
// no active code, expired, mismatch, match. An expired or missing code is
// reported before any hash comparison runs.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*domain.User, error) {
	if !codeRegex.MatchString(code) {
		return nil, ErrInvalidCodeFormat
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.EmailVerified {
		return nil, ErrAlreadyVerified
	}

	now := time.Now()
	v := user.Verification

	if v.Blocked(now) {
		return nil, &VerificationBlockedError{RetryAfterMinutes: minutesUntil(*v.BlockedUntil, now)}
	}

	if !v.HasActiveCode() {
		return nil, ErrNoActiveCode
	}
	if !v.ExpiresAt.After(now) {
		return nil, ErrCodeExpired
	}

	if hashVerificationCode(code, s.cfg.VerificationCodePepper) != v.CodeHash {
		v.Attempts++
		if v.Attempts >= s.cfg.VerifyMaxAttempts {
			// entering the block window resets the counter; after the
			// window closes the user gets a fresh set of attempts
			blockedUntil := now.Add(s.cfg.VerifyBlockWindow)
			v.Attempts = 0
			v.BlockedUntil = &blockedUntil
			if err := s.users.UpdateVerification(ctx, user.ID, v, false); err != nil {
				return nil, err
			}
			return nil, &VerificationBlockedError{RetryAfterMinutes: minutesUntil(blockedUntil, now)}
		}
		if err := s.users.UpdateVerification(ctx, user.ID, v, false); err != nil {
			return nil, err
		}
		return nil, &InvalidCodeError{RemainingAttempts: s.cfg.VerifyMaxAttempts - v.Attempts}
	}

	// clearing the state makes the code single-use: a replay finds no
	// active code
	if err := s.users.UpdateVerification(ctx, user.ID, domain.VerificationState{}, true); err != nil {
		return nil, err
	}
	user.EmailVerified = true
	user.Verification = domain.VerificationState{}
	user.PasswordHash = ""
	return user, nil
}

// ResendVerification issues a fresh code. Its only precondition is the
// resend cooldown (retryAfter in seconds); a successful resend resets the
// attempt counter and lifts any open block, since the old code those
// attempts were burned on is replaced. The state is advanced before
// dispatch, so an SMTP failure surfaces as an error but never hands out a
// free retry under cooldown.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	now := time.Now()
	v := user.Verification

	if v.LastSentAt != nil {
		cooldownUntil := v.LastSentAt.Add(s.cfg.VerifyResendCooldown)
		if cooldownUntil.After(now) {
			return &ResendCooldownError{RetryAfterSeconds: secondsUntil(cooldownUntil, now)}
		}
	}

	code, err := s.issueVerificationCode(ctx, user, now)
	if err != nil {
		return err
	}
	if mailErr := s.mailer.SendVerificationCode(ctx, user.Email, code); mailErr != nil {
		return fmt.Errorf("%w: %v", ErrMailDispatch, mailErr)
	}
	return nil
}

// issueVerificationCode generates a code, stores only its hash on the user
// row and resets the attempt/block state. The plaintext is returned to the
// caller for dispatch and exists nowhere else.
func (s *Service) issueVerificationCode(ctx context.Context, user *domain.User, now time.Time) (string, error) {
	code, err := generateVerificationCode()
	if err != nil {
		return "", err
	}

	expiresAt := now.Add(s.cfg.VerifyCodeTTL)
	sentAt := now
	state := domain.VerificationState{
		CodeHash:   hashVerificationCode(code, s.cfg.VerificationCodePepper),
		ExpiresAt:  &expiresAt,
		Attempts:   0,
		LastSentAt: &sentAt,
	}
	if err := s.users.UpdateVerification(ctx, user.ID, state, false); err != nil {
		return "", err
	}
	user.Verification = state
	return code, nil
}

// generateVerificationCode returns 6 decimal digits, leading zeros kept.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashVerificationCode(code, pepper string) string {
	h := sha256.Sum256([]byte(code + pepper))
	return hex.EncodeToString(h[:])
}

func minutesUntil(t, now time.Time) int {
	d := t.Sub(now)
	m := int((d + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	return m
}

func secondsUntil(t, now time.Time) int {
	d := t.Sub(now)
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
