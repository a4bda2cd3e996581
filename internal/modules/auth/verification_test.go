package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/jwt"
	"brandmarket/internal/repository"
)

// The verification lifecycle is stateful, so these tests run against a real
// sqlite-backed repository instead of mocks.
func newVerificationEnv(t *testing.T) (*Service, *repository.UserRepository, *captureMailer) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	users := repository.NewUserRepository(db)
	refresh := repository.NewRefreshTokenRepository(db)
	mail := &captureMailer{}
	svc := NewService(users, refresh, nil, jwt.New("test-secret", time.Hour), mail, testConfig())
	return svc, users, mail
}

func signupClient(t *testing.T, svc *Service, email string) *domain.User {
	t.Helper()
	user, _, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Test Client",
		Email:    email,
		Phone:    "+21620123456",
		Password: "securepass123",
		Role:     "client",
	})
	require.NoError(t, err)
	return user
}

// wrongCode returns a valid-format code that differs from the real one.
func wrongCode(code string) string {
	if code == "000000" {
		return "000001"
	}
	return "000000"
}

func shiftLastSent(t *testing.T, users *repository.UserRepository, email string, ago time.Duration) {
	t.Helper()
	u, err := users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	past := time.Now().Add(-ago)
	u.Verification.LastSentAt = &past
	require.NoError(t, users.UpdateVerification(context.Background(), u.ID, u.Verification, u.EmailVerified))
}

func TestVerifyEmail_CodeAcceptedExactlyOnce(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "once@example.tn")
	code := mail.lastCode()
	require.Regexp(t, `^\d{6}$`, code)

	verified, err := svc.VerifyEmail(ctx, "once@example.tn", code)
	require.NoError(t, err)
	require.NotNil(t, verified)
	assert.Equal(t, "once@example.tn", verified.Email)
	assert.True(t, verified.EmailVerified)
	assert.Empty(t, verified.PasswordHash)
	assert.Empty(t, verified.Verification.CodeHash)

	u, err := users.GetByEmail(ctx, "once@example.tn")
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
	assert.Empty(t, u.Verification.CodeHash)

	// replaying the same code hits the already-verified branch
	_, err = svc.VerifyEmail(ctx, "once@example.tn", code)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyEmail_UnknownEmail(t *testing.T) {
	svc, _, _ := newVerificationEnv(t)
	_, err := svc.VerifyEmail(context.Background(), "ghost@example.tn", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyEmail_NoActiveCode(t *testing.T) {
	svc, users, _ := newVerificationEnv(t)
	ctx := context.Background()

	u := domain.NewClient("bare@example.tn", "hash", "B", "+21620123456")
	require.NoError(t, users.Create(ctx, u))

	_, err := svc.VerifyEmail(ctx, "bare@example.tn", "123456")
	assert.ErrorIs(t, err, ErrNoActiveCode)
}

func TestVerifyEmail_BadFormatRejected(t *testing.T) {
	svc, _, _ := newVerificationEnv(t)
	_, err := svc.VerifyEmail(context.Background(), "x@example.tn", "12345")
	assert.ErrorIs(t, err, ErrInvalidCodeFormat)
	_, err = svc.VerifyEmail(context.Background(), "x@example.tn", "abcdef")
	assert.ErrorIs(t, err, ErrInvalidCodeFormat)
}

func TestVerifyEmail_FiveWrongCodesOpenBlock(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "block@example.tn")
	code := mail.lastCode()
	bad := wrongCode(code)

	for i := 1; i <= 4; i++ {
		_, err := svc.VerifyEmail(ctx, "block@example.tn", bad)
		var invalid *InvalidCodeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 5-i, invalid.RemainingAttempts)
	}

	// fifth miss opens the 15-minute window and resets the counter
	_, err := svc.VerifyEmail(ctx, "block@example.tn", bad)
	var blocked *VerificationBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, 15, blocked.RetryAfterMinutes)

	u, getErr := users.GetByEmail(ctx, "block@example.tn")
	require.NoError(t, getErr)
	assert.Equal(t, 0, u.Verification.Attempts)
	require.NotNil(t, u.Verification.BlockedUntil)

	// submissions during the window, even with the right code, are
	// rejected and do not touch the counter
	_, err = svc.VerifyEmail(ctx, "block@example.tn", code)
	require.ErrorAs(t, err, &blocked)

	u, getErr = users.GetByEmail(ctx, "block@example.tn")
	require.NoError(t, getErr)
	assert.Equal(t, 0, u.Verification.Attempts)
	assert.False(t, u.EmailVerified)
}

func TestVerifyEmail_FreshAttemptsAfterBlockExpiry(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "expiredblock@example.tn")
	code := mail.lastCode()

	u, err := users.GetByEmail(ctx, "expiredblock@example.tn")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	u.Verification.BlockedUntil = &past
	u.Verification.Attempts = 0
	require.NoError(t, users.UpdateVerification(ctx, u.ID, u.Verification, false))

	_, verr := svc.VerifyEmail(ctx, "expiredblock@example.tn", wrongCode(code))
	var invalid *InvalidCodeError
	require.ErrorAs(t, verr, &invalid)
	assert.Equal(t, 4, invalid.RemainingAttempts)

	// and the correct code still works
	_, err = svc.VerifyEmail(ctx, "expiredblock@example.tn", code)
	assert.NoError(t, err)
}

func TestVerifyEmail_ExpiredCodeNeverCompared(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "expired@example.tn")
	code := mail.lastCode()

	u, err := users.GetByEmail(ctx, "expired@example.tn")
	require.NoError(t, err)
	past := time.Now().Add(-time.Second)
	u.Verification.ExpiresAt = &past
	require.NoError(t, users.UpdateVerification(ctx, u.ID, u.Verification, false))

	// the correct code is rejected as expired, not as a mismatch, and
	// the attempt counter is untouched
	_, err = svc.VerifyEmail(ctx, "expired@example.tn", code)
	assert.ErrorIs(t, err, ErrCodeExpired)

	u, err = users.GetByEmail(ctx, "expired@example.tn")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Verification.Attempts)
}

func TestResend_CooldownRejectsEarlyRequests(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "cooldown@example.tn")

	// 30 seconds after the signup send: still inside the 60s cooldown
	shiftLastSent(t, users, "cooldown@example.tn", 30*time.Second)
	err := svc.ResendVerification(ctx, "cooldown@example.tn")
	var cooldown *ResendCooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Greater(t, cooldown.RetryAfterSeconds, 0)
	assert.LessOrEqual(t, cooldown.RetryAfterSeconds, 60)

	// 61 seconds after: accepted, a new code goes out
	shiftLastSent(t, users, "cooldown@example.tn", 61*time.Second)
	require.NoError(t, svc.ResendVerification(ctx, "cooldown@example.tn"))
	assert.Len(t, mail.codes, 2)

	// the old code is dead, the new one verifies
	newCode := mail.lastCode()
	_, err = svc.VerifyEmail(ctx, "cooldown@example.tn", newCode)
	assert.NoError(t, err)
}

func TestResend_LiftsOpenBlock(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "midblock@example.tn")

	// block window still open, cooldown already elapsed
	u, err := users.GetByEmail(ctx, "midblock@example.tn")
	require.NoError(t, err)
	until := time.Now().Add(10 * time.Minute)
	sent := time.Now().Add(-2 * time.Minute)
	u.Verification.BlockedUntil = &until
	u.Verification.LastSentAt = &sent
	require.NoError(t, users.UpdateVerification(ctx, u.ID, u.Verification, false))

	// the block does not gate resend: a fresh code goes out and the
	// block is gone with it
	require.NoError(t, svc.ResendVerification(ctx, "midblock@example.tn"))

	u, err = users.GetByEmail(ctx, "midblock@example.tn")
	require.NoError(t, err)
	assert.Nil(t, u.Verification.BlockedUntil)
	assert.Equal(t, 0, u.Verification.Attempts)

	// and the replacement code verifies immediately
	_, err = svc.VerifyEmail(ctx, "midblock@example.tn", mail.lastCode())
	assert.NoError(t, err)
}

func TestResend_CooldownStillAppliesWhileBlocked(t *testing.T) {
	svc, users, _ := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "blockedcooldown@example.tn")

	u, err := users.GetByEmail(ctx, "blockedcooldown@example.tn")
	require.NoError(t, err)
	until := time.Now().Add(10 * time.Minute)
	sent := time.Now().Add(-10 * time.Second)
	u.Verification.BlockedUntil = &until
	u.Verification.LastSentAt = &sent
	require.NoError(t, users.UpdateVerification(ctx, u.ID, u.Verification, false))

	err = svc.ResendVerification(ctx, "blockedcooldown@example.tn")
	var cooldown *ResendCooldownError
	require.ErrorAs(t, err, &cooldown)

	// the rejected resend changed nothing: the block is still there
	u, err = users.GetByEmail(ctx, "blockedcooldown@example.tn")
	require.NoError(t, err)
	require.NotNil(t, u.Verification.BlockedUntil)
}

func TestResend_ResetsAttemptsAndClearsExpiredBlock(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "reset@example.tn")

	u, err := users.GetByEmail(ctx, "reset@example.tn")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	sent := time.Now().Add(-2 * time.Minute)
	u.Verification.BlockedUntil = &past
	u.Verification.Attempts = 3
	u.Verification.LastSentAt = &sent
	require.NoError(t, users.UpdateVerification(ctx, u.ID, u.Verification, false))

	require.NoError(t, svc.ResendVerification(ctx, "reset@example.tn"))

	u, err = users.GetByEmail(ctx, "reset@example.tn")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Verification.Attempts)
	assert.Nil(t, u.Verification.BlockedUntil)
	_, err = svc.VerifyEmail(ctx, "reset@example.tn", mail.lastCode())
	assert.NoError(t, err)
}

func TestResend_MailFailureSurfaces(t *testing.T) {
	svc, users, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "smtp@example.tn")
	shiftLastSent(t, users, "smtp@example.tn", 2*time.Minute)

	mail.fail = assert.AnError
	err := svc.ResendVerification(ctx, "smtp@example.tn")
	assert.ErrorIs(t, err, ErrMailDispatch)

	// state advanced anyway: the next resend is under cooldown again
	mail.fail = nil
	err = svc.ResendVerification(ctx, "smtp@example.tn")
	var cooldown *ResendCooldownError
	assert.ErrorAs(t, err, &cooldown)
}

func TestResend_AlreadyVerified(t *testing.T) {
	svc, _, mail := newVerificationEnv(t)
	ctx := context.Background()

	signupClient(t, svc, "done@example.tn")
	_, err := svc.VerifyEmail(ctx, "done@example.tn", mail.lastCode())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResendVerification(ctx, "done@example.tn"), ErrAlreadyVerified)
}
