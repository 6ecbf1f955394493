package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	"github.com/travelswift/booking-system/pkg/passhash"
)

func newTestVerifier() *Verifier {
	return NewVerifier(NewMemoryCodeStore(), logger.InitLogger("identity-test", logger.LevelError))
}

func validDraft() *models.SignupDraft {
	return &models.SignupDraft{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "9123456780",
		Password: "s3cret-pw",
	}
}

func TestBeginSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("stages pending identity", func(t *testing.T) {
		v := newTestVerifier()

		pending, err := v.BeginSignup(ctx, validDraft())
		require.NoError(t, err)
		require.NotNil(t, pending)

		assert.Equal(t, "Asha Verma", pending.Name)
		assert.Equal(t, "asha@example.com", pending.Email)
		assert.Equal(t, "9123456780", pending.Phone)
	})

	t.Run("hashes password instead of storing it", func(t *testing.T) {
		v := newTestVerifier()

		pending, err := v.BeginSignup(ctx, validDraft())
		require.NoError(t, err)

		require.NotEqual(t, "s3cret-pw", pending.GetPassword())
		ok, err := passhash.VerifyPassword("s3cret-pw", pending.GetPassword())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		v := newTestVerifier()

		draft := validDraft()
		draft.Email = "   "

		_, err := v.BeginSignup(ctx, draft)
		assert.ErrorIs(t, err, types.ErrValidationFailed)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		v := newTestVerifier()

		draft := validDraft()
		draft.Email = "taken@example.com"

		_, err := v.BeginSignup(ctx, draft)
		assert.ErrorIs(t, err, types.ErrEmailAlreadyExists)
	})
}

func TestSubmitCode(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies with the staged code", func(t *testing.T) {
		v := newTestVerifier()

		pending, err := v.BeginSignup(ctx, validDraft())
		require.NoError(t, err)

		user, err := v.SubmitCode(ctx, pending, FixedCode)
		require.NoError(t, err)
		assert.Equal(t, pending.Email, user.Email)
	})

	t.Run("rejects malformed code before comparing", func(t *testing.T) {
		v := newTestVerifier()

		pending, err := v.BeginSignup(ctx, validDraft())
		require.NoError(t, err)

		for _, code := range []string{"", "12345", "1234567", "12345a"} {
			_, err := v.SubmitCode(ctx, pending, code)
			assert.ErrorIs(t, err, types.ErrCodeFormat, "code %q", code)
		}
	})

	t.Run("wrong code keeps staged code valid", func(t *testing.T) {
		v := newTestVerifier()

		pending, err := v.BeginSignup(ctx, validDraft())
		require.NoError(t, err)

		_, err = v.SubmitCode(ctx, pending, "000000")
		require.ErrorIs(t, err, types.ErrInvalidCode)

		_, err = v.SubmitCode(ctx, pending, FixedCode)
		assert.NoError(t, err)
	})

	t.Run("no pending signup", func(t *testing.T) {
		v := newTestVerifier()

		_, err := v.SubmitCode(ctx, nil, FixedCode)
		assert.ErrorIs(t, err, types.ErrNoPendingSignup)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty credentials", func(t *testing.T) {
		v := newTestVerifier()

		_, err := v.Login(ctx, "", "whatever")
		assert.ErrorIs(t, err, types.ErrValidationFailed)

		_, err = v.Login(ctx, "asha@example.com", "")
		assert.ErrorIs(t, err, types.ErrValidationFailed)
	})

	t.Run("declines the failing password", func(t *testing.T) {
		v := newTestVerifier()

		for _, pw := range []string{"fail", "FAIL", "Fail"} {
			_, err := v.Login(ctx, "asha@example.com", pw)
			assert.ErrorIs(t, err, types.ErrInvalidCredentials, "password %q", pw)
		}
	})

	t.Run("email identifier", func(t *testing.T) {
		v := newTestVerifier()

		user, err := v.Login(ctx, "Asha@Example.com", "good-pw")
		require.NoError(t, err)

		assert.Equal(t, "Demo User", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, "9876543210", user.Phone)
	})

	t.Run("phone identifier", func(t *testing.T) {
		v := newTestVerifier()

		user, err := v.Login(ctx, "9123456780", "good-pw")
		require.NoError(t, err)

		assert.Equal(t, "Demo User", user.Name)
		assert.Equal(t, "user-9123@example.com", user.Email)
		assert.Equal(t, "9123456780", user.Phone)
	})
}

func TestMemoryCodeStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCodeStore()

	err := store.Verify(ctx, "nobody@example.com", FixedCode)
	assert.ErrorIs(t, err, types.ErrNoPendingSignup)

	code, err := store.Stage(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, FixedCode, code)

	require.NoError(t, store.Verify(ctx, "asha@example.com", code))

	// A consumed code cannot be replayed.
	err = store.Verify(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, types.ErrNoPendingSignup)
}
