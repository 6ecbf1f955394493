package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/passhash"
	"github.com/travelswift/booking-system/pkg/validator"
)

// Deterministic sentinels for the failure paths. In a real deployment
// the email check is a uniqueness lookup and the password check is a
// credential comparison; the mock verifier keeps the contracts intact.
const (
	SentinelTakenEmail  = "taken@example.com"
	SentinelBadPassword = "fail"

	demoName  = "Demo User"
	demoPhone = "9876543210"
)

// Verifier drives the signup -> one-time-code -> verified flow and the
// direct login path.
type Verifier struct {
	codes CodeStore
	log   logger.Logger
}

func NewVerifier(codes CodeStore, log logger.Logger) *Verifier {
	return &Verifier{
		codes: codes,
		log:   log,
	}
}

// BeginSignup validates the draft and stages a one-time code for the
// pending identity. The session is not created here: the caller holds
// the returned profile as pending until SubmitCode succeeds.
func (s *Verifier) BeginSignup(ctx context.Context, draft *models.SignupDraft) (*models.UserProfile, error) {
	ctx = wrap.WithAction(ctx, "begin_signup")
	draft.Normalize()

	if draft.Name == "" || draft.Email == "" || draft.Phone == "" || draft.Password == "" {
		return nil, wrap.Error(ctx, types.ErrValidationFailed)
	}

	if draft.Email == SentinelTakenEmail {
		return nil, wrap.Error(ctx, types.ErrEmailAlreadyExists)
	}

	hash, err := passhash.HashPassword(draft.Password)
	if err != nil {
		s.log.Error(ctx, "failed to hash signup password", err)
		return nil, wrap.Error(ctx, ErrUnexpected)
	}

	pending := &models.UserProfile{
		Name:  draft.Name,
		Email: draft.Email,
		Phone: draft.Phone,
	}
	pending.SetPassword(hash)

	code, err := s.codes.Stage(ctx, pending.Email)
	if err != nil {
		s.log.Error(ctx, "failed to stage verification code", err)
		return nil, wrap.Error(ctx, ErrUnexpected)
	}

	// Delivery is out of scope: the code is logged, never sent.
	s.log.Info(ctx, "verification code staged", "email", pending.Email, "code", code)

	return pending, nil
}

// SubmitCode checks a one-time code against the pending identity. The
// code must be exactly 6 digits before any comparison happens; a wrong
// code leaves the staged code valid so the user may retry.
func (s *Verifier) SubmitCode(ctx context.Context, pending *models.UserProfile, code string) (*models.UserProfile, error) {
	ctx = wrap.WithAction(ctx, "submit_code")

	if pending == nil {
		return nil, wrap.Error(ctx, types.ErrNoPendingSignup)
	}

	if !validator.Matches(code, validator.CodeRX) {
		return nil, wrap.Error(ctx, types.ErrCodeFormat)
	}

	if err := s.codes.Verify(ctx, pending.Email, code); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return pending, nil
}

// Login authenticates an identifier/password pair. The identifier may
// be an email or a phone-like string; when it has no email shape a
// demo address is derived from its first characters.
func (s *Verifier) Login(ctx context.Context, identifier, password string) (*models.UserProfile, error) {
	ctx = wrap.WithAction(ctx, "login_user")

	if identifier == "" || password == "" {
		return nil, wrap.Error(ctx, types.ErrValidationFailed)
	}

	if strings.EqualFold(password, SentinelBadPassword) {
		return nil, wrap.Error(ctx, types.ErrInvalidCredentials)
	}

	user := &models.UserProfile{Name: demoName}
	if strings.Contains(identifier, "@") {
		user.Email = strings.ToLower(identifier)
		user.Phone = demoPhone
	} else {
		prefix := identifier
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
		user.Email = fmt.Sprintf("user-%s@example.com", prefix)
		user.Phone = identifier
	}

	return user, nil
}
