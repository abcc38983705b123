package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	credentialstore "github.com/devcollab/devcollab/internal/app/store/credentials"
	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	userstore "github.com/devcollab/devcollab/internal/app/store/users"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/system/mailer"
	"github.com/devcollab/devcollab/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingSender captures outbound mail instead of posting it.
type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []mailer.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Email(nil), r.sent...)
}

func (r *recordingSender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func newTestService(t *testing.T) (*auth.Service, *recordingSender) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mail := &recordingSender{}
	svc := auth.NewService(
		credentialstore.New(db),
		userstore.New(db),
		sessionstore.New(db),
		auth.NewTokens("test-secret", time.Hour),
		mail,
		"https://devcollab.test",
		zap.NewNop(),
	)
	return svc, mail
}

func registerInput() auth.RegisterInput {
	return auth.RegisterInput{
		Name:        "Ada",
		Email:       "ada@example.com",
		Password:    "hunter22",
		Languages:   []string{"Go", "Rust"},
		Description: "Evenings and weekends",
	}
}

func TestService_Register_RoundTripsProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, user.Languages)

	token, _, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, []string{"Go", "Rust"}, got.Languages)
	assert.Equal(t, "Evenings and weekends", got.Description)
}

func TestService_Register_Validation(t *testing.T) {
	svc, mail := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := registerInput()
	in.Languages = nil
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, inputval.ErrNoLanguages)

	in = registerInput()
	in.Name = "   "
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, inputval.ErrNameRequired)

	assert.Empty(t, mail.messages(), "failed registrations must not send mail")
}

func TestService_ResendVerification(t *testing.T) {
	svc, mail := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	require.Len(t, mail.messages(), 1, "register sends the verification email")

	mail.reset()
	require.NoError(t, svc.ResendVerification(ctx, "ada@example.com"))
	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "ada@example.com", msgs[0].To)

	// Unknown addresses succeed silently and send nothing.
	mail.reset()
	require.NoError(t, svc.ResendVerification(ctx, "nobody@example.com"))
	assert.Empty(t, mail.messages())
}
