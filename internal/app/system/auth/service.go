// internal/app/system/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"

	credentialstore "github.com/devcollab/devcollab/internal/app/store/credentials"
	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	userstore "github.com/devcollab/devcollab/internal/app/store/users"
	"github.com/devcollab/devcollab/internal/app/system/authutil"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/system/mailer"
	"github.com/devcollab/devcollab/internal/app/system/normalize"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned for a wrong email or password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidEmail is returned when the email fails the syntactic
	// check before any round trip.
	ErrInvalidEmail = errors.New("enter a valid email address")

	// ErrEmailInUse mirrors the credential store error at this layer.
	ErrEmailInUse = credentialstore.ErrEmailInUse

	// ErrUserNotFound is returned when a signed-in token references a
	// profile that no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrInconsistentRegistration is returned when the credential was
	// created but the profile write failed. The account exists but has
	// no profile; sign-in recovers by recreating it.
	ErrInconsistentRegistration = errors.New("registration left account without profile")
)

// Service implements the sign-in, registration, and account flows on
// top of the credential, profile, and session stores.
type Service struct {
	credentials *credentialstore.Store
	users       *userstore.Store
	sessions    *sessionstore.Store
	tokens      *Tokens
	mail        mailer.Sender
	baseURL     string
	log         *zap.Logger
}

func NewService(
	credentials *credentialstore.Store,
	users *userstore.Store,
	sessions *sessionstore.Store,
	tokens *Tokens,
	mail mailer.Sender,
	baseURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		credentials: credentials,
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		mail:        mail,
		baseURL:     baseURL,
		log:         logger,
	}
}

// Login verifies the credentials, opens a session, and returns a signed
// bearer token together with the user's profile.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	cred, err := s.credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, credentialstore.ErrCredentialNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !authutil.CheckPassword(password, cred.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, cred.ID)
	if err != nil {
		// A credential without a profile is the registration
		// half-failure; recreate the profile from the credential.
		user, err = s.recoverProfile(ctx, cred)
		if err != nil {
			return "", nil, err
		}
	}

	sess, err := s.sessions.Create(ctx, cred.ID, s.tokens.TTL())
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Generate(cred.ID.Hex(), sess.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RegisterInput carries the sign-up form. Languages and the
// availability description land on the profile document alongside the
// name, so a fresh account reads back complete.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Languages   []string
	Description string
}

// Register creates a credential and a profile for a new account. The
// two writes are separate documents with no transaction; when the
// profile write fails the credential is left behind and the caller gets
// ErrInconsistentRegistration. Login repairs the profile on the next
// sign-in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !authutil.ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	name := normalize.Name(in.Name)
	if name == "" {
		return nil, inputval.ErrNameRequired
	}
	if len([]rune(name)) > inputval.MaxNameLength {
		return nil, inputval.ErrNameTooLong
	}
	if len(in.Languages) == 0 {
		return nil, inputval.ErrNoLanguages
	}
	desc := inputval.Sanitize(in.Description)
	if len([]rune(desc)) > inputval.MaxDescriptionLength {
		return nil, inputval.ErrDescriptionTooLong
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	userID := primitive.NewObjectID()
	cred, err := s.credentials.Create(ctx, userID, in.Email, hash)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, models.User{
		ID:          userID,
		Name:        name,
		Email:       cred.Email,
		Languages:   in.Languages,
		Description: desc,
	})
	if err != nil {
		s.log.Error("profile write failed after credential create",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		return nil, ErrInconsistentRegistration
	}

	s.sendVerification(ctx, cred, user.Name)
	return &user, nil
}

// CurrentUser resolves a bearer token to a live session and profile.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	sessID, err := primitive.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sess, err := s.sessions.GetByID(ctx, sessID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Logout revokes the session behind the token. An already-invalid
// token logs out cleanly.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	sessID, err := primitive.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sessID)
}

// SendPasswordReset issues a reset token and emails the reset link.
// Unknown emails succeed silently so the endpoint cannot be used to
// probe which addresses exist.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	token, err := s.credentials.SetResetToken(ctx, email)
	if err != nil {
		if errors.Is(err, credentialstore.ErrCredentialNotFound) {
			return nil
		}
		return err
	}

	name := ""
	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		name = user.Name
	}

	msg := mailer.BuildResetEmail(mailer.ResetEmailData{
		Name:     name,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token),
	})
	msg.To = email
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Warn("reset email delivery failed",
			zap.String("email", email),
			zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and stores a new password hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := authutil.ValidatePassword(newPassword); err != nil {
		return err
	}
	cred, err := s.credentials.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	hash, err := authutil.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.credentials.UpdatePassword(ctx, cred.ID, hash)
}

// VerifyEmail consumes a verification token.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	return s.credentials.MarkVerified(ctx, token)
}

// ResendVerification sends the verification email again for an
// unverified account. Verified and unknown accounts succeed silently.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	cred, err := s.credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, credentialstore.ErrCredentialNotFound) {
			return nil
		}
		return err
	}
	if cred.EmailVerified || cred.VerifyToken == "" {
		return nil
	}

	name := ""
	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		name = user.Name
	}
	s.sendVerification(ctx, *cred, name)
	return nil
}

// DeleteAccount removes the credential, profile, and sessions for a
// user. The writes are sequential; a failure partway leaves later
// documents behind, which read as orphans and are harmless.
func (s *Service) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	return s.credentials.Delete(ctx, userID)
}

func (s *Service) recoverProfile(ctx context.Context, cred *models.Credential) (*models.User, error) {
	s.log.Warn("credential without profile, recreating",
		zap.String("user_id", cred.ID.Hex()))
	user := models.User{
		ID:    cred.ID,
		Email: cred.Email,
	}
	user.Normalize()
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &created, nil
}

func (s *Service) sendVerification(ctx context.Context, cred models.Credential, name string) {
	msg := mailer.BuildVerifyEmail(mailer.VerifyEmailData{
		Name:      name,
		VerifyURL: fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, cred.VerifyToken),
	})
	msg.To = cred.Email
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Warn("verification email delivery failed",
			zap.String("email", cred.Email),
			zap.Error(err))
	}
}
