// internal/app/viewmodel/session.go
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/authutil"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.uber.org/zap"
)

// SessionState is the published sign-in state.
type SessionState struct {
	User    *models.User
	Token   string
	Loading bool
}

// SessionVM owns the signed-in user. Other view-models read the
// current user from here; they never hold their own copy of the token.
type SessionVM struct {
	mu    sync.Mutex
	state SessionState

	svc        *auth.Service
	dispatcher *Dispatcher
	toasts     *toast.Manager
	ctx        context.Context
	log        *zap.Logger
	onChange   func(SessionState)
}

func NewSessionVM(ctx context.Context, svc *auth.Service, d *Dispatcher, toasts *toast.Manager, logger *zap.Logger, onChange func(SessionState)) *SessionVM {
	return &SessionVM{
		svc:        svc,
		dispatcher: d,
		toasts:     toasts,
		ctx:        ctx,
		log:        logger,
		onChange:   onChange,
	}
}

// State returns a copy of the published state.
func (vm *SessionVM) State() SessionState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// CurrentUser returns the signed-in user, or nil.
func (vm *SessionVM) CurrentUser() *models.User {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.User
}

// Login signs in asynchronously. Failures surface as an error toast;
// success publishes the user and token.
func (vm *SessionVM) Login(email, password string) {
	vm.setLoading(true)
	go func() {
		token, user, err := vm.svc.Login(vm.ctx, email, password)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state.User = user
				vm.state.Token = token
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.toasts.Show(loginErrorMessage(err), toast.Error)
				vm.publish(state)
				return
			}
			vm.toasts.Show("Welcome back, "+user.Name, toast.Success)
			vm.publish(state)
		})
	}()
}

// Register creates an account asynchronously and signs the new user in
// on success.
func (vm *SessionVM) Register(in auth.RegisterInput) {
	vm.setLoading(true)
	go func() {
		_, err := vm.svc.Register(vm.ctx, in)
		if err != nil {
			vm.dispatcher.Post(func() {
				vm.setLoading(false)
				vm.toasts.Show(registerErrorMessage(err), toast.Error)
			})
			return
		}

		token, user, err := vm.svc.Login(vm.ctx, in.Email, in.Password)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state.User = user
				vm.state.Token = token
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.toasts.Show("Account created. Please sign in.", toast.Info)
				vm.publish(state)
				return
			}
			vm.toasts.Show("Welcome, "+user.Name, toast.Success)
			vm.publish(state)
		})
	}()
}

// Logout revokes the session and clears the published user.
func (vm *SessionVM) Logout() {
	vm.mu.Lock()
	token := vm.state.Token
	vm.mu.Unlock()

	go func() {
		if err := vm.svc.Logout(vm.ctx, token); err != nil {
			vm.log.Warn("logout failed", zap.Error(err))
		}
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state = SessionState{}
			state := vm.state
			vm.mu.Unlock()
			vm.publish(state)
		})
	}()
}

// DeleteAccount removes the account and signs out.
func (vm *SessionVM) DeleteAccount() {
	vm.mu.Lock()
	user := vm.state.User
	vm.mu.Unlock()
	if user == nil {
		return
	}

	vm.setLoading(true)
	go func() {
		err := vm.svc.DeleteAccount(vm.ctx, user.ID)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state = SessionState{}
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.log.Error("account deletion failed",
					zap.String("user_id", user.ID.Hex()),
					zap.Error(err))
				vm.toasts.Show("Could not delete your account. Try again.", toast.Error)
				vm.publish(state)
				return
			}
			vm.toasts.Show("Account deleted", toast.Info)
			vm.publish(state)
		})
	}()
}

// SendPasswordReset asks for a reset email. The confirmation toast is
// the same whether or not the address exists.
func (vm *SessionVM) SendPasswordReset(email string) {
	go func() {
		if err := vm.svc.SendPasswordReset(vm.ctx, email); err != nil {
			vm.log.Warn("password reset failed", zap.Error(err))
		}
		vm.dispatcher.Post(func() {
			vm.toasts.Show("If that email is registered, a reset link is on its way.", toast.Info)
		})
	}()
}

// SetUser replaces the published user in place. The profile screen
// calls this after a save so the rest of the UI sees the new values.
func (vm *SessionVM) SetUser(user *models.User) {
	vm.mu.Lock()
	vm.state.User = user
	state := vm.state
	vm.mu.Unlock()
	vm.publish(state)
}

func (vm *SessionVM) setLoading(v bool) {
	vm.mu.Lock()
	vm.state.Loading = v
	state := vm.state
	vm.mu.Unlock()
	vm.publish(state)
}

func (vm *SessionVM) publish(state SessionState) {
	if vm.onChange != nil {
		vm.onChange(state)
	}
}

func loginErrorMessage(err error) string {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return auth.ErrInvalidCredentials.Error()
	}
	return "Sign-in failed. Try again."
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, authutil.ErrWeakPassword):
		return authutil.PasswordRules()
	case errors.Is(err, auth.ErrEmailInUse),
		errors.Is(err, auth.ErrInvalidEmail):
		return err.Error()
	case errors.Is(err, auth.ErrInconsistentRegistration):
		return "Something went wrong. Try signing in with your new account."
	default:
		if msg := err.Error(); msg != "" {
			return msg
		}
		return "Registration failed. Try again."
	}
}
