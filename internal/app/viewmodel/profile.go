// internal/app/viewmodel/profile.go
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.uber.org/zap"
)

// ProfileState is the published own-profile state.
type ProfileState struct {
	Saving bool
}

// ProfileVM backs the edit-profile screen. Saves go through the
// profile use case; on success the session's published user is rebuilt
// from the form with the email the session already holds, since email
// is not editable here.
type ProfileVM struct {
	mu    sync.Mutex
	state ProfileState

	profile    *usecase.Profile
	session    *SessionVM
	dispatcher *Dispatcher
	toasts     *toast.Manager
	ctx        context.Context
	log        *zap.Logger
}

func NewProfileVM(ctx context.Context, profile *usecase.Profile, session *SessionVM, d *Dispatcher, toasts *toast.Manager, logger *zap.Logger) *ProfileVM {
	return &ProfileVM{
		profile:    profile,
		session:    session,
		dispatcher: d,
		toasts:     toasts,
		ctx:        ctx,
		log:        logger,
	}
}

// State returns a copy of the published state.
func (vm *ProfileVM) State() ProfileState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Save validates and persists the profile form.
func (vm *ProfileVM) Save(in inputval.ProfileInput) {
	user := vm.session.CurrentUser()
	if user == nil {
		return
	}

	vm.mu.Lock()
	if vm.state.Saving {
		vm.mu.Unlock()
		return
	}
	vm.state.Saving = true
	vm.mu.Unlock()

	go func() {
		err := vm.profile.Update(vm.ctx, user.ID, in)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Saving = false
			vm.mu.Unlock()

			if err != nil {
				vm.toasts.Show(profileErrorMessage(err), toast.Error)
				return
			}

			updated := &models.User{
				ID:          user.ID,
				Name:        inputval.Sanitize(in.Name),
				Description: inputval.Sanitize(in.Description),
				Languages:   in.Languages,
				Email:       user.Email,
			}
			updated.Normalize()
			vm.session.SetUser(updated)
			vm.toasts.Show("Profile saved", toast.Success)
		})
	}()
}

func profileErrorMessage(err error) string {
	switch {
	case errors.Is(err, inputval.ErrNameRequired),
		errors.Is(err, inputval.ErrNameTooLong),
		errors.Is(err, inputval.ErrDescriptionRequired),
		errors.Is(err, inputval.ErrDescriptionTooLong),
		errors.Is(err, inputval.ErrNoLanguages):
		return err.Error()
	default:
		return "Could not save your profile. Try again."
	}
}
