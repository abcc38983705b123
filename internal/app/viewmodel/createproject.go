// internal/app/viewmodel/createproject.go
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateProjectState is the published create-form state.
type CreateProjectState struct {
	Submitting bool
}

// CreateProjectVM backs the project create form. Validation failures
// and the per-user cap surface as error toasts with the rule text.
type CreateProjectVM struct {
	mu    sync.Mutex
	state CreateProjectState

	projects   *usecase.Projects
	dispatcher *Dispatcher
	toasts     *toast.Manager
	ctx        context.Context
	log        *zap.Logger
	onCreated  func(models.Project)
}

func NewCreateProjectVM(ctx context.Context, projects *usecase.Projects, d *Dispatcher, toasts *toast.Manager, logger *zap.Logger, onCreated func(models.Project)) *CreateProjectVM {
	return &CreateProjectVM{
		projects:   projects,
		dispatcher: d,
		toasts:     toasts,
		ctx:        ctx,
		log:        logger,
		onCreated:  onCreated,
	}
}

// State returns a copy of the published state.
func (vm *CreateProjectVM) State() CreateProjectState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Submit validates and creates the project asynchronously. Double
// taps while a submit is in flight are ignored.
func (vm *CreateProjectVM) Submit(creatorID primitive.ObjectID, in inputval.ProjectInput) {
	vm.mu.Lock()
	if vm.state.Submitting {
		vm.mu.Unlock()
		return
	}
	vm.state.Submitting = true
	vm.mu.Unlock()

	go func() {
		project, err := vm.projects.Create(vm.ctx, creatorID, in)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Submitting = false
			vm.mu.Unlock()

			if err != nil {
				vm.toasts.Show(createErrorMessage(err), toast.Error)
				return
			}
			vm.toasts.Show("Project created", toast.Success)
			if vm.onCreated != nil {
				vm.onCreated(*project)
			}
		})
	}()
}

func createErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrProjectLimit),
		errors.Is(err, inputval.ErrNameRequired),
		errors.Is(err, inputval.ErrNameTooLong),
		errors.Is(err, inputval.ErrDescriptionRequired),
		errors.Is(err, inputval.ErrDescriptionTooLong),
		errors.Is(err, inputval.ErrNoLanguages),
		errors.Is(err, inputval.ErrBadWeeklyHours),
		errors.Is(err, inputval.ErrCollabTypeRequired):
		return err.Error()
	default:
		return "Could not create the project. Try again."
	}
}
