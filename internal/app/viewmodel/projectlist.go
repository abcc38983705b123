// internal/app/viewmodel/projectlist.go
package viewmodel

import (
	"context"
	"sync"

	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.uber.org/zap"
)

// ProjectListState is the published browse-screen state.
type ProjectListState struct {
	Projects []models.Project
	Loading  bool
}

// ProjectListVM backs the browse screen.
type ProjectListVM struct {
	mu    sync.Mutex
	state ProjectListState

	projects   *usecase.Projects
	dispatcher *Dispatcher
	toasts     *toast.Manager
	ctx        context.Context
	log        *zap.Logger
	onChange   func(ProjectListState)
}

func NewProjectListVM(ctx context.Context, projects *usecase.Projects, d *Dispatcher, toasts *toast.Manager, logger *zap.Logger, onChange func(ProjectListState)) *ProjectListVM {
	return &ProjectListVM{
		projects:   projects,
		dispatcher: d,
		toasts:     toasts,
		ctx:        ctx,
		log:        logger,
		onChange:   onChange,
	}
}

// State returns a copy of the published state. The projects slice is
// shared; callers treat it as read-only.
func (vm *ProjectListVM) State() ProjectListState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Refresh reloads the project list asynchronously. On failure the
// previous list stays on screen under an error toast.
func (vm *ProjectListVM) Refresh() {
	vm.mu.Lock()
	vm.state.Loading = true
	state := vm.state
	vm.mu.Unlock()
	vm.publish(state)

	go func() {
		list, err := vm.projects.Browse(vm.ctx)
		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state.Projects = list
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.log.Warn("project list refresh failed", zap.Error(err))
				vm.toasts.Show("Could not load projects", toast.Error)
			}
			vm.publish(state)
		})
	}()
}

func (vm *ProjectListVM) publish(state ProjectListState) {
	if vm.onChange != nil {
		vm.onChange(state)
	}
}
