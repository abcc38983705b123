// internal/app/viewmodel/projectdetail.go
package viewmodel

import (
	"context"
	"errors"
	"sync"

	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProjectDetailState is the published detail-screen state for one
// project.
type ProjectDetailState struct {
	Project *models.Project
	Members []usecase.Member

	// Creator is the creator's public card, degraded to a placeholder
	// when the profile is gone.
	Creator usecase.CreatorProfile

	// MyRequest is the viewer's own join request, nil if none.
	MyRequest *models.JoinRequest
	IsMember  bool
	IsCreator bool

	Loading bool
	Gone    bool
}

// ProjectDetailVM backs the project detail screen. One instance serves
// one project at a time; Load switches it to a new project.
type ProjectDetailVM struct {
	mu    sync.Mutex
	state ProjectDetailState

	projects     *usecase.Projects
	requests     *usecase.Requests
	participants *usecase.Participants
	dispatcher   *Dispatcher
	toasts       *toast.Manager
	ctx          context.Context
	log          *zap.Logger
	onChange     func(ProjectDetailState)
	onDeleted    func(primitive.ObjectID)
}

func NewProjectDetailVM(
	ctx context.Context,
	projects *usecase.Projects,
	requests *usecase.Requests,
	participants *usecase.Participants,
	d *Dispatcher,
	toasts *toast.Manager,
	logger *zap.Logger,
	onChange func(ProjectDetailState),
	onDeleted func(primitive.ObjectID),
) *ProjectDetailVM {
	return &ProjectDetailVM{
		projects:     projects,
		requests:     requests,
		participants: participants,
		dispatcher:   d,
		toasts:       toasts,
		ctx:          ctx,
		log:          logger,
		onChange:     onChange,
		onDeleted:    onDeleted,
	}
}

// State returns a copy of the published state.
func (vm *ProjectDetailVM) State() ProjectDetailState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Load fetches the project and the viewer's relationship to it. A
// project deleted since the list was drawn publishes Gone instead of
// an error.
func (vm *ProjectDetailVM) Load(viewerID, projectID primitive.ObjectID) {
	vm.mu.Lock()
	vm.state = ProjectDetailState{Loading: true}
	state := vm.state
	vm.mu.Unlock()
	vm.publish(state)

	go func() {
		project, err := vm.projects.Get(vm.ctx, projectID)
		if err != nil {
			vm.dispatcher.Post(func() {
				vm.mu.Lock()
				vm.state = ProjectDetailState{Gone: true}
				state := vm.state
				vm.mu.Unlock()
				if !errors.Is(err, projectstore.ErrProjectNotFound) {
					vm.log.Warn("project detail load failed",
						zap.String("project_id", projectID.Hex()),
						zap.Error(err))
				}
				vm.toasts.Show("This project is no longer available", toast.Info)
				vm.publish(state)
			})
			return
		}

		creator := vm.projects.Creator(vm.ctx, project.CreatorID)

		members, err := vm.participants.Members(vm.ctx, projectID)
		if err != nil {
			vm.log.Warn("member list load failed",
				zap.String("project_id", projectID.Hex()),
				zap.Error(err))
			members = nil
		}

		var myRequest *models.JoinRequest
		if req, err := vm.requests.Existing(vm.ctx, viewerID, projectID); err == nil {
			myRequest = req
		} else if !errors.Is(err, requeststore.ErrRequestNotFound) {
			vm.log.Warn("own request lookup failed",
				zap.String("project_id", projectID.Hex()),
				zap.Error(err))
		}

		isMember, err := vm.participants.IsMember(vm.ctx, viewerID, projectID)
		if err != nil {
			vm.log.Warn("membership lookup failed",
				zap.String("project_id", projectID.Hex()),
				zap.Error(err))
		}

		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state = ProjectDetailState{
				Project:   project,
				Members:   members,
				Creator:   creator,
				MyRequest: myRequest,
				IsMember:  isMember,
				IsCreator: project.CreatorID == viewerID,
			}
			state := vm.state
			vm.mu.Unlock()
			vm.publish(state)
		})
	}()
}

// SendRequest files a join request with an optional message.
func (vm *ProjectDetailVM) SendRequest(viewerID primitive.ObjectID, message string) {
	vm.mu.Lock()
	project := vm.state.Project
	vm.mu.Unlock()
	if project == nil {
		return
	}

	go func() {
		req, err := vm.requests.Send(vm.ctx, viewerID, project.ID, message)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.toasts.Show(sendRequestErrorMessage(err), toast.Error)
				return
			}
			vm.mu.Lock()
			vm.state.MyRequest = req
			state := vm.state
			vm.mu.Unlock()
			vm.toasts.Show("Request sent", toast.Success)
			vm.publish(state)
		})
	}()
}

// CloseProject closes the viewer's own project.
func (vm *ProjectDetailVM) CloseProject(viewerID primitive.ObjectID) {
	vm.mu.Lock()
	project := vm.state.Project
	vm.mu.Unlock()
	if project == nil {
		return
	}

	go func() {
		err := vm.projects.Close(vm.ctx, viewerID, project.ID)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.toasts.Show("Could not close the project", toast.Error)
				return
			}
			vm.mu.Lock()
			if vm.state.Project != nil {
				vm.state.Project.Status = models.ProjectClosed
			}
			state := vm.state
			vm.mu.Unlock()
			vm.toasts.Show("Project closed", toast.Success)
			vm.publish(state)
		})
	}()
}

// ReopenProject flips the viewer's own closed project back to open.
func (vm *ProjectDetailVM) ReopenProject(viewerID primitive.ObjectID) {
	vm.mu.Lock()
	project := vm.state.Project
	vm.mu.Unlock()
	if project == nil {
		return
	}

	go func() {
		err := vm.projects.Reopen(vm.ctx, viewerID, project.ID)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.toasts.Show("Could not reopen the project", toast.Error)
				return
			}
			vm.mu.Lock()
			if vm.state.Project != nil {
				vm.state.Project.Status = models.ProjectOpen
			}
			state := vm.state
			vm.mu.Unlock()
			vm.toasts.Show("Project reopened", toast.Success)
			vm.publish(state)
		})
	}()
}

// DeleteProject removes the viewer's own closed project and its
// dependent documents.
func (vm *ProjectDetailVM) DeleteProject(viewerID primitive.ObjectID) {
	vm.mu.Lock()
	project := vm.state.Project
	vm.mu.Unlock()
	if project == nil {
		return
	}

	go func() {
		err := vm.projects.Delete(vm.ctx, viewerID, project.ID)
		vm.dispatcher.Post(func() {
			if err != nil {
				if errors.Is(err, projectstore.ErrProjectNotClosed) {
					vm.toasts.Show(projectstore.ErrProjectNotClosed.Error(), toast.Error)
				} else {
					vm.toasts.Show("Could not delete the project", toast.Error)
				}
				return
			}
			vm.mu.Lock()
			vm.state = ProjectDetailState{Gone: true}
			state := vm.state
			vm.mu.Unlock()
			vm.toasts.Show("Project deleted", toast.Success)
			vm.publish(state)
			if vm.onDeleted != nil {
				vm.onDeleted(project.ID)
			}
		})
	}()
}

// Leave removes the viewer's own participant link.
func (vm *ProjectDetailVM) Leave(viewerID primitive.ObjectID) {
	vm.mu.Lock()
	project := vm.state.Project
	vm.mu.Unlock()
	if project == nil {
		return
	}

	go func() {
		err := vm.participants.Leave(vm.ctx, viewerID, project.ID)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.toasts.Show("Could not leave the project", toast.Error)
				return
			}
			vm.mu.Lock()
			vm.state.IsMember = false
			members := vm.state.Members[:0]
			for _, m := range vm.state.Members {
				if m.UserID != viewerID {
					members = append(members, m)
				}
			}
			vm.state.Members = members
			state := vm.state
			vm.mu.Unlock()
			vm.toasts.Show("You left the project", toast.Info)
			vm.publish(state)
		})
	}()
}

func (vm *ProjectDetailVM) publish(state ProjectDetailState) {
	if vm.onChange != nil {
		vm.onChange(state)
	}
}

func sendRequestErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrOwnProject),
		errors.Is(err, usecase.ErrProjectClosed),
		errors.Is(err, requeststore.ErrDuplicateRequest):
		return err.Error()
	default:
		return "Could not send the request. Try again."
	}
}
