// internal/app/viewmodel/requests.go
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RequestRow is one join request resolved for display. When the
// project behind the request has been deleted, the row keeps the
// request with a placeholder project name.
type RequestRow struct {
	Request      models.JoinRequest
	ProjectName  string
	ProjectOpen  bool
	ProjectFound bool
}

// RequestsState is the published state for the requests screens.
type RequestsState struct {
	// Mine are the viewer's own sent requests.
	Mine []RequestRow
	// Incoming are requests for one of the viewer's projects, filled
	// by LoadForProject.
	Incoming []RequestRow
	Loading  bool
}

// RequestsVM backs both the "my requests" screen and the creator's
// per-project review screen.
type RequestsVM struct {
	mu    sync.Mutex
	state RequestsState

	requests   *usecase.Requests
	projects   *usecase.Projects
	users      usecase.UserRepo
	dispatcher *Dispatcher
	toasts     *toast.Manager
	ctx        context.Context
	log        *zap.Logger
	onChange   func(RequestsState)
}

func NewRequestsVM(
	ctx context.Context,
	requests *usecase.Requests,
	projects *usecase.Projects,
	users usecase.UserRepo,
	d *Dispatcher,
	toasts *toast.Manager,
	logger *zap.Logger,
	onChange func(RequestsState),
) *RequestsVM {
	return &RequestsVM{
		requests:   requests,
		projects:   projects,
		users:      users,
		dispatcher: d,
		toasts:     toasts,
		ctx:        ctx,
		log:        logger,
		onChange:   onChange,
	}
}

// State returns a copy of the published state.
func (vm *RequestsVM) State() RequestsState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// LoadMine refreshes the viewer's own sent requests.
func (vm *RequestsVM) LoadMine(viewerID primitive.ObjectID) {
	vm.setLoading(true)
	go func() {
		reqs, err := vm.requests.MyRequests(vm.ctx, viewerID)
		rows := vm.resolveRows(reqs, err)

		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state.Mine = rows
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.log.Warn("own requests load failed", zap.Error(err))
				vm.toasts.Show("Could not load your requests", toast.Error)
			}
			vm.publish(state)
		})
	}()
}

// LoadForProject refreshes the incoming requests for one of the
// viewer's projects.
func (vm *RequestsVM) LoadForProject(viewerID, projectID primitive.ObjectID) {
	vm.setLoading(true)
	go func() {
		reqs, err := vm.requests.ProjectRequests(vm.ctx, viewerID, projectID)
		rows := vm.resolveRows(reqs, err)

		vm.dispatcher.Post(func() {
			vm.mu.Lock()
			vm.state.Loading = false
			if err == nil {
				vm.state.Incoming = rows
			}
			state := vm.state
			vm.mu.Unlock()

			if err != nil {
				vm.log.Warn("project requests load failed",
					zap.String("project_id", projectID.Hex()),
					zap.Error(err))
				vm.toasts.Show("Could not load requests", toast.Error)
			}
			vm.publish(state)
		})
	}()
}

// Respond accepts or rejects an incoming request and updates the row
// in place. Only pending requests can be decided; a stale row surfaces
// the refusal as a toast.
func (vm *RequestsVM) Respond(viewerID, requestID primitive.ObjectID, status string) {
	go func() {
		err := vm.requests.Respond(vm.ctx, viewerID, requestID, status)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.log.Warn("request response failed",
					zap.String("request_id", requestID.Hex()),
					zap.Error(err))
				vm.toasts.Show(respondErrorMessage(err), toast.Error)
				return
			}

			vm.mu.Lock()
			for i := range vm.state.Incoming {
				if vm.state.Incoming[i].Request.ID == requestID {
					vm.state.Incoming[i].Request.Status = status
				}
			}
			state := vm.state
			vm.mu.Unlock()

			if status == models.RequestAccepted {
				vm.toasts.Show("Request accepted", toast.Success)
			} else {
				vm.toasts.Show("Request rejected", toast.Info)
			}
			vm.publish(state)
		})
	}()
}

// Withdraw removes the viewer's own request and drops its row from the
// published list. Withdrawing an accepted request also ends the
// membership.
func (vm *RequestsVM) Withdraw(viewerID, requestID primitive.ObjectID) {
	go func() {
		err := vm.requests.Withdraw(vm.ctx, viewerID, requestID)
		vm.dispatcher.Post(func() {
			if err != nil {
				vm.log.Warn("request withdraw failed",
					zap.String("request_id", requestID.Hex()),
					zap.Error(err))
				vm.toasts.Show("Could not withdraw the request", toast.Error)
				return
			}

			vm.mu.Lock()
			rows := vm.state.Mine[:0]
			for _, row := range vm.state.Mine {
				if row.Request.ID != requestID {
					rows = append(rows, row)
				}
			}
			vm.state.Mine = rows
			state := vm.state
			vm.mu.Unlock()

			vm.toasts.Show("Request withdrawn", toast.Info)
			vm.publish(state)
		})
	}()
}

// resolveRows attaches project display details to each request. A
// deleted project degrades its row instead of failing the list.
func (vm *RequestsVM) resolveRows(reqs []models.JoinRequest, loadErr error) []RequestRow {
	if loadErr != nil {
		return nil
	}
	rows := make([]RequestRow, 0, len(reqs))
	for _, req := range reqs {
		details := vm.projects.Details(vm.ctx, req.ProjectID)
		rows = append(rows, RequestRow{
			Request:      req,
			ProjectName:  details.Name,
			ProjectOpen:  details.IsOpen,
			ProjectFound: details.Found,
		})
	}
	return rows
}

func (vm *RequestsVM) setLoading(v bool) {
	vm.mu.Lock()
	vm.state.Loading = v
	state := vm.state
	vm.mu.Unlock()
	vm.publish(state)
}

func (vm *RequestsVM) publish(state RequestsState) {
	if vm.onChange != nil {
		vm.onChange(state)
	}
}

func respondErrorMessage(err error) string {
	if errors.Is(err, usecase.ErrAlreadyDecided) {
		return err.Error()
	}
	return "Could not update the request"
}
