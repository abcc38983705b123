// internal/app/usecase/requests.go
package usecase

import (
	"context"
	"errors"

	participantstore "github.com/devcollab/devcollab/internal/app/store/participants"
	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrOwnProject is returned when a creator tries to request to join
	// their own project.
	ErrOwnProject = errors.New("you cannot request to join your own project")

	// ErrProjectClosed is returned when a request targets a closed
	// project.
	ErrProjectClosed = errors.New("this project is closed")

	// ErrAlreadyDecided is returned when a creator responds to a request
	// that is no longer pending. Decisions are final.
	ErrAlreadyDecided = errors.New("this request has already been decided")

	// ErrNotRequester is returned when someone other than the sender
	// tries to withdraw a request.
	ErrNotRequester = errors.New("only the sender can withdraw a request")
)

// Requests bundles the join-request operations.
type Requests struct {
	requests     RequestRepo
	projects     ProjectRepo
	participants ParticipantRepo
	listener     StatusListener
}

func NewRequests(requests RequestRepo, projects ProjectRepo, participants ParticipantRepo, listener StatusListener) *Requests {
	return &Requests{
		requests:     requests,
		projects:     projects,
		participants: participants,
		listener:     listener,
	}
}

// Send files a join request against an open project. The stored status
// is always Pending.
func (u *Requests) Send(ctx context.Context, userID, projectID primitive.ObjectID, message string) (*models.JoinRequest, error) {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID == userID {
		return nil, ErrOwnProject
	}
	if !project.IsOpen() {
		return nil, ErrProjectClosed
	}

	req, err := u.requests.Send(ctx, models.JoinRequest{
		UserID:    userID,
		ProjectID: projectID,
		Message:   inputval.Sanitize(message),
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Respond sets a request's status on behalf of the project creator.
// The only legal transitions are Pending to Accepted and Pending to
// Rejected; anything else is refused before the write. Accepting also
// links the requester as a participant and fires the contact-exchange
// notification, keyed off the stored previous status so the listener
// never sees a repeated accept.
func (u *Requests) Respond(ctx context.Context, creatorID, requestID primitive.ObjectID, status string) error {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return requeststore.ErrBadStatus
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	project, err := u.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	if project.CreatorID != creatorID {
		return ErrNotCreator
	}
	if req.Status != models.RequestPending {
		return ErrAlreadyDecided
	}

	previous, err := u.requests.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return err
	}

	if status == models.RequestAccepted && previous != models.RequestAccepted {
		err := u.participants.Add(ctx, req.UserID, req.ProjectID)
		// A duplicate link means an earlier accept already ran.
		if err != nil && !errors.Is(err, participantstore.ErrAlreadyParticipant) {
			return err
		}
	}

	if u.listener != nil {
		u.listener.StatusChanged(ctx, *req, previous, status)
	}
	return nil
}

// Withdraw removes the requester's own request. Withdrawing an
// accepted request also removes the participant link, so this is how a
// requester undoes a membership from their side.
func (u *Requests) Withdraw(ctx context.Context, userID, requestID primitive.ObjectID) error {
	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return ErrNotRequester
	}
	if err := u.requests.Delete(ctx, requestID); err != nil {
		return err
	}
	if req.Status == models.RequestAccepted {
		return u.participants.Remove(ctx, userID, req.ProjectID)
	}
	return nil
}

// MyRequests lists the requests a user has sent.
func (u *Requests) MyRequests(ctx context.Context, userID primitive.ObjectID) ([]models.JoinRequest, error) {
	return u.requests.ListByUser(ctx, userID)
}

// ProjectRequests lists the requests for a creator's project.
func (u *Requests) ProjectRequests(ctx context.Context, creatorID, projectID primitive.ObjectID) ([]models.JoinRequest, error) {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != creatorID {
		return nil, ErrNotCreator
	}
	return u.requests.ListByProject(ctx, projectID)
}

// Existing returns the user's request for a project, or
// requeststore.ErrRequestNotFound when there is none.
func (u *Requests) Existing(ctx context.Context, userID, projectID primitive.ObjectID) (*models.JoinRequest, error) {
	return u.requests.FindByUserAndProject(ctx, userID, projectID)
}
