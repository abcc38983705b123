// internal/app/system/notify/notify.go
package notify

import (
	"context"

	"github.com/devcollab/devcollab/internal/app/system/mailer"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserGetter resolves a user ID to its profile.
type UserGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ProjectGetter resolves a project ID to its document.
type ProjectGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
}

// AcceptNotifier sends the pair of contact-exchange emails when a join
// request transitions into Accepted. It runs after the status write; a
// delivery failure is logged and never rolls the status back.
type AcceptNotifier struct {
	users    UserGetter
	projects ProjectGetter
	mail     mailer.Sender
	log      *zap.Logger
}

func NewAcceptNotifier(users UserGetter, projects ProjectGetter, mail mailer.Sender, logger *zap.Logger) *AcceptNotifier {
	return &AcceptNotifier{users: users, projects: projects, mail: mail, log: logger}
}

// StatusChanged inspects a request-status transition and fires the
// accept emails when, and only when, the status moved into Accepted.
// Re-accepting an already-accepted request does nothing, so the pair of
// emails is sent at most once per request.
func (n *AcceptNotifier) StatusChanged(ctx context.Context, req models.JoinRequest, previous, current string) {
	if previous == models.RequestAccepted || current != models.RequestAccepted {
		return
	}
	n.sendAcceptPair(ctx, req)
}

func (n *AcceptNotifier) sendAcceptPair(ctx context.Context, req models.JoinRequest) {
	project, err := n.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		n.log.Warn("accept notification skipped, project lookup failed",
			zap.String("request_id", req.ID.Hex()),
			zap.Error(err))
		return
	}
	requester, err := n.users.GetByID(ctx, req.UserID)
	if err != nil {
		n.log.Warn("accept notification skipped, requester lookup failed",
			zap.String("request_id", req.ID.Hex()),
			zap.Error(err))
		return
	}
	creator, err := n.users.GetByID(ctx, project.CreatorID)
	if err != nil {
		n.log.Warn("accept notification skipped, creator lookup failed",
			zap.String("request_id", req.ID.Hex()),
			zap.Error(err))
		return
	}

	toCreator := mailer.BuildCreatorAcceptEmail(mailer.AcceptEmailData{
		RecipientName: creator.Name,
		OtherName:     requester.Name,
		OtherEmail:    requester.Email,
		ProjectName:   project.Name,
	})
	toCreator.To = creator.Email
	if err := n.mail.Send(ctx, toCreator); err != nil {
		n.log.Warn("creator accept email failed",
			zap.String("request_id", req.ID.Hex()),
			zap.Error(err))
	}

	toRequester := mailer.BuildRequesterAcceptEmail(mailer.AcceptEmailData{
		RecipientName: requester.Name,
		OtherName:     creator.Name,
		OtherEmail:    creator.Email,
		ProjectName:   project.Name,
	})
	toRequester.To = requester.Email
	if err := n.mail.Send(ctx, toRequester); err != nil {
		n.log.Warn("requester accept email failed",
			zap.String("request_id", req.ID.Hex()),
			zap.Error(err))
	}
}
