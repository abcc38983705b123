package usecase_test

import (
	"context"
	"sync"

	participantstore "github.com/devcollab/devcollab/internal/app/store/participants"
	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repo fakes. They mirror the store contracts closely enough
// for the orchestration rules under test.

type memProjects struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]models.Project
}

func newMemProjects() *memProjects {
	return &memProjects{projects: map[primitive.ObjectID]models.Project{}}
}

func (m *memProjects) List(context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProjects) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, projectstore.ErrProjectNotFound
}

func (m *memProjects) Create(_ context.Context, p models.Project) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.Status = models.ProjectOpen
	p.Normalize()
	m.projects[p.ID] = p
	return p, nil
}

func (m *memProjects) Update(_ context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return projectstore.ErrProjectNotFound
	}
	m.projects[p.ID] = p
	return nil
}

func (m *memProjects) Close(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return projectstore.ErrProjectNotFound
	}
	p.Status = models.ProjectClosed
	m.projects[id] = p
	return nil
}

func (m *memProjects) Reopen(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return projectstore.ErrProjectNotFound
	}
	p.Status = models.ProjectOpen
	m.projects[id] = p
	return nil
}

func (m *memProjects) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return projectstore.ErrProjectNotFound
	}
	if p.Status != models.ProjectClosed {
		return projectstore.ErrProjectNotClosed
	}
	delete(m.projects, id)
	return nil
}

func (m *memProjects) CountByCreator(_ context.Context, creatorID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.projects {
		if p.CreatorID == creatorID {
			n++
		}
	}
	return n, nil
}

func (m *memProjects) GetDetails(ctx context.Context, id primitive.ObjectID) projectstore.ProjectDetails {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return projectstore.ProjectDetails{Name: "Unknown"}
	}
	return projectstore.ProjectDetails{Name: p.Name, IsOpen: p.IsOpen(), Found: true}
}

type memRequests struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]models.JoinRequest
}

func newMemRequests() *memRequests {
	return &memRequests{requests: map[primitive.ObjectID]models.JoinRequest{}}
}

func (m *memRequests) Send(_ context.Context, r models.JoinRequest) (models.JoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.requests {
		if existing.UserID == r.UserID && existing.ProjectID == r.ProjectID {
			return models.JoinRequest{}, requeststore.ErrDuplicateRequest
		}
	}
	r.ID = primitive.NewObjectID()
	r.Status = models.RequestPending
	m.requests[r.ID] = r
	return r, nil
}

func (m *memRequests) GetByID(_ context.Context, id primitive.ObjectID) (*models.JoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, requeststore.ErrRequestNotFound
}

func (m *memRequests) ListByProject(_ context.Context, projectID primitive.ObjectID) ([]models.JoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.JoinRequest
	for _, r := range m.requests {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequests) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.JoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.JoinRequest
	for _, r := range m.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequests) FindByUserAndProject(_ context.Context, userID, projectID primitive.ObjectID) (*models.JoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.UserID == userID && r.ProjectID == projectID {
			cp := r
			return &cp, nil
		}
	}
	return nil, requeststore.ErrRequestNotFound
}

func (m *memRequests) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (string, error) {
	if !models.ValidRequestStatus(status) {
		return "", requeststore.ErrBadStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return "", requeststore.ErrRequestNotFound
	}
	previous := r.Status
	r.Status = status
	m.requests[id] = r
	return previous, nil
}

func (m *memRequests) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return requeststore.ErrRequestNotFound
	}
	delete(m.requests, id)
	return nil
}

func (m *memRequests) DeleteByProject(_ context.Context, projectID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.requests {
		if r.ProjectID == projectID {
			delete(m.requests, id)
		}
	}
	return nil
}

type pair struct{ user, project primitive.ObjectID }

type memParticipants struct {
	mu    sync.Mutex
	links map[pair]bool
}

func newMemParticipants() *memParticipants {
	return &memParticipants{links: map[pair]bool{}}
}

func (m *memParticipants) Add(_ context.Context, userID, projectID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pair{userID, projectID}
	if m.links[k] {
		return participantstore.ErrAlreadyParticipant
	}
	m.links[k] = true
	return nil
}

func (m *memParticipants) Remove(_ context.Context, userID, projectID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links, pair{userID, projectID})
	return nil
}

func (m *memParticipants) Exists(_ context.Context, userID, projectID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[pair{userID, projectID}], nil
}

func (m *memParticipants) ListByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Participant
	for k := range m.links {
		if k.project == projectID {
			out = append(out, models.Participant{UserID: k.user, ProjectID: k.project})
		}
	}
	return out, nil
}

func (m *memParticipants) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Participant
	for k := range m.links {
		if k.user == userID {
			out = append(out, models.Participant{UserID: k.user, ProjectID: k.project})
		}
	}
	return out, nil
}

func (m *memParticipants) DeleteByProject(_ context.Context, projectID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.links {
		if k.project == projectID {
			delete(m.links, k)
		}
	}
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[primitive.ObjectID]models.User{}}
}

func (m *memUsers) put(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

// transitionRecorder captures StatusChanged calls.
type transitionRecorder struct {
	mu    sync.Mutex
	calls []struct{ previous, current string }
}

func (r *transitionRecorder) StatusChanged(_ context.Context, _ models.JoinRequest, previous, current string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, struct{ previous, current string }{previous, current})
}
