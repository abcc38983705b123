package models_test

import (
	"testing"

	"github.com/devcollab/devcollab/internal/domain/models"
)

func TestProject_Normalize_Defaults(t *testing.T) {
	var p models.Project
	p.Normalize()

	if p.Status != models.ProjectOpen {
		t.Errorf("expected default Open, got %q", p.Status)
	}
	if p.Languages == nil {
		t.Error("expected non-nil languages slice")
	}
	if !p.IsOpen() {
		t.Error("normalized zero project should read as open")
	}
}

func TestJoinRequest_Normalize_Defaults(t *testing.T) {
	var r models.JoinRequest
	r.Normalize()

	if r.Status != models.RequestPending {
		t.Errorf("expected default Pending, got %q", r.Status)
	}
}

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []string{models.RequestPending, models.RequestAccepted, models.RequestRejected} {
		if !models.ValidRequestStatus(s) {
			t.Errorf("expected %q valid", s)
		}
	}
	for _, s := range []string{"", "pending", "Aceptada", "Done"} {
		if models.ValidRequestStatus(s) {
			t.Errorf("expected %q invalid", s)
		}
	}
}

func TestUser_Normalize(t *testing.T) {
	var u models.User
	u.Normalize()
	if u.Languages == nil {
		t.Error("expected non-nil languages slice")
	}
}
