package requeststore_test

import (
	"errors"
	"testing"

	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	"github.com/devcollab/devcollab/internal/app/system/indexes"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/devcollab/devcollab/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Send_ForcesPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sent, err := store.Send(ctx, models.JoinRequest{
		UserID:    primitive.NewObjectID(),
		ProjectID: primitive.NewObjectID(),
		Message:   "Let me in",
		Status:    models.RequestAccepted, // caller cannot pre-accept
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if sent.Status != models.RequestPending {
		t.Errorf("expected Pending, got %q", sent.Status)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sent, err := store.Send(ctx, models.JoinRequest{
		UserID:    primitive.NewObjectID(),
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if err := store.Delete(ctx, sent.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, sent.ID); !errors.Is(err, requeststore.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, sent.ID); !errors.Is(err, requeststore.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound on second delete, got %v", err)
	}
}

func TestStore_Send_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	req := models.JoinRequest{
		UserID:    primitive.NewObjectID(),
		ProjectID: primitive.NewObjectID(),
	}
	if _, err := store.Send(ctx, req); err != nil {
		t.Fatalf("first Send failed: %v", err)
	}
	if _, err := store.Send(ctx, req); !errors.Is(err, requeststore.ErrDuplicateRequest) {
		t.Errorf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestStore_UpdateStatus_ReturnsPrevious(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sent, err := store.Send(ctx, models.JoinRequest{
		UserID:    primitive.NewObjectID(),
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	previous, err := store.UpdateStatus(ctx, sent.ID, models.RequestAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if previous != models.RequestPending {
		t.Errorf("expected previous Pending, got %q", previous)
	}

	// A second accept reports Accepted as the previous status, which is
	// what keeps the accept side effects from firing twice.
	previous, err = store.UpdateStatus(ctx, sent.ID, models.RequestAccepted)
	if err != nil {
		t.Fatalf("second UpdateStatus failed: %v", err)
	}
	if previous != models.RequestAccepted {
		t.Errorf("expected previous Accepted, got %q", previous)
	}
}

func TestStore_UpdateStatus_BadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.UpdateStatus(ctx, primitive.NewObjectID(), "Eaten")
	if !errors.Is(err, requeststore.ErrBadStatus) {
		t.Errorf("expected ErrBadStatus, got %v", err)
	}
}

func TestStore_UpdateStatus_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.RequestRejected)
	if !errors.Is(err, requeststore.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestStore_FindByUserAndProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()
	if _, err := store.Send(ctx, models.JoinRequest{UserID: userID, ProjectID: projectID}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	got, err := store.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		t.Fatalf("FindByUserAndProject failed: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("wrong request returned: %+v", got)
	}

	_, err = store.FindByUserAndProject(ctx, userID, primitive.NewObjectID())
	if !errors.Is(err, requeststore.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}
