package sessionstore_test

import (
	"errors"
	"testing"
	"time"

	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	"github.com/devcollab/devcollab/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	sess, err := store.Create(ctx, userID, time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("wrong user on session")
	}
}

func TestStore_GetByID_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sess, err := store.Create(ctx, primitive.NewObjectID(), -time.Minute)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetByID(ctx, sess.ID); !errors.Is(err, sessionstore.ErrSessionNotFound) {
		t.Errorf("expected expired session to read as not found, got %v", err)
	}
}

func TestStore_DeleteByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	s1, _ := store.Create(ctx, userID, time.Hour)
	s2, _ := store.Create(ctx, userID, time.Hour)
	other, _ := store.Create(ctx, primitive.NewObjectID(), time.Hour)

	if err := store.DeleteByUser(ctx, userID); err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}

	for _, id := range []primitive.ObjectID{s1.ID, s2.ID} {
		if _, err := store.GetByID(ctx, id); !errors.Is(err, sessionstore.ErrSessionNotFound) {
			t.Errorf("expected session %s revoked", id.Hex())
		}
	}
	if _, err := store.GetByID(ctx, other.ID); err != nil {
		t.Errorf("other user's session must survive: %v", err)
	}
}

func TestStore_DeleteExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, primitive.NewObjectID(), -time.Minute); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	live, err := store.Create(ctx, primitive.NewObjectID(), time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := store.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 purged session, got %d", count)
	}
	if _, err := store.GetByID(ctx, live.ID); err != nil {
		t.Errorf("live session must survive: %v", err)
	}
}
