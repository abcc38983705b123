// internal/app/usecase/profile.go
package usecase

import (
	"context"

	userstore "github.com/devcollab/devcollab/internal/app/store/users"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileRepo is the profile-store surface the profile use case needs
// beyond reads.
type ProfileRepo interface {
	UserRepo
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd userstore.ProfileUpdate) error
}

// Profile bundles the own-profile operations.
type Profile struct {
	users ProfileRepo
}

func NewProfile(users ProfileRepo) *Profile {
	return &Profile{users: users}
}

// Update validates and saves the user's editable profile fields. Email
// is not part of the update; callers keep showing the email they
// already hold.
func (u *Profile) Update(ctx context.Context, userID primitive.ObjectID, in inputval.ProfileInput) error {
	if err := inputval.ValidateProfile(in); err != nil {
		return err
	}
	return u.users.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		Name:        inputval.Sanitize(in.Name),
		Description: inputval.Sanitize(in.Description),
		Languages:   in.Languages,
	})
}
