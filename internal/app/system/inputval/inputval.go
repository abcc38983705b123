// internal/app/system/inputval/inputval.go
package inputval

import (
	"errors"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Field length caps shared by the view-models and the HTTP handlers.
const (
	MaxNameLength        = 25
	MaxDescriptionLength = 150
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name must be 25 characters or fewer")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description must be 150 characters or fewer")
	ErrNoLanguages         = errors.New("select at least one language")
	ErrBadWeeklyHours      = errors.New("must be a number greater than 0")
	ErrCollabTypeRequired  = errors.New("collaboration type is required")
)

// sanitizer strips all markup from free-text fields before they are
// persisted. Descriptions and request messages are rendered verbatim on
// other users' devices.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes markup from a free-text value and trims whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

// ProjectInput carries the raw form values for creating or editing a
// project. WeeklyHours stays a string until ValidateProject parses it, so
// "abc" and "0" both surface the same user-facing error.
type ProjectInput struct {
	Name        string
	Description string
	Languages   []string
	WeeklyHours string
	CollabType  string
}

// ValidateProject checks a project form and returns the parsed weekly
// hours. The first failing rule wins; the caller turns the error text
// into a toast.
func ValidateProject(in ProjectInput) (int, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, ErrNameRequired
	}
	if len([]rune(name)) > MaxNameLength {
		return 0, ErrNameTooLong
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return 0, ErrDescriptionRequired
	}
	if len([]rune(desc)) > MaxDescriptionLength {
		return 0, ErrDescriptionTooLong
	}
	if len(in.Languages) == 0 {
		return 0, ErrNoLanguages
	}
	if strings.TrimSpace(in.CollabType) == "" {
		return 0, ErrCollabTypeRequired
	}
	hours, err := strconv.Atoi(strings.TrimSpace(in.WeeklyHours))
	if err != nil || hours <= 0 {
		return 0, ErrBadWeeklyHours
	}
	return hours, nil
}

// ProfileInput carries the raw form values for a profile update.
type ProfileInput struct {
	Name        string
	Description string
	Languages   []string
}

// ValidateProfile checks a profile form.
func ValidateProfile(in ProfileInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > MaxNameLength {
		return ErrNameTooLong
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return ErrDescriptionRequired
	}
	if len([]rune(desc)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(in.Languages) == 0 {
		return ErrNoLanguages
	}
	return nil
}
