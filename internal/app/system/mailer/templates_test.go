package mailer_test

import (
	"strings"
	"testing"

	"github.com/devcollab/devcollab/internal/app/system/mailer"
)

func TestBuildAcceptEmails_ExchangeContacts(t *testing.T) {
	data := mailer.AcceptEmailData{
		RecipientName: "Carla",
		OtherName:     "Rafa",
		OtherEmail:    "rafa@example.com",
		ProjectName:   "Compiler",
	}

	msg := mailer.BuildCreatorAcceptEmail(data)
	if !strings.Contains(msg.TextBody, "rafa@example.com") {
		t.Error("creator email must carry the collaborator's address")
	}
	if !strings.Contains(msg.HTMLBody, "rafa@example.com") {
		t.Error("HTML body must carry the collaborator's address")
	}
	if !strings.Contains(msg.Subject, "Compiler") {
		t.Errorf("subject should name the project, got %q", msg.Subject)
	}

	data.RecipientName = "Rafa"
	data.OtherName = "Carla"
	data.OtherEmail = "carla@example.com"
	msg = mailer.BuildRequesterAcceptEmail(data)
	if !strings.Contains(msg.TextBody, "carla@example.com") {
		t.Error("requester email must carry the creator's address")
	}
}

func TestBuildAcceptEmail_EscapesHTML(t *testing.T) {
	msg := mailer.BuildCreatorAcceptEmail(mailer.AcceptEmailData{
		RecipientName: "C",
		OtherName:     "<script>x</script>",
		OtherEmail:    "x@example.com",
		ProjectName:   "P",
	})
	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Error("names must be escaped in the HTML body")
	}
}

func TestBuildResetEmail(t *testing.T) {
	msg := mailer.BuildResetEmail(mailer.ResetEmailData{
		Name:     "Ada",
		ResetURL: "https://devcollab.app/reset-password?token=abc",
	})
	if !strings.Contains(msg.TextBody, "https://devcollab.app/reset-password?token=abc") {
		t.Error("reset email must carry the link")
	}
	if msg.Subject == "" {
		t.Error("reset email needs a subject")
	}
}
