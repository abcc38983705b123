// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// AcceptEmailData holds data for the request-accepted notification sent to
// both parties when a project creator accepts a join request.
type AcceptEmailData struct {
	RecipientName string
	OtherName     string
	OtherEmail    string
	ProjectName   string
}

// BuildCreatorAcceptEmail creates the message sent to the project creator
// with the new collaborator's contact email.
func BuildCreatorAcceptEmail(data AcceptEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s joined %s", data.OtherName, data.ProjectName),
		TextBody: buildAcceptText(data, "is now a collaborator on"),
		HTMLBody: buildAcceptHTML(data, "is now a collaborator on"),
	}
}

// BuildRequesterAcceptEmail creates the message sent to the requester with
// the creator's contact email.
func BuildRequesterAcceptEmail(data AcceptEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("You were accepted to %s", data.ProjectName),
		TextBody: buildAcceptText(data, "accepted your request to join"),
		HTMLBody: buildAcceptHTML(data, "accepted your request to join"),
	}
}

// ResetEmailData holds data for the password-reset email.
type ResetEmailData struct {
	Name     string
	ResetURL string
}

// BuildResetEmail creates a password-reset message.
func BuildResetEmail(data ResetEmailData) Email {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.Name))
	buf.WriteString("Use this link to reset your DevCollab password:\n")
	buf.WriteString(data.ResetURL + "\n\n")
	buf.WriteString("If you did not request a reset, you can ignore this email.\n")
	return Email{
		Subject:  "Reset your DevCollab password",
		TextBody: buf.String(),
	}
}

// VerifyEmailData holds data for the verification email.
type VerifyEmailData struct {
	Name      string
	VerifyURL string
}

// BuildVerifyEmail creates an address-verification message.
func BuildVerifyEmail(data VerifyEmailData) Email {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.Name))
	buf.WriteString("Confirm your email address for DevCollab:\n")
	buf.WriteString(data.VerifyURL + "\n")
	return Email{
		Subject:  "Verify your DevCollab email",
		TextBody: buf.String(),
	}
}

func buildAcceptText(data AcceptEmailData, verb string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.RecipientName))
	buf.WriteString(fmt.Sprintf("%s %s %q.\n\n", data.OtherName, verb, data.ProjectName))
	buf.WriteString(fmt.Sprintf("You can reach them at %s to coordinate.\n", data.OtherEmail))
	return buf.String()
}

func buildAcceptHTML(data AcceptEmailData, verb string) string {
	tmpl := template.Must(template.New("accept").Parse(acceptHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, struct {
		AcceptEmailData
		Verb string
	}{data, verb})
	return buf.String()
}

const acceptHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #1f2937;">
  <p>Hi {{.RecipientName}},</p>
  <p><strong>{{.OtherName}}</strong> {{.Verb}} <strong>{{.ProjectName}}</strong>.</p>
  <p>You can reach them at <a href="mailto:{{.OtherEmail}}">{{.OtherEmail}}</a> to coordinate.</p>
</body>
</html>`
