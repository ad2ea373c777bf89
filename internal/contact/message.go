package contact

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
)

var htmlBody = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #7c3aed; border-bottom: 2px solid #7c3aed; padding-bottom: 10px;">
    New Contact Form Submission
  </h2>
  <div style="margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
  </div>
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin-top: 20px;">
    <h3 style="margin-top: 0; color: #374151;">Message:</h3>
    <p style="white-space: pre-wrap; color: #1f2937;">{{.Message}}</p>
  </div>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 12px;">
    <p>This email was sent from your portfolio contact form.</p>
  </div>
</div>
`))

const textBody = "New Contact Form Submission\n\nName: %s\nEmail: %s\n\nMessage:\n%s"

// BuildMessage renders the notification sent to the site owner. Values in
// the HTML part are escaped, the text part carries them verbatim.
func BuildMessage(sub Submission, from, to string) (provider.Message, error) {
	var html bytes.Buffer
	if err := htmlBody.Execute(&html, sub); err != nil {
		return provider.Message{}, fmt.Errorf("render html body: %w", err)
	}

	return provider.Message{
		From:        from,
		To:          to,
		Subject:     config.SubjectPrefix + sub.Name,
		ReplyTo:     sub.Email,
		ReplyToName: sub.Name,
		HTML:        html.String(),
		Text:        fmt.Sprintf(textBody, sub.Name, sub.Email, sub.Message),
	}, nil
}
