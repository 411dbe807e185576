package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/metrics"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
)

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<h2>New contact form submission</h2>
<p><strong>Name:</strong> {{.FullName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{with .Company}}<p><strong>Company:</strong> {{.}}</p>
{{end}}{{with .ProjectType}}<p><strong>Project type:</strong> {{.}}</p>
{{end}}<p><strong>Received:</strong> {{.CreatedAt.Format "2006-01-02 15:04 MST"}}</p>
<p>{{.Message}}</p>
`))

// ContactNotifier emails the site owner when a contact form is submitted.
type ContactNotifier struct {
	mailer     *Mailer
	recipients []string
	timeout    time.Duration
}

func NewContactNotifier(mailer *Mailer, recipients []string) *ContactNotifier {
	return &ContactNotifier{mailer: mailer, recipients: recipients, timeout: 15 * time.Second}
}

// NewContactNotifierFromConfig returns nil when notifications are not
// configured. Missing Resend settings are logged, not fatal.
func NewContactNotifierFromConfig(cfg map[string]string) *ContactNotifier {
	recipients := config.GetStrings(cfg, "CONTACT_NOTIFY_EMAILS", nil)
	if len(recipients) == 0 {
		log.Info().Msg("CONTACT_NOTIFY_EMAILS not set, contact notifications disabled")
		return nil
	}

	mailer, err := NewMailerFromConfig(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Contact notifications disabled")
		return nil
	}
	return NewContactNotifier(mailer, recipients)
}

// Notify sends the notification synchronously.
func (n *ContactNotifier) Notify(ctx context.Context, submission *models.ContactSubmission) error {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, submission); err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	_, err := n.mailer.Send(ctx, Message{
		To:      n.recipients,
		Subject: fmt.Sprintf("New contact from %s", submission.FullName()),
		HTML:    body.String(),
		ReplyTo: submission.Email,
	})
	return err
}

// NotifyAsync sends the notification in the background. Failures are logged
// and never reach the submitter. The returned channel closes when done.
// A nil notifier is a no-op.
func (n *ContactNotifier) NotifyAsync(submission *models.ContactSubmission) <-chan struct{} {
	done := make(chan struct{})
	if n == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.Notify(ctx, submission); err != nil {
			metrics.IncrementContactNotification("failed")
			log.Error().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to send contact notification")
			return
		}
		metrics.IncrementContactNotification("sent")
	}()
	return done
}
