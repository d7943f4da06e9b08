package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"

	"voyago/internal/config"
	"voyago/internal/schemas"
)

// MailMgr outlines the contract for email delivery. All sends are
// fire-and-forget from the caller's perspective; failures are logged, never
// surfaced to the request that triggered them.
type MailMgr interface {
	SendVerificationMail(email, username, token string) error
	SendPasswordResetMail(email, username, token string) error
	SendContactMail(form *schemas.ContactRequest) error
}

// MailManager formats mails with Hermes and delivers them through Mailgun.
// Outside production the delivery is skipped and the token is logged instead,
// so local setups work without a Mailgun account.
type MailManager struct {
	Hermes      *hermes.Hermes
	Mailgun     *mailgun.MailgunImpl
	sender      string
	environment string
}

// SendVerificationMail sends the email-verification token issued at
// registration.
func (mm *MailManager) SendVerificationMail(email, username, token string) error {
	if mm.environment != "production" {
		log.Infof("Verification email would be sent to %s with token %s", email, token)
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"Welcome to Voyago! We're very excited to have you on board.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "To verify your email address, please enter the following code:",
					InviteCode:   token,
				},
			},
			Outros: []string{
				"If you did not sign up, you can safely ignore this email.",
			},
		},
	}

	return mm.send(email, "Verify your email", mailBody)
}

// SendPasswordResetMail sends the password-reset token. The token expires
// after 24 hours.
func (mm *MailManager) SendPasswordResetMail(email, username, token string) error {
	if mm.environment != "production" {
		log.Infof("Password reset email would be sent to %s with token %s", email, token)
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"You have requested to reset your password.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Enter the following code to reset your password. The code expires in 24 hours:",
					InviteCode:   token,
				},
			},
			Outros: []string{
				"If you did not request a password reset, no further action is required.",
			},
		},
	}

	return mm.send(email, "Reset your password", mailBody)
}

// SendContactMail forwards a contact-form submission to the operations inbox.
func (mm *MailManager) SendContactMail(form *schemas.ContactRequest) error {
	if mm.environment != "production" {
		log.Infof("Contact mail from %s <%s> would be forwarded: %s", form.Name, form.Email, form.Subject)
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: "Team",
			Intros: []string{
				fmt.Sprintf("New contact form submission from %s <%s>.", form.Name, form.Email),
				fmt.Sprintf("Subject: %s", form.Subject),
				form.Message,
			},
		},
	}

	return mm.send(mm.sender, "Contact form: "+form.Subject, mailBody)
}

func (mm *MailManager) send(to, subject string, mailBody hermes.Email) error {
	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(5*time.Second))
	defer cancel()

	message := mm.Mailgun.NewMessage(mm.sender, subject, "", to)
	message.SetHtml(emailBody)
	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning("Error sending mail: " + err.Error())
		return err
	}
	log.Debug("Mail sent to ", to)

	return nil
}

// NewMailManager initializes the mail manager with the configured Mailgun
// domain and the environment gate.
func NewMailManager(cfg config.MailConfig, environment string) MailMgr {
	log.Info("Initializing mail manager")

	if environment != "production" {
		log.Info("Running in development mode, email will not be sent to users")
	}

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name: "Voyago",
				Link: "https://voyago.app/",
			},
		},
		Mailgun:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender:      cfg.Sender,
		environment: environment,
	}

	return mm
}
