package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hostel-server/models"
	"html/template"
	"net/url"
	"strings"
)

const brand = "StayInn Hostels"

// ErrContactDisabled is returned when no CONTACT_EMAIL inbox is configured.
var ErrContactDisabled = errors.New("contact email is not configured")

var emailLayout = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">{{.Heading}}</h2>
  <p>Hello {{.Name}},</p>
  {{range .Paragraphs}}<p>{{.}}</p>
  {{end}}{{if .ActionURL}}<p style="text-align: center; margin: 30px 0;">
    <a href="{{.ActionURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">{{.ActionLabel}}</a>
  </p>
  <p style="font-size: 12px; color: #666;">If the button does not work, copy this link into your browser:<br>{{.ActionURL}}</p>
  {{end}}<p>The ` + brand + ` Team</p>
</body>
</html>`))

type emailContent struct {
	Heading     string
	Name        string
	Paragraphs  []string
	ActionURL   string
	ActionLabel string
}

func (c emailContent) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", c.Name)
	for _, p := range c.Paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	if c.ActionURL != "" {
		fmt.Fprintf(&b, "%s: %s\n\n", c.ActionLabel, c.ActionURL)
	}
	b.WriteString("The " + brand + " Team\n")
	return b.String()
}

// Notifier renders the transactional emails and hands them to a Mailer.
type Notifier struct {
	mailer       Mailer
	frontendURL  string
	contactEmail string
}

func NewNotifier(mailer Mailer, frontendURL, contactEmail string) *Notifier {
	return &Notifier{
		mailer:       mailer,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		contactEmail: contactEmail,
	}
}

func (n *Notifier) send(ctx context.Context, to, toName, subject string, c emailContent) error {
	var html bytes.Buffer
	if err := emailLayout.Execute(&html, c); err != nil {
		return fmt.Errorf("rendering %q: %w", subject, err)
	}
	return n.mailer.Send(ctx, Mail{
		To:      to,
		ToName:  toName,
		Subject: subject,
		Text:    c.text(),
		HTML:    html.String(),
	})
}

func (n *Notifier) link(path, token string) string {
	return n.frontendURL + path + "?token=" + url.QueryEscape(token)
}

func (n *Notifier) SendVerificationEmail(ctx context.Context, user *models.User, token string) error {
	return n.send(ctx, user.Email, user.FullName, "Verify Your Email - "+brand, emailContent{
		Heading: "Welcome to " + brand + "!",
		Name:    user.FullName,
		Paragraphs: []string{
			"Thank you for registering. Please verify your email address to activate your account.",
			"This link will expire in 24 hours.",
		},
		ActionURL:   n.link("/verify-email", token),
		ActionLabel: "Verify Email",
	})
}

func (n *Notifier) SendPasswordResetEmail(ctx context.Context, user *models.User, token string) error {
	return n.send(ctx, user.Email, user.FullName, "Reset Your Password - "+brand, emailContent{
		Heading: "Password Reset Request",
		Name:    user.FullName,
		Paragraphs: []string{
			"We received a request to reset your password.",
			"This link will expire in 1 hour. If you did not request a reset, you can ignore this email.",
		},
		ActionURL:   n.link("/reset-password", token),
		ActionLabel: "Reset Password",
	})
}

var bookingStatusText = map[models.BookingStatus]string{
	models.BookingApproved:   "has been approved. We look forward to welcoming you.",
	models.BookingRejected:   "could not be approved. Please contact us or try different dates.",
	models.BookingCheckedIn:  "is now checked in. Enjoy your stay!",
	models.BookingCheckedOut: "is checked out. Thank you for staying with us.",
	models.BookingCancelled:  "has been cancelled.",
}

func (n *Notifier) SendBookingStatusEmail(ctx context.Context, user *models.User, booking *models.Booking) error {
	text, ok := bookingStatusText[booking.Status]
	if !ok {
		return nil
	}
	room := ""
	if booking.Room != nil {
		room = " for room " + booking.Room.RoomNumber
	}
	return n.send(ctx, user.Email, user.FullName, "Booking Update - "+brand, emailContent{
		Heading: "Booking Update",
		Name:    user.FullName,
		Paragraphs: []string{
			fmt.Sprintf("Your booking%s from %s to %s %s",
				room,
				booking.CheckInDate.Format("Jan 2, 2006"),
				booking.CheckOutDate.Format("Jan 2, 2006"),
				text),
		},
		ActionURL:   n.frontendURL + "/bookings",
		ActionLabel: "View Bookings",
	})
}

// SendContactMessage forwards a contact form submission to the hostel inbox.
func (n *Notifier) SendContactMessage(ctx context.Context, name, email, message string) error {
	to := n.contactEmail
	if to == "" {
		return ErrContactDisabled
	}
	c := emailContent{
		Heading:    "New Contact Message",
		Name:       brand,
		Paragraphs: []string{fmt.Sprintf("From: %s <%s>", name, email), message},
	}
	var html bytes.Buffer
	if err := emailLayout.Execute(&html, c); err != nil {
		return err
	}
	return n.mailer.Send(ctx, Mail{
		To:      to,
		ReplyTo: email,
		Subject: "Contact Form: " + name,
		Text:    c.text(),
		HTML:    html.String(),
	})
}
