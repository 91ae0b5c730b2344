package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"hotelier/internal/domain"
)

// Mailer sends booking confirmation emails over SMTP. When the SMTP
// environment is not configured it degrades to logging the message, so
// local development never needs a mail account.
type Mailer struct {
	host         string
	port         string
	username     string
	password     string
	fromName     string
	managerEmail string
	stakeholders []string
}

func NewFromEnv() *Mailer {
	m := &Mailer{
		host:         os.Getenv("SMTP_HOST"),
		port:         os.Getenv("SMTP_PORT"),
		username:     os.Getenv("SMTP_USERNAME"),
		password:     os.Getenv("SMTP_PASSWORD"),
		fromName:     os.Getenv("SMTP_FROM_NAME"),
		managerEmail: os.Getenv("HOTEL_MANAGER_EMAIL"),
	}
	if raw := os.Getenv("HOTEL_STAKEHOLDER_EMAILS"); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			addr = strings.TrimSpace(addr)
			if addr != "" {
				m.stakeholders = append(m.stakeholders, addr)
			}
		}
	}
	return m
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.port != "" && m.username != "" && m.password != ""
}

// NotifyBookingCreated mails the manager, the stakeholder list, and the
// guest about a new booking.
func (m *Mailer) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	recipients := make([]string, 0, len(m.stakeholders)+2)
	if m.managerEmail != "" {
		recipients = append(recipients, m.managerEmail)
	}
	recipients = append(recipients, m.stakeholders...)
	if b.GuestEmail != "" {
		recipients = append(recipients, b.GuestEmail)
	}

	subject := fmt.Sprintf("New Booking Confirmation - %s", sanitizeHeader(b.GuestName))
	body := buildBookingBody(b)

	if !m.configured() {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", strings.Join(recipients, ","), subject)
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	from := m.username
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.username)
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.username, recipients, []byte(msg)); err != nil {
		return fmt.Errorf("send booking email: %w", err)
	}
	return nil
}

func buildBookingBody(b *domain.Booking) string {
	var sb strings.Builder
	sb.WriteString("A new booking has been made with the following details:\n\n")
	sb.WriteString(fmt.Sprintf("Reference: %s\n", b.ReferenceCode))
	sb.WriteString(fmt.Sprintf("Service: %s\n", b.Service))
	if b.IsRoomStay() {
		if b.CheckIn != nil && b.CheckOut != nil {
			sb.WriteString(fmt.Sprintf("Check-in: %s\n", b.CheckIn.Format("2006-01-02")))
			sb.WriteString(fmt.Sprintf("Check-out: %s\n", b.CheckOut.Format("2006-01-02")))
		}
		sb.WriteString(fmt.Sprintf("Guests: %d\n", b.Guests))
		sb.WriteString(fmt.Sprintf("Total amount: %.2f\n", b.TotalAmount))
	} else if b.Date != nil {
		sb.WriteString(fmt.Sprintf("Date: %s\n", b.Date.Format("2006-01-02")))
		sb.WriteString(fmt.Sprintf("Time: %s\n", b.TimeSlot))
	}
	sb.WriteString(fmt.Sprintf("Name: %s\n", b.GuestName))
	sb.WriteString(fmt.Sprintf("Email: %s\n", b.GuestEmail))
	sb.WriteString("\nThank you,\nYour Booking System\n")
	return sb.String()
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
