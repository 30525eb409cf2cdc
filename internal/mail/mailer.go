package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SOSDetails carries everything the emergency notification mentions.
type SOSDetails struct {
	AlertID       uint
	UserName      string
	UserEmail     string
	UserPhone     string
	DriverName    string
	DriverPhone   string
	StartLocation string
	EndLocation   string
	RideDateTime  time.Time
	Location      string
	Message       string
}

// Sender delivers transactional email. Services depend on this interface so
// tests can substitute a fake.
type Sender interface {
	SendOTP(to, code string) error
	SendSOSAlert(to string, details SOSDetails) error
}

// SMTPSender sends mail over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a mailer for the given SMTP server.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendOTP sends the verification code. The code expires after ten minutes;
// the body says so.
func (s *SMTPSender) SendOTP(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Campool verification code")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Your verification code is <b>%s</b>.</p><p>It expires in 10 minutes. If you did not request this, ignore this email.</p>",
		code,
	))
	return s.dialer.DialAndSend(m)
}

// SendSOSAlert sends the emergency notification.
func (s *SMTPSender) SendSOSAlert(to string, details SOSDetails) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("SOS ALERT #%d - immediate attention required", details.AlertID))
	m.SetBody("text/html", fmt.Sprintf(
		`<h2>SOS alert triggered</h2>
<p><b>User:</b> %s (%s, %s)</p>
<p><b>Driver:</b> %s (%s)</p>
<p><b>Ride:</b> %s &rarr; %s at %s</p>
<p><b>Reported location:</b> %s</p>
<p><b>Message:</b> %s</p>`,
		details.UserName, details.UserEmail, details.UserPhone,
		details.DriverName, details.DriverPhone,
		details.StartLocation, details.EndLocation, details.RideDateTime.Format(time.RFC1123),
		details.Location, details.Message,
	))
	return s.dialer.DialAndSend(m)
}
