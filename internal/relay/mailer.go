package relay

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Message is one outbound confirmation email.
type Message struct {
	To          string
	StudentName string
	EventName   string
	TicketID    string
	RegNumber   string
}

// Sender delivers one message. There is no retry and no delivery
// confirmation beyond the transport acknowledgment.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends confirmation emails over authenticated STARTTLS SMTP.
type SMTPMailer struct {
	client *mail.Client
	cfg    SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	const op = "relay.NewSMTPMailer"

	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.FromName == "" {
		cfg.FromName = "Campus Events Portal"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &SMTPMailer{client: client, cfg: cfg}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	const op = "relay.SMTPMailer.Send"

	body, err := renderEmail(emailData{
		StudentName: msg.StudentName,
		EventName:   msg.EventName,
		TicketID:    msg.TicketID,
		RegNumber:   msg.RegNumber,
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	out.Subject("Ticket Confirmed: " + msg.EventName)
	out.SetBodyString(mail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
