package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
)

var ErrNotConfigured = errors.New("smtp host and recipient are required")

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr string
	host string
	user string
	pass string
	from string
	to   string
	send sendFunc
}

func NewSMTPMailer(cfg config.Config) (*SMTPMailer, error) {
	if cfg.SMTP.Host == "" || cfg.SMTP.To == "" {
		return nil, ErrNotConfigured
	}
	from := cfg.SMTP.From
	if from == "" {
		from = cfg.SMTP.User
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.SMTP.Host, strconv.Itoa(cfg.SMTP.Port)),
		host: cfg.SMTP.Host,
		user: cfg.SMTP.User,
		pass: cfg.SMTP.Password,
		from: from,
		to:   cfg.SMTP.To,
		send: smtp.SendMail,
	}, nil
}

// SendContactMessage mails msg to the site owner with Reply-To set to the
// visitor. net/smtp has no context support, so ctx is only checked up front.
func (m *SMTPMailer) SendContactMessage(ctx context.Context, msg service.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := m.send(m.addr, auth, m.from, []string{m.to}, m.compose(msg)); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg service.ContactMessage) []byte {
	var b strings.Builder
	header := func(k, v string) {
		b.WriteString(k + ": " + stripNewlines(v) + "\r\n")
	}
	header("From", m.from)
	header("To", m.to)
	header("Reply-To", msg.Email)
	header("Subject", "Portfolio Contact: "+msg.Name)
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\nReceived: %s\r\n\r\n%s\r\n",
		msg.Name, msg.Email, msg.ReceivedAt.Format("2006-01-02 15:04 MST"), msg.Message)
	return []byte(b.String())
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
