package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/log"
)

// LogTransport writes messages to the event log instead of sending them.
type LogTransport struct{}

func (LogTransport) Send(_ context.Context, m Message) error {
	log.Info(nil, "notify.mail", map[string]any{
		"message_id": m.ID,
		"to":         m.To,
		"subject":    m.Subject,
	})
	return nil
}

const smtpTimeout = 30 * time.Second

type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	// Timeout bounds one delivery when ctx carries no deadline; 0 means 30s.
	Timeout time.Duration
}

// Send delivers m over one SMTP session. The connection is closed as soon as
// ctx ends, so a stalled relay cannot hold a worker.
func (t SMTPTransport) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = smtpTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := t.session(conn, m); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("smtp send %s: %w", m.ID, ctx.Err())
		}
		return fmt.Errorf("smtp send %s: %w", m.ID, err)
	}
	return nil
}

func (t SMTPTransport) session(conn net.Conn, m Message) error {
	c, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return err
	}
	defer c.Close()
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: t.Host}); err != nil {
			return err
		}
	}
	if t.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", t.Username, t.Password, t.Host)); err != nil {
			return err
		}
	}
	if err := c.Mail(m.From); err != nil {
		return err
	}
	if err := c.Rcpt(m.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(mime(m)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func mime(m Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	fmt.Fprintf(&b, "Message-ID: <%s@backoffice>\r\n", m.ID)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(m.HTML)
	return []byte(b.String())
}
