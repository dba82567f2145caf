package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templates embed.FS

const orderStatusTemplate = "order_status"

// Mailer renders events into HTML messages and hands them to a Transport.
type Mailer struct {
	from      string
	engine    *html.Engine
	transport Transport
}

func NewMailer(from string, t Transport) (*Mailer, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load mail templates: %w", err)
	}
	return &Mailer{from: from, engine: engine, transport: t}, nil
}

// Render builds the message for e without sending it.
func (m *Mailer) Render(e Event) (Message, error) {
	var buf bytes.Buffer
	if err := m.engine.Render(&buf, orderStatusTemplate, e); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", orderStatusTemplate, err)
	}
	return Message{
		ID:      uuid.NewString(),
		From:    m.from,
		To:      e.To,
		Subject: fmt.Sprintf("Your order %s is now %s", e.OrderID, e.Status),
		HTML:    buf.String(),
	}, nil
}

func (m *Mailer) Deliver(ctx context.Context, e Event) error {
	msg, err := m.Render(e)
	if err != nil {
		return err
	}
	return m.transport.Send(ctx, msg)
}
