package notify

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentRelay accepts connections and never says anything.
func silentRelay(t *testing.T) SMTPTransport {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	return relayTransport(t, ln.Addr())
}

func relayTransport(t *testing.T, addr net.Addr) SMTPTransport {
	t.Helper()
	host, port, err := net.SplitHostPort(addr.String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return SMTPTransport{Host: host, Port: p}
}

func TestSMTPTransport_StalledRelayHonoursContext(t *testing.T) {
	tr := silentRelay(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tr.Send(ctx, Message{ID: "m1", From: "shop@example.com", To: "jane@example.com"}) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		t.Fatal("Send ignored the context deadline")
	}
}

func TestSMTPTransport_FixedTimeoutWithoutDeadline(t *testing.T) {
	tr := silentRelay(t)
	tr.Timeout = 100 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- tr.Send(context.Background(), Message{ID: "m1", From: "a@b.io", To: "c@d.io"}) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Send did not time out")
	}
}

func TestDispatcher_StopReturnsWhenRelayStalls(t *testing.T) {
	m, err := NewMailer("shop@example.com", silentRelay(t))
	require.NoError(t, err)
	d := NewDispatcher(m.Deliver, 1, 4)
	require.NoError(t, d.Start(context.Background()))
	d.Notify(shipped())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Stop(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		t.Fatal("Stop blocked past its deadline")
	}
}

func TestSMTPTransport_Delivers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }
		reply("220 relay ready")
		var data strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					reply("250 queued")
					continue
				}
				data.WriteString(line)
				continue
			}
			switch cmd := strings.ToUpper(strings.TrimSpace(line)); {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 relay")
			case cmd == "DATA":
				inData = true
				reply("354 go ahead")
			case cmd == "QUIT":
				reply("221 bye")
				got <- data.String()
				return
			default:
				reply("250 ok")
			}
		}
	}()

	tr := relayTransport(t, ln.Addr())
	err = tr.Send(context.Background(), Message{
		ID: "m1", From: "shop@example.com", To: "jane@example.com",
		Subject: "Your order ORD-1001 is now Shipped", HTML: "<p>hi</p>",
	})
	require.NoError(t, err)

	select {
	case body := <-got:
		assert.Contains(t, body, "Subject: Your order ORD-1001 is now Shipped")
		assert.Contains(t, body, "<p>hi</p>")
	case <-time.After(3 * time.Second):
		t.Fatal("relay never saw QUIT")
	}
}
