package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/auth"
	"backoffice/internal/domain"
	"backoffice/internal/http/handlers"
	"backoffice/internal/notify"
	"backoffice/internal/repos"
	"backoffice/internal/services"
	"backoffice/internal/store"
)

const (
	adminID    = 1
	customerID = 2
	inactiveID = 3

	adminPassword = "Adm1n!pass"
)

var fixedNow = time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

type testApp struct {
	app   *fiber.App
	store *repos.Store
}

// newTestApp builds the full route table over an in-memory store holding an
// active admin, a customer and an inactive admin.
func newTestApp(t *testing.T, n notify.Notifier, opts handlers.AppOptions) *testApp {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	s := repos.NewStore(store.NewMemoryBackend(), repos.Options{Now: clock, BcryptCost: bcrypt.MinCost})
	ctx := context.Background()
	for _, d := range []repos.UserDraft{
		{Name: "Root", Email: "root@shop.io", Password: adminPassword, Role: domain.RoleAdmin},
		{Name: "Cus", Email: "cus@shop.io", Password: "cus-pass"},
		{Name: "Old", Email: "old@shop.io", Password: "old-pass", Role: domain.RoleAdmin, Status: domain.UserInactive},
	} {
		if _, err := s.Users.Create(ctx, d); err != nil {
			t.Fatalf("seed user %s: %v", d.Email, err)
		}
	}
	authSvc := services.NewAuthService(s.Users, auth.HeaderAuthenticator{})
	app := handlers.NewApp(handlers.NewDeps(s, authSvc, n, clock), opts)
	return &testApp{app: app, store: s}
}

// do sends a JSON request as user (0 for anonymous) and decodes the reply.
func (ta *testApp) do(t *testing.T, method, path string, user int, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if user != 0 {
		req.Header.Set(fiber.HeaderAuthorization, strconv.Itoa(user))
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: non-JSON body %q", method, path, raw)
		}
	}
	return resp.StatusCode, out
}
