package handlers_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"backoffice/internal/http/handlers"
	applog "backoffice/internal/log"
)

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(applog.SetLogger(zap.New(core)))
	return logs
}

func TestAuthEventsAreLogged(t *testing.T) {
	logs := captureLogs(t)
	ta := newTestApp(t, nil, handlers.AppOptions{})

	ta.do(t, http.MethodPost, "/login", 0, map[string]any{"email": "root@shop.io", "password": "wrong"})
	ta.do(t, http.MethodPost, "/login", 0, map[string]any{"email": "root@shop.io", "password": adminPassword})
	ta.do(t, http.MethodGet, "/users", 0, nil)
	ta.do(t, http.MethodGet, "/users", customerID, nil)

	fail := logs.FilterMessage("auth.login.fail").All()
	if len(fail) != 1 || fail[0].Level != zapcore.WarnLevel || fail[0].ContextMap()["kind"] != "security" {
		t.Fatalf("login failure not logged as a security event: %+v", fail)
	}
	if logs.FilterMessage("auth.login.success").Len() != 1 {
		t.Fatal("login success not logged")
	}
	if logs.FilterMessage("access.denied.unauthenticated").Len() != 1 {
		t.Fatal("anonymous access not logged")
	}
	if logs.FilterMessage("access.denied.admin").Len() != 1 {
		t.Fatal("customer access not logged")
	}
	for _, e := range logs.All() {
		if _, hasPassword := e.ContextMap()["password"]; hasPassword {
			t.Fatalf("%s logs a password", e.Message)
		}
	}
}

func TestAdminChangesAreAudited(t *testing.T) {
	logs := captureLogs(t)
	ta := newTestApp(t, nil, handlers.AppOptions{})

	ta.do(t, http.MethodPost, "/products", adminID, map[string]any{"name": "Dune", "category": "Fiction", "stock": 2})
	ta.do(t, http.MethodDelete, "/products/1", adminID, nil)

	for _, action := range []string{"product.create", "product.delete"} {
		got := logs.FilterMessage(action).All()
		if len(got) != 1 {
			t.Fatalf("%s: expected one entry, got %d", action, len(got))
		}
		ctx := got[0].ContextMap()
		if ctx["kind"] != "audit" || ctx["user_id"] != int64(adminID) || ctx["path"] == "" {
			t.Fatalf("%s: unexpected fields %v", action, ctx)
		}
		if rid, _ := ctx["req_id"].(string); rid == "" {
			t.Fatalf("%s: missing request id", action)
		}
	}
}
