package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minseo-dev/customerdesk/internal/chat"
	"github.com/minseo-dev/customerdesk/internal/model"
	"github.com/minseo-dev/customerdesk/internal/repository"
	"github.com/minseo-dev/customerdesk/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	log := zerolog.Nop()
	messageRepo := repository.NewGormMessageRepository(db)
	svc := service.NewCustomerService(repository.NewGormCustomerRepository(db))

	hub := chat.NewHub(messageRepo, log)
	go hub.Run()
	t.Cleanup(hub.Close)

	return New(
		NewCustomerHandler(svc, log),
		NewChatHandler(hub, messageRepo, 50, log),
		log,
	)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestCustomerAPI_CreateListUpdateDelete(t *testing.T) {
	s := newTestServer(t)

	// create
	rec := do(t, s, http.MethodPost, "/api/v1/customers",
		`{"name":"Alice","company":"Acme","phone":"123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)["customer"].(map[string]any)
	id := created["id"].(float64)
	if id != 1 {
		t.Fatalf("expected first id 1, got %v", id)
	}

	// list
	rec = do(t, s, http.MethodGet, "/api/v1/customers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	customers := decode(t, rec)["customers"].([]any)
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(customers))
	}

	// partial update: phone only, name must survive
	rec = do(t, s, http.MethodPut, "/api/v1/customers/1", `{"phone":"999"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)["customer"].(map[string]any)
	if updated["phone"] != "999" {
		t.Fatalf("phone not updated: %v", updated["phone"])
	}
	if updated["name"] != "Alice" || updated["company"] != "Acme" {
		t.Fatalf("unsupplied fields changed: %v", updated)
	}

	// delete, then delete again
	rec = do(t, s, http.MethodDelete, "/api/v1/customers/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/api/v1/customers/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestCustomerAPI_CreateWithoutName(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/customers", `{"company":"Acme"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["status"] != string(service.OutcomeInvalid) {
		t.Fatalf("expected invalid status, got %s", rec.Body.String())
	}
}

func TestCustomerAPI_UpdateMissing(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/v1/customers/77", `{"name":"X"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/v1/customers", "")
	if customers := decode(t, rec)["customers"].([]any); len(customers) != 0 {
		t.Fatalf("failed update must not create records, got %d", len(customers))
	}
}

func TestCustomerAPI_Search(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/v1/customers", `{"name":"Alice","company":"Acme"}`)
	do(t, s, http.MethodPost, "/api/v1/customers", `{"name":"Bob","company":"Ferra"}`)

	rec := do(t, s, http.MethodGet, "/api/v1/customers?search=Ac", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", rec.Code)
	}
	customers := decode(t, rec)["customers"].([]any)
	if len(customers) != 1 {
		t.Fatalf("expected 1 match, got %d", len(customers))
	}
	if name := customers[0].(map[string]any)["name"]; name != "Alice" {
		t.Fatalf("expected Alice, got %v", name)
	}
}

func TestChatAPI_MessagesAndOnlineUsers(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/chat/messages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("messages: expected 200, got %d", rec.Code)
	}
	payload := decode(t, rec)
	if payload["total"].(float64) != 0 {
		t.Fatalf("expected empty log, got %v", payload)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/chat/online-users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("online-users: expected 200, got %d", rec.Code)
	}
	if users := decode(t, rec)["users"].([]any); len(users) != 0 {
		t.Fatalf("expected no online users, got %v", users)
	}
}
