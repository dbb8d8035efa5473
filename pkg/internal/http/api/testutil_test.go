package api_test

import (
	"bytes"
	"context"
	"fmt"
	nethttp "net/http"
	"testing"

	"github.com/classpulse/classpulse/pkg/internal/cache"
	"github.com/classpulse/classpulse/pkg/internal/database"
	"github.com/classpulse/classpulse/pkg/internal/http"
	"github.com/classpulse/classpulse/pkg/internal/http/api"
	"github.com/classpulse/classpulse/pkg/internal/http/ws"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubGenerator stands in for the hosted models so the creation flow can be
// exercised with arbitrary generator output.
type stubGenerator struct {
	situation          string
	situationErr       error
	selectionOption    int
	selectionRationale string
	selectionErr       error
}

func (v *stubGenerator) GenerateSituation(_ context.Context, _ string) (string, error) {
	return v.situation, v.situationErr
}

func (v *stubGenerator) GenerateSelection(_ context.Context, _ string, _ []string) (int, string, error) {
	return v.selectionOption, v.selectionRationale, v.selectionErr
}

type testEnv struct {
	t   *testing.T
	app *fiber.App
	gen *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.RunMigration(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	store, err := cache.NewStore()
	if err != nil {
		t.Fatalf("failed to create cache store: %v", err)
	}

	gen := &stubGenerator{}
	a := api.New(services.New(db, store), gen, ws.NewHub(), http.NewSessionStore())

	return &testEnv{
		t:   t,
		app: http.NewServer(a).Inner(),
		gen: gen,
	}
}

func (e *testEnv) request(method, path string, body any, cookie string) *nethttp.Response {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		if err != nil {
			e.t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := nethttp.NewRequest(method, path, reader)
	if err != nil {
		e.t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(cookie) > 0 {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		e.t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) decode(resp *nethttp.Response, out any) {
	e.t.Helper()
	if err := jsoniter.NewDecoder(resp.Body).Decode(out); err != nil {
		e.t.Fatalf("failed to decode response body: %v", err)
	}
}

// signup registers the account and signs it in, returning the session cookie
// to attach to later requests.
func (e *testEnv) signup(name string, role models.Role) string {
	e.t.Helper()

	resp := e.request("POST", "/api/auth/register", fiber.Map{
		"name":     name,
		"password": "secret1234",
		"role":     role,
	}, "")
	if resp.StatusCode != nethttp.StatusCreated {
		e.t.Fatalf("register %q: status %d", name, resp.StatusCode)
	}

	resp = e.request("POST", "/api/auth/login", fiber.Map{
		"name":     name,
		"password": "secret1234",
	}, "")
	if resp.StatusCode != nethttp.StatusOK {
		e.t.Fatalf("login %q: status %d", name, resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "classpulse_session" {
			return fmt.Sprintf("%s=%s", cookie.Name, cookie.Value)
		}
	}

	e.t.Fatalf("login %q: no session cookie issued", name)
	return ""
}

func (e *testEnv) createClassroom(cookie, name string) models.Classroom {
	e.t.Helper()

	resp := e.request("POST", "/api/classrooms/", fiber.Map{"name": name}, cookie)
	if resp.StatusCode != nethttp.StatusCreated {
		e.t.Fatalf("create classroom %q: status %d", name, resp.StatusCode)
	}

	var classroom models.Classroom
	e.decode(resp, &classroom)
	return classroom
}

func (e *testEnv) createPoll(cookie string, classroomId uint, question string, options []string) models.Poll {
	e.t.Helper()

	resp := e.request("POST", fmt.Sprintf("/api/classrooms/%d/polls", classroomId), fiber.Map{
		"action_type": "final",
		"question":    question,
		"options":     options,
	}, cookie)
	if resp.StatusCode != nethttp.StatusCreated {
		e.t.Fatalf("create poll %q: status %d", question, resp.StatusCode)
	}

	var poll models.Poll
	e.decode(resp, &poll)
	return poll
}
