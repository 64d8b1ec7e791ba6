package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSender struct {
	err   error
	calls int
	last  Message
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	f.calls++
	f.last = msg
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postSendTicket(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/send-ticket", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"student_name": "Priya Sharma",
	"event_name": "Hack the Campus",
	"ticket_id": "TKT-1",
	"student_reg_no": "21BCE1234",
	"student_email": "priya@example.edu"
}`

func TestSendTicketSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &fakeSender{}
	r := NewRouter(sender, discardLogger())

	w := postSendTicket(t, r, validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body)
	}
	if sender.calls != 1 {
		t.Fatalf("sender calls = %d, want 1", sender.calls)
	}
	if sender.last.To != "priya@example.edu" {
		t.Fatalf("to = %q", sender.last.To)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("body = %s", w.Body)
	}
}

func TestSendTicketMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &fakeSender{}
	r := NewRouter(sender, discardLogger())

	w := postSendTicket(t, r, `{"student_name": "Priya"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if sender.calls != 0 {
		t.Fatalf("sender calls = %d, want 0", sender.calls)
	}
}

func TestSendTicketRegNoOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &fakeSender{}
	r := NewRouter(sender, discardLogger())

	body := `{
		"student_name": "Priya Sharma",
		"event_name": "Hack the Campus",
		"ticket_id": "TKT-1",
		"student_email": "priya@example.edu"
	}`
	w := postSendTicket(t, r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body)
	}
}

func TestSendTicketNoSenderConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(nil, discardLogger())

	w := postSendTicket(t, r, validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SMTP_USER") {
		t.Fatalf("body = %s", w.Body)
	}
}

func TestSendTicketSenderFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sender := &fakeSender{err: errors.New("smtp timeout")}
	r := NewRouter(sender, discardLogger())

	w := postSendTicket(t, r, validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "smtp timeout") {
		t.Fatalf("body = %s", w.Body)
	}
}

func TestSendTicketMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(&fakeSender{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/send-ticket", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(nil, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
