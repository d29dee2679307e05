package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/bluemountain/brewdesk/internal/domain"
)

type siteReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func postContact(t *testing.T, env testEnv, body string) (int, siteReply) {
	t.Helper()

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/contact", body)
	defer resp.Body.Close()

	var reply siteReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}

	return resp.StatusCode, reply
}

func TestContact(t *testing.T) {
	env := newTestServer(t)

	code, reply := postContact(t, env, `{"businessName":"Highland Brews","contactPerson":"Lal","email":"lal@highlandbrews.in","message":"Wholesale pricing please"}`)

	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if !reply.Success {
		t.Error("success = false, want true")
	}
	if reply.Message != domain.SuccessText {
		t.Errorf("message = %q, want %q", reply.Message, domain.SuccessText)
	}
	if got := env.sender.sentIDs(); len(got) != 1 {
		t.Errorf("sent = %v, want one enquiry", got)
	}
}

func TestContact_MissingFields(t *testing.T) {
	env := newTestServer(t)

	code, reply := postContact(t, env, `{"businessName":"Highland Brews","email":"lal@highlandbrews.in"}`)

	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if reply.Success {
		t.Error("success = true, want false")
	}
	if reply.Message != domain.MissingFieldsText {
		t.Errorf("message = %q, want %q", reply.Message, domain.MissingFieldsText)
	}
}

func TestContact_InvalidEmail(t *testing.T) {
	env := newTestServer(t)

	code, reply := postContact(t, env, `{"businessName":"Highland Brews","contactPerson":"Lal","email":"lal@","message":"Hi"}`)

	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if reply.Message != domain.InvalidEmailText {
		t.Errorf("message = %q, want %q", reply.Message, domain.InvalidEmailText)
	}
}

func TestContact_MailFailure(t *testing.T) {
	env := newTestServer(t)
	env.sender.setFail(true)

	code, reply := postContact(t, env, `{"businessName":"Highland Brews","contactPerson":"Lal","email":"lal@highlandbrews.in","message":"Hi"}`)

	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", code, http.StatusInternalServerError)
	}
	if reply.Success {
		t.Error("success = true, want false")
	}
	if reply.Message != domain.TransportText {
		t.Errorf("message = %q, want %q", reply.Message, domain.TransportText)
	}
}

func TestContact_BadJSON(t *testing.T) {
	env := newTestServer(t)

	code, reply := postContact(t, env, `{"businessName":`)

	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if reply.Message != domain.MissingFieldsText {
		t.Errorf("message = %q, want %q", reply.Message, domain.MissingFieldsText)
	}
}

func TestHealth(t *testing.T) {
	env := newTestServer(t)

	resp := doRequest(t, http.MethodGet, env.srv.URL+"/api/health", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if health.Status != "Server is running" {
		t.Errorf("status = %q, want %q", health.Status, "Server is running")
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", health.Timestamp, err)
	}
}
