package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doJSON(t *testing.T, server *Server, method string, path string, token string, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	payload := map[string]any{}
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rr.Body.String(), err)
		}
	}
	return rr, payload
}

func registerAndLogin(t *testing.T, server *Server, name string, email string) string {
	t.Helper()
	rr, _ := doJSON(t, server, http.MethodPost, "/register", "",
		fmt.Sprintf(`{"name":%q,"email":%q,"password":"pw-123456"}`, name, email))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d body=%s", email, rr.Code, rr.Body.String())
	}

	rr, payload := doJSON(t, server, http.MethodPost, "/login", "",
		fmt.Sprintf(`{"email":%q,"password":"pw-123456"}`, email))
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d body=%s", email, rr.Code, rr.Body.String())
	}
	data, _ := payload["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login %s: missing token in %s", email, rr.Body.String())
	}
	return token
}

func TestRegisterDuplicateEmailReturnsConflict(t *testing.T) {
	server := newTestServer()
	registerAndLogin(t, server, "Alice", "alice@example.com")

	rr, _ := doJSON(t, server, http.MethodPost, "/register", "",
		`{"name":"Alice Again","email":"ALICE@example.com","password":"pw-123456"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginFailureStatusMapping(t *testing.T) {
	server := newTestServer()
	registerAndLogin(t, server, "Alice", "alice@example.com")

	rr, _ := doJSON(t, server, http.MethodPost, "/login", "",
		`{"email":"alice@example.com","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr, _ = doJSON(t, server, http.MethodPost, "/login", "",
		`{"email":"nobody@example.com","password":"pw-123456"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown email: expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChannelMessagingFlow(t *testing.T) {
	server := newTestServer()
	aliceToken := registerAndLogin(t, server, "Alice", "alice@example.com")
	bobToken := registerAndLogin(t, server, "Bob", "bob@example.com")

	rr, payload := doJSON(t, server, http.MethodPost, "/channels", aliceToken, `{"name":"general"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create channel: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	data, _ := payload["data"].(map[string]any)
	channelData, _ := data["channel"].(map[string]any)
	channelID, _ := channelData["channel_id"].(string)
	if channelID == "" {
		t.Fatalf("create channel: missing channel_id in %s", rr.Body.String())
	}

	// Bob cannot post before subscribing.
	rr, _ = doJSON(t, server, http.MethodPost, "/channels/"+channelID+"/messages", bobToken, `{"content":"early"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("pre-subscribe post: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr, _ = doJSON(t, server, http.MethodPost, "/channels/subscribe", bobToken,
		fmt.Sprintf(`{"channel_id":%q}`, channelID))
	if rr.Code != http.StatusCreated {
		t.Fatalf("subscribe: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr, _ = doJSON(t, server, http.MethodPost, "/channels/subscribe", bobToken,
		fmt.Sprintf(`{"channel_id":%q}`, channelID))
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate subscribe: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr, payload = doJSON(t, server, http.MethodPost, "/channels/"+channelID+"/messages", bobToken, `{"content":"hello"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("post message: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	data, _ = payload["data"].(map[string]any)
	messageData, _ := data["message"].(map[string]any)
	messageID, _ := messageData["message_id"].(string)
	if messageID == "" {
		t.Fatalf("post message: missing message_id in %s", rr.Body.String())
	}

	// Alice cannot edit Bob's message even as owner.
	rr, _ = doJSON(t, server, http.MethodPut, "/channels/"+channelID+"/messages/"+messageID, aliceToken, `{"content":"hijacked"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("owner edit: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr, _ = doJSON(t, server, http.MethodPut, "/channels/"+channelID+"/messages/"+messageID, bobToken, `{"content":"revised"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("author edit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr, payload = doJSON(t, server, http.MethodGet, "/channels/"+channelID+"/messages", aliceToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list messages: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	data, _ = payload["data"].(map[string]any)
	messages, _ := data["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d in %s", len(messages), rr.Body.String())
	}
	first, _ := messages[0].(map[string]any)
	if first["content"] != "revised" || first["author_name"] != "Bob" {
		t.Fatalf("unexpected message projection: %v", first)
	}

	// Alice deletes Bob's message as channel owner.
	rr, _ = doJSON(t, server, http.MethodDelete, "/channels/"+channelID+"/messages/"+messageID, aliceToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("owner delete message: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr, _ = doJSON(t, server, http.MethodDelete, "/channels/"+channelID, bobToken, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-owner channel delete: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr, _ = doJSON(t, server, http.MethodDelete, "/channels/"+channelID, aliceToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("owner channel delete: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr, _ = doJSON(t, server, http.MethodGet, "/channels/"+channelID+"/messages", aliceToken, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("read after delete: expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
