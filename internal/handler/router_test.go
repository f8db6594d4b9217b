package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/backend"
	"github.com/quorumhall/roundtable/internal/handler"
	"github.com/quorumhall/roundtable/internal/model/persona"
	"github.com/quorumhall/roundtable/internal/service/agent"
	consultservice "github.com/quorumhall/roundtable/internal/service/consult"
	"github.com/quorumhall/roundtable/internal/service/prompt"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, req backend.Request) (string, error) {
	return fmt.Sprintf("%s answers", req.PersonaID), nil
}

func (echoGenerator) Method() backend.Method { return backend.MethodScripted }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	roster := persona.Seed()
	sel := backend.NewSelection(echoGenerator{})
	prompts := prompt.NewManager()

	agents := make([]*agent.Agent, 0, len(roster))
	for _, p := range roster {
		agents = append(agents, agent.New(p, prompts, sel, zap.NewNop()))
	}

	svc, err := consultservice.New(agents, 1, zap.NewNop())
	require.NoError(t, err)

	return handler.NewRouter(persona.NewMemoryStore(roster), svc)
}

func TestListPersonas(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/personas", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var roster []struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roster))
	require.Len(t, roster, 3)
	assert.Equal(t, "Legal-AI", roster[0].Name)
	assert.Equal(t, "Legal Expert", roster[0].Role)
}

func TestConsultRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"message":"Should we open-source the client?"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consult", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
		Entries   []struct {
			Speaker string `json:"speaker"`
			Message string `json:"message"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	require.GreaterOrEqual(t, len(resp.Entries), 3)
	assert.Equal(t, "Legal-AI", resp.Entries[0].Speaker)
	assert.Equal(t, "Legal-AI answers", resp.Entries[0].Message)
}

func TestConsultRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing message")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(`{"message":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "malformed JSON")
}

func TestConsultStream(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/consult/stream?message=hello", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Contains(t, out, "event: status")
	assert.Contains(t, out, "event: entry")
	assert.Contains(t, out, "event: done")
	assert.Contains(t, out, "Legal-AI answers")
}

func TestConsultStreamRequiresMessage(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/consult/stream", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
