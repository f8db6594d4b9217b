package agent_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/backend"
	"github.com/quorumhall/roundtable/internal/knowledge"
	"github.com/quorumhall/roundtable/internal/model/consult"
	"github.com/quorumhall/roundtable/internal/model/persona"
	"github.com/quorumhall/roundtable/internal/service/agent"
	"github.com/quorumhall/roundtable/internal/service/prompt"
)

type stubGenerator struct {
	lastReq backend.Request
	reply   string
	err     error
	calls   int
}

func (s *stubGenerator) Generate(_ context.Context, req backend.Request) (string, error) {
	s.lastReq = req
	s.calls++
	return s.reply, s.err
}

func (s *stubGenerator) Method() backend.Method { return backend.MethodScripted }

type stubRetriever struct {
	hits []knowledge.Hit
}

func (s *stubRetriever) Query(_ context.Context, _ string, k int) ([]knowledge.Hit, error) {
	if k > len(s.hits) {
		k = len(s.hits)
	}
	return s.hits[:k], nil
}

func newTestAgent(p *persona.Persona, gen backend.Generator) *agent.Agent {
	return agent.New(p, prompt.NewManager(), backend.NewSelection(gen), zap.NewNop())
}

func seededPersona(t *testing.T, name string) *persona.Persona {
	t.Helper()
	store := persona.NewMemoryStore(persona.Seed())
	p, ok := store.FindByName(name)
	require.True(t, ok)
	return p
}

func TestRespondBuildsRequest(t *testing.T) {
	gen := &stubGenerator{reply: "  From a legal perspective, proceed carefully.  "}
	p := seededPersona(t, "Legal-AI")
	a := newTestAgent(p, gen)

	out := a.Respond(context.Background(), "Can we scrape pricing?", nil, nil)

	assert.Equal(t, "From a legal perspective, proceed carefully.", out, "output must be trimmed")
	assert.Equal(t, "Legal-AI", gen.lastReq.PersonaID)
	assert.Equal(t, "Can we scrape pricing?", gen.lastReq.Query)
	assert.InDelta(t, 0.3, gen.lastReq.Options.Temperature, 1e-9)
	assert.Equal(t, 0.9, gen.lastReq.Options.TopP)
	assert.Equal(t, 300, gen.lastReq.Options.MaxTokens)
	assert.Contains(t, gen.lastReq.Prompt, "USER QUERY: Can we scrape pricing?")
	assert.Contains(t, gen.lastReq.Prompt, "Never impersonate another persona")
}

func TestRespondFailureBecomesVisibleMessage(t *testing.T) {
	gen := &stubGenerator{err: errors.New("backend exploded")}
	a := newTestAgent(seededPersona(t, "Tech-AI"), gen)

	out := a.Respond(context.Background(), "hello", nil, nil)
	assert.Contains(t, out, "Error generating response")
	assert.Contains(t, out, "backend exploded")
}

func TestRespondOmitsKnowledgeWithoutBinding(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	a := newTestAgent(seededPersona(t, "Business-AI"), gen)

	a.Respond(context.Background(), "anything", nil, nil)
	assert.NotContains(t, gen.lastReq.Prompt, "RELEVANT KNOWLEDGE")
}

func TestRespondIncludesKnowledgeExcerpts(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	p := seededPersona(t, "Legal-AI")
	p.BindKnowledge(&stubRetriever{hits: []knowledge.Hit{
		{Chunk: knowledge.Chunk{Title: "contract_law", Content: strings.Repeat("offer acceptance ", 30)}, Score: 0.9},
		{Chunk: knowledge.Chunk{Title: "contract_law", Content: "remedies"}, Score: 0.8},
		{Chunk: knowledge.Chunk{Title: "employment_law", Content: "at-will"}, Score: 0.2},
	}})
	a := newTestAgent(p, gen)

	a.Respond(context.Background(), "contract question", nil, nil)

	assert.Contains(t, gen.lastReq.Prompt, "RELEVANT KNOWLEDGE:")
	assert.Contains(t, gen.lastReq.Prompt, "contract_law")
	assert.NotContains(t, gen.lastReq.Prompt, "employment_law", "only the top 2 hits are used")
	assert.Contains(t, gen.lastReq.Prompt, "...", "long excerpts are truncated")
}

func TestRespondOmitsKnowledgeOnMiss(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	p := seededPersona(t, "Legal-AI")
	p.BindKnowledge(&stubRetriever{})
	a := newTestAgent(p, gen)

	a.Respond(context.Background(), "anything", nil, nil)
	assert.NotContains(t, gen.lastReq.Prompt, "RELEVANT KNOWLEDGE",
		"empty retrieval must omit the section, not leave a placeholder")
}

func TestRespondContextWindowSkipsSystemTurns(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	a := newTestAgent(seededPersona(t, "Tech-AI"), gen)

	transcript := []consult.Turn{
		{Speaker: consult.SpeakerSystem, Message: "session started"},
		{Speaker: consult.SpeakerUser, Message: "first question"},
		{Speaker: "Legal-AI", Message: "a legal view"},
	}

	a.Respond(context.Background(), "follow up", transcript, nil)

	assert.NotContains(t, gen.lastReq.Prompt, "session started")
	assert.Contains(t, gen.lastReq.Prompt, "User: first question")
	assert.Contains(t, gen.lastReq.Prompt, "Legal-AI: a legal view")
}

func TestRespondIncludesPeerResponses(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	a := newTestAgent(seededPersona(t, "Business-AI"), gen)

	peers := []consult.Turn{
		{Speaker: "Legal-AI", Message: "too risky"},
		{Speaker: "Tech-AI", Message: "easy to build"},
	}

	a.Respond(context.Background(), "mediate please", nil, peers)

	assert.Contains(t, gen.lastReq.Prompt, "Legal-AI: too risky")
	assert.Contains(t, gen.lastReq.Prompt, "Tech-AI: easy to build")
}
