// Package agent runs a persona: it assembles the full generation
// prompt from instruction template, transcript context and knowledge
// excerpts, and delegates to the selected backend. Agents never touch
// the shared transcript; the orchestrator owns all appends.
package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/backend"
	"github.com/quorumhall/roundtable/internal/model/consult"
	"github.com/quorumhall/roundtable/internal/model/persona"
	"github.com/quorumhall/roundtable/internal/service/prompt"
)

const (
	// contextWindow bounds how many trailing transcript turns are
	// considered for context.
	contextWindow = 10
	// contextLines bounds how many formatted lines reach the prompt.
	contextLines = 5
	// knowledgeHits bounds retrieval excerpts per response.
	knowledgeHits = 2
	// excerptRunes truncates each knowledge excerpt.
	excerptRunes = 200
)

// Agent wraps one persona with the machinery to answer a query.
type Agent struct {
	persona *persona.Persona
	prompts *prompt.Manager
	backend *backend.Selection
	logger  *zap.Logger
}

// New builds an agent for the given persona.
func New(p *persona.Persona, prompts *prompt.Manager, sel *backend.Selection, logger *zap.Logger) *Agent {
	return &Agent{persona: p, prompts: prompts, backend: sel, logger: logger}
}

// Persona exposes the wrapped persona.
func (a *Agent) Persona() *persona.Persona { return a.persona }

// Respond produces this persona's answer to userInput. transcript is
// the shared history tail, peers the current round's earlier responses
// when this is a follow-up. Generation failures come back as a visible
// error message, never as an error: one broken persona must not block
// the panel.
func (a *Agent) Respond(ctx context.Context, userInput string, transcript []consult.Turn, peers []consult.Turn) string {
	fullPrompt := a.buildPrompt(ctx, userInput, transcript, peers)

	req := backend.Request{
		PersonaID: a.persona.Name,
		Model:     a.persona.Model,
		Prompt:    fullPrompt,
		Query:     userInput,
		Options:   backend.DefaultOptions(a.persona.Personality.Temperature),
	}

	text, err := a.backend.Generator().Generate(ctx, req)
	if err != nil {
		a.logger.Warn("generation failed",
			zap.String("persona", a.persona.Name),
			zap.String("method", string(a.backend.Method())),
			zap.Error(err))
		return fmt.Sprintf("Error generating response: %v", err)
	}
	return strings.TrimSpace(text)
}

func (a *Agent) buildPrompt(ctx context.Context, userInput string, transcript []consult.Turn, peers []consult.Turn) string {
	var sections []string
	sections = append(sections, a.prompts.BuildSystemPrompt(a.persona))
	sections = append(sections, a.roleReinforcement())

	if contextBlock := a.buildContext(transcript, peers); contextBlock != "" {
		sections = append(sections, "CONVERSATION CONTEXT:\n"+contextBlock)
	} else {
		sections = append(sections, "CONVERSATION CONTEXT:\nNo prior context")
	}

	// The knowledge section is omitted entirely when retrieval finds
	// nothing, not left as an empty placeholder.
	if excerpts := a.buildKnowledge(ctx, userInput); excerpts != "" {
		sections = append(sections, excerpts)
	}

	sections = append(sections, fmt.Sprintf(
		"USER QUERY: %s\n\nIMPORTANT: Respond ONLY as %s with your %s perspective. Do NOT respond as any other AI. Start your response by clearly identifying yourself.\n\n%s:",
		userInput, a.persona.Name, a.persona.Role, a.persona.Name))

	return strings.Join(sections, "\n\n")
}

// roleReinforcement pins identity so a verbose context cannot pull the
// model into impersonating another panel member.
func (a *Agent) roleReinforcement() string {
	return fmt.Sprintf(`CRITICAL: You are %s and no other panel member. Never impersonate another persona.
Your role: %s
Your perspective: %s`,
		a.persona.Name, a.persona.Role, a.persona.Personality.CommunicationStyle)
}

func (a *Agent) buildContext(transcript []consult.Turn, peers []consult.Turn) string {
	start := 0
	if len(transcript) > contextWindow {
		start = len(transcript) - contextWindow
	}

	var lines []string
	for _, turn := range transcript[start:] {
		if turn.Speaker == consult.SpeakerSystem {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Speaker, turn.Message))
	}
	for _, turn := range peers {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Speaker, turn.Message))
	}

	if len(lines) > contextLines {
		lines = lines[len(lines)-contextLines:]
	}
	return strings.Join(lines, "\n")
}

func (a *Agent) buildKnowledge(ctx context.Context, userInput string) string {
	kb, ok := a.persona.Knowledge()
	if !ok {
		return ""
	}

	hits, err := kb.Query(ctx, userInput, knowledgeHits)
	if err != nil {
		a.logger.Warn("knowledge query failed",
			zap.String("persona", a.persona.Name), zap.Error(err))
		return ""
	}
	if len(hits) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("RELEVANT KNOWLEDGE:\n")
	for _, hit := range hits {
		b.WriteString(fmt.Sprintf("- %s: %s\n", hit.Title, truncate(hit.Content, excerptRunes)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
