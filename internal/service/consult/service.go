// Package consult owns the consultation session: the roster of agents,
// the shared append-only transcript, ethical pre-filtering, the
// turn-taking protocol and persistence of the finished session.
package consult

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/model/consult"
	"github.com/quorumhall/roundtable/internal/service/agent"
)

// followUpProbability is the chance a round gets organic cross-talk.
const followUpProbability = 0.6

// ErrEmptyRoster reports a misconfigured panel; a consultation without
// personas is fatal at startup, never silently defaulted.
var ErrEmptyRoster = errors.New("consultation requires at least one persona")

// Service is the consultation orchestrator. It alone mutates the
// session transcript; agents stay pure with respect to shared state.
type Service struct {
	// askMu serializes whole rounds: one user query is fully resolved
	// before the next begins, on the HTTP path as much as the CLI one.
	askMu sync.Mutex

	mu      sync.Mutex
	agents  []*agent.Agent
	session *consult.Session
	rng     *rand.Rand
	logger  *zap.Logger
}

// New builds an orchestrator over the given agents, in registration
// order. seed pins the follow-up randomness; seed <= 0 means
// time-based.
func New(agents []*agent.Agent, seed int64, logger *zap.Logger) (*Service, error) {
	if len(agents) == 0 {
		return nil, ErrEmptyRoster
	}
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}

	s := &Service{
		agents:  agents,
		session: consult.NewSession(time.Now()),
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}
	s.appendTurn(consult.SpeakerSystem, "Multi-AI consultation session started", false)
	return s, nil
}

// SessionID names the running session.
func (s *Service) SessionID() string { return s.session.ID }

// Transcript returns a copy of the transcript so far.
func (s *Service) Transcript() []consult.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]consult.Turn, len(s.session.Turns))
	copy(out, s.session.Turns)
	return out
}

// Roster lists persona names in registration order.
func (s *Service) Roster() []string {
	names := make([]string, 0, len(s.agents))
	for _, a := range s.agents {
		names = append(names, a.Persona().Name)
	}
	return names
}

// Ask runs one full consultation round for the user input and returns
// the persona turns it produced, in the order they were appended.
// Empty input is a no-op. Blocked input yields static refusals with no
// backend call. Otherwise every persona answers in registration order,
// and with probability 0.6 a follow-up round lets 1-2 randomly chosen
// personas react to their peers. Concurrent callers queue: a round in
// flight finishes before the next question enters the transcript.
func (s *Service) Ask(ctx context.Context, userInput string) []consult.Turn {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return nil
	}

	s.askMu.Lock()
	defer s.askMu.Unlock()

	s.appendTurn(consult.SpeakerUser, userInput, false)

	if !WithinEthicalBounds(userInput) {
		s.logger.Warn("ethical boundary violation detected")
		return s.refuseAll()
	}

	entries := s.firstRound(ctx, userInput)

	if s.rollFollowUp() {
		entries = append(entries, s.followUpRound(ctx, userInput, entries)...)
	}
	return entries
}

// firstRound asks every persona in registration order. Each response
// is appended to the transcript as it completes, so later personas see
// earlier output through the shared history.
func (s *Service) firstRound(ctx context.Context, userInput string) []consult.Turn {
	entries := make([]consult.Turn, 0, len(s.agents))
	for _, a := range s.agents {
		s.logger.Info("persona thinking", zap.String("persona", a.Persona().Name))
		response := a.Respond(ctx, userInput, s.Transcript(), nil)
		entries = append(entries, s.appendTurn(a.Persona().Name, response, false))
	}
	return entries
}

// followUpRound picks 1-2 agents without replacement and lets them
// react to the first round's output.
func (s *Service) followUpRound(ctx context.Context, userInput string, firstRound []consult.Turn) []consult.Turn {
	picks := s.pickFollowUps()

	entries := make([]consult.Turn, 0, len(picks))
	for _, a := range picks {
		s.logger.Info("persona following up", zap.String("persona", a.Persona().Name))
		response := a.Respond(ctx, userInput, s.Transcript(), firstRound)
		entries = append(entries, s.appendTurn(a.Persona().Name, response, true))
	}
	return entries
}

func (s *Service) rollFollowUp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < followUpProbability
}

func (s *Service) pickFollowUps() []*agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 1 + s.rng.Intn(2)
	if count > len(s.agents) {
		count = len(s.agents)
	}

	perm := s.rng.Perm(len(s.agents))
	picks := make([]*agent.Agent, 0, count)
	for _, idx := range perm[:count] {
		picks = append(picks, s.agents[idx])
	}
	return picks
}

// refuseAll emits the fixed refusal for every persona, in registration
// order, without touching the generation backend.
func (s *Service) refuseAll() []consult.Turn {
	entries := make([]consult.Turn, 0, len(s.agents))
	for _, a := range s.agents {
		entries = append(entries, s.appendTurn(a.Persona().Name, refusalFor(a.Persona().Name), false))
	}
	return entries
}

func (s *Service) appendTurn(speaker, message string, followUp bool) consult.Turn {
	turn := consult.Turn{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Speaker:   speaker,
		Message:   message,
		FollowUp:  followUp,
	}

	s.mu.Lock()
	s.session.Turns = append(s.session.Turns, turn)
	s.mu.Unlock()
	return turn
}
