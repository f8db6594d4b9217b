package backend

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// scriptedReplies maps persona name and detected intent to a canned
// response. Persona identity comes from request metadata, never from
// scanning the prompt, so a query that mentions another persona's name
// cannot misroute the reply.
var scriptedReplies = map[string]map[Intent]string{
	"Legal-AI": {
		IntentGreeting: "Hello! I'm Legal-AI, your legal expert. I'm here to help you navigate legal complexities and identify potential risks. What legal matters can I assist you with today?",
		IntentScraping: "I must advise caution regarding web scraping. This often violates Terms of Service and could expose you to legal action under the Computer Fraud and Abuse Act. Let's explore compliant alternatives.",
		IntentTracking: "User tracking raises significant privacy law concerns. We need to consider GDPR, CCPA compliance, and ensure proper consent mechanisms are in place.",
		IntentContract: "Any agreement needs the essential elements: offer, acceptance, consideration and mutual assent. Before we go further I would review the written terms carefully; this is not legal advice.",
		IntentGeneric:  "From a legal perspective, I need to evaluate the regulatory implications and potential risks involved. Could you provide more details about the specific legal aspects you're concerned about?",
	},
	"Tech-AI": {
		IntentGreeting: "Hey there! I'm Tech-AI, your technical expert. I focus on practical solutions and efficient implementation. What technical challenge can I help you solve today?",
		IntentScraping: "From a technical standpoint, web scraping is straightforward using tools like Scrapy, Beautiful Soup, or Selenium. @Legal-AI might be overthinking the compliance aspects - most basic data collection is fine.",
		IntentTracking: "User tracking is easy to implement with Google Analytics, custom event tracking, or tools like Mixpanel. @Legal-AI, privacy compliance is just a matter of adding proper cookie banners.",
		IntentContract: "Contract workflows are an automation problem: templating, e-signature APIs and a document store get you most of the way. The hard part is whatever @Legal-AI wants in the clauses.",
		IntentGeneric:  "This looks technically feasible. I can outline several implementation approaches using modern frameworks. What's the specific technical requirement you're trying to solve?",
	},
	"Business-AI": {
		IntentGreeting: "Hello! I'm Business-AI, your strategic advisor. I help balance legal requirements with technical possibilities to achieve business objectives. What business challenge shall we tackle?",
		IntentScraping: "I see both perspectives here. @Legal-AI raises valid compliance concerns, but @Tech-AI is right about competitive necessity. What if we start with publicly available data and explore API partnerships?",
		IntentTracking: "User analytics can provide valuable business insights. Let's find a balanced approach that satisfies @Legal-AI's compliance requirements while meeting @Tech-AI's implementation efficiency.",
		IntentContract: "Contracts are relationship infrastructure. Let's make sure the commercial terms match the strategy before we spend on drafting - @Legal-AI can tighten the language once the deal shape is right.",
		IntentGeneric:  "Let's evaluate this from a business perspective - what's the ROI, competitive impact, and strategic value? I can help mediate between technical possibilities and legal constraints.",
	},
}

const scriptedFallback = "I understand your query. Let me provide a thoughtful analysis based on my expertise."

// Scripted is the stand-in generator used when neither the live client
// nor the CLI is reachable. It simulates generation latency so callers
// exercise the same asynchronous paths as with a real backend.
type Scripted struct {
	mu         sync.Mutex // guards rng; Generate may run concurrently
	rng        *rand.Rand
	minLatency time.Duration
	maxLatency time.Duration
}

// NewScripted builds the stand-in with the given latency band and a
// seeded source; seed <= 0 means nondeterministic.
func NewScripted(seed int64) *Scripted {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &Scripted{
		rng:        rand.New(rand.NewSource(seed)),
		minLatency: 300 * time.Millisecond,
		maxLatency: 1500 * time.Millisecond,
	}
}

// Method implements Generator.
func (s *Scripted) Method() Method { return MethodScripted }

// Generate implements Generator. Only req.Query feeds intent detection
// so transcript context cannot skew the match.
func (s *Scripted) Generate(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	delay := s.minLatency + time.Duration(s.rng.Int63n(int64(s.maxLatency-s.minLatency)))
	s.mu.Unlock()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(delay):
	}

	intent := DetectIntent(req.Query)
	if byIntent, ok := scriptedReplies[req.PersonaID]; ok {
		if reply, ok := byIntent[intent]; ok {
			return reply, nil
		}
		if reply, ok := byIntent[IntentGeneric]; ok {
			return reply, nil
		}
	}
	return scriptedFallback, nil
}
