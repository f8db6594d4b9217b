// Package backend abstracts text generation behind a single contract
// with three concrete strategies: a live model client, a command-line
// subprocess and a scripted stand-in. The strategy is probed once at
// startup and never re-selected mid-session.
package backend

import "context"

// Method names the generation strategy chosen at startup.
type Method string

const (
	MethodLive       Method = "live"
	MethodSubprocess Method = "subprocess"
	MethodScripted   Method = "scripted"
)

// Options tune a single generation call.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultOptions matches the panel's usual call shape.
func DefaultOptions(temperature float64) Options {
	return Options{Temperature: temperature, TopP: 0.9, MaxTokens: 300}
}

// Request carries everything a generator needs for one call. PersonaID
// and Query are explicit metadata: backends must never infer the
// speaking persona or the user's question from the prompt text.
type Request struct {
	PersonaID string
	Model     string
	Prompt    string
	Query     string
	Options   Options
}

// Generator produces text for a request. Implementations return an
// error only for failures the caller should surface; the persona layer
// converts any error into a visible message so one broken persona
// never aborts a round.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Method() Method
}

// Selection is the immutable outcome of startup probing. It is built
// once and passed by reference into every consumer; there is no write
// path after construction.
type Selection struct {
	generator Generator
}

// NewSelection wraps the chosen generator.
func NewSelection(g Generator) *Selection {
	return &Selection{generator: g}
}

// Generator returns the chosen generator.
func (s *Selection) Generator() Generator { return s.generator }

// Method reports the chosen strategy.
func (s *Selection) Method() Method { return s.generator.Method() }
