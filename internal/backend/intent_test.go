package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		{"hi there", IntentGreeting},
		{"Hello! Anyone around?", IntentGreeting},
		{"should we scrape competitor pricing", IntentScraping},
		{"add analytics tracking to the checkout flow", IntentTracking},
		{"is this NDA clause enforceable", IntentContract},
		{"what is the meaning of life", IntentGeneric},
		{"", IntentGeneric},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectIntent(tc.query), "query: %q", tc.query)
	}
}

func TestDetectIntentGreetingNeedsWholeWord(t *testing.T) {
	// "this" contains "hi" but is not a greeting.
	assert.Equal(t, IntentGeneric, DetectIntent("explain this to me"))
}
