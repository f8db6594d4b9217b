package backend

import "strings"

// Intent classifies what a user query is about so the scripted backend
// can pick a fitting canned response.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentScraping Intent = "scraping"
	IntentTracking Intent = "tracking"
	IntentContract Intent = "contract"
	IntentGeneric  Intent = "generic"
)

var intentBuckets = map[Intent][]string{
	IntentGreeting: {
		"hi", "hello", "hey", "greetings", "good morning", "good afternoon",
	},
	IntentScraping: {
		"scrape", "scraping", "crawler", "crawl", "harvest data", "collect data",
	},
	IntentTracking: {
		"track", "tracking", "analytics", "telemetry", "cookies", "fingerprint",
	},
	IntentContract: {
		"contract", "agreement", "clause", "breach", "terms", "nda", "liability",
	},
}

// DetectIntent scores the query against keyword buckets and returns the
// best match, IntentGreeting winning only on whole-word hits so "this"
// does not read as "hi". Falls back to IntentGeneric.
func DetectIntent(query string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return IntentGeneric
	}
	words := strings.Fields(normalized)

	// Fixed evaluation order keeps ties deterministic.
	order := []Intent{IntentGreeting, IntentScraping, IntentTracking, IntentContract}

	best := IntentGeneric
	bestScore := 0
	for _, intent := range order {
		keywords := intentBuckets[intent]
		score := 0
		for _, kw := range keywords {
			if intent == IntentGreeting {
				for _, w := range words {
					if strings.Trim(w, ".,!?") == kw {
						score++
					}
				}
				continue
			}
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}
	return best
}
