package consult

import "strings"

// denylist holds the unethical-activity keywords that short-circuit a
// round. Matching is case-insensitive substring; refusals are static so
// the ethical message can never be garbled by a generation backend.
var denylist = []string{
	"hack", "illegal", "steal", "fraud", "piracy", "bypass security",
	"malware", "virus", "ddos", "phishing", "identity theft",
	"money laundering", "tax evasion", "insider trading",
}

// refusals is the fixed refusal-plus-alternative message per persona.
var refusals = map[string]string{
	"Legal-AI":    "I cannot and will not provide assistance with illegal activities. Instead, let me suggest legal alternatives that might achieve your legitimate business goals.",
	"Tech-AI":     "From a technical standpoint, I understand you might be looking for solutions, but I can't help with anything that violates terms of service or laws. Happy to discuss legitimate technical approaches instead.",
	"Business-AI": "As a business advisor, I must point out that illegal activities expose your organization to significant legal and reputational risks. Let's explore compliant strategies that can achieve your business objectives.",
}

const genericRefusal = "I must decline to assist with this request because it appears to involve illegal activity. I'd be glad to help you find a lawful way to reach your goal."

// WithinEthicalBounds reports whether input clears the denylist.
func WithinEthicalBounds(input string) bool {
	lowered := strings.ToLower(input)
	for _, keyword := range denylist {
		if strings.Contains(lowered, keyword) {
			return false
		}
	}
	return true
}

// refusalFor returns the canned refusal for a persona name.
func refusalFor(name string) string {
	if msg, ok := refusals[name]; ok {
		return msg
	}
	return genericRefusal
}
