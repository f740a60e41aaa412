package intent

import "strings"

// Intent is the response category assigned to a question
type Intent string

const (
	IntentInjuryReport Intent = "injury_report"
	IntentGreeting     Intent = "greeting"
	IntentHelp         Intent = "help"
	IntentFallback     Intent = "fallback"
)

// rule pairs a keyword set with the intent it selects. Matching is
// case-insensitive substring containment, any keyword suffices.
type rule struct {
	keywords []string
	intent   Intent
}

// rules is evaluated in order, first match wins. The categories overlap in
// raw text ("hi, show me the injury report" matches the first two rules),
// so the ordering is part of the contract.
var rules = []rule{
	{[]string{"injury", "injuries", "report", "roster", "list"}, IntentInjuryReport},
	{[]string{"hi", "hello", "hey"}, IntentGreeting},
	{[]string{"what can you do", "help"}, IntentHelp},
}

// Classify maps free-text input to an intent. Pure and deterministic.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return IntentFallback
}
