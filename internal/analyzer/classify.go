package analyzer

import "regexp"

// Rule pairs a category and suggestion with the trigger that assigns them.
type Rule struct {
	Category   string
	Suggestion string
	Trigger    *regexp.Regexp
}

// Rules is the heuristic classification chain, evaluated top to bottom against
// a group's representative raw text; the first match wins. The rules are not
// mutually exclusive, so their order encodes priority.
var Rules = []Rule{
	{
		Category:   "async-function",
		Suggestion: "Extract to async utility function",
		Trigger:    regexp.MustCompile(`\basync\s+(?:function\b|\(|[A-Za-z_$][\w$]*\s*(?:=>|\())`),
	},
	{
		Category:   "api-call",
		Suggestion: "Extract to API service method",
		Trigger:    regexp.MustCompile(`\bfetch\s*\(|\baxios\b|\b(?:https?|api|client)\.(?:get|post|put|patch|delete)\s*\(`),
	},
	{
		Category:   "reactive-state",
		Suggestion: "Extract to reusable reactive store/composition",
		Trigger:    regexp.MustCompile(`\buse(?:Effect|State|Memo|Callback|Reducer)\s*\(|\b(?:computed|watchEffect|watch|reactive)\s*\(`),
	},
	{
		Category:   "logging",
		Suggestion: "Use centralized logger utility",
		Trigger:    regexp.MustCompile(`\bconsole\.(?:log|info|warn|error|debug|trace)\s*\(`),
	},
	{
		Category:   "date-manipulation",
		Suggestion: "Extract to date utility function",
		Trigger:    regexp.MustCompile(`\bnew\s+Date\b|\b(?:moment|dayjs)\s*\(|\.(?:toISOString|toLocaleDateString|toLocaleTimeString|getFullYear|getMonth|getDate)\s*\(`),
	},
	{
		Category:   "array-processing",
		Suggestion: "Extract to data processing utility",
		Trigger:    regexp.MustCompile(`\.(?:map|filter|reduce)\s*\(`),
	},
	{
		Category:   "conditional-logic",
		Suggestion: "Extract to named function for clarity",
		Trigger:    regexp.MustCompile(`\bif\s*\(`),
	},
}

// UnknownCategory is assigned when no rule matches. It still carries a usable
// generic suggestion; a non-match is not an error.
const (
	UnknownCategory   = "unknown"
	UnknownSuggestion = "Consider extracting to utility function"
)

// Classify assigns exactly one category and suggestion to the raw text.
func Classify(raw string) (category, suggestion string) {
	for _, r := range Rules {
		if r.Trigger.MatchString(raw) {
			return r.Category, r.Suggestion
		}
	}
	return UnknownCategory, UnknownSuggestion
}
