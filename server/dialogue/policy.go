package dialogue

import "strings"

// defaultTriggers are the substrings that signal a user utterance is asking
// for factual information. The tail entries are domain words specific to
// Adam's lore.
var defaultTriggers = []string{
	"what is", "who is", "tell me about", "explain", "define",
	"how does", "why does", "when did", "where is", "history of",
	"information about", "facts about", "details about",
	"magic", "northern isles", "wisdom", "time", "gaming",
}

// Policy decides whether a user utterance warrants a knowledge lookup.
// It is a pure substring check with no side effects.
type Policy struct {
	triggers []string
}

// NewPolicy creates a policy over the given trigger phrases. Phrases are
// matched case-insensitively; nil falls back to the default list.
func NewPolicy(triggers []string) *Policy {
	if triggers == nil {
		triggers = defaultTriggers
	}
	lowered := make([]string, len(triggers))
	for i, t := range triggers {
		lowered[i] = strings.ToLower(t)
	}
	return &Policy{triggers: lowered}
}

// ShouldAugment reports whether any trigger phrase occurs in the utterance.
func (p *Policy) ShouldAugment(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, trigger := range p.triggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
