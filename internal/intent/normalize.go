package intent

import (
	"strings"

	"github.com/featdup/featdup/internal/lexicon"
)

// fallbackPrefixLen caps the skeleton produced by the query-time fallback
// when neither an entity nor a verb was recognized.
const fallbackPrefixLen = 6

// Normalizer turns raw feature text into intent skeletons. It carries two
// deliberately divergent variants: the structural one used for corpus
// backfill and the entity-aware one used at query time. They share the
// slot-redaction substrate but disagree on edge cases; the divergence is
// load-bearing and must not be unified.
type Normalizer struct {
	lex *lexicon.Lexicon
}

// NewNormalizer creates a normalizer over the given rule tables.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{lex: lex}
}

// NormalizeStructural builds a skeleton from free text plus optional
// hierarchy labels. Labels are prepended verbatim in hierarchy order; the
// free text is slot-redacted, split on whitespace, and each token is
// either canonicalized through the verb table (containment match, first
// rule in table order wins) or kept as a residual when it is at least two
// runes and does not start with a filler character.
func (n *Normalizer) NormalizeStructural(text string, labels []string) string {
	tokens := make([]string, 0, len(labels)+4)
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label != "" {
			tokens = append(tokens, label)
		}
	}

	for _, tok := range strings.Fields(RedactSlots(text)) {
		if tok == slotPlaceholder {
			continue
		}
		if action, ok := n.lex.CanonicalAction(tok); ok {
			tokens = append(tokens, action)
			continue
		}
		runes := []rune(tok)
		if len(runes) < 2 || n.lex.IsFillerLead(runes[0]) {
			continue
		}
		tokens = append(tokens, tok)
	}

	return joinDedup(tokens)
}

// NormalizeQuery builds a skeleton for a live query. The first known
// entity (table order) is stripped from the text before the verb scan.
// Every verb rule contained in the remainder contributes its canonical
// action. When no verb was found the entity itself becomes the skeleton.
// When neither was found the fallback strips excluded content terms and
// delimited spans and truncates what is left to a short prefix.
func (n *Normalizer) NormalizeQuery(text string) string {
	entity := n.lex.FirstEntity(text)
	body := text
	if entity != "" {
		body = strings.ReplaceAll(body, entity, " ")
	}

	if actions := n.lex.ContainedActions(body); len(actions) > 0 {
		return joinDedup(actions)
	}
	if entity != "" {
		return entity
	}

	stripped := StripDelimited(n.lex.StripExcluded(text))
	stripped = strings.Join(strings.Fields(stripped), "")
	runes := []rune(stripped)
	if len(runes) > fallbackPrefixLen {
		runes = runes[:fallbackPrefixLen]
	}
	return string(runes)
}

// ExtractEntity resolves the known entity a text refers to, if any. The
// scorer uses this to tell "same verbs, different target app" apart from
// a real duplicate.
func (n *Normalizer) ExtractEntity(text string) string {
	return n.lex.FirstEntity(text)
}

// joinDedup drops repeated tokens keeping first occurrence order and
// joins the rest with single spaces.
func joinDedup(tokens []string) string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}
