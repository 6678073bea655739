package intent

import (
	"github.com/dlclark/regexp2"
)

// slotPlaceholder stands in for a redacted span. It is discarded during
// normalization and never reaches a skeleton; it exists so the residual
// fallback cannot re-admit a redacted entity as a token.
const slotPlaceholder = "□"

var (
	// Delimited argument spans: straight quote pairs plus the three
	// CJK bracket pairs used for titles and emphasis.
	delimitedSpanRe = regexp2.MustCompile(`"[^"]*"|'[^']*'|《[^》]*》|「[^」]*」|【[^】]*】`, regexp2.None)

	// Bare argument runs: ASCII alphanumeric runs of length >=2, or Han
	// runs of length 3-10. A run right after a reserved action word or
	// right before a common particle is kept. Each branch is anchored to
	// the maximal run and the Han branch is atomic, so a blocked run
	// cannot be re-matched from its second character or shortened until
	// a guard stops failing.
	bareRunRe = regexp2.MustCompile(`(?<!打开|播放|搜索|进入)(?:(?<![A-Za-z0-9])[A-Za-z0-9]{2,}(?![A-Za-z0-9])|(?<![一-鿿])(?>[一-鿿]{3,10}))(?!的|了|吗|呢|吧)`, regexp2.None)
)

// RedactSlots removes argument-like spans from text, replacing each with
// a placeholder token. Delimited spans are redacted first, then bare runs
// over the already-redacted output. Overlaps resolve by the regex
// engine's own matching rule.
func RedactSlots(text string) string {
	out := replaceAll(delimitedSpanRe, text, " "+slotPlaceholder+" ")
	out = replaceAll(bareRunRe, out, " "+slotPlaceholder+" ")
	return out
}

// StripDelimited drops delimited spans outright. Used by the query-time
// fallback, which wants the spans gone rather than marked.
func StripDelimited(text string) string {
	return replaceAll(delimitedSpanRe, text, " ")
}

func replaceAll(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		// Replace only fails on timeout; no timeout is configured.
		return s
	}
	return out
}
