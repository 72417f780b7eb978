package slug

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 120

// Make turns a title into a lowercase, hyphen-separated, URL-safe slug.
// Accents are folded to their base letters; every other run of non
// alphanumerics collapses into a single hyphen.
func Make(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}

	out := b.String()
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	return out
}

// WithTimestamp appends the unix-millisecond timestamp of now to base.
func WithTimestamp(base string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if base == "" {
		return ts
	}
	return base + "-" + ts
}
