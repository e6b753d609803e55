package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

const ellipsis = "..."

// Highlighter wraps one matched substring of a snippet.
type Highlighter func(match string) string

// MarkHighlighter wraps matches in HTML mark tags.
func MarkHighlighter(match string) string {
	return "<mark>" + match + "</mark>"
}

// PlainHighlighter leaves matches untouched.
func PlainHighlighter(match string) string {
	return match
}

// SnippetOptions configures snippet extraction.
type SnippetOptions struct {
	// ContextRadius is the number of bytes kept either side of an occurrence.
	ContextRadius int

	// PageWindow is the number of bytes treated as one page.
	PageWindow int

	// Highlighter wraps each match. Nil uses MarkHighlighter.
	Highlighter Highlighter

	// LiteralHighlight escapes the query before building the highlight
	// pattern. When false the query is compiled as a case-insensitive
	// regular expression, falling back to literal if it does not compile.
	LiteralHighlight bool
}

// DefaultSnippetOptions returns the default snippet configuration.
func DefaultSnippetOptions() SnippetOptions {
	return SnippetOptions{
		ContextRadius:    domain.DefaultContextRadius,
		PageWindow:       domain.DefaultPageWindow,
		Highlighter:      MarkHighlighter,
		LiteralHighlight: true,
	}
}

// ExtractSnippets returns one snippet per occurrence of query in text.
//
// Occurrences are found case-insensitively, and the scan resumes one byte
// after each hit, so overlapping occurrences each produce a snippet.
// Every occurrence of the query inside a snippet is highlighted, not just
// the one that produced it. Returns nil for an empty query or no match.
func ExtractSnippets(text, query string, opts SnippetOptions) []domain.Snippet {
	if query == "" || text == "" {
		return nil
	}
	opts = opts.withDefaults()

	lowerText := foldLower(text)
	lowerQuery := foldLower(query)
	highlight := highlighter(query, opts.LiteralHighlight, opts.Highlighter)

	var snippets []domain.Snippet
	for from := 0; from <= len(lowerText); {
		rel := strings.Index(lowerText[from:], lowerQuery)
		if rel < 0 {
			break
		}
		idx := from + rel

		start := runeFloor(text, max(0, idx-opts.ContextRadius))
		end := runeCeil(text, min(len(text), idx+len(query)+opts.ContextRadius))

		window := text[start:end]
		if start > 0 {
			window = ellipsis + window
		}
		if end < len(text) {
			window += ellipsis
		}

		snippets = append(snippets, domain.Snippet{
			Text: highlight(window),
			Page: idx/opts.PageWindow + 1,
		})

		from = idx + 1
	}

	return snippets
}

// CountMatches returns the number of non-overlapping case-insensitive
// occurrences of query in text. Used for ranking.
func CountMatches(text, query string) int {
	if query == "" {
		return 0
	}
	return len(strings.Split(foldLower(text), foldLower(query))) - 1
}

// HighlightMatches wraps every case-insensitive occurrence of query in
// text with h. It marks exactly the occurrences CountMatches counts.
// An empty query returns text unchanged.
func HighlightMatches(text, query string, h Highlighter) string {
	if query == "" {
		return text
	}
	if h == nil {
		h = MarkHighlighter
	}
	return wrapFolded(text, foldLower(query), h)
}

func (o SnippetOptions) withDefaults() SnippetOptions {
	if o.ContextRadius < 0 {
		o.ContextRadius = 0
	}
	if o.PageWindow <= 0 {
		o.PageWindow = domain.DefaultPageWindow
	}
	if o.Highlighter == nil {
		o.Highlighter = MarkHighlighter
	}
	return o
}

// highlighter returns the function that marks matches inside a snippet.
// Literal highlighting folds case the same way the occurrence scan does.
// A query that compiles as a regular expression is matched with (?i)
// instead, which also folds characters such as the Kelvin sign.
func highlighter(query string, literal bool, h Highlighter) func(string) string {
	if !literal {
		if re, err := regexp.Compile("(?i)" + query); err == nil {
			return func(s string) string { return re.ReplaceAllStringFunc(s, h) }
		}
	}
	needle := foldLower(query)
	return func(s string) string { return wrapFolded(s, needle, h) }
}

// wrapFolded wraps each non-overlapping occurrence of needle in foldLower(s).
// needle must already be folded.
func wrapFolded(s, needle string, h Highlighter) string {
	folded := foldLower(s)
	var b strings.Builder
	last := 0
	for {
		rel := strings.Index(folded[last:], needle)
		if rel < 0 {
			break
		}
		idx := last + rel
		b.WriteString(s[last:idx])
		b.WriteString(h(s[idx : idx+len(needle)]))
		last = idx + len(needle)
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// foldLower lower-cases s rune by rune, keeping any rune whose lower-case
// form has a different UTF-8 length. Byte offsets in the result therefore
// index the same characters in s.
func foldLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		lr := unicode.ToLower(r)
		if r == utf8.RuneError || utf8.RuneLen(lr) != size {
			b.WriteString(s[i : i+size])
		} else {
			b.WriteRune(lr)
		}
		i += size
	}
	return b.String()
}

// runeFloor moves i back to the start of the rune containing it.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves i forward to the next rune boundary.
func runeCeil(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
