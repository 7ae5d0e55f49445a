// Package commentlink turns spans of review comment text into styled
// text, hyperlinks or search shortcuts.
//
// Each Rule pairs a regular expression with an ordered list of
// replacements. Named groups in the expression are substituted into the
// replacement fields with "{group}" placeholders.
package commentlink

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thoreinstein/gertty/internal/errors"
)

// URLPattern matches bare http and https URLs.
const URLPattern = `(?P<url>https?://\S*)`

// Kind identifies what a Chunk renders as.
type Kind int

// Chunk kinds.
const (
	KindPlain Kind = iota
	KindText
	KindLink
	KindSearch
)

// Chunk is one rendered piece of a comment.
type Chunk struct {
	Kind  Kind
	Text  string
	Color string
	URL   string
	Query string
}

// Replacement renders one matched span. Exactly one of the fields is set.
type Replacement struct {
	Text   *TextReplacement
	Link   *LinkReplacement
	Search *SearchReplacement
}

// TextReplacement renders the match as text, optionally colored by a
// palette attribute.
type TextReplacement struct {
	Text  string
	Color string
}

// LinkReplacement renders the match as a hyperlink.
type LinkReplacement struct {
	URL  string
	Text string
}

// SearchReplacement renders the match as a link that runs a change search.
type SearchReplacement struct {
	Query string
	Text  string
}

// Rule is a compiled comment link.
type Rule struct {
	// Pattern is the expression as written in the document.
	Pattern      string
	Match        *regexp.Regexp
	Replacements []Replacement
	TestResult   string
}

// New compiles match and returns the rule. The expression is compiled in
// multi-line mode so ^ and $ anchor at line boundaries.
func New(match string, replacements []Replacement, testResult string) (*Rule, error) {
	re, err := regexp.Compile("(?m)" + match)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "comment link %q", match), errors.ErrPatternCompile)
	}
	return &Rule{
		Pattern:      match,
		Match:        re,
		Replacements: replacements,
		TestResult:   testResult,
	}, nil
}

// URLRule returns the rule that turns bare URLs into links.
func URLRule() *Rule {
	return &Rule{
		Pattern: URLPattern,
		Match:   regexp.MustCompile("(?m)" + URLPattern),
		Replacements: []Replacement{
			{Link: &LinkReplacement{URL: "{url}", Text: "{url}"}},
		},
	}
}

// Run applies the rule to every plain chunk, splitting it around each
// match. Chunks produced by earlier rules pass through untouched.
func (r *Rule) Run(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Kind != KindPlain {
			out = append(out, chunk)
			continue
		}
		out = append(out, r.split(chunk.Text)...)
	}
	return out
}

func (r *Rule) split(text string) []Chunk {
	var out []Chunk
	var plain strings.Builder
	for text != "" {
		loc := r.Match.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		if loc[0] == loc[1] {
			// Empty match: keep the next rune as plain text and scan on.
			if loc[0] == len(text) {
				break
			}
			_, size := utf8.DecodeRuneInString(text[loc[0]:])
			plain.WriteString(text[:loc[0]+size])
			text = text[loc[0]+size:]
			continue
		}
		plain.WriteString(text[:loc[0]])
		if plain.Len() > 0 {
			out = append(out, Chunk{Kind: KindPlain, Text: plain.String()})
			plain.Reset()
		}
		groups := r.groups(text, loc)
		for _, rep := range r.Replacements {
			out = append(out, rep.render(groups))
		}
		text = text[loc[1]:]
	}
	plain.WriteString(text)
	if plain.Len() > 0 {
		out = append(out, Chunk{Kind: KindPlain, Text: plain.String()})
	}
	return out
}

// Result returns the rule's test result name for text, with group
// placeholders filled from the first match. It reports false when the
// rule has no test result or does not match.
func (r *Rule) Result(text string) (string, bool) {
	if r.TestResult == "" {
		return "", false
	}
	loc := r.Match.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	return expand(r.TestResult, r.groups(text, loc)), true
}

func (r *Rule) groups(text string, loc []int) map[string]string {
	groups := make(map[string]string)
	for i, name := range r.Match.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		groups[name] = text[loc[2*i]:loc[2*i+1]]
	}
	return groups
}

func (rep Replacement) render(groups map[string]string) Chunk {
	switch {
	case rep.Link != nil:
		return Chunk{
			Kind: KindLink,
			URL:  expand(rep.Link.URL, groups),
			Text: expand(rep.Link.Text, groups),
		}
	case rep.Search != nil:
		return Chunk{
			Kind:  KindSearch,
			Query: expand(rep.Search.Query, groups),
			Text:  expand(rep.Search.Text, groups),
		}
	case rep.Text != nil:
		return Chunk{
			Kind:  KindText,
			Color: expand(rep.Text.Color, groups),
			Text:  expand(rep.Text.Text, groups),
		}
	default:
		return Chunk{Kind: KindPlain}
	}
}

func expand(template string, groups map[string]string) string {
	if template == "" || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(groups)*2)
	for name, value := range groups {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Apply runs every rule over text in order.
func Apply(rules []*Rule, text string) []Chunk {
	chunks := []Chunk{{Kind: KindPlain, Text: text}}
	for _, r := range rules {
		chunks = r.Run(chunks)
	}
	return chunks
}

// TestResult returns the first test result any rule reports for text.
func TestResult(rules []*Rule, text string) (string, bool) {
	for _, r := range rules {
		if result, ok := r.Result(text); ok {
			return result, true
		}
	}
	return "", false
}
