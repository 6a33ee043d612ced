// Package nlp holds the light text-normalisation helpers used before fuzzy
// matching: pre-processors that canonicalise a phrase and tokenizers that
// split it while remembering where each token came from.
package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PreProcessor transforms a phrase before anything else is known about it.
type PreProcessor interface {
	PreProcess(query string) string
}

// UnicodePreProcessor applies Unicode NFKC normalisation, folding
// ligatures and compatibility forms into their canonical composed shape.
type UnicodePreProcessor struct{}

func (UnicodePreProcessor) PreProcess(query string) string {
	return norm.NFKC.String(query)
}

// CaseFoldingPreProcessor lowercases the phrase.
type CaseFoldingPreProcessor struct{}

func (CaseFoldingPreProcessor) PreProcess(query string) string {
	return strings.ToLower(query)
}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// ChainedRuleBasedPreProcessor applies a list of regexp rewrite rules in
// the order they were added.
type ChainedRuleBasedPreProcessor struct {
	rules []rule
}

// Add appends a rewrite rule. Rules added first are applied first.
func (p *ChainedRuleBasedPreProcessor) Add(pattern *regexp.Regexp, replacement string) {
	p.rules = append(p.rules, rule{pattern: pattern, replacement: replacement})
}

func (p *ChainedRuleBasedPreProcessor) PreProcess(query string) string {
	result := query
	for _, r := range p.rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// WhiteSpacePreProcessor trims the phrase and collapses runs of whitespace
// to a single space.
type WhiteSpacePreProcessor struct{}

var whitespaceRun = regexp.MustCompile(`\s{2,}`)

func (WhiteSpacePreProcessor) PreProcess(query string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
}

const stopWords = "a|an|at|by|el|i|in|la|las|los|my|of|on|san|santa|some|the|with|you"

// EnPreProcessor is the standard English pipeline: NFKC, case folding,
// stop-word removal, punctuation clearing, and whitespace collapsing.
type EnPreProcessor struct {
	unicode    UnicodePreProcessor
	caseFold   CaseFoldingPreProcessor
	rules      ChainedRuleBasedPreProcessor
	whitespace WhiteSpacePreProcessor
}

// NewEnPreProcessor creates the English pre-processor.
func NewEnPreProcessor() *EnPreProcessor {
	p := &EnPreProcessor{}

	// Remove stop words together with one adjacent space.
	p.rules.Add(regexp.MustCompile(`\b(`+stopWords+`)\b ?`), "")
	p.rules.Add(regexp.MustCompile(` ?\b(`+stopWords+`)\b`), "")

	// Clear punctuation and symbols.
	p.rules.Add(regexp.MustCompile(`[\p{P}\p{S}]+`), " ")

	return p
}

func (p *EnPreProcessor) PreProcess(query string) string {
	result := p.unicode.PreProcess(query)
	result = p.caseFold.PreProcess(result)
	result = p.rules.PreProcess(result)
	return p.whitespace.PreProcess(result)
}

// NewEnPlacesPreProcessor creates an English pre-processor with extra
// rules for places: cardinal directions and address abbreviations. The
// extra rules run after punctuation has been cleared, so the bare
// abbreviation is all that can remain of forms like "St." or "Ave.".
func NewEnPlacesPreProcessor() *EnPreProcessor {
	p := NewEnPreProcessor()

	// Cardinal directions.
	p.rules.Add(regexp.MustCompile(`\be\b`), "east")
	p.rules.Add(regexp.MustCompile(`\bn\b`), "north")
	p.rules.Add(regexp.MustCompile(`\bs\b`), "south")
	p.rules.Add(regexp.MustCompile(`\bw\b`), "west")

	p.rules.Add(regexp.MustCompile(`\bne\b`), "north east")
	p.rules.Add(regexp.MustCompile(`\bnw\b`), "north west")
	p.rules.Add(regexp.MustCompile(`\bse\b`), "south east")
	p.rules.Add(regexp.MustCompile(`\bsw\b`), "south west")

	// Address abbreviations.
	p.rules.Add(regexp.MustCompile(`\baly\b`), "alley")
	p.rules.Add(regexp.MustCompile(`\bave?\b`), "avenue")
	p.rules.Add(regexp.MustCompile(`\bblvd\b`), "boulevard")
	p.rules.Add(regexp.MustCompile(`\bbnd\b`), "bend")
	p.rules.Add(regexp.MustCompile(`\bcres\b`), "crescent")
	p.rules.Add(regexp.MustCompile(`\bcir\b`), "circle")
	p.rules.Add(regexp.MustCompile(`\bct\b`), "court")
	p.rules.Add(regexp.MustCompile(`\bdr\b`), "drive")
	p.rules.Add(regexp.MustCompile(`\best\b`), "estate")
	p.rules.Add(regexp.MustCompile(`\bln\b`), "lane")
	p.rules.Add(regexp.MustCompile(`\bpkwy\b`), "parkway")
	p.rules.Add(regexp.MustCompile(`\bpl\b`), "place")
	p.rules.Add(regexp.MustCompile(`\brd\b`), "road")
	// "st" at the start of the phrase is for "saint"; elsewhere it cannot
	// be told apart from "street".
	p.rules.Add(regexp.MustCompile(`^st\b`), "saint")
	p.rules.Add(regexp.MustCompile(`\bst\b`), "street")
	p.rules.Add(regexp.MustCompile(`\bxing\b`), "crossing")

	return p
}
