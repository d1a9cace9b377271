// Package noise decides whether a chat message is irrelevant to listing
// extraction: system notices, greetings, bare links, very short replies and
// attachment placeholders.
package noise

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anerudhh/realistly/internal/config"
)

// Drop reasons, in the order the checks run.
const (
	ReasonSystem     = "system"
	ReasonGreeting   = "greeting"
	ReasonLink       = "link"
	ReasonShort      = "short"
	ReasonAttachment = "attachment"
)

// Reasons lists every drop reason in check order.
var Reasons = []string{ReasonSystem, ReasonGreeting, ReasonLink, ReasonShort, ReasonAttachment}

// nonWord matches any rune outside letters, numbers and underscore. Combining
// marks count as non-word.
const nonWord = `[^\p{L}\p{N}_]`

var bareURLRE = regexp.MustCompile(`^https?://\S+$`)

// Filter is an immutable noise filter built from configuration.
type Filter struct {
	notices          []string
	greetings        []*regexp.Regexp
	attachmentPrefix string
	minLength        int
}

// New builds a filter from the noise section of the configuration.
func New(cfg config.NoiseConfig) (*Filter, error) {
	f := &Filter{
		attachmentPrefix: strings.ToLower(cfg.AttachmentPrefix),
		minLength:        cfg.MinLength,
	}
	for _, n := range cfg.SystemNotices {
		f.notices = append(f.notices, strings.ToLower(n))
	}

	greetings, err := greetingPatterns(cfg.Salutations, cfg.ShortSalutations, cfg.GroupTerms)
	if err != nil {
		return nil, err
	}
	f.greetings = greetings

	return f, nil
}

// greetingPatterns builds the greeting-only matchers: a salutation with an
// optional group term, the same after leading symbols, and the two orders of
// a short salutation paired with a required group term.
func greetingPatterns(salutations, short, groups []string) ([]*regexp.Regexp, error) {
	sal := alternation(salutations)
	shortSal := alternation(short)
	grp := alternation(groups)

	var sources []string
	if sal != "" {
		sources = append(sources,
			`^`+sal+nonWord+`*`+optional(grp)+nonWord+`*$`,
			`^`+nonWord+`*`+sal+nonWord+`*`+optional(grp)+nonWord+`*$`,
		)
	}
	if shortSal != "" && grp != "" {
		sources = append(sources,
			`^`+shortSal+nonWord+`+`+grp+nonWord+`*$`,
			`^`+grp+nonWord+`+`+shortSal+nonWord+`*$`,
		)
	}

	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compiling greeting pattern: %w", err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

func alternation(words []string) string {
	if len(words) == 0 {
		return ""
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

func optional(group string) string {
	if group == "" {
		return ""
	}
	return group + "?"
}

// Irrelevant reports whether the message should be dropped.
func (f *Filter) Irrelevant(text string) bool {
	return f.Reason(text) != ""
}

// Reason returns which check drops the message, or "" when it is relevant.
func (f *Filter) Reason(text string) string {
	low := strings.ToLower(strings.TrimSpace(text))
	clean := strings.TrimSpace(stripPunctuation(low))

	for _, n := range f.notices {
		if strings.Contains(low, n) {
			return ReasonSystem
		}
	}

	for _, g := range f.greetings {
		if g.MatchString(clean) {
			return ReasonGreeting
		}
	}

	if bareURLRE.MatchString(low) {
		return ReasonLink
	}

	if utf8.RuneCountInString(clean) < f.minLength && !strings.ContainsFunc(clean, unicode.IsDigit) {
		return ReasonShort
	}

	if f.attachmentPrefix != "" && strings.HasPrefix(low, f.attachmentPrefix) {
		return ReasonAttachment
	}

	return ""
}

// stripPunctuation removes every rune that is not a word character or whitespace.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
