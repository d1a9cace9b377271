// Package classify assigns a listing type to a message from keyword rules.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anerudhh/realistly/internal/config"
	"github.com/anerudhh/realistly/internal/listing"
)

// Rule maps compiled keyword patterns to a listing type. Lower Priority wins
// when two rules match at the same offset.
type Rule struct {
	Type     listing.Type
	Patterns []*regexp.Regexp
	Priority int
}

// refinement narrows a requirement by plain keyword presence.
type refinement struct {
	typ      listing.Type
	keywords []string
}

// Decision explains how a message was classified.
type Decision struct {
	Type listing.Type
	// Pattern is the offer pattern that matched earliest, empty otherwise.
	Pattern string
	// Offset is the byte offset of that match, or -1.
	Offset int
}

// Classifier holds the compiled rule table. It is safe for concurrent use.
type Classifier struct {
	offers      []Rule
	requirement []*regexp.Regexp
	refinements []refinement
}

// New compiles the classifier section of the configuration. Patterns are
// matched case-insensitively.
func New(cfg config.ClassifierConfig) (*Classifier, error) {
	c := &Classifier{}

	for i, o := range cfg.Offers {
		rule := Rule{Type: listing.Type(strings.ToLower(o.Type)), Priority: i}
		for _, p := range o.Patterns {
			re, err := compile(p)
			if err != nil {
				return nil, fmt.Errorf("offer rule %q: %w", o.Type, err)
			}
			rule.Patterns = append(rule.Patterns, re)
		}
		c.offers = append(c.offers, rule)
	}

	for _, p := range cfg.Requirement.Patterns {
		re, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("requirement rule: %w", err)
		}
		c.requirement = append(c.requirement, re)
	}

	for _, r := range cfg.Requirement.Refinements {
		ref := refinement{typ: listing.Type(strings.ToLower(r.Type))}
		for _, k := range r.Keywords {
			ref.keywords = append(ref.keywords, strings.ToLower(k))
		}
		c.refinements = append(c.refinements, ref)
	}

	return c, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Classify returns the listing type of text.
func (c *Classifier) Classify(text string) listing.Type {
	return c.Explain(text).Type
}

// Explain classifies text and reports the deciding offer match.
//
// Among matching offer rules the one whose earliest keyword occurs first
// wins. Requirement rules only apply when no offer rule matched.
func (c *Classifier) Explain(text string) Decision {
	low := strings.ToLower(text)

	best := Decision{Type: listing.TypeOther, Offset: -1}
	bestPriority := 0
	for _, rule := range c.offers {
		offset, pattern := earliest(rule.Patterns, low)
		if offset < 0 {
			continue
		}
		if best.Offset < 0 || offset < best.Offset || (offset == best.Offset && rule.Priority < bestPriority) {
			best = Decision{Type: rule.Type, Pattern: pattern, Offset: offset}
			bestPriority = rule.Priority
		}
	}
	if best.Offset >= 0 {
		return best
	}

	for _, re := range c.requirement {
		if re.MatchString(low) {
			return Decision{Type: c.refine(low), Offset: -1}
		}
	}

	return best
}

func (c *Classifier) refine(low string) listing.Type {
	for _, r := range c.refinements {
		for _, k := range r.keywords {
			if strings.Contains(low, k) {
				return r.typ
			}
		}
	}
	return listing.TypeRequirement
}

// earliest returns the smallest match offset over patterns and the pattern
// that produced it, or -1 when none match.
func earliest(patterns []*regexp.Regexp, text string) (int, string) {
	offset, pattern := -1, ""
	for _, re := range patterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if offset < 0 || loc[0] < offset {
			offset = loc[0]
			pattern = strings.TrimPrefix(re.String(), "(?i)")
		}
	}
	return offset, pattern
}
