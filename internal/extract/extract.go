// Package extract pulls listing attributes out of free-form message text.
//
// Fixed-rule attributes are plain functions. Property name and location
// depend on configuration and run as fallback chains on an Extractor.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/anerudhh/realistly/internal/config"
	"github.com/anerudhh/realistly/internal/listing"
)

var (
	// Prepositions need word boundaries so "at" inside "flat" or "in" inside
	// "looking" is not taken as a cue.
	nameAfterPrepRE    = regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Za-z0-9&\-_ ]{3,40})`)
	nameAfterListingRE = regexp.MustCompile(`(?i)for (?:rent|sale)[^\w]*(?:in|at)\s+([A-Za-z0-9&\-_ ]{3,40})`)
	nameBeforeBHKRE    = regexp.MustCompile(`(?i)([A-Za-z0-9&\-_ ]{1,40})\s+([1-9](?:\.[05])?\s?BHK)`)

	// Cue words are bounded for the same reason as nameAfterPrepRE.
	locationCueRE    = regexp.MustCompile(`(?i)(?:location:|\b(?:in|at|near)\b)\s*([A-Za-z0-9\s\-]+)`)
	punctuationRE    = regexp.MustCompile(`[.,;:\n]`)
	trailingDigitsRE = regexp.MustCompile(`\s+\d+.*$`)
)

// area is a gazetteer entry prepared for matching.
type area struct {
	name  string
	lower string
	// word is set for single-word names, which must match on word boundaries.
	word *regexp.Regexp
}

// Extractor runs every attribute rule over a message. It is safe for
// concurrent use once built.
type Extractor struct {
	areas    []area
	generic  map[string]struct{}
	name     Chain
	location Chain
}

// New prepares the gazetteer and filler phrases from cfg.
func New(cfg *config.Config) (*Extractor, error) {
	e := &Extractor{generic: make(map[string]struct{}, len(cfg.GenericPhrases))}

	for _, p := range cfg.GenericPhrases {
		e.generic[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}

	for _, name := range cfg.Gazetteer {
		a := area{name: name, lower: strings.ToLower(name)}
		if !strings.Contains(a.lower, " ") {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(a.lower) + `\b`)
			if err != nil {
				return nil, err
			}
			a.word = re
		}
		e.areas = append(e.areas, a)
	}

	e.name = Chain{
		Stages: []Stage{nameAfterPreposition, nameAfterListing, nameBeforeBHK},
		Reject: e.IsGeneric,
	}
	e.location = Chain{
		Stages: []Stage{e.gazetteerStrict, e.gazetteerLoose, locationAfterCue},
		Reject: e.IsGeneric,
	}
	return e, nil
}

// Extract runs all nine attribute rules on text.
func (e *Extractor) Extract(text string) listing.Attributes {
	return listing.Attributes{
		PropertyName: e.PropertyName(text),
		PropertyType: PropertyType(text),
		Location:     e.Location(text),
		Dimensions:   Dimensions(text),
		RentOrPrice:  RentOrPrice(text),
		Phone:        Phone(text),
		Furnishing:   Furnishing(text),
		Floor:        Floor(text),
		Facing:       Facing(text),
	}
}

// IsGeneric reports whether s is a filler phrase rather than a name.
func (e *Extractor) IsGeneric(s string) bool {
	_, ok := e.generic[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// PropertyName guesses a project or building name.
func (e *Extractor) PropertyName(text string) *string {
	return e.name.Run(text)
}

// Location returns the locality, preferring gazetteer entries.
func (e *Extractor) Location(text string) *string {
	return e.location.Run(text)
}

func nameAfterPreposition(text string) (string, bool) {
	return leadingWords(nameAfterPrepRE, text, 3)
}

func nameAfterListing(text string) (string, bool) {
	return leadingWords(nameAfterListingRE, text, 3)
}

func nameBeforeBHK(text string) (string, bool) {
	m := nameBeforeBHKRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	words := strings.Fields(m[1])
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	return strings.Join(words, " "), true
}

// leadingWords returns up to n words of the first submatch of re.
func leadingWords(re *regexp.Regexp, text string, n int) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return firstWords(m[1], n), true
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

type areaHit struct {
	offset int
	name   string
}

// gazetteerStrict finds the earliest gazetteer hit, matching single-word
// names on word boundaries and multi-word names as substrings.
func (e *Extractor) gazetteerStrict(text string) (string, bool) {
	low := strings.ToLower(text)

	var hits []areaHit
	for _, a := range e.areas {
		if a.word == nil {
			if i := strings.Index(low, a.lower); i >= 0 {
				hits = append(hits, areaHit{offset: i, name: a.name})
			}
			continue
		}
		for _, loc := range a.word.FindAllStringIndex(low, -1) {
			hits = append(hits, areaHit{offset: loc[0], name: a.name})
		}
	}
	if len(hits) == 0 {
		return "", false
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].offset != hits[j].offset {
			return hits[i].offset < hits[j].offset
		}
		return hits[i].name < hits[j].name
	})
	return titleCase(hits[0].name), true
}

// gazetteerLoose picks the entry found earliest as a plain substring.
// Equal offsets keep the entry listed first.
func (e *Extractor) gazetteerLoose(text string) (string, bool) {
	low := strings.ToLower(text)

	best, bestIdx := "", len(low)
	for _, a := range e.areas {
		if i := strings.Index(low, a.lower); i >= 0 && i < bestIdx {
			best, bestIdx = a.name, i
		}
	}
	if best == "" {
		return "", false
	}
	return titleCase(best), true
}

// locationAfterCue takes the words after "location:", "in", "at" or "near",
// cut at punctuation and before any trailing number.
func locationAfterCue(text string) (string, bool) {
	m := locationCueRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	loc := firstWords(m[1], 3)
	loc = punctuationRE.Split(loc, 2)[0]
	loc = trailingDigitsRE.ReplaceAllString(loc, "")
	if loc == "" {
		return "", false
	}
	return titleCase(loc), true
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
