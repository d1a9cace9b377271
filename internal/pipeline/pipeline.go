// Package pipeline wires reassembly, filtering, classification and
// extraction into one pass over a transcript.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anerudhh/realistly/internal/chat"
	"github.com/anerudhh/realistly/internal/classify"
	"github.com/anerudhh/realistly/internal/config"
	"github.com/anerudhh/realistly/internal/extract"
	"github.com/anerudhh/realistly/internal/listing"
	"github.com/anerudhh/realistly/internal/noise"
)

// Service turns transcript lines into listing records.
type Service struct {
	filter     *noise.Filter
	classifier *classify.Classifier
	extractor  *extract.Extractor
	log        zerolog.Logger
}

// Result is the outcome of one run.
type Result struct {
	// Parsed counts reassembled messages before filtering.
	Parsed int
	// Dropped counts filtered messages by noise reason.
	Dropped map[string]int
	// Records holds one record per relevant message, in input order.
	Records []listing.Record
}

// DroppedTotal returns the number of filtered messages.
func (r Result) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// Inspection explains how a single message is handled.
type Inspection struct {
	Reason   string
	Decision classify.Decision
	Record   listing.Record
}

// NewService compiles every rule set in cfg.
func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	filter, err := noise.New(cfg.Noise)
	if err != nil {
		return nil, fmt.Errorf("building noise filter: %w", err)
	}
	classifier, err := classify.New(cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}
	extractor, err := extract.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}
	for _, o := range cfg.Classifier.Offers {
		if t := listing.Type(strings.ToLower(o.Type)); !t.IsKnown() {
			log.Info().Str("type", string(t)).Msg("custom listing type")
		}
	}
	return &Service{filter: filter, classifier: classifier, extractor: extractor, log: log}, nil
}

// Process reassembles lines into messages and builds their records.
func (s *Service) Process(lines []string) Result {
	return s.ProcessMessages(chat.Reassemble(lines), nil)
}

// ProcessMessages filters and enriches already reassembled messages.
// step, when set, is called once per message.
func (s *Service) ProcessMessages(messages []chat.Message, step func()) Result {
	res := Result{Parsed: len(messages), Dropped: make(map[string]int)}

	for _, m := range messages {
		if step != nil {
			step()
		}
		if reason := s.filter.Reason(m.Text); reason != "" {
			res.Dropped[reason]++
			s.log.Debug().Str("sender", m.Sender).Str("reason", reason).Msg("dropped message")
			continue
		}
		res.Records = append(res.Records, s.Build(m))
	}

	s.log.Debug().
		Int("parsed", res.Parsed).
		Int("relevant", len(res.Records)).
		Int("dropped", res.DroppedTotal()).
		Msg("processed messages")
	return res
}

// Build classifies and extracts a single relevant message.
func (s *Service) Build(m chat.Message) listing.Record {
	return listing.Assemble(m.Sender, m.Text, s.classifier.Classify(m.Text), s.extractor.Extract(m.Text))
}

// Inspect runs every stage on text, including the noise filter, without
// dropping anything.
func (s *Service) Inspect(sender, text string) Inspection {
	d := s.classifier.Explain(text)
	return Inspection{
		Reason:   s.filter.Reason(text),
		Decision: d,
		Record:   listing.Assemble(sender, text, d.Type, s.extractor.Extract(text)),
	}
}
