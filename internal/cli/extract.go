package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/anerudhh/realistly/internal/chat"
	"github.com/anerudhh/realistly/internal/config"
	"github.com/anerudhh/realistly/internal/listing"
)

const (
	defaultTranscript = "chat.txt"
	defaultOutput     = "rentals_cleaned.json"
)

type extractOptions struct {
	input    string
	output   string
	csv      string
	sample   int
	progress bool
}

// extractSummary is the --format json view of an extract run.
type extractSummary struct {
	Parsed  int              `json:"parsed"`
	Saved   int              `json:"saved"`
	Output  string           `json:"output"`
	CSV     string           `json:"csv,omitempty"`
	Dropped map[string]int   `json:"dropped"`
	Sample  []listing.Record `json:"sample"`
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract [transcript]",
		Short: "Extract listings from a chat transcript",
		Long:  "Read a chat export (default chat.txt), drop noise, and write one JSON record per listing message.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = defaultTranscript
			if len(args) == 1 {
				opts.input = args[0]
			}
			return runExtract(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", config.Getenv(config.EnvOutput, defaultOutput), "JSON output file")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "also write a CSV file")
	cmd.Flags().IntVar(&opts.sample, "sample", 2, "number of records to preview")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

func runExtract(cmd *cobra.Command, opts extractOptions) error {
	lines, err := chat.ReadTranscript(opts.input)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	messages := chat.Reassemble(lines)
	log.Debug().Str("input", opts.input).Int("lines", len(lines)).Int("messages", len(messages)).Msg("read transcript")

	var step func()
	if opts.progress && len(messages) > 0 {
		bar := newProgressBar(len(messages), cmd.ErrOrStderr())
		step = func() { _ = bar.Add(1) }
		defer func() { _ = bar.Finish() }()
	}

	res := svc.ProcessMessages(messages, step)

	for _, w := range outputWriters(opts) {
		if err := w.Write(res.Records); err != nil {
			return err
		}
	}
	log.Info().Str("output", opts.output).Int("records", len(res.Records)).Msg("wrote listings")

	sample := res.Records
	if opts.sample >= 0 && len(sample) > opts.sample {
		sample = sample[:opts.sample]
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, extractSummary{
			Parsed:  res.Parsed,
			Saved:   len(res.Records),
			Output:  opts.output,
			CSV:     opts.csv,
			Dropped: res.Dropped,
			Sample:  nonNil(sample),
		})
	}
	return printExtractSummary(out, res, opts.output, sample)
}

// outputWriters returns the JSON writer, followed by the CSV writer when
// --csv is set.
func outputWriters(opts extractOptions) []listing.Writer {
	writers := []listing.Writer{listing.NewJSONWriter(opts.output)}
	if opts.csv != "" {
		writers = append(writers, listing.NewCSVWriter(opts.csv))
	}
	return writers
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("msgs"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func nonNil(records []listing.Record) []listing.Record {
	if records == nil {
		return []listing.Record{}
	}
	return records
}
