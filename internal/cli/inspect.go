package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/anerudhh/realistly/internal/listing"
)

// inspectResult is the --format json view of an inspection.
type inspectResult struct {
	Relevant bool           `json:"relevant"`
	Reason   string         `json:"reason,omitempty"`
	Pattern  string         `json:"pattern,omitempty"`
	Offset   int            `json:"offset"`
	Record   listing.Record `json:"record"`
}

func newInspectCmd() *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "inspect <text...>",
		Short: "Show how a single message is filtered, classified and extracted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, sender, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "inspect", "sender recorded on the result")

	return cmd
}

func runInspect(cmd *cobra.Command, sender, text string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	in := svc.Inspect(sender, text)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), inspectResult{
			Relevant: in.Reason == "",
			Reason:   in.Reason,
			Pattern:  in.Decision.Pattern,
			Offset:   in.Decision.Offset,
			Record:   in.Record,
		})
	}

	printInspection(cmd.OutOrStdout(), in)
	return nil
}
