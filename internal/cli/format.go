package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/anerudhh/realistly/internal/listing"
	"github.com/anerudhh/realistly/internal/noise"
	"github.com/anerudhh/realistly/internal/pipeline"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printExtractSummary prints counts, drop reasons and a record preview.
func printExtractSummary(w io.Writer, res pipeline.Result, output string, sample []listing.Record) error {
	headingColor.Fprintf(w, "Parsed messages: %s\n", humanize.Comma(int64(res.Parsed)))
	okColor.Fprintf(w, "Saved %s relevant listings to %s\n", humanize.Comma(int64(len(res.Records))), output)

	if res.DroppedTotal() > 0 {
		fmt.Fprintln(w)
		if err := printDropTable(w, res.Dropped); err != nil {
			return err
		}
	}

	if len(sample) > 0 {
		data, err := listing.MarshalJSON(sample)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Sample:")
		fmt.Fprint(w, string(data))
	}
	return nil
}

// printDropTable prints filtered message counts in check order.
func printDropTable(w io.Writer, dropped map[string]int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "DROPPED\tCOUNT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "-------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	total := 0
	for _, reason := range noise.Reasons {
		n := dropped[reason]
		if n == 0 {
			continue
		}
		total += n
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", reason, humanize.Comma(int64(n))); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	warnColor.Fprintf(w, "Total dropped: %s\n", humanize.Comma(int64(total)))
	return nil
}

// printInspection prints the filter verdict, classification and attributes
// of a single message.
func printInspection(w io.Writer, in pipeline.Inspection) {
	r := in.Record
	fmt.Fprintf(w, "Message:   %s\n", truncate(r.Message, 60))
	if in.Reason != "" {
		warnColor.Fprintf(w, "Noise:     dropped (%s)\n", in.Reason)
	} else {
		okColor.Fprintln(w, "Noise:     relevant")
	}
	if in.Decision.Pattern != "" {
		fmt.Fprintf(w, "Type:      %s (matched %s at %d)\n", r.ListingType, in.Decision.Pattern, in.Decision.Offset)
	} else {
		fmt.Fprintf(w, "Type:      %s\n", r.ListingType)
	}

	printAttr(w, "Name", r.PropertyName)
	printAttr(w, "Property", r.PropertyType)
	printAttr(w, "Location", r.Location)
	printAttr(w, "Size", r.Dimensions)
	if r.RentOrPrice != nil {
		fmt.Fprintf(w, "  Price:     %s\n", formatPrice(*r.RentOrPrice))
	}
	printAttr(w, "Phone", r.Phone)
	printAttr(w, "Furnished", r.Furnishing)
	printAttr(w, "Floor", r.Floor)
	printAttr(w, "Facing", r.Facing)
	fmt.Fprintf(w, "Status:    %s\n", r.Status)
}

func printAttr(w io.Writer, label string, v *string) {
	if v == nil {
		return
	}
	fmt.Fprintf(w, "  %-10s %s\n", label+":", *v)
}

// formatPrice renders rupees with thousands separators.
func formatPrice(rupees int64) string {
	return "₹" + humanize.Comma(rupees)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
