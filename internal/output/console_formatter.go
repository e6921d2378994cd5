package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rtledit/rtl-decimal/internal/domain"
)

// ConsoleFormatter prints one aligned line per field.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(snap *domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if snap.Title != "" {
		fmt.Fprintln(&buf, snap.Title)
	}
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, fv := range snap.Fields {
		fmt.Fprintf(tw, "%s:\t%s\t\n", fv.Label, fv.Display)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	if snap.Message != "" {
		fmt.Fprintf(&buf, "Last message: %s\n", snap.Message)
	}
	return buf.Bytes(), nil
}
