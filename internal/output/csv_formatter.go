package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rtledit/rtl-decimal/internal/domain"
)

// CSVFormatter writes one row per field in display order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(snap *domain.Snapshot) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Name", "Label", "DecimalPoints", "Display", "Value"}); err != nil {
		return nil, err
	}
	for _, fv := range snap.Fields {
		row := []string{fv.Name, fv.Label, strconv.Itoa(fv.DecimalPoints), fv.Display, fv.Value}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
