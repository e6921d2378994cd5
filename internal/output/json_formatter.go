package output

import (
	"encoding/json"

	"github.com/rtledit/rtl-decimal/internal/domain"
)

// JSONFormatter serializes the snapshot as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(snap *domain.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
