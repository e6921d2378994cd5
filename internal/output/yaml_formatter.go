package output

import (
	"github.com/rtledit/rtl-decimal/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the snapshot as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(snap *domain.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}
