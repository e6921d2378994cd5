package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultDecimalPoints is used for fields that do not set decimal_points.
const DefaultDecimalPoints = 3

// DefaultSubmitMessage is used when the form does not set submit.message.
const DefaultSubmitMessage = "{label}: {value}"

// Form describes a screen of right-to-left decimal fields
type Form struct {
	Title     string      `yaml:"title" json:"title"`
	Separator string      `yaml:"separator,omitempty" json:"separator,omitempty"`
	Fields    []FieldSpec `yaml:"fields" json:"fields"`
	Submit    SubmitSpec  `yaml:"submit" json:"submit"`
}

// FieldSpec describes a single decimal input field on a form
type FieldSpec struct {
	Name          string          `yaml:"name" json:"name"`
	Label         string          `yaml:"label" json:"label"`
	DecimalPoints *int            `yaml:"decimal_points,omitempty" json:"decimal_points,omitempty"`
	InitialValue  decimal.Decimal `yaml:"initial_value" json:"initial_value"`

	// Next names the field focused when enter is pressed in this one
	Next string `yaml:"next,omitempty" json:"next,omitempty"`

	// SubmitOnEnter submits the form when enter is pressed in this field
	SubmitOnEnter bool `yaml:"submit_on_enter,omitempty" json:"submit_on_enter,omitempty"`
}

// SubmitSpec describes what is shown when the form is submitted
type SubmitSpec struct {
	Field   string `yaml:"field" json:"field"`
	Message string `yaml:"message" json:"message"`
}

// UnmarshalYAML implements custom YAML unmarshaling for FieldSpec so that
// initial values keep their exact decimal text
func (fs *FieldSpec) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Name          string  `yaml:"name"`
		Label         string  `yaml:"label"`
		DecimalPoints *int    `yaml:"decimal_points,omitempty"`
		InitialValue  *string `yaml:"initial_value,omitempty"`
		Next          string  `yaml:"next,omitempty"`
		SubmitOnEnter bool    `yaml:"submit_on_enter,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	fs.Name = aux.Name
	fs.Label = aux.Label
	fs.DecimalPoints = aux.DecimalPoints
	fs.Next = aux.Next
	fs.SubmitOnEnter = aux.SubmitOnEnter
	fs.InitialValue = decimal.Zero

	if aux.InitialValue != nil && strings.TrimSpace(*aux.InitialValue) != "" {
		val, err := decimal.NewFromString(strings.TrimSpace(*aux.InitialValue))
		if err != nil {
			return fmt.Errorf("field %q: invalid initial_value %q: %w", aux.Name, *aux.InitialValue, err)
		}
		fs.InitialValue = val
	}

	return nil
}

// Points returns the configured decimal points or the default
func (fs FieldSpec) Points() int {
	if fs.DecimalPoints == nil {
		return DefaultDecimalPoints
	}
	return *fs.DecimalPoints
}

// DisplayLabel returns the label, falling back to the field name
func (fs FieldSpec) DisplayLabel() string {
	if fs.Label != "" {
		return fs.Label
	}
	return fs.Name
}

// FieldByName returns the field with the given name
func (f *Form) FieldByName(name string) (*FieldSpec, bool) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// SeparatorRune returns the display separator, '.' when unset
func (f *Form) SeparatorRune() rune {
	if f.Separator == "" {
		return '.'
	}
	return []rune(f.Separator)[0]
}

// SubmitField returns the name of the field reported on submit
func (f *Form) SubmitField() string {
	if f.Submit.Field != "" {
		return f.Submit.Field
	}
	if len(f.Fields) > 0 {
		return f.Fields[0].Name
	}
	return ""
}

// SubmitMessage returns the submit message template
func (f *Form) SubmitMessage() string {
	if f.Submit.Message != "" {
		return f.Submit.Message
	}
	return DefaultSubmitMessage
}

// RenderSubmitMessage fills {label}, {name} and {value} in the submit template
func (f *Form) RenderSubmitMessage(spec FieldSpec, value string) string {
	r := strings.NewReplacer(
		"{label}", spec.DisplayLabel(),
		"{name}", spec.Name,
		"{value}", value,
	)
	return r.Replace(f.SubmitMessage())
}

// DefaultForm returns the weight/width/height demo screen
func DefaultForm() *Form {
	return &Form{
		Title: "Measurements",
		Fields: []FieldSpec{
			{Name: "weight", Label: "Weight", InitialValue: decimal.Zero, Next: "width"},
			{Name: "width", Label: "Width", InitialValue: decimal.Zero, Next: "height"},
			{Name: "height", Label: "Height", InitialValue: decimal.Zero, SubmitOnEnter: true},
		},
		Submit: SubmitSpec{Field: "weight", Message: "Weight: {value}"},
	}
}

// FieldValue is the state of one field at a point in time
type FieldValue struct {
	Name          string `yaml:"name" json:"name"`
	Label         string `yaml:"label" json:"label"`
	DecimalPoints int    `yaml:"decimal_points" json:"decimal_points"`
	Display       string `yaml:"display" json:"display"`
	Value         string `yaml:"value" json:"value"`
}

// Snapshot is the state of a whole form, used for reports
type Snapshot struct {
	Title   string       `yaml:"title,omitempty" json:"title,omitempty"`
	Focused string       `yaml:"focused" json:"focused"`
	Fields  []FieldValue `yaml:"fields" json:"fields"`
	Message string       `yaml:"message,omitempty" json:"message,omitempty"`
	Submits int          `yaml:"submits" json:"submits"`
}
