package config

import (
	"errors"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/rtledit/rtl-decimal/internal/domain"
	fixed "github.com/rtledit/rtl-decimal/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidForm is returned when a form description fails validation.
var ErrInvalidForm = errors.New("invalid form")

// InputParser handles parsing of form description files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a form description from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Form, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses and validates a YAML form description
func (ip *InputParser) Parse(data []byte) (*domain.Form, error) {
	var form domain.Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&form); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &form, nil
}

// ValidateConfiguration validates a form description
func (ip *InputParser) ValidateConfiguration(form *domain.Form) error {
	if len(form.Fields) == 0 {
		return fmt.Errorf("%w: no fields provided", ErrInvalidForm)
	}

	if err := ip.validateSeparator(form.Separator); err != nil {
		return err
	}

	seen := make(map[string]bool, len(form.Fields))
	for i := range form.Fields {
		name := form.Fields[i].Name
		if name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidForm, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidForm, name)
		}
		seen[name] = true
	}

	for i := range form.Fields {
		if err := ip.validateField(form, &form.Fields[i]); err != nil {
			return fmt.Errorf("field %s validation failed: %w", form.Fields[i].Name, err)
		}
	}

	if _, ok := form.FieldByName(form.SubmitField()); !ok {
		return fmt.Errorf("%w: submit field %q does not exist", ErrInvalidForm, form.Submit.Field)
	}

	return nil
}

// validateField validates a single field
func (ip *InputParser) validateField(form *domain.Form, field *domain.FieldSpec) error {
	if n := field.Points(); n < 1 || n > fixed.MaxPoints {
		return fmt.Errorf("%w: decimal points must be between 1 and %d, got %d", ErrInvalidForm, fixed.MaxPoints, n)
	}
	if field.InitialValue.IsNegative() {
		return fmt.Errorf("%w: initial value cannot be negative", ErrInvalidForm)
	}
	if field.Next != "" {
		if field.Next == field.Name {
			return fmt.Errorf("%w: next cannot point at the field itself", ErrInvalidForm)
		}
		if _, ok := form.FieldByName(field.Next); !ok {
			return fmt.Errorf("%w: next field %q does not exist", ErrInvalidForm, field.Next)
		}
	}
	return nil
}

// validateSeparator validates the display separator
func (ip *InputParser) validateSeparator(sep string) error {
	if sep == "" {
		return nil
	}
	if utf8.RuneCountInString(sep) != 1 {
		return fmt.Errorf("%w: separator must be a single character, got %q", ErrInvalidForm, sep)
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '+' {
		return fmt.Errorf("%w: separator %q cannot be used", ErrInvalidForm, sep)
	}
	return nil
}
