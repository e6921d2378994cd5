package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rtledit/rtl-decimal/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validForm = "title: \"Parcel\"\n" +
	"separator: \",\"\n" +
	"fields:\n" +
	"  - name: weight\n" +
	"    label: Weight\n" +
	"    decimal_points: 3\n" +
	"    initial_value: 1.5\n" +
	"    next: width\n" +
	"  - name: width\n" +
	"    label: Width\n" +
	"    decimal_points: 2\n" +
	"    submit_on_enter: true\n" +
	"submit:\n" +
	"  field: weight\n" +
	"  message: \"Weight: {value}\"\n"

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validForm), 0o600))

	form, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Parcel", form.Title)
	assert.Equal(t, ',', form.SeparatorRune())
	require.Len(t, form.Fields, 2)
	assert.Equal(t, 3, form.Fields[0].Points())
	assert.True(t, form.Fields[0].InitialValue.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "width", form.Fields[0].Next)
	assert.Equal(t, 2, form.Fields[1].Points())
	assert.True(t, form.Fields[1].SubmitOnEnter)
	assert.Equal(t, "weight", form.SubmitField())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("fields: [\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	points := func(n int) *int { return &n }

	testCases := []struct {
		name   string
		form   domain.Form
		errMsg string
	}{
		{
			name:   "no fields",
			form:   domain.Form{},
			errMsg: "no fields provided",
		},
		{
			name:   "unnamed field",
			form:   domain.Form{Fields: []domain.FieldSpec{{Label: "x"}}},
			errMsg: "has no name",
		},
		{
			name:   "duplicate names",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a"}, {Name: "a"}}},
			errMsg: "duplicate field name",
		},
		{
			name:   "zero decimal points",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", DecimalPoints: points(0)}}},
			errMsg: "decimal points must be between 1 and 18",
		},
		{
			name:   "too many decimal points",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", DecimalPoints: points(19)}}},
			errMsg: "decimal points must be between 1 and 18, got 19",
		},
		{
			name:   "decimal points past int32",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", DecimalPoints: points(math.MaxInt)}}},
			errMsg: "decimal points must be between 1 and 18",
		},
		{
			name:   "negative initial value",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", InitialValue: decimal.NewFromInt(-2)}}},
			errMsg: "initial value cannot be negative",
		},
		{
			name:   "unknown next",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", Next: "b"}}},
			errMsg: "next field \"b\" does not exist",
		},
		{
			name:   "self next",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a", Next: "a"}}},
			errMsg: "next cannot point at the field itself",
		},
		{
			name:   "unknown submit field",
			form:   domain.Form{Fields: []domain.FieldSpec{{Name: "a"}}, Submit: domain.SubmitSpec{Field: "z"}},
			errMsg: "submit field \"z\" does not exist",
		},
		{
			name:   "long separator",
			form:   domain.Form{Separator: "..", Fields: []domain.FieldSpec{{Name: "a"}}},
			errMsg: "single character",
		},
		{
			name:   "digit separator",
			form:   domain.Form{Separator: "1", Fields: []domain.FieldSpec{{Name: "a"}}},
			errMsg: "cannot be used",
		},
	}

	parser := NewInputParser()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := parser.ValidateConfiguration(&tc.form)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidForm)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestValidateConfiguration_DefaultForm(t *testing.T) {
	assert.NoError(t, NewInputParser().ValidateConfiguration(domain.DefaultForm()))
}

func TestParse_RejectsHugeDecimalPoints(t *testing.T) {
	data := "fields:\n" +
		"  - name: a\n" +
		"    decimal_points: 4294967299\n"
	_, err := NewInputParser().Parse([]byte(data))
	assert.ErrorIs(t, err, ErrInvalidForm)
}
