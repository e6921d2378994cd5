package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldSpec_UnmarshalYAML(t *testing.T) {
	data := "name: weight\n" +
		"label: Weight\n" +
		"decimal_points: 2\n" +
		"initial_value: 12.50\n" +
		"next: width\n" +
		"submit_on_enter: true\n"

	var fs FieldSpec
	require.NoError(t, yaml.Unmarshal([]byte(data), &fs))

	assert.Equal(t, "weight", fs.Name)
	assert.Equal(t, "Weight", fs.DisplayLabel())
	assert.Equal(t, 2, fs.Points())
	assert.True(t, fs.InitialValue.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "width", fs.Next)
	assert.True(t, fs.SubmitOnEnter)
}

func TestFieldSpec_Defaults(t *testing.T) {
	var fs FieldSpec
	require.NoError(t, yaml.Unmarshal([]byte("name: height\n"), &fs))

	assert.Equal(t, DefaultDecimalPoints, fs.Points())
	assert.True(t, fs.InitialValue.IsZero())
	assert.Equal(t, "height", fs.DisplayLabel())
}

func TestFieldSpec_InvalidInitialValue(t *testing.T) {
	var fs FieldSpec
	err := yaml.Unmarshal([]byte("name: x\ninitial_value: twelve\n"), &fs)
	assert.Error(t, err)
}

func TestForm_Helpers(t *testing.T) {
	f := DefaultForm()

	spec, ok := f.FieldByName("width")
	require.True(t, ok)
	assert.Equal(t, "height", spec.Next)

	_, ok = f.FieldByName("depth")
	assert.False(t, ok)

	assert.Equal(t, '.', f.SeparatorRune())
	f.Separator = ","
	assert.Equal(t, ',', f.SeparatorRune())

	assert.Equal(t, "weight", f.SubmitField())
	weight, _ := f.FieldByName("weight")
	assert.Equal(t, "Weight: 0.750", f.RenderSubmitMessage(*weight, "0.750"))

	empty := &Form{Fields: []FieldSpec{{Name: "a", Label: "Alpha"}}}
	assert.Equal(t, "a", empty.SubmitField())
	assert.Equal(t, "Alpha: 1.0", empty.RenderSubmitMessage(empty.Fields[0], "1.0"))
}
