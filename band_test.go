package xlpanel

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Band
	}{
		{"above 1000", 1500, BandA},
		{"between 500 and 1000", 750, BandB},
		{"small", 10, BandC},
		{"exactly 1000", 1000.0, BandB},
		{"just above 1000", 1000.01, BandA},
		{"exactly 500", 500, BandC},
		{"just above 500", 500.5, BandB},
		{"negative", -2000, BandC},
		{"numeric string", "1500", BandA},
		{"padded string", "  750 ", BandB},
		{"int64", int64(5000), BandA},
		{"float32", float32(600), BandB},
		{"uint", uint(1001), BandA},
		{"json number", json.Number("800"), BandB},
		{"text", "abc", BandC},
		{"formatted currency", "$1,500", BandC},
		{"empty string", "", BandC},
		{"nil", nil, BandC},
		{"NaN", math.NaN(), BandC},
		{"NaN string", "NaN", BandC},
		{"bool", true, BandC},
		{"positive infinity", math.Inf(1), BandA},
		{"number with unit suffix", "1500 units", BandA},
		{"number with trailing letters", "750abc", BandB},
		{"leading dot", ".5e3", BandC},
		{"exponent prefix", "1e3x", BandC},
		{"signed exponent", "6e+2", BandB},
		{"hex literal", "0x1p11", BandC},
		{"Inf is not a number", "Inf", BandC},
		{"Infinity", "Infinity", BandA},
		{"negative Infinity", "-Infinity", BandC},
		{"overflow", "1e999", BandA},
		{"sign only", "-", BandC},
		{"dot only", ".", BandC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestClassifyNumber_NaN(t *testing.T) {
	assert.Equal(t, BandC, ClassifyNumber(math.NaN()))
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber(" 42.5 ")
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)

	v, ok = ParseNumber("12abc")
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	v, ok = ParseNumber("\t-3.5e2kg")
	assert.True(t, ok)
	assert.Equal(t, -350.0, v)

	v, ok = ParseNumber("2e")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = ParseNumber("abc12")
	assert.False(t, ok)

	_, ok = ParseNumber(struct{}{})
	assert.False(t, ok)
}

func TestBand_Colors(t *testing.T) {
	assert.Equal(t, "FFCCCC", BandA.Color())
	assert.Equal(t, "FFFFCC", BandB.Color())
	assert.Equal(t, "", BandC.Color())

	assert.Equal(t, "#FFCCCC", BandA.CSSColor())
	assert.Equal(t, "", BandC.CSSColor())

	assert.Equal(t, "A", BandA.String())
	assert.Equal(t, "B", BandB.String())
	assert.Equal(t, "C", BandC.String())
}
