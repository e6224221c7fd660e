package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "single value", input: "symbol:1", expected: []string{"symbol:1"}},
		{name: "two values", input: "position:-1, symbol:1", expected: []string{"position:-1", "symbol:1"}},
		{name: "varied spacing", input: "ex_date:1,  symbol:1 , position:-1", expected: []string{"ex_date:1", "symbol:1", "position:-1"}},
		{name: "trailing comma", input: "symbol:1,", expected: []string{"symbol:1"}},
		{name: "leading comma", input: ",symbol:1", expected: []string{"symbol:1"}},
		{name: "only spaces", input: "   ", expected: nil},
		{name: "comma only", input: ",", expected: nil},
		{name: "multiple commas", input: ",,symbol:1,,position:-1,,", expected: []string{"symbol:1", "position:-1"}},
		{name: "internal spaces preserved", input: "High Yield, Real Estate", expected: []string{"High Yield", "Real Estate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCSV(tt.input))
		})
	}
}

func TestParseCSV_Idempotent(t *testing.T) {
	first := ParseCSV("symbol:1")
	assert.Equal(t, []string{"symbol:1"}, first)
	assert.Equal(t, first, ParseCSV(first[0]))
}
