package math

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: "0.00",
		},
		"-1": {
			input:  -1,
			output: "-1.00",
		},
		"+1": {
			input:  1,
			output: "1.00",
		},
		"5": {
			input:  1.5555,
			output: "1.56",
		},
		"4": {
			input:  1.4444,
			output: "1.44",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Format(tt.input)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestDecimal(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"integer": {
			input:  7,
			output: "7",
		},
		"fraction": {
			input:  2.125,
			output: "2.125",
		},
		"small": {
			input:  0.0000001,
			output: "0.0000001",
		},
		"negative": {
			input:  -0.5,
			output: "-0.5",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Decimal(tt.input)
			assert.Equal(t, tt.output, s)
			f, err := strconv.ParseFloat(s, 64)
			require.NoError(t, err)
			assert.Equal(t, tt.input, f)
		})
	}
}
