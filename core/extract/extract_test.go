package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoord(t *testing.T) {
	cases := []struct {
		in   string
		want int
		err  error
	}{
		{"80", 80, nil},
		{"2500000000", 2500000000, nil},
		{"120.0", 120, nil},
		{"1e3", 1000, nil},
		{"", 0, ErrMissingField},
		{"12.5", 0, ErrNotNumeric},
		{"NaN", 0, ErrNotNumeric},
		{"1e19", 0, ErrOutOfRange},
		{"-1e300", 0, ErrOutOfRange},
	}
	for _, tc := range cases {
		got, err := parseCoord(tc.in)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, "in=%q", tc.in)
			continue
		}
		assert.NoError(t, err, "in=%q", tc.in)
		assert.Equal(t, tc.want, got, "in=%q", tc.in)
	}
}
