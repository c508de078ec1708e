package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		50000:   "50,000",
		1234567: "1,234,567",
		-1234:   "-1,234",
		-12:     "-12",
		100000:  "100,000",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, FormatNumber(input), "FormatNumber(%d)", input)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "+0.720", FormatScore(0.72))
	assert.Equal(t, "+0.000", FormatScore(0))
	assert.Equal(t, "-0.500", FormatScore(-0.5))
}
