package formatter

import (
	"strconv"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	le := len(s)
	if le <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	res := make([]byte, le+(le-1)/3)

	j := len(res) - 1
	for i := le - 1; i >= 0; i-- {
		res[j] = s[i]
		j--
		if (le-i)%3 == 0 && i > 0 {
			res[j] = ','
			j--
		}
	}

	if neg {
		return "-" + string(res)
	}
	return string(res)
}

// FormatScore renders a score with a fixed precision and explicit sign.
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', 3, 64)
	if score >= 0 {
		return "+" + s
	}
	return s
}
