package content

import (
	"math"
	"strings"
)

// Length buckets posts by reading time. The values double as translation keys.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

const wordsPerMinute = 130

// TimeToLength maps minutes of reading to a Length.
func TimeToLength(minutes int) Length {
	switch {
	case minutes < 10:
		return LengthShort
	case minutes < 20:
		return LengthMedium
	default:
		return LengthLong
	}
}

// MinutesRead estimates reading time from space separated words of the
// rendered contents, rounding half minutes up.
func MinutesRead(contents string) int {
	words := len(strings.Split(contents, " "))
	return int(math.Round(0.5 + float64(words)/wordsPerMinute))
}
