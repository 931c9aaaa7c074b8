package cmmn

import (
	"math"
	"strconv"
	"strings"
)

// SplitLines breaks content at newlines and removes a trailing
// carriage return from each line, so DOS files read like unix ones.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Col returns line[start:end], clipped to the line. An end < 0 means
// to the end of the line. Short lines give short or empty strings,
// never a panic.
func Col(line string, start, end int) string {
	if end < 0 || end > len(line) {
		end = len(line)
	}
	if start >= end {
		return ""
	}
	return line[start:end]
}

// Atoi converts a trimmed field to an int.
func Atoi(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float converts a trimmed field to a finite float64. NaN and the
// infinities are refused, like anything else that is not a number.
func Float(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// Xyz converts three fields. ok is false if any one fails.
func Xyz(sx, sy, sz string) (x, y, z float64, ok bool) {
	if x, ok = Float(sx); !ok {
		return
	}
	if y, ok = Float(sy); !ok {
		return
	}
	z, ok = Float(sz)
	return
}

// FirstTriple looks along a slice of tokens for the first three in a
// row that are all numbers.
func FirstTriple(tokens []string) (x, y, z float64, ok bool) {
	for i := 0; i+2 < len(tokens); i++ {
		if x, y, z, ok = Xyz(tokens[i], tokens[i+1], tokens[i+2]); ok {
			return
		}
	}
	return 0, 0, 0, false
}

// Unquote strips matching single or double quotes from a token.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
