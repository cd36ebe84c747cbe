package util

import "unicode/utf8"

// Truncate cuts s to at most n runes and appends suffix when it had to cut.
func Truncate(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + suffix
}
