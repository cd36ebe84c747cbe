package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"en", English, true},
		{"te", Telugu, true},
		{" te-IN ", Telugu, true},
		{"en-IN", English, true},
		{"EN", English, true},
		{"fr", "", false},
		{"", "", false},
		{"not a tag", "", false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestTFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "తెలియదు", T(Telugu, "unknown"))
	assert.Equal(t, "Failed to assess temperature", T(Telugu, "tempFailed"))
	assert.Equal(t, "no-such-key", T(Telugu, "no-such-key"))
	assert.Equal(t, "Unknown", T(Language("xx"), "unknown"))
}

func TestEveryTeluguKeyExistsInEnglish(t *testing.T) {
	for k := range table[Telugu] {
		_, ok := table[English][k]
		assert.True(t, ok, "telugu key %q has no english string", k)
	}
}

func TestTagAndOther(t *testing.T) {
	assert.Equal(t, "te-IN", Telugu.Tag())
	assert.Equal(t, "en-US", English.Tag())
	assert.Equal(t, Telugu, English.Other())
	assert.Equal(t, English, Telugu.Other())
	assert.Equal(t, Default, Language("de").OrDefault())
}
