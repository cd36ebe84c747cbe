package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is the UI language of a chat.
type Language string

const (
	English Language = "en"
	Telugu  Language = "te"

	Default = English
)

var supported = []language.Tag{language.English, language.Telugu}

var matcher = language.NewMatcher(supported)

// Parse accepts "en", "te" and any tag whose base language is English or
// Telugu, such as "en-IN" or "te-IN".
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return "", false
	}
	switch supported[idx] {
	case language.Telugu:
		return Telugu, true
	default:
		return English, true
	}
}

// OrDefault returns l when it is supported, otherwise Default.
func (l Language) OrDefault() Language {
	if l == English || l == Telugu {
		return l
	}
	return Default
}

// Tag is the speech/BCP-47 tag used for synthesis.
func (l Language) Tag() string {
	if l == Telugu {
		return "te-IN"
	}
	return "en-US"
}

// Other returns the language a toggle button switches to.
func (l Language) Other() Language {
	if l == Telugu {
		return English
	}
	return Telugu
}

// Name is the self-name of the language, shown on the toggle button.
func (l Language) Name() string {
	if l == Telugu {
		return "తెలుగు"
	}
	return "English"
}

// T looks up key for lang. Missing Telugu strings fall back to English; a key
// missing everywhere is returned as is.
func T(lang Language, key string) string {
	if m, ok := table[lang.OrDefault()]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := table[English][key]; ok {
		return s
	}
	return key
}
