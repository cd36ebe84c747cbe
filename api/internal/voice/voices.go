package voice

import (
	"golang.org/x/text/language"

	"aqua-bot/api/internal/i18n"
)

type Voice struct {
	Name   string
	Tag    string
	Gender string
}

// Catalogue lists the Edge neural voices offered for the supported languages.
var Catalogue = []Voice{
	{Name: "en-US-AriaNeural", Tag: "en-US", Gender: "Female"},
	{Name: "en-US-GuyNeural", Tag: "en-US", Gender: "Male"},
	{Name: "en-IN-NeerjaNeural", Tag: "en-IN", Gender: "Female"},
	{Name: "en-IN-PrabhatNeural", Tag: "en-IN", Gender: "Male"},
	{Name: "te-IN-ShrutiNeural", Tag: "te-IN", Gender: "Female"},
	{Name: "te-IN-MohanNeural", Tag: "te-IN", Gender: "Male"},
}

// DefaultVoice is used when nothing in the catalogue matches.
var DefaultVoice = Catalogue[0]

// Select picks the catalogue voice closest to lang's speech tag. ok is false
// when the base language has no voice; DefaultVoice is returned then.
func Select(voices []Voice, lang i18n.Language) (Voice, bool) {
	if len(voices) == 0 {
		return DefaultVoice, false
	}
	tags := make([]language.Tag, 0, len(voices))
	for _, v := range voices {
		tags = append(tags, language.Make(v.Tag))
	}
	want := language.Make(lang.OrDefault().Tag())
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf < language.High {
		return DefaultVoice, false
	}
	return voices[idx], true
}
