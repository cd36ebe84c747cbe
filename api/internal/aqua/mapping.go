package aqua

import (
	"math"
	"sort"
	"strings"

	"aqua-bot/api/internal/i18n"
)

// Species offered by the temperature flows. Tilapia is the default.
var Species = []string{
	"Tilapia", "Catfish", "Carp", "Shrimp", "Salmon",
	"Trout", "Milkfish", "Bass", "Pangasius", "Eel",
}

const DefaultSpecies = "Tilapia"

// LookupSpecies matches name case-insensitively against Species.
func LookupSpecies(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Species {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

// MapDetection turns a raw prediction into a displayable result. Missing
// fields become localized placeholders.
func MapDetection(raw PredictResponse, lang i18n.Language) DetectionResult {
	res := DetectionResult{
		DiseaseName: orDefault(raw.DiseaseName, i18n.T(lang, "unknown")),
		Cause:       orDefault(raw.Cause, i18n.T(lang, "errorAnalysis")),
		Severity:    orDefault(raw.Severity, i18n.T(lang, "unknown")),
		Treatment:   orDefault(raw.Treatment, i18n.T(lang, "consultDoctor")),
		Warning:     raw.Warning,
	}
	if raw.Confidence != nil {
		res.Confidence = Percent(*raw.Confidence)
	}
	return res
}

// Percent converts a 0..1 fraction to a rounded percentage clamped to 0..100.
func Percent(fraction float64) int {
	if math.IsNaN(fraction) {
		return 0
	}
	p := math.Round(fraction * 100)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return int(p)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

type Variant string

const (
	VariantSuccess     Variant = "success"
	VariantWarning     Variant = "warning"
	VariantDestructive Variant = "destructive"
	VariantDefault     Variant = "default"
)

func SeverityVariant(severity string) Variant {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "low":
		return VariantSuccess
	case "medium":
		return VariantWarning
	case "high":
		return VariantDestructive
	}
	return VariantDefault
}

func ConfidenceVariant(confidence int) Variant {
	if confidence >= 80 {
		return VariantSuccess
	}
	return VariantWarning
}

type Urgency string

const (
	UrgencyHigh     Urgency = "High"
	UrgencyModerate Urgency = "Moderate"
	UrgencyLow      Urgency = "Low"
)

// UrgencyBand buckets a 0..100 urgency score: above 70 high, above 40
// moderate, otherwise low.
func UrgencyBand(score int) Urgency {
	switch {
	case score > 70:
		return UrgencyHigh
	case score > 40:
		return UrgencyModerate
	}
	return UrgencyLow
}

// I18nKey is the translation key for the band label.
func (u Urgency) I18nKey() string {
	switch u {
	case UrgencyHigh:
		return "urgencyHigh"
	case UrgencyModerate:
		return "urgencyModerate"
	}
	return "urgencyLow"
}

type RiskLevel string

const (
	RiskNormal  RiskLevel = "normal"
	RiskCaution RiskLevel = "caution"
	RiskHigh    RiskLevel = "high_risk"
)

func (l RiskLevel) Color() string {
	switch l {
	case RiskNormal:
		return "green"
	case RiskCaution:
		return "yellow"
	case RiskHigh:
		return "red"
	}
	return "gray"
}

func (l RiskLevel) Emoji() string {
	switch l {
	case RiskNormal:
		return "🟢"
	case RiskCaution:
		return "🟡"
	case RiskHigh:
		return "🔴"
	}
	return "⚪"
}

// SortForecast orders days chronologically in place. Unparseable dates keep
// their relative order at the end.
func SortForecast(days []ForecastDay) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i].ForecastDate(), days[j].ForecastDate()
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
}
