package telegram

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
)

const maxMessageLen = 3900

func variantEmoji(v aqua.Variant) string {
	switch v {
	case aqua.VariantSuccess:
		return "🟢"
	case aqua.VariantWarning:
		return "🟡"
	case aqua.VariantDestructive:
		return "🔴"
	}
	return "⚪"
}

func celsius(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "°C"
}

// renderWarning is shown above the result cards.
func renderWarning(w aqua.Warning, lang i18n.Language) string {
	icon, title := "⚠️", i18n.T(lang, "warnModerate")
	if w.IsHigh() {
		icon, title = "🚨", i18n.T(lang, "warnLow")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*", icon, esc(title))
	if m := strings.TrimSpace(w.Message); m != "" {
		b.WriteString("\n")
		b.WriteString(esc(m))
	}
	return b.String()
}

func renderDetection(res aqua.DetectionResult, lang i18n.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *%s*\n\n", esc(i18n.T(lang, "resultsTitle")))
	if res.Warning != nil {
		b.WriteString(renderWarning(*res.Warning, lang))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "🦠 *%s:* %s\n", esc(i18n.T(lang, "labelDisease")), esc(res.DiseaseName))
	fmt.Fprintf(&b, "📊 *%s:* %d%% %s\n", esc(i18n.T(lang, "labelConfidence")), res.Confidence,
		variantEmoji(aqua.ConfidenceVariant(res.Confidence)))
	fmt.Fprintf(&b, "🔬 *%s:* %s\n", esc(i18n.T(lang, "labelCause")), esc(res.Cause))
	fmt.Fprintf(&b, "🚦 *%s:* %s %s\n", esc(i18n.T(lang, "labelSeverity")), esc(res.Severity),
		variantEmoji(aqua.SeverityVariant(res.Severity)))
	fmt.Fprintf(&b, "💊 *%s:* %s\n\n", esc(i18n.T(lang, "labelTreatment")), esc(res.Treatment))
	fmt.Fprintf(&b, "_%s_", esc(i18n.T(lang, "footer")))
	return b.String()
}

// speechText is the plain text read aloud for a result.
func speechText(res aqua.DetectionResult, lang i18n.Language) string {
	parts := []string{
		i18n.T(lang, "labelDisease") + ": " + res.DiseaseName,
		i18n.T(lang, "labelConfidence") + ": " + strconv.Itoa(res.Confidence) + "%",
		i18n.T(lang, "labelCause") + ": " + res.Cause,
		i18n.T(lang, "labelSeverity") + ": " + res.Severity,
		i18n.T(lang, "labelTreatment") + ": " + res.Treatment,
	}
	if res.Warning != nil && strings.TrimSpace(res.Warning.Message) != "" {
		parts = append([]string{res.Warning.Message}, parts...)
	}
	return strings.Join(parts, ". ")
}

func renderRisk(r aqua.TemperatureRisk, lang i18n.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*", r.RiskLevel.Emoji(), esc(i18n.T(lang, "riskTitle")))
	if r.Species != "" {
		fmt.Fprintf(&b, " · %s", esc(r.Species))
	}
	b.WriteString("\n")
	if l := strings.TrimSpace(r.RiskLabel); l != "" {
		fmt.Fprintf(&b, "*%s*\n", esc(l))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "🌡 %s: *%s*", esc(i18n.T(lang, "current")), celsius(r.CurrentTemperature))
	if r.OutOfRange() {
		fmt.Fprintf(&b, "  %s", esc(i18n.T(lang, "outOfRange")))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "✅ %s: %s - %s\n", esc(i18n.T(lang, "safeRange")), celsius(r.SafeRange.Min), celsius(r.SafeRange.Max))

	band := aqua.UrgencyBand(r.UrgencyScore)
	fmt.Fprintf(&b, "📈 %s: %d/100 (%s)\n", esc(i18n.T(lang, "priority")), r.UrgencyScore, esc(i18n.T(lang, band.I18nKey())))

	if len(r.PossibleIssues) > 0 {
		fmt.Fprintf(&b, "\n*%s*\n", esc(i18n.T(lang, "possibleIssues")))
		for _, s := range r.PossibleIssues {
			fmt.Fprintf(&b, "• %s\n", esc(s))
		}
	}
	if len(r.RecommendedActions) > 0 {
		fmt.Fprintf(&b, "\n*%s*\n", esc(i18n.T(lang, "recommendedActions")))
		for i, s := range r.RecommendedActions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, esc(s))
		}
	}
	if len(r.DiseaseRisks) > 0 {
		fmt.Fprintf(&b, "\n*%s*\n", esc(i18n.T(lang, "diseaseRisks")))
		names := make([]string, 0, len(r.DiseaseRisks))
		for k := range r.DiseaseRisks {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&b, "• %s: %s\n", esc(k), esc(r.DiseaseRisks[k]))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderWeather titles the card with the resolved place name, or with what
// the user asked for when the service did not resolve one.
func renderWeather(rep aqua.WeatherReport, queried string, lang i18n.Language) string {
	var b strings.Builder
	name := strings.TrimSpace(rep.Location.Name)
	if name == "" {
		name = strings.TrimSpace(queried)
	}
	cw := rep.CurrentWeather
	fmt.Fprintf(&b, "☁️ *%s*\n", esc(fmt.Sprintf(i18n.T(lang, "currentWeather"), name)))
	fmt.Fprintf(&b, "%s: *%s*", esc(i18n.T(lang, "temperature")), celsius(cw.Temperature))
	if cw.Conditions != "" {
		fmt.Fprintf(&b, " · %s", esc(cw.Conditions))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s%% · %s km/h\n", esc(i18n.T(lang, "humidity")),
		strconv.FormatFloat(cw.HumidityPercent, 'f', -1, 64), strconv.FormatFloat(cw.WindSpeedKmh, 'f', -1, 64))
	fmt.Fprintf(&b, "%s: %.4f, %.4f\n\n", esc(i18n.T(lang, "coordinates")), rep.Location.Latitude, rep.Location.Longitude)

	b.WriteString(renderRisk(rep.RiskAssessment, lang))
	b.WriteString("\n")

	if len(rep.Forecast) > 0 {
		fmt.Fprintf(&b, "\n📅 *%s*\n", esc(i18n.T(lang, "forecastTitle")))
		for _, d := range rep.Forecast {
			fmt.Fprintf(&b, "%s %s · %s - %s", d.RiskLevel.Emoji(), esc(d.Date), celsius(d.TempMin), celsius(d.TempMax))
			if d.Weather != "" {
				fmt.Fprintf(&b, " · %s", esc(d.Weather))
			}
			fmt.Fprintf(&b, " · %s %d\n", esc(i18n.T(lang, "urgency")), d.UrgencyScore)
		}
	}
	if cw.Timestamp != "" {
		fmt.Fprintf(&b, "\n_%s_", esc(fmt.Sprintf(i18n.T(lang, "weatherCredit"), cw.Timestamp)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSeedPanel(st flow.SeedState, lang i18n.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n%s\n\n", esc(i18n.T(lang, "seedTitle")), esc(i18n.T(lang, "seedPrompt")))
	fmt.Fprintf(&b, "%s\n", esc(fmt.Sprintf(i18n.T(lang, "seedSensitivity"), st.Sensitivity)))
	fmt.Fprintf(&b, "_%s_", esc(i18n.T(lang, "seedRecommended")))
	return b.String()
}

func renderSeedResult(count, threshold int, lang i18n.Language) string {
	return fmt.Sprintf("*%s*\n%s: *%d*\n%s",
		esc(i18n.T(lang, "seedTitle")),
		esc(i18n.T(lang, "estimatedCount")), count,
		esc(fmt.Sprintf(i18n.T(lang, "thresholdUsed"), threshold)))
}

func renderSpecies(list aqua.SpeciesList, lang i18n.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", esc(i18n.T(lang, "speciesListTitle")))
	names := make([]string, 0, len(list.Supported))
	for k := range list.Supported {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, n := range names {
		info := list.Supported[n]
		fmt.Fprintf(&b, "• *%s*", esc(n))
		if len(info.SafeRangeCelsius) == 2 {
			fmt.Fprintf(&b, ": %s - %s", celsius(info.SafeRangeCelsius[0]), celsius(info.SafeRangeCelsius[1]))
		}
		if info.OptimalCelsius != 0 {
			fmt.Fprintf(&b, ", %s", celsius(info.OptimalCelsius))
		}
		b.WriteString("\n")
	}
	if n := strings.TrimSpace(list.Note); n != "" {
		fmt.Fprintf(&b, "\n_%s_", esc(n))
	}
	return strings.TrimRight(b.String(), "\n")
}
