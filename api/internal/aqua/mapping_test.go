package aqua

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-bot/api/internal/i18n"
)

func TestMapDetectionDefaults(t *testing.T) {
	res := MapDetection(PredictResponse{}, i18n.English)
	assert.Equal(t, "Unknown", res.DiseaseName)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, i18n.T(i18n.English, "errorAnalysis"), res.Cause)
	assert.Equal(t, "Unknown", res.Severity)
	assert.Equal(t, i18n.T(i18n.English, "consultDoctor"), res.Treatment)
	assert.Nil(t, res.Warning)

	te := MapDetection(PredictResponse{}, i18n.Telugu)
	assert.Equal(t, "తెలియదు", te.DiseaseName)
}

func TestMapDetectionFromPayload(t *testing.T) {
	var raw PredictResponse
	body := `{"disease_name":"Columnaris","confidence":0.876,"cause":"Bacteria",
		"severity":"High","treatment":"Antibiotics","warning":{"level":"odd","message":"check"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	res := MapDetection(raw, i18n.English)
	assert.Equal(t, "Columnaris", res.DiseaseName)
	assert.Equal(t, 88, res.Confidence)
	assert.Equal(t, "High", res.Severity)
	require.NotNil(t, res.Warning)
	assert.Equal(t, "odd", res.Warning.Level)
	assert.False(t, res.Warning.IsHigh())
}

func TestPercentClamps(t *testing.T) {
	assert.Equal(t, 100, Percent(1.7))
	assert.Equal(t, 0, Percent(-0.2))
	assert.Equal(t, 50, Percent(0.5))
	assert.Equal(t, 7, Percent(0.07))
}

func TestVariants(t *testing.T) {
	assert.Equal(t, VariantSuccess, SeverityVariant("Low"))
	assert.Equal(t, VariantWarning, SeverityVariant("medium"))
	assert.Equal(t, VariantDestructive, SeverityVariant("High"))
	assert.Equal(t, VariantDefault, SeverityVariant("తెలియదు"))

	assert.Equal(t, VariantSuccess, ConfidenceVariant(80))
	assert.Equal(t, VariantWarning, ConfidenceVariant(79))
}

func TestUrgencyBand(t *testing.T) {
	assert.Equal(t, UrgencyHigh, UrgencyBand(71))
	assert.Equal(t, UrgencyModerate, UrgencyBand(70))
	assert.Equal(t, UrgencyModerate, UrgencyBand(41))
	assert.Equal(t, UrgencyLow, UrgencyBand(40))
	assert.Equal(t, "urgencyLow", UrgencyBand(0).I18nKey())
}

func TestRiskColors(t *testing.T) {
	assert.Equal(t, "green", RiskNormal.Color())
	assert.Equal(t, "yellow", RiskCaution.Color())
	assert.Equal(t, "red", RiskHigh.Color())
	assert.Equal(t, "🔴", RiskHigh.Emoji())
}

func TestOutOfRange(t *testing.T) {
	r := TemperatureRisk{SafeRange: SafeRange{Min: 25, Max: 30}}
	r.CurrentTemperature = 25
	assert.False(t, r.OutOfRange())
	r.CurrentTemperature = 30
	assert.False(t, r.OutOfRange())
	r.CurrentTemperature = 31
	assert.True(t, r.OutOfRange())
	r.CurrentTemperature = 24.9
	assert.True(t, r.OutOfRange())
}

func TestSortForecast(t *testing.T) {
	days := []ForecastDay{{Date: "2024-06-03"}, {Date: "bad"}, {Date: "2024-06-01"}, {Date: "2024-06-02"}}
	SortForecast(days)
	got := []string{days[0].Date, days[1].Date, days[2].Date, days[3].Date}
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "bad"}, got)
}

func TestSeedCountValue(t *testing.T) {
	var sc SeedCount
	require.NoError(t, json.Unmarshal([]byte(`{}`), &sc))
	assert.Equal(t, 0, sc.Value())
	require.NoError(t, json.Unmarshal([]byte(`{"count":42}`), &sc))
	assert.Equal(t, 42, sc.Value())
}

func TestLookupSpecies(t *testing.T) {
	s, ok := LookupSpecies(" catfish ")
	assert.True(t, ok)
	assert.Equal(t, "Catfish", s)
	_, ok = LookupSpecies("Goldfish")
	assert.False(t, ok)
}
