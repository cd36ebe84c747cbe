package aqua

import "time"

// PredictResponse is the raw /predict payload. Pointer fields distinguish
// absent from zero.
type PredictResponse struct {
	DiseaseName string   `json:"disease_name"`
	Confidence  *float64 `json:"confidence"`
	Cause       string   `json:"cause"`
	Severity    string   `json:"severity"`
	Treatment   string   `json:"treatment"`
	Warning     *Warning `json:"warning,omitempty"`
}

type Warning struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// IsHigh decides styling only; any level other than "high" renders as medium.
func (w Warning) IsHigh() bool { return w.Level == "high" }

type DetectionResult struct {
	DiseaseName string
	Confidence  int
	Cause       string
	Severity    string
	Treatment   string
	Warning     *Warning
}

type SafeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TemperatureRequest struct {
	Temperature float64 `json:"temperature"`
	Species     string  `json:"species"`
	Location    string  `json:"location"`
}

type TemperatureRisk struct {
	CurrentTemperature float64           `json:"current_temperature"`
	SafeRange          SafeRange         `json:"safe_range"`
	RiskLevel          RiskLevel         `json:"risk_level"`
	RiskLabel          string            `json:"risk_label"`
	ColorCode          string            `json:"color_code,omitempty"`
	UrgencyScore       int               `json:"urgency_score"`
	PossibleIssues     []string          `json:"possible_issues"`
	RecommendedActions []string          `json:"recommended_actions"`
	Species            string            `json:"species"`
	DiseaseRisks       map[string]string `json:"disease_risks"`
}

// OutOfRange reports a reading strictly outside the safe range; the bounds
// themselves are safe.
func (r TemperatureRisk) OutOfRange() bool {
	return r.CurrentTemperature < r.SafeRange.Min || r.CurrentTemperature > r.SafeRange.Max
}

type LocationRequest struct {
	Location        string `json:"location"`
	Species         string `json:"species"`
	IncludeForecast bool   `json:"include_forecast"`
}

type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type CurrentWeather struct {
	Temperature     float64 `json:"temperature"`
	Conditions      string  `json:"conditions"`
	HumidityPercent float64 `json:"humidity_percent"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	Timestamp       string  `json:"timestamp"`
}

type ForecastDay struct {
	Date            string    `json:"date"`
	TempMin         float64   `json:"temp_min"`
	TempMax         float64   `json:"temp_max"`
	TempMean        float64   `json:"temp_mean"`
	Weather         string    `json:"weather"`
	PrecipitationMM float64   `json:"precipitation_mm"`
	RiskLevel       RiskLevel `json:"risk_level"`
	UrgencyScore    int       `json:"urgency_score"`
}

// WeatherReport is the /weather/location-check payload.
type WeatherReport struct {
	Location       Place           `json:"location"`
	CurrentWeather CurrentWeather  `json:"current_weather"`
	RiskAssessment TemperatureRisk `json:"risk_assessment"`
	Forecast       []ForecastDay   `json:"forecast_3day"`
	Species        string          `json:"species,omitempty"`
	APIUsed        string          `json:"api_used,omitempty"`
}

// SeedCount is the /seed-count payload.
type SeedCount struct {
	Count *int `json:"count"`
}

// Value returns the count, 0 when the server omitted it.
func (s SeedCount) Value() int {
	if s.Count == nil {
		return 0
	}
	return *s.Count
}

type SpeciesInfo struct {
	SafeRangeCelsius []float64 `json:"safe_range_celsius"`
	OptimalCelsius   float64   `json:"optimal_celsius"`
	Description      string    `json:"range_description"`
}

// SpeciesList is the /temperature/species-list payload.
type SpeciesList struct {
	Supported map[string]SpeciesInfo `json:"supported_species"`
	Note      string                 `json:"note,omitempty"`
}

type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ForecastDate parses the day's date, zero time if malformed.
func (d ForecastDay) ForecastDate() time.Time {
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ImageFile is an image staged for upload.
type ImageFile struct {
	Name  string
	Mime  string
	Bytes []byte
}
