package flow

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/inference"
)

const (
	MinTemperature = -50.0
	MaxTemperature = 60.0

	manualLocation = "Manual Entry"
)

type TemperatureAssessor interface {
	AssessTemperature(ctx context.Context, req aqua.TemperatureRequest) (aqua.TemperatureRisk, error)
}

type TemperatureState struct {
	Phase   Phase
	Species string
	Input   string
	Result  *aqua.TemperatureRisk
	Error   string
}

// Temperature assesses a manually entered water temperature.
type Temperature struct {
	svc TemperatureAssessor
	log *slog.Logger

	tracker
	species string
	input   string
	result  *aqua.TemperatureRisk
	errMsg  string
}

func NewTemperature(svc TemperatureAssessor, log *slog.Logger) *Temperature {
	if log == nil {
		log = slog.Default()
	}
	return &Temperature{svc: svc, log: log, tracker: tracker{name: "temperature"}, species: aqua.DefaultSpecies}
}

func (t *Temperature) Snapshot() TemperatureState {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := TemperatureState{Phase: t.phase, Species: t.species, Input: t.input, Error: t.errMsg}
	if t.result != nil {
		r := *t.result
		s.Result = &r
	}
	return s
}

// SetSpecies selects one of aqua.Species. It does not clear a shown result.
func (t *Temperature) SetSpecies(name string) bool {
	s, ok := aqua.LookupSpecies(name)
	if !ok {
		return false
	}
	t.mu.Lock()
	t.species = s
	t.mu.Unlock()
	return true
}

// Reset forgets input, result and error.
func (t *Temperature) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = ""
	t.result = nil
	t.errMsg = ""
	t.invalidate()
}

var reDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseTemperature validates a reading in °C. The returned message key is
// empty on success.
func ParseTemperature(input string) (float64, string) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, "tempEmpty"
	}
	s = strings.TrimSpace(strings.TrimRight(strings.TrimSuffix(strings.TrimSuffix(s, "C"), "c"), "°"))
	if !reDecimal.MatchString(s) {
		return 0, "tempRange"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "tempRange"
	}
	if v < MinTemperature || v > MaxTemperature {
		return 0, "tempRange"
	}
	return v, ""
}

// Assess validates input and submits it. Validation failures send nothing.
func (t *Temperature) Assess(ctx context.Context, input string, lang i18n.Language) (aqua.TemperatureRisk, error) {
	p, err := t.Start(input, lang)
	if err != nil {
		return aqua.TemperatureRisk{}, err
	}
	return p.Do(ctx)
}

// Start validates input and enters Loading; the request goes out on Do.
func (t *Temperature) Start(input string, lang i18n.Language) (*Pending[aqua.TemperatureRisk], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase == Loading {
		return nil, ErrBusy
	}
	t.input = input
	value, key := ParseTemperature(input)
	if key != "" {
		t.errMsg = i18n.T(lang, key)
		t.result = nil
		t.reject()
		return nil, &ValidationError{Message: t.errMsg}
	}
	gen, _ := t.begin()
	req := aqua.TemperatureRequest{Temperature: value, Species: t.species, Location: manualLocation}
	t.errMsg = ""
	t.result = nil

	return &Pending[aqua.TemperatureRisk]{send: func(ctx context.Context) (aqua.TemperatureRisk, error) {
		risk, err := t.svc.AssessTemperature(ctx, req)

		t.mu.Lock()
		defer t.mu.Unlock()
		if serr := t.settle(gen); serr != nil {
			return aqua.TemperatureRisk{}, serr
		}
		if err != nil {
			t.log.Warn("temperature assessment failed", "species", req.Species, "err", err)
			t.errMsg = errorMessage(err, lang, "tempFailed")
			t.fail()
			return aqua.TemperatureRisk{}, err
		}
		t.result = &risk
		t.succeed()
		return risk, nil
	}}, nil
}

// errorMessage prefers the server detail over the localized fallback.
func errorMessage(err error, lang i18n.Language, fallbackKey string) string {
	if d := inference.Detail(err); d != "" {
		return d
	}
	return i18n.T(lang, fallbackKey)
}
