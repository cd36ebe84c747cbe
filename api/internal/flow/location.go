package flow

import (
	"context"
	"log/slog"
	"strings"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
)

type WeatherChecker interface {
	LocationCheck(ctx context.Context, req aqua.LocationRequest) (aqua.WeatherReport, error)
}

type LocationState struct {
	Phase    Phase
	Species  string
	Location string
	Report   *aqua.WeatherReport
	Error    string
}

// Location fetches current weather, risk and a 3-day forecast for a place.
type Location struct {
	svc WeatherChecker
	log *slog.Logger

	tracker
	species  string
	location string
	report   *aqua.WeatherReport
	errMsg   string
}

func NewLocation(svc WeatherChecker, log *slog.Logger) *Location {
	if log == nil {
		log = slog.Default()
	}
	return &Location{svc: svc, log: log, tracker: tracker{name: "location"}, species: aqua.DefaultSpecies}
}

func (l *Location) Snapshot() LocationState {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := LocationState{Phase: l.phase, Species: l.species, Location: l.location, Error: l.errMsg}
	if l.report != nil {
		r := *l.report
		r.Forecast = append([]aqua.ForecastDay(nil), l.report.Forecast...)
		s.Report = &r
	}
	return s
}

func (l *Location) SetSpecies(name string) bool {
	s, ok := aqua.LookupSpecies(name)
	if !ok {
		return false
	}
	l.mu.Lock()
	l.species = s
	l.mu.Unlock()
	return true
}

func (l *Location) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.location = ""
	l.report = nil
	l.errMsg = ""
	l.invalidate()
}

// Check looks up weather for the trimmed location, always asking for the
// forecast. Forecast days are stored in date order.
func (l *Location) Check(ctx context.Context, input string, lang i18n.Language) (aqua.WeatherReport, error) {
	p, err := l.Start(input, lang)
	if err != nil {
		return aqua.WeatherReport{}, err
	}
	return p.Do(ctx)
}

// Start validates the location and enters Loading; the request goes out on Do.
func (l *Location) Start(input string, lang i18n.Language) (*Pending[aqua.WeatherReport], error) {
	place := strings.TrimSpace(input)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase == Loading {
		return nil, ErrBusy
	}
	l.location = place
	if place == "" {
		l.errMsg = i18n.T(lang, "locationEmpty")
		l.report = nil
		l.reject()
		return nil, &ValidationError{Message: l.errMsg}
	}
	gen, _ := l.begin()
	req := aqua.LocationRequest{Location: place, Species: l.species, IncludeForecast: true}
	l.errMsg = ""
	l.report = nil

	return &Pending[aqua.WeatherReport]{send: func(ctx context.Context) (aqua.WeatherReport, error) {
		rep, err := l.svc.LocationCheck(ctx, req)

		l.mu.Lock()
		defer l.mu.Unlock()
		if serr := l.settle(gen); serr != nil {
			return aqua.WeatherReport{}, serr
		}
		if err != nil {
			l.log.Warn("location check failed", "location", place, "err", err)
			l.errMsg = errorMessage(err, lang, "locationFailed")
			l.fail()
			return aqua.WeatherReport{}, err
		}
		aqua.SortForecast(rep.Forecast)
		l.report = &rep
		l.succeed()
		return rep, nil
	}}, nil
}
