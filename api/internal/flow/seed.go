package flow

import (
	"context"
	"log/slog"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
)

const (
	MinSensitivity     = 1
	MaxSensitivity     = 30
	DefaultSensitivity = 7
)

type SeedCounter interface {
	SeedCount(ctx context.Context, file aqua.ImageFile, confidence float64) (aqua.SeedCount, error)
}

type SeedState struct {
	Phase       Phase
	Sensitivity int
	Image       *SelectedImage
	Count       *int
	// Threshold is the sensitivity the shown count was computed with.
	Threshold int
	Error     string
}

// SeedCount estimates the number of fry in an uploaded image.
type SeedCount struct {
	svc SeedCounter
	log *slog.Logger

	tracker
	sensitivity int
	image       *SelectedImage
	count       *int
	threshold   int
	errMsg      string
}

func NewSeedCount(svc SeedCounter, log *slog.Logger) *SeedCount {
	if log == nil {
		log = slog.Default()
	}
	return &SeedCount{svc: svc, log: log, tracker: tracker{name: "seed_count"}, sensitivity: DefaultSensitivity}
}

func (s *SeedCount) Snapshot() SeedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SeedState{Phase: s.phase, Sensitivity: s.sensitivity, Threshold: s.threshold, Error: s.errMsg}
	if s.image != nil {
		img := *s.image
		st.Image = &img
	}
	if s.count != nil {
		c := *s.count
		st.Count = &c
	}
	return st
}

// SetSensitivity clamps percent to the slider bounds and returns the value
// kept.
func (s *SeedCount) SetSensitivity(percent int) int {
	if percent < MinSensitivity {
		percent = MinSensitivity
	}
	if percent > MaxSensitivity {
		percent = MaxSensitivity
	}
	s.mu.Lock()
	s.sensitivity = percent
	s.mu.Unlock()
	return percent
}

func (s *SeedCount) Sensitivity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sensitivity
}

func (s *SeedCount) SelectImage(img SelectedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = &img
	s.count = nil
	s.errMsg = ""
	s.invalidate()
}

func (s *SeedCount) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = nil
	s.count = nil
	s.errMsg = ""
	s.invalidate()
}

// Count submits the staged image with confidence = sensitivity/100.
func (s *SeedCount) Count(ctx context.Context, lang i18n.Language) (int, error) {
	p, err := s.Start(lang)
	if err != nil {
		return 0, err
	}
	return p.Do(ctx)
}

// Start checks for a staged image and enters Loading; the request goes out
// on Do with the sensitivity current at Start.
func (s *SeedCount) Start(lang i18n.Language) (*Pending[int], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Loading {
		return nil, ErrBusy
	}
	if s.image == nil {
		s.errMsg = i18n.T(lang, "errorUpload")
		s.count = nil
		s.reject()
		return nil, &ValidationError{Message: s.errMsg, Err: ErrNoImage}
	}
	gen, _ := s.begin()
	file := s.image.File
	percent := s.sensitivity
	s.errMsg = ""
	s.count = nil

	return &Pending[int]{send: func(ctx context.Context) (int, error) {
		res, err := s.svc.SeedCount(ctx, file, float64(percent)/100)

		s.mu.Lock()
		defer s.mu.Unlock()
		if serr := s.settle(gen); serr != nil {
			return 0, serr
		}
		if err != nil {
			s.log.Warn("seed count failed", "sensitivity", percent, "err", err)
			s.errMsg = errorMessage(err, lang, "seedFailed")
			s.fail()
			return 0, err
		}
		n := res.Value()
		s.count = &n
		s.threshold = percent
		s.succeed()
		return n, nil
	}}, nil
}
