package flow

import (
	"context"
	"log/slog"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
)

type Predictor interface {
	Predict(ctx context.Context, file aqua.ImageFile, lang i18n.Language) (aqua.PredictResponse, error)
}

// LanguageStore persists the chat language.
type LanguageStore interface {
	SetLanguage(ctx context.Context, chatID int64, lang i18n.Language) error
}

// DetectionState is a copy of the detection page for rendering.
type DetectionState struct {
	Phase    Phase
	Language i18n.Language
	Image    *SelectedImage
	Result   *aqua.DetectionResult
	Error    string
}

// HasImage reports the ImageSelected stage.
func (s DetectionState) HasImage() bool { return s.Image != nil }

// Detection drives upload, analysis and display of a disease diagnosis.
type Detection struct {
	ChatID int64

	svc   Predictor
	prefs LanguageStore
	log   *slog.Logger

	tracker
	lang   i18n.Language
	image  *SelectedImage
	result *aqua.DetectionResult
	errMsg string
}

func NewDetection(chatID int64, svc Predictor, prefs LanguageStore, lang i18n.Language, log *slog.Logger) *Detection {
	if log == nil {
		log = slog.Default()
	}
	return &Detection{
		ChatID:  chatID,
		svc:     svc,
		prefs:   prefs,
		log:     log,
		tracker: tracker{name: "detection"},
		lang:    lang.OrDefault(),
	}
}

func (d *Detection) Snapshot() DetectionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := DetectionState{Phase: d.phase, Language: d.lang, Error: d.errMsg}
	if d.image != nil {
		img := *d.image
		s.Image = &img
	}
	if d.result != nil {
		r := *d.result
		s.Result = &r
	}
	return s
}

func (d *Detection) Language() i18n.Language {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lang
}

// SelectImage stages img and discards any result or error.
func (d *Detection) SelectImage(img SelectedImage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image = &img
	d.result = nil
	d.errMsg = ""
	d.invalidate()
}

func (d *Detection) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image = nil
	d.result = nil
	d.errMsg = ""
	d.invalidate()
}

// SetLanguage switches and persists the language. A displayed result was
// rendered in the old language and is dropped; the staged image is kept.
func (d *Detection) SetLanguage(ctx context.Context, lang i18n.Language) error {
	lang = lang.OrDefault()
	d.mu.Lock()
	changed := d.lang != lang
	d.lang = lang
	if changed {
		d.result = nil
		d.errMsg = ""
		d.invalidate()
	}
	d.mu.Unlock()

	if d.prefs == nil {
		return nil
	}
	return d.prefs.SetLanguage(ctx, d.ChatID, lang)
}

// Detect submits the staged image. The returned error is ErrBusy, a
// *ValidationError, ErrStale, or the transport error; the state carries
// the localized message in every case but ErrBusy and ErrStale.
func (d *Detection) Detect(ctx context.Context) (aqua.DetectionResult, error) {
	p, err := d.Start()
	if err != nil {
		return aqua.DetectionResult{}, err
	}
	return p.Do(ctx)
}

// Start validates and enters Loading without sending anything, so a second
// trigger is refused as soon as Start returns.
func (d *Detection) Start() (*Pending[aqua.DetectionResult], error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == Loading {
		return nil, ErrBusy
	}
	lang := d.lang
	if d.image == nil {
		d.errMsg = i18n.T(lang, "errorUpload")
		d.result = nil
		d.reject()
		return nil, &ValidationError{Message: d.errMsg, Err: ErrNoImage}
	}
	gen, _ := d.begin()
	file := d.image.File
	d.errMsg = ""
	d.result = nil

	return &Pending[aqua.DetectionResult]{send: func(ctx context.Context) (aqua.DetectionResult, error) {
		raw, err := d.svc.Predict(ctx, file, lang)

		d.mu.Lock()
		defer d.mu.Unlock()
		if serr := d.settle(gen); serr != nil {
			return aqua.DetectionResult{}, serr
		}
		if err != nil {
			d.log.Error("detection failed", "chat_id", d.ChatID, "err", err)
			d.errMsg = i18n.T(lang, "errorAnalysis")
			d.fail()
			return aqua.DetectionResult{}, err
		}
		res := aqua.MapDetection(raw, lang)
		d.result = &res
		d.succeed()
		return res, nil
	}}, nil
}

// Retry resubmits the same staged file.
func (d *Detection) Retry(ctx context.Context) (aqua.DetectionResult, error) {
	return d.Detect(ctx)
}
