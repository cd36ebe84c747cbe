package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/metrics"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the service. Detail carries the JSON
// "detail" field when the body had one.
type APIError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// Detail extracts the server-provided detail from err, if any.
func Detail(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Detail
	}
	return ""
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// Predict uploads an image for disease detection.
func (c *Client) Predict(ctx context.Context, file aqua.ImageFile, lang i18n.Language) (aqua.PredictResponse, error) {
	var out aqua.PredictResponse
	err := c.upload(ctx, "predict", "/predict", file, map[string]string{"language": string(lang.OrDefault())}, &out)
	return out, err
}

// SeedCount uploads a fry image. confidence is a 0..1 threshold.
func (c *Client) SeedCount(ctx context.Context, file aqua.ImageFile, confidence float64) (aqua.SeedCount, error) {
	var out aqua.SeedCount
	fields := map[string]string{"confidence": strconv.FormatFloat(confidence, 'f', -1, 64)}
	err := c.upload(ctx, "seed_count", "/seed-count", file, fields, &out)
	return out, err
}

func (c *Client) AssessTemperature(ctx context.Context, req aqua.TemperatureRequest) (aqua.TemperatureRisk, error) {
	var out aqua.TemperatureRisk
	err := c.doJSON(ctx, "temperature_assess", http.MethodPost, "/temperature/assess-risk", req, &out)
	return out, err
}

func (c *Client) LocationCheck(ctx context.Context, req aqua.LocationRequest) (aqua.WeatherReport, error) {
	var out aqua.WeatherReport
	err := c.doJSON(ctx, "location_check", http.MethodPost, "/weather/location-check", req, &out)
	return out, err
}

func (c *Client) SpeciesList(ctx context.Context) (aqua.SpeciesList, error) {
	var out aqua.SpeciesList
	err := c.doJSON(ctx, "species_list", http.MethodGet, "/temperature/species-list", nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (aqua.Health, error) {
	var out aqua.Health
	err := c.doJSON(ctx, "health", http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) upload(ctx context.Context, api, path string, file aqua.ImageFile, fields map[string]string, out any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	name := file.Name
	if name == "" {
		name = "image"
	}
	mime := file.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	h.Set("Content-Type", mime)
	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(file.Bytes); err != nil {
		return err
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, api, out)
}

func (c *Client) doJSON(ctx context.Context, api, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", api, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, api, out)
}

func (c *Client) do(req *http.Request, api string, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordAPICall(api, 0, elapsed.Seconds())
		c.Log.Warn("inference call failed", "api", api, "request_id", reqID, "duration", elapsed, "err", err)
		return fmt.Errorf("%s: %w", api, err)
	}
	defer resp.Body.Close()

	metrics.RecordAPICall(api, resp.StatusCode, elapsed.Seconds())
	c.Log.Debug("inference call", "api", api, "status", resp.StatusCode, "request_id", reqID, "duration", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Endpoint: api, Status: resp.StatusCode, Detail: parseDetail(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", api, err)
	}
	return nil
}

// parseDetail reads {"detail": "..."}. Validation errors send detail as a
// list of objects with a "msg" field.
func parseDetail(b []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(b, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
