package currency

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultURL is the public currency listing endpoint.
const DefaultURL = "https://api.moonpay.com/v3/currencies"

// maxBodyLog caps how many bytes of an error body are kept.
const maxBodyLog = 500

// HTTPSource fetches the currency list with a single GET.
//
// Endpoint: GET <URL> -> [{name, code, notAllowedCountries?, supportsTestMode?}, ...]
type HTTPSource struct {
	URL       string
	Timeout   time.Duration
	HTTP      *http.Client
	UserAgent string
	Insecure  bool
	Logger    *slog.Logger
}

func NewHTTPSource(url string) *HTTPSource {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	return &HTTPSource{
		URL:       url,
		Timeout:   10 * time.Second,
		UserAgent: "coingrid/0.1.0",
		Logger:    slog.Default(),
	}
}

func (s *HTTPSource) client() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if s.Insecure {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // explicit user flag
	}

	return &http.Client{Timeout: s.Timeout, Transport: transport}
}

func (s *HTTPSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// ListCurrencies performs the fetch. Errors wrap ErrNetwork, ErrHTTP or
// ErrMalformedResponse.
func (s *HTTPSource) ListCurrencies(ctx context.Context) ([]Item, error) {
	body, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	items, err := Decode(body)
	if err != nil {
		s.logger().Warn("currency response did not decode",
			"url", s.URL,
			"bytes", len(body),
			"err", err,
		)
		return nil, err
	}
	return items, nil
}

func (s *HTTPSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	logger := s.logger()

	start := time.Now()
	res, err := s.client().Do(req)
	dur := time.Since(start)
	if err != nil {
		logger.Error("currency request failed",
			"url", s.URL,
			"duration_ms", dur.Milliseconds(),
			"err", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	logger.Debug("currency request",
		"url", s.URL,
		"status", res.StatusCode,
		"duration_ms", dur.Milliseconds(),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(string(b))
		if len(msg) > maxBodyLog {
			cut := maxBodyLog
			for cut > 0 && !utf8.RuneStart(msg[cut]) {
				cut--
			}
			msg = msg[:cut] + "…"
		}
		logger.Warn("currency api non-2xx response",
			"url", s.URL,
			"status", res.StatusCode,
			"response", msg,
		)
		return nil, &HTTPError{
			Method:     http.MethodGet,
			URL:        s.URL,
			Status:     res.Status,
			StatusCode: res.StatusCode,
			Body:       msg,
		}
	}
	return b, nil
}
