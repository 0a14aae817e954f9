package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	dom "Bookshop/internal/domain"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("weather service is not configured")

// ProviderError is an error reported by the weather provider itself, e.g. an
// unknown city. Message is safe to show to users.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather provider error %s: %s", e.Code, e.Message)
}

// Client queries an OpenWeatherMap-compatible current weather endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Current fetches the current conditions for city in metric units.
func (c *Client) Current(ctx context.Context, city string) (dom.Weather, error) {
	if c.apiKey == "" {
		return dom.Weather{}, ErrNotConfigured
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return dom.Weather{}, fmt.Errorf("parse weather url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return dom.Weather{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return dom.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return dom.Weather{}, fmt.Errorf("read weather response: %w", err)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return dom.Weather{}, fmt.Errorf("decode weather response (%s): %w", resp.Status, err)
	}
	code := r.Cod.String()
	if code == "" {
		code = strconv.Itoa(resp.StatusCode)
	}
	if code != "200" {
		msg := r.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return dom.Weather{}, &ProviderError{Code: code, Message: msg}
	}

	w := dom.Weather{
		City:        r.Name,
		Country:     r.Sys.Country,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
	}
	if len(r.Weather) > 0 {
		w.Description = r.Weather[0].Description
	}
	return w, nil
}

type response struct {
	Cod     providerCode `json:"cod"`
	Message string       `json:"message"`
	Name    string       `json:"name"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// providerCode accepts the provider's "cod" field, which is a number on
// success and a string on most errors.
type providerCode string

func (c *providerCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = providerCode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("cod: %w", err)
	}
	*c = providerCode(n.String())
	return nil
}

func (c providerCode) String() string { return string(c) }
