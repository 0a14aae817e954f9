package service

import (
	"context"
	"strings"

	dom "Bookshop/internal/domain"

	"golang.org/x/sync/singleflight"
)

// WeatherProvider fetches current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (dom.Weather, error)
}

// WeatherService looks up current weather. Concurrent lookups of the same
// city share one provider call; results are not kept afterwards.
type WeatherService struct {
	provider    WeatherProvider
	defaultCity string
	sf          singleflight.Group
}

// NewWeatherService returns a WeatherService that falls back to defaultCity.
func NewWeatherService(p WeatherProvider, defaultCity string) *WeatherService {
	return &WeatherService{provider: p, defaultCity: defaultCity}
}

func (s *WeatherService) DefaultCity() string {
	return s.defaultCity
}

// Current returns the weather for city, or for the default city when blank.
// The resolved city name is returned alongside for re-rendering the form.
func (s *WeatherService) Current(ctx context.Context, city string) (string, dom.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.defaultCity
	}

	v, err, _ := s.sf.Do(strings.ToLower(city), func() (interface{}, error) {
		return s.provider.Current(context.WithoutCancel(ctx), city)
	})
	if err != nil {
		return city, dom.Weather{}, err
	}
	return city, v.(dom.Weather), nil
}
