package handlers

import (
	"errors"
	"net/http"

	"Bookshop/internal/dto"
	"Bookshop/internal/logger"
	"Bookshop/internal/service"
	"Bookshop/internal/weather"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WeatherHandler serves the current weather lookup page.
type WeatherHandler struct {
	svc   *service.WeatherService
	pages Pages
}

// NewWeatherHandler returns a new WeatherHandler.
func NewWeatherHandler(svc *service.WeatherService, pages Pages) *WeatherHandler {
	return &WeatherHandler{svc: svc, pages: pages}
}

// Form renders the lookup form with the default city filled in.
func (h *WeatherHandler) Form(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "weather.tmpl", "Weather Forecast", gin.H{"City": h.svc.DefaultCity()})
}

// Lookup renders the form again with either the conditions or a message.
// Provider failures are shown on the page with status 200. An unreadable form
// falls back to the default city.
func (h *WeatherHandler) Lookup(c *gin.Context) {
	var form dto.WeatherForm
	if err := c.ShouldBind(&form); err != nil {
		form = dto.WeatherForm{}
	}

	city, w, err := h.svc.Current(c.Request.Context(), form.City)
	data := gin.H{"City": city}
	if err != nil {
		data["Error"] = weatherMessage(err)
		logger.WithContext(c.Request.Context(), h.pages.log).Warn("weather lookup failed",
			zap.String("city", city),
			zap.Error(err),
		)
	} else {
		data["Weather"] = &w
	}
	h.pages.render(c, http.StatusOK, "weather.tmpl", "Weather Forecast", data)
}

func weatherMessage(err error) string {
	var pe *weather.ProviderError
	switch {
	case errors.As(err, &pe):
		return "Weather service error: " + pe.Message
	case errors.Is(err, weather.ErrNotConfigured):
		return "The weather service is not configured."
	default:
		return "Error fetching weather data. Please try again later."
	}
}
