package dto

// WeatherForm is the form body for POST /weather.
type WeatherForm struct {
	City string `form:"city"`
}
