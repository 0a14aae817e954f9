package domain

// Weather is the current conditions for a city as reported by the provider.
type Weather struct {
	City        string
	Country     string
	Description string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
}
