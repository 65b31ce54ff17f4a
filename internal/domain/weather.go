package domain

// WeatherSnapshot represents current conditions for a city.
// Values are kept exactly as reported upstream; rounding is a display concern.
type WeatherSnapshot struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// WeatherResponse wraps weather data with metadata
type WeatherResponse struct {
	Data    WeatherSnapshot `json:"data"`
	IconURL string          `json:"icon_url,omitempty"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
}

// DefaultCity is looked up once when the widget mounts
const DefaultCity = "Seoul"
