package providers

import "context"

// ChatMessage is a single role-tagged message sent to the chat-completion API
type ChatMessage struct {
	Role    string
	Content string
}

// ChatParams carries sampling parameters for a chat-completion call
type ChatParams struct {
	Temperature float32
	MaxTokens   int
}

// AIProvider defines the interface for chat-completion text generation
type AIProvider interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage, params ChatParams) (string, error)

	// ChatCompletionStream emits incremental text fragments on the first
	// channel. The fragment channel is closed when the stream ends; at most
	// one error is delivered on the second channel before both close.
	ChatCompletionStream(ctx context.Context, messages []ChatMessage, params ChatParams) (<-chan string, <-chan error)
}

// WeatherProvider defines the interface for upstream weather lookups
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, city string) (*CurrentWeatherData, error)
	FetchForecast(ctx context.Context, city string, readings int) (*ForecastData, error)
}

// CurrentWeatherData mirrors the OpenWeatherMap current-conditions payload
type CurrentWeatherData struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int `json:"visibility"` // meters
}

// ForecastReading is a single fixed-interval forecast entry
type ForecastReading struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"` // precipitation probability, 0..1
}

// ForecastData mirrors the OpenWeatherMap 5-day/3-hour forecast payload
type ForecastData struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []ForecastReading `json:"list"`
}
