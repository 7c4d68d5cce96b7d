package entity

// WeatherCurrent is the snapshot of current conditions.
type WeatherCurrent struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Humidity            float64 `json:"humidity"`
	Time                string  `json:"time"`
}

// WeatherDaily is the forecast for a single day.
type WeatherDaily struct {
	Date           string  `json:"date"`
	TemperatureMin float64 `json:"temperatureMin"`
	TemperatureMax float64 `json:"temperatureMax"`
}

// WeatherLocation is where the forecast applies.
type WeatherLocation struct {
	Cidade    string  `json:"cidade"`
	Uf        string  `json:"uf"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherData keeps daily entries in the order the forecast API returned them.
type WeatherData struct {
	Current  WeatherCurrent  `json:"current"`
	Daily    []WeatherDaily  `json:"daily"`
	Location WeatherLocation `json:"location"`
}

// FirstDays returns a copy holding at most n daily entries.
func (w *WeatherData) FirstDays(n int) *WeatherData {
	if w == nil {
		return nil
	}
	out := *w
	if n >= 0 && n < len(w.Daily) {
		out.Daily = append([]WeatherDaily(nil), w.Daily[:n]...)
	} else {
		out.Daily = append([]WeatherDaily(nil), w.Daily...)
	}
	return &out
}
