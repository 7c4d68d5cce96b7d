package external

// GeocodingResult is a single candidate of the Open-Meteo geocoding search
type GeocodingResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// GeocodingResponse omits results entirely when nothing matched
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// OpenMeteoForecastResponse represents the forecast endpoint response
type OpenMeteoForecastResponse struct {
	Latitude  float64                `json:"latitude"`
	Longitude float64                `json:"longitude"`
	Current   *OpenMeteoCurrentBlock `json:"current"`
	Daily     *OpenMeteoDailyBlock   `json:"daily"`
}

type OpenMeteoCurrentBlock struct {
	Time                string  `json:"time"`
	Temperature2m       float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
}

type OpenMeteoDailyBlock struct {
	Time             []string  `json:"time"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
}

// OpenMeteoErrorResponse is returned with 400 responses
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
