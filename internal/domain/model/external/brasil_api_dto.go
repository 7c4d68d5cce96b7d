package external

// BrasilAPICepResponse represents the response of the BrasilAPI CEP v2 endpoint
type BrasilAPICepResponse struct {
	Cep          string             `json:"cep"`
	State        string             `json:"state"`
	City         string             `json:"city"`
	Neighborhood string             `json:"neighborhood"`
	Street       string             `json:"street"`
	Service      string             `json:"service"`
	Location     *BrasilAPILocation `json:"location"`
}

// BrasilAPILocation is the GeoJSON-like location block; coordinates may be missing or empty
type BrasilAPILocation struct {
	Type        string                `json:"type"`
	Coordinates *BrasilAPICoordinates `json:"coordinates"`
}

// BrasilAPICoordinates carries coordinates as numeric strings
type BrasilAPICoordinates struct {
	Longitude NumericString `json:"longitude"`
	Latitude  NumericString `json:"latitude"`
}

// APIErrorResponse represents error responses from the Brasil API
type APIErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
