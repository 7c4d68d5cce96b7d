package model

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error    string   `json:"error"`
	Provider string   `json:"provider,omitempty"`
	Details  []string `json:"details,omitempty"`
}
