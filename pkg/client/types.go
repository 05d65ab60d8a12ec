package client

// CalculationRequest is the body of an add or subtract request.
type CalculationRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// CalculationResponse carries the resulting numeral.
type CalculationResponse struct {
	Result string `json:"result"`
	Cached bool   `json:"cached,omitempty"`
}

// ExpandResponse shows a numeral in each form the calculator uses.
type ExpandResponse struct {
	Numeral  string `json:"numeral"`
	Additive string `json:"additive"`
	Bundled  string `json:"bundled"`
	Minimal  string `json:"minimal"`
}

// ErrorResponse represents an error response from the server.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
