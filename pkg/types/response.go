package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ListEnvelope wraps collection responses with the total row count.
type ListEnvelope struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
