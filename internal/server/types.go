package server

// BenchmarkRequest is the JSON request body for the /benchmark endpoint.
type BenchmarkRequest struct {
	// S is the size, in bits, of the integers to factor.
	S int `json:"s"`
	// Algorithm is the registered algorithm name (defaults to "classical").
	Algorithm string `json:"algorithm,omitempty"`
	// Trials is the number of factorization trials (defaults to 20).
	Trials int `json:"trials,omitempty"`
	// Backend is the period-oracle backend (defaults to "simulator").
	Backend string `json:"backend,omitempty"`
	// Semiprime restricts inputs to two-prime composites. Defaults to true
	// when omitted, hence the pointer.
	Semiprime *bool `json:"semiprime,omitempty"`
}

// ScalingRequest is the JSON request body for the /scaling endpoint.
type ScalingRequest struct {
	// Algorithm is the registered algorithm name (defaults to "classical").
	Algorithm string `json:"algorithm,omitempty"`
	// Sizes is the ordered list of bit sizes to benchmark.
	Sizes []int `json:"sizes"`
	// Trials is the number of trials per size (defaults to 20).
	Trials int `json:"trials,omitempty"`
	// Backend is the period-oracle backend (defaults to "simulator").
	Backend string `json:"backend,omitempty"`
	// Semiprime restricts inputs to two-prime composites. Defaults to true.
	Semiprime *bool `json:"semiprime,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParseError represents a request parsing or validation error with an HTTP
// status.
type ParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return e.Message
}
