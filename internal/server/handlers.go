package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/pffbench/internal/config"
	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/numtheory"
)

// newRequestGenerator builds the input generator used for a request. A
// configured seed makes the API deterministic, otherwise each request gets a
// time-seeded generator.
func newRequestGenerator(cfg config.AppConfig) *numtheory.Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return numtheory.NewGenerator(seed)
}

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of available factorization algorithms.
// It queries the internal registry and returns the names as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"algorithms": s.factory.List(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleBenchmark processes requests to run a single-size benchmark.
// It decodes the JSON body, validates the parameters, executes the benchmark,
// and returns the serialized result.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	applyBenchmarkDefaults(&req)

	if err := validateBenchmarkRequest(req); err != nil {
		s.writeParseError(w, err)
		return
	}

	alg, err := s.factory.Create(req.Algorithm, factoring.Config{
		Backend:       req.Backend,
		Shots:         s.cfg.Shots,
		MaxIterations: s.cfg.MaxIterations,
		OracleTimeout: s.cfg.OracleTimeout,
	})
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	engine := s.engineFactory()
	result, err := engine.Run(ctx, req.S, alg, req.Trials, *req.Semiprime)
	if err != nil {
		s.writeBenchmarkError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, result.Serialize())
}

// handleScaling processes requests to run a scaling analysis across several
// bit sizes.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleScaling(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ScalingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	applyScalingDefaults(&req)

	if err := validateScalingRequest(req); err != nil {
		s.writeParseError(w, err)
		return
	}

	alg, err := s.factory.Create(req.Algorithm, factoring.Config{
		Backend:       req.Backend,
		Shots:         s.cfg.Shots,
		MaxIterations: s.cfg.MaxIterations,
		OracleTimeout: s.cfg.OracleTimeout,
	})
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	engine := s.engineFactory()
	result, err := engine.RunScaling(ctx, alg, req.Sizes, req.Trials, *req.Semiprime)
	if err != nil {
		s.writeBenchmarkError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, result.Serialize())
}

// applyBenchmarkDefaults fills omitted optional fields with their defaults.
func applyBenchmarkDefaults(req *BenchmarkRequest) {
	if req.Algorithm == "" {
		req.Algorithm = config.DefaultAlgo
	}
	if req.Trials == 0 {
		req.Trials = config.DefaultTrials
	}
	if req.Backend == "" {
		req.Backend = config.DefaultBackend
	}
	if req.Semiprime == nil {
		t := true
		req.Semiprime = &t
	}
}

// applyScalingDefaults fills omitted optional fields with their defaults.
func applyScalingDefaults(req *ScalingRequest) {
	if req.Algorithm == "" {
		req.Algorithm = config.DefaultAlgo
	}
	if req.Trials == 0 {
		req.Trials = config.DefaultTrials
	}
	if req.Backend == "" {
		req.Backend = config.DefaultBackend
	}
	if req.Semiprime == nil {
		t := true
		req.Semiprime = &t
	}
}

// validateBenchmarkRequest checks the parameter ranges of a benchmark
// request. Size and trial bounds protect the server from requests that would
// monopolize it.
func validateBenchmarkRequest(req BenchmarkRequest) error {
	if req.S < config.MinBits || req.S > config.MaxBits {
		return ParseError{
			Message:    "Parameter 's' must be between 2 and 20 bits",
			StatusCode: http.StatusBadRequest,
		}
	}
	if req.Trials < 1 || req.Trials > config.MaxTrials {
		return ParseError{
			Message:    "Parameter 'trials' must be between 1 and 1000",
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

// validateScalingRequest checks the parameter ranges of a scaling request.
// The per-size trial bound is tighter than the single-benchmark bound since
// the total work is multiplied by the number of sizes.
func validateScalingRequest(req ScalingRequest) error {
	if len(req.Sizes) == 0 {
		return ParseError{
			Message:    "Parameter 'sizes' must list at least one size",
			StatusCode: http.StatusBadRequest,
		}
	}
	seen := make(map[int]bool, len(req.Sizes))
	for _, size := range req.Sizes {
		if size < config.MinBits || size > config.MaxBits {
			return ParseError{
				Message:    "Every size in 'sizes' must be between 2 and 20 bits",
				StatusCode: http.StatusBadRequest,
			}
		}
		if seen[size] {
			return ParseError{
				Message:    "Parameter 'sizes' must not contain duplicates",
				StatusCode: http.StatusBadRequest,
			}
		}
		seen[size] = true
	}
	if req.Trials < 1 || req.Trials > config.MaxScalingTrials {
		return ParseError{
			Message:    "Parameter 'trials' must be between 1 and 500 for scaling runs",
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

// writeParseError maps a validation error to its HTTP response.
func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var parseErr ParseError
	if errors.As(err, &parseErr) {
		s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeBenchmarkError maps a benchmark execution error to the appropriate
// HTTP status: client errors map to 400, timeouts to 504, everything else
// to 500.
func (s *Server) writeBenchmarkError(w http.ResponseWriter, err error) {
	var valErr apperrors.ValidationError
	var cfgErr apperrors.ConfigError
	switch {
	case errors.As(err, &valErr) || errors.As(err, &cfgErr):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Benchmark timed out")
	default:
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
