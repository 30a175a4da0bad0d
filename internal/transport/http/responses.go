package http

import "fmt"

// stubResponse is the placeholder body returned by unimplemented
// business endpoints.
type stubResponse struct {
	Message string `json:"message"`
}

// stub builds the placeholder message for an operation without a path
// parameter.
func stub(operation string) stubResponse {
	return stubResponse{Message: fmt.Sprintf("%s endpoint - TODO: Implement", operation)}
}

// stubFor builds the placeholder message for an operation on a specific
// resource.
func stubFor(operation, param, value string) stubResponse {
	return stubResponse{Message: fmt.Sprintf("%s endpoint - TODO: Implement for %s: %s", operation, param, value)}
}
