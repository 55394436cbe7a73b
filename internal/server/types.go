package server

import "github.com/agbru/polyroots/pkg/models"

// ErrorResponse is the JSON body of an API error.
type ErrorResponse = models.ErrorResponse

// RootsParseError represents a query parameter error with its HTTP status.
type RootsParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e RootsParseError) Error() string {
	return e.Message
}

// rootsRequest holds the parsed parameters of a /roots request.
type rootsRequest struct {
	text   string
	refine int
	print  int
}
