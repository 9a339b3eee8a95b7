package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
)

// MissingInputMessage is returned when the resume or the job description is absent.
const MissingInputMessage = "Missing input data!"

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		inputErr *matching.InvalidInputError
		fetchErr *fetch.Error
		maxErr   *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, fetch.ErrBlockedAddress):
		return http.StatusForbidden
	case errors.Is(err, ingestion.ErrEmptyContent):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to show to clients.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return MissingInputMessage
	case http.StatusForbidden:
		return "The job posting URL points to a non-public address."
	case http.StatusRequestEntityTooLarge:
		return "Uploaded file is too large."
	case http.StatusUnprocessableEntity:
		return "No text could be found at the job posting URL."
	case http.StatusBadGateway:
		return "The job posting could not be fetched."
	default:
		return "Internal server error."
	}
}
