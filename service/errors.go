package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a failed extraction call at the provider
// boundary so the retry policy never has to inspect raw error text.
type ErrorKind int

const (
	// ErrKindFatal is a non-retryable failure: bad input, auth
	// failure, cancelled context.
	ErrKindFatal ErrorKind = iota
	// ErrKindTransient covers network blips and provider 5xx.
	ErrKindTransient
	// ErrKindRateLimited covers 429/quota exhaustion. Provider quota
	// windows reset on the order of a minute.
	ErrKindRateLimited
)

// rateLimitMarkers are matched against error text because the provider
// does not always set a machine-clean status code on quota errors.
var rateLimitMarkers = []string{"429", "quota", "resource_exhausted", "rate limit"}

// ClassifyError maps a provider error onto the retry taxonomy.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrKindFatal
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrKindFatal
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return ErrKindRateLimited
		case apiErr.Code == http.StatusBadRequest,
			apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden:
			return ErrKindFatal
		case apiErr.Code >= 500:
			return ErrKindTransient
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return ErrKindRateLimited
		}
	}

	return ErrKindTransient
}
