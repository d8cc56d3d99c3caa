package apierrors

import (
	"errors"
	"net/http"
	"strings"

	"review-server/internal/rejection"
	"review-server/internal/store"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// Business rejections map by kind and keep their reason for the client.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if r, ok := rejection.As(err); ok {
		return mapRejection(r)
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")
	default:
		return mapExternalServiceError(err)
	}
}

func mapRejection(r *rejection.Error) *APIError {
	apiErr := &APIError{Reason: r.Reason}

	switch r.Kind {
	case rejection.QuotaExceeded:
		apiErr.Code = CodeQuotaExceeded
		if r.Reason == "limit_reached" {
			apiErr.StatusCode = http.StatusTooManyRequests
			apiErr.Message = "Monthly limit for this plan has been reached"
		} else {
			apiErr.StatusCode = http.StatusForbidden
			apiErr.Message = "This action is not available on the current plan"
		}
	case rejection.ValidationFailed:
		apiErr.StatusCode = http.StatusBadRequest
		apiErr.Code = CodeValidationFailed
		apiErr.Message = "Validation failed: " + r.Reason
	case rejection.NotFound:
		apiErr.StatusCode = http.StatusNotFound
		apiErr.Code = CodeNotFound
		apiErr.Message = "Resource not found"
	case rejection.AlreadyReplied:
		apiErr.StatusCode = http.StatusConflict
		apiErr.Code = CodeAlreadyReplied
		apiErr.Message = "This review already has a reply"
	case rejection.NotEligible:
		apiErr.Code = CodeNotEligible
		if r.Reason == "token_already_used" {
			apiErr.StatusCode = http.StatusConflict
			apiErr.Message = "This review link has already been used"
		} else {
			apiErr.StatusCode = http.StatusUnprocessableEntity
			apiErr.Message = "This action is not allowed"
		}
	default:
		return InternalError(r)
	}
	return apiErr
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "stripe") || strings.Contains(errMsg, "payment") {
		return ServiceUnavailable(
			CodePaymentProviderError,
			"Payment provider is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "resend") || strings.Contains(errMsg, "sesv2") || strings.Contains(errMsg, "email service") {
		return ServiceUnavailable(
			CodeEmailServiceError,
			"Email service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "enqueue") || strings.Contains(errMsg, "asynq") {
		return ServiceUnavailable(
			CodeQueueError,
			"Background processing is temporarily unavailable. Please try again later.",
			err,
		)
	}

	return InternalError(err)
}
