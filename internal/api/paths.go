// Package api provides the Advice Slip API client implementation.
package api

// GJSON paths for extracting values from advice responses.
const (
	PathSlip   = "slip"
	PathID     = "slip.id"
	PathAdvice = "slip.advice"

	// The service answers some requests with 200 and an error envelope:
	// {"message": {"type": "error", "text": "..."}}
	PathMessageText = "message.text"
)
