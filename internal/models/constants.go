// Package models contains data types and constants for the Advice Slip API.
package models

// Endpoints for the Advice Slip API
const (
	EndpointBase   = "https://api.adviceslip.com"
	EndpointAdvice = EndpointBase + "/advice"
)
