package models

// AdviceSlip is one id+text record returned by the service.
// It lives only for one request/render cycle.
type AdviceSlip struct {
	ID     int    `json:"id"`
	Advice string `json:"advice"`
}
