package models

import "testing"

func TestEndpointAdvice(t *testing.T) {
	if EndpointAdvice != "https://api.adviceslip.com/advice" {
		t.Errorf("EndpointAdvice = %s", EndpointAdvice)
	}
}
