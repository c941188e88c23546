package api

import (
	"sync"

	"github.com/diogo/advicedice/internal/models"
)

// MockAdviceClient is a mock implementation of AdviceClientInterface for testing
type MockAdviceClient struct {
	// Mock return values
	FetchAdviceVal *models.AdviceSlip
	FetchAdviceErr error
	EndpointVal    string
	IsClosedVal    bool

	// FetchFunc, when set, replaces FetchAdviceVal/FetchAdviceErr
	FetchFunc func() (*models.AdviceSlip, error)

	// Call counters/recorders
	mu          sync.Mutex
	FetchCalls  int
	CloseCalled bool
}

// Ensure MockAdviceClient implements AdviceClientInterface
var _ AdviceClientInterface = (*MockAdviceClient)(nil)

func (m *MockAdviceClient) FetchAdvice() (*models.AdviceSlip, error) {
	m.mu.Lock()
	m.FetchCalls++
	fn := m.FetchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return m.FetchAdviceVal, m.FetchAdviceErr
}

// Calls returns the number of FetchAdvice calls so far
func (m *MockAdviceClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCalls
}

func (m *MockAdviceClient) Endpoint() string {
	if m.EndpointVal == "" {
		return models.EndpointAdvice
	}
	return m.EndpointVal
}

func (m *MockAdviceClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

func (m *MockAdviceClient) IsClosed() bool {
	return m.IsClosedVal
}
