package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/openfreight/loadplan/core/publish"
)

// MockPublisher records published plans in memory and acknowledges them
// immediately. Service and integration tests use it in place of a broker.
type MockPublisher struct {
	Messages   map[string]publish.PlanMessage
	FailRuns   map[string]bool
	AckResults map[string]bool
	mu         sync.Mutex
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages:   make(map[string]publish.PlanMessage),
		FailRuns:   make(map[string]bool),
		AckResults: make(map[string]bool),
	}
}

// PublishPlan stores the message under a run-derived id, or fails when the
// run is listed in FailRuns.
func (m *MockPublisher) PublishPlan(msg publish.PlanMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRuns[msg.RunID] {
		return "", fmt.Errorf("publish failed")
	}
	messageID := fmt.Sprintf("msg-%s", msg.RunID)
	m.Messages[messageID] = msg
	m.AckResults[messageID] = true
	return messageID, nil
}

// WaitForAck resolves instantly from the stored result.
func (m *MockPublisher) WaitForAck(messageID string, timeout time.Duration) (bool, error) {
	m.mu.Lock()
	ok, exists := m.AckResults[messageID]
	m.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("unknown message %s", messageID)
	}
	return ok, nil
}
