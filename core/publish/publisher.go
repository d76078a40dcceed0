package publish

import "time"

// PlanMessage is the summary of a solved plan announced to downstream
// consumers such as dispatch boards.
type PlanMessage struct {
	RunID    string    `json:"run_id"`
	Instance string    `json:"instance"`
	Cost     float64   `json:"cost"`
	Routes   [][]int   `json:"routes"`
	SolvedAt time.Time `json:"solved_at"`
}

// Publisher represents a client capable of announcing solved plans and
// waiting for acknowledgments from plan consumers.
type Publisher interface {
	// PublishPlan announces the plan and returns the message identifier
	// used to track the acknowledgment.
	PublishPlan(msg PlanMessage) (messageID string, err error)

	// WaitForAck waits for an acknowledgment of the provided message
	// identifier or until the timeout expires.
	WaitForAck(messageID string, timeout time.Duration) (bool, error)
}
