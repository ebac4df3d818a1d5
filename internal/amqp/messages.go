package amqp

import (
	"encoding/json"
	"time"
)

// Refresh scopes. Rates asks the worker to refetch the exchange-rate
// snapshot; reports asks servers to drop cached summaries.
const (
	ScopeRates   = "rates"
	ScopeReports = "reports"
)

// RefreshMessage tells consumers some cached state is out of date.
// It carries no payload; consumers refetch from the source of truth.
type RefreshMessage struct {
	Scope     string    `json:"scope"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRefreshMessage(scope, reason string) *RefreshMessage {
	return &RefreshMessage{
		Scope:     scope,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
