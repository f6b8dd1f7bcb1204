package models

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Evento publicado no Rabbit após cada alteração bem-sucedida
// e repassado aos clientes websocket como JSON.
type CompanyEvent struct {
	Action    string    `json:"action"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCompanyEvent(action string, c *Company) CompanyEvent {
	return CompanyEvent{
		Action:    action,
		CompanyID: c.ID,
		Name:      c.Name,
		Timestamp: time.Now().UTC(),
	}
}
