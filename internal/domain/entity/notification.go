package entity

// Priority is the urgency of a dashboard notification.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Color retorna a cor do toast para a prioridade.
func (p Priority) Color() string {
	switch p {
	case PriorityUrgent:
		return "#dc3545"
	case PriorityHigh:
		return "#fd7e14"
	case PriorityMedium:
		return "#ffc107"
	case PriorityLow:
		return "#28a745"
	default:
		return "#6c757d"
	}
}

// Notification represents one alert returned by /api/notifications.
type Notification struct {
	Type     string   `json:"type,omitempty"`
	Priority Priority `json:"priority"`
	Icon     string   `json:"icon"`
	Message  string   `json:"message"`
}
