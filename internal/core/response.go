// Package core holds the domain types shared by the scoring engine, the
// consensus analyzer, and the boundary layers.
package core

// AgentResponse is one agent's scored answer to the shared prompt.
// H, C, and Score are derived from Content by the scoring engine and must be
// recomputed whenever Content or epsilon changes. The analyzer treats the
// value as read-only.
type AgentResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Content string  `json:"content"`
	H       float64 `json:"H"`
	C       float64 `json:"C"`
	Score   float64 `json:"score"`
}
