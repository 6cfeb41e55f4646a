package models

// OptimizeSignalRequest carries the current counts per direction. Explicit
// emergency directions win over emergency_mode's random pick.
type OptimizeSignalRequest struct {
	Traffic             map[string]int `json:"traffic" binding:"required"`
	EmergencyMode       bool           `json:"emergency_mode,omitempty"`
	EmergencyDirections []string       `json:"emergency_directions,omitempty"`
}
