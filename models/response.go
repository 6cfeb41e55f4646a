package models

type OptimizeSignalResponse struct {
	GreenSignal        string  `json:"green_signal"`
	IsEmergency        bool    `json:"is_emergency"`
	EmergencyDirection *string `json:"emergency_direction"`
	Message            string  `json:"message"`
}

type HealthResponse struct {
	Status         string   `json:"status"`
	UptimeSec      float64  `json:"uptimeSec"`
	GraphNodes     int      `json:"graphNodes"`
	MemUsedPercent *float64 `json:"memUsedPercent,omitempty"`
	RequestID      string   `json:"requestId,omitempty"`
}
