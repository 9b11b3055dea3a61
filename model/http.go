package model

type DiffResponse struct {
	RequestId      string     `json:"request_id"`
	Channel        *int       `json:"channel"`
	LengthMismatch bool       `json:"length_mismatch"`
	Old            []Interval `json:"old"`
	New            []Interval `json:"new"`
	OldAnomalies   []Anomaly  `json:"old_anomalies"`
	NewAnomalies   []Anomaly  `json:"new_anomalies"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
