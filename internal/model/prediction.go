package model

// Prediction labels
const (
	LabelHighValue    = "High Value"
	LabelNotHighValue = "Not High Value"
	StatusSuccess     = "success"
)

// PredictionResult is the body returned by POST /predict
type PredictionResult struct {
	HighValueProbability float64 `json:"high_value_probability"`
	Prediction           string  `json:"prediction"`
	Status               string  `json:"status"`
}

// MessageResponse is the body returned by GET /
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the body returned by the health and readiness probes
type StatusResponse struct {
	Status string `json:"status"`
}

// DetailResponse is the body returned for unknown routes and methods
type DetailResponse struct {
	Detail string `json:"detail"`
}

// VersionResponse describes the running build
type VersionResponse struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}
