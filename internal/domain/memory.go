package domain

// MemoryCapture is the remote memory service's answer to a capture call.
// The service owns all extraction logic; rolodex only relays the outcome.
type MemoryCapture struct {
	Success    bool
	Person     string
	Details    string
	Confidence float64
}

// MemoryRecall is the remote memory service's answer to a recall call.
type MemoryRecall struct {
	Success bool
	Message string
}
