package domain

import "time"

// BuildInfo records the last successful execution of a node.
type BuildInfo struct {
	NodeName    string    `json:"node_name,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	InputHash   string    `json:"input_hash,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
