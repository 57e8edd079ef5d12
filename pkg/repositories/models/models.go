package models

import "time"

// Match is the history record of one finished session.
type Match struct {
	ID         string    `json:"id"`
	Room       int       `json:"room"`
	Role       string    `json:"role"`
	Seed       uint32    `json:"seed"`
	Difficulty uint32    `json:"difficulty"`
	Frames     int32     `json:"frames"`
	Desyncs    int       `json:"desyncs"`
	EndReason  string    `json:"end_reason"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	// FinalState is the zstd-compressed snapshot of the world when the match ended
	FinalState []byte `json:"-"`
}
