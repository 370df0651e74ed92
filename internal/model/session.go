package model

import "time"

// SessionInfo is the API view of a dashboard session.
type SessionInfo struct {
	ID        string     `json:"id"`
	Source    SourceSpec `json:"source"`
	Rows      int        `json:"rows"`
	CreatedAt time.Time  `json:"createdAt"`
	LastUsed  time.Time  `json:"lastUsed"`
	LastFetch *time.Time `json:"lastFetch,omitempty"`
}
