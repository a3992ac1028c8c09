// Package models defines the serialised forms of the persisted aggregates.
// Each type maps to one slot in the datastore.
package models

// Task is a persisted unit of work tracked against focus sessions.
type Task struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	EstimatedCount int    `json:"estimated_count"`
	CompletedCount int    `json:"completed_count"`
	Done           bool   `json:"done"`
}

// Session is a snapshot of the countdown state machine. A restored session
// never resumes running on its own.
type Session struct {
	Kind             string `json:"kind"`
	ActiveTaskID     string `json:"active_task_id,omitempty"`
	RemainingMinutes int    `json:"remaining_minutes"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Running          bool   `json:"running"`
}

// Settings is the flat user configuration record.
type Settings struct {
	SessionCmd   string  `json:"session_cmd,omitempty"`
	WorkMinutes  int     `json:"work_minutes"`
	BreakMinutes int     `json:"break_minutes"`
	MusicVolume  float64 `json:"music_volume"`
	Notify       bool    `json:"notify"`
	MusicOn      bool    `json:"music_on"`
}

// Track references an externally hosted media item.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	VideoID   string `json:"video_id"`
	SourceURL string `json:"source_url"`
}

// Playlist is the ordered track collection and its cursor.
type Playlist struct {
	Tracks       []Track `json:"tracks"`
	CurrentIndex int     `json:"current_index"`
}
