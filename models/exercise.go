package models

// Exercise is a single logged activity owned by one User.
// Date is kept as a YYYY-MM-DD string so lexicographic order matches calendar order.
type Exercise struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"userId"`
	Description string `db:"description" json:"description"`
	Duration    int64  `db:"duration" json:"duration"`
	Date        string `db:"date" json:"date"`
}

// LogEntry is the per-exercise shape returned inside a Log.
type LogEntry struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
	Date        string `json:"date"`
}

// Entry drops the owner id for log output.
func (e Exercise) Entry() LogEntry {
	return LogEntry{ID: e.ID, Description: e.Description, Duration: e.Duration, Date: e.Date}
}

// Log is a user's filtered exercise history. Count ignores any limit applied to Entries.
type Log struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Count    int64      `json:"count"`
	Entries  []LogEntry `json:"log"`
}
