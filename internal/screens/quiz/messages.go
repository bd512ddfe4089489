package quiz

import "time"

// tickMsg is sent every second to advance the elapsed-time counter.
type tickMsg time.Time
