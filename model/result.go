package model

import "time"

// Result is a finished compiler run.
type Result struct {
	Tab        Tab
	Generation uint64
	Command    string
	Output     string
	Elapsed    time.Duration
}
