package tasks

import "time"

// Job is one queued maintenance run, executed by a worker once it is
// pulled from the dispatch queue
type Job struct {
	Queue   string
	ID      string
	Added   time.Time
	Started time.Time
	Name    string
	Run     func() `json:"-"`
}
