package domain

import "fmt"

// Status is the closed set of shelf states a book can be in.
type Status string

const (
	StatusReading   Status = "reading"
	StatusToRead    Status = "to-read"
	StatusShelved   Status = "shelved"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// transitions is the single source of truth for status changes. Completed
// has no outgoing edges; dropped and shelved can be resumed explicitly.
var transitions = map[Status][]Status{
	StatusToRead:    {StatusReading},
	StatusReading:   {StatusCompleted, StatusDropped, StatusShelved},
	StatusShelved:   {StatusReading},
	StatusDropped:   {StatusReading},
	StatusCompleted: {},
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return fmt.Errorf("unsupported book status %q", string(s))
	}
	return nil
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
