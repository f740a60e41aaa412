package model

import "time"

// QueryStatus is the review state of a logged question
type QueryStatus string

const (
	QueryStatusNew      QueryStatus = "new"
	QueryStatusReviewed QueryStatus = "reviewed"
	QueryStatusAnswered QueryStatus = "answered"
	QueryStatusIgnored  QueryStatus = "ignored"
)

// QueryStatuses lists every valid status
var QueryStatuses = []QueryStatus{
	QueryStatusNew,
	QueryStatusReviewed,
	QueryStatusAnswered,
	QueryStatusIgnored,
}

// ParseQueryStatus validates a status string
func ParseQueryStatus(s string) (QueryStatus, error) {
	for _, qs := range QueryStatuses {
		if string(qs) == s {
			return qs, nil
		}
	}
	return "", ErrInvalidQueryStatus
}

// QueryLogEntry is one appended record in the query log. IDs are assigned
// at creation, strictly increasing from 1, and never reused.
type QueryLogEntry struct {
	ID        int
	User      string
	Role      string
	Question  string
	Status    QueryStatus
	Note      string
	CreatedAt time.Time
}
