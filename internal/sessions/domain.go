package sessions

import "time"

// Session represents a scheduled group class. Users is the roster: account
// ids in join order, each present at most once.
type Session struct {
	ID           int64
	Name         string
	Date         time.Time
	Description  string
	InstructorID int64
	Users        []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant reports whether the account is on the roster.
func (s *Session) HasParticipant(userID int64) bool {
	for _, id := range s.Users {
		if id == userID {
			return true
		}
	}
	return false
}
