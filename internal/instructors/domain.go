package instructors

import "time"

// Instructor represents a class instructor. The catalog is read-only from
// the API's point of view; rows are managed out of band.
type Instructor struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
