package model

import "time"

// ProjectID uniquely identifies a project
type ProjectID int64

// Project is a portfolio entry owned by exactly one account
type Project struct {
	ID          ProjectID
	OwnerID     AccountID
	Title       string
	Description string
	ImageFile   string // stored filename under the upload directory, empty if none
	CreatedAt   time.Time
}

// HasImage reports whether the project references an uploaded image
func (p *Project) HasImage() bool {
	return p.ImageFile != ""
}
