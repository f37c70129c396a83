package note

import "time"

// AccessReadWrite is the only access level a collaborator can hold
const AccessReadWrite = "READ_WRITE"

type Note struct {
	Id          uint64
	Title       string
	Description string
	Color       string
	Image       string
	IsArchive   bool
	IsTrash     bool
	Reminder    *time.Time
	OwnerId     uint64
	Labels      []uint64
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

type NewNote struct {
	Title       string
	Description string
	Color       string
	Image       string
	Reminder    *time.Time
	OwnerId     uint64
}

// UpdateNote holds a partial update, nil fields are left untouched. ClearReminder sets the reminder to NULL.
type UpdateNote struct {
	Title         *string
	Description   *string
	Color         *string
	Image         *string
	Reminder      *time.Time
	ClearReminder bool
}
