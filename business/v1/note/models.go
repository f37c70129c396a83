package note

import (
	"encoding/json"
	"time"
)

// Note is the shape returned to callers and kept in the cached snapshots
type Note struct {
	Id          uint64     `json:"id" example:"1"`
	Title       string     `json:"title" example:"my note"`
	Description string     `json:"description,omitempty" example:"my note text"`
	Color       string     `json:"color,omitempty" example:"#fff475"`
	Image       string     `json:"image,omitempty" example:"images/1.png"`
	IsArchive   bool       `json:"isArchive" example:"false"`
	IsTrash     bool       `json:"isTrash" example:"false"`
	Reminder    *time.Time `json:"reminder,omitempty" example:"2006-01-02T15:04:05Z"`
	OwnerId     uint64     `json:"ownerId" example:"1"`
	Labels      []uint64   `json:"labels,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt" example:"2006-01-02T15:04:05Z"`
	CreatedAt   time.Time  `json:"createdAt" example:"2006-01-02T15:04:05Z"`
}

type NewNote struct {
	Title       string     `json:"title" validate:"required,max=500"`
	Description string     `json:"description"`
	Color       string     `json:"color" validate:"max=255"`
	Image       string     `json:"image" validate:"max=500"`
	Reminder    *time.Time `json:"reminder"`
}

// UpdateNote is a partial update, absent fields keep their stored value. A null reminder clears it.
type UpdateNote struct {
	Title       *string      `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string      `json:"description"`
	Color       *string      `json:"color" validate:"omitempty,max=255"`
	Image       *string      `json:"image" validate:"omitempty,max=500"`
	Reminder    OptionalTime `json:"reminder" swaggertype:"string" format:"date-time"`
}

// OptionalTime tells an absent time from an explicit null. Set is true once the field was present.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Time = &t
	return nil
}

// cleared reports an explicit null
func (o OptionalTime) cleared() bool {
	return o.Set && o.Time == nil
}

// ShareResult tells which of the requested users became collaborators
type ShareResult struct {
	Added   []uint64 `json:"added"`
	Invalid []uint64 `json:"invalid,omitempty"`
}

// Partial reports that some of the requested ids did not match any user
func (r ShareResult) Partial() bool {
	return len(r.Invalid) > 0
}
