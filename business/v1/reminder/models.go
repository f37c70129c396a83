package reminder

import "time"

// TypeReminder is the Event.Type of a reminder published on the topic
const TypeReminder = "reminder"

// Event is the envelope of every message on the reminders topic
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Reminder is the Event.Data of a TypeReminder event
type Reminder struct {
	NoteId  uint64    `json:"noteId"`
	OwnerId uint64    `json:"ownerId"`
	Title   string    `json:"title"`
	At      time.Time `json:"at"`
}
