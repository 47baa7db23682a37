package entity

import "time"

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority orders tickets in support queues.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityNormal TicketPriority = "Normal"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

// Ticket is a support request opened by a user and worked by a technician.
// AssigneeID is a pointer: a nil value means unassigned and must reach the
// database as NULL, never as an empty uuid literal.
type Ticket struct {
	ID          string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Subject     string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	Status      TicketStatus   `gorm:"size:20;default:'Open';index"`
	Priority    TicketPriority `gorm:"size:10;default:'Normal'"`
	RequesterID string         `gorm:"type:uuid;not null;index"`
	AssigneeID  *string        `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Message is a single conversation entry on a ticket.
type Message struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID  string `gorm:"type:uuid;not null;index"`
	AuthorID  string `gorm:"type:uuid;not null"`
	Body      string `gorm:"type:text;not null"`
	Internal  bool   `gorm:"default:false"` // staff-only note, hidden from the requester
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attachment is a file uploaded against a ticket (optionally tied to one
// message). The blob itself lives in object storage; only metadata and the
// public URL are persisted here. The optional uuid references are pointers
// so absent values land as NULL.
type Attachment struct {
	ID          string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID    string  `gorm:"type:uuid;not null;index"`
	MessageID   *string `gorm:"type:uuid;index"`
	FileName    string  `gorm:"size:255;not null"`
	ContentType string  `gorm:"size:100"`
	Size        int64
	StorageURL  string  `gorm:"size:512"`
	UploadedBy  *string `gorm:"type:uuid"`
	CreatedAt   time.Time
}
