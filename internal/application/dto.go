package application

import (
	"strings"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
)

// Wire-facing DTOs. Lookup operations answer with zero-value DTOs when the
// record is absent; callers treat an empty DTO as "not found".

type UserDto struct {
	ID          string `json:"Id"`
	UserName    string `json:"UserName"`
	Email       string `json:"Email"`
	PhoneNumber string `json:"PhoneNumber"`
	FullName    string `json:"FullName"`
	Language    int    `json:"Language"`
	Role        string `json:"Role"`
}

type CreateUserDto struct {
	UserName    string `json:"UserName" binding:"required,min=3,max=100"`
	Email       string `json:"Email" binding:"required,email"`
	PhoneNumber string `json:"PhoneNumber" binding:"omitempty,phone"`
	FullName    string `json:"FullName" binding:"required"`
	Password    string `json:"Password" binding:"required,pwd"`
	Language    int    `json:"Language" binding:"omitempty,oneof=1 2"`
}

type ChangeLanguageDto struct {
	Language int `json:"Language" binding:"required,oneof=1 2"`
}

// ResetPasswordDto arrives as a form body; the three address components are
// recombined into username@domain.tld.
type ResetPasswordDto struct {
	UserName    string `form:"username" binding:"required"`
	Domain      string `form:"domain" binding:"required"`
	TLD         string `form:"tld" binding:"required,tld"`
	Token       string `form:"token" binding:"required"`
	NewPassword string `form:"newpassword" binding:"required,pwd"`
}

type RoleDto struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

type TicketDto struct {
	ID          string `json:"Id"`
	Subject     string `json:"Subject"`
	Description string `json:"Description"`
	Status      string `json:"Status"`
	Priority    string `json:"Priority"`
	RequesterID string `json:"RequesterId"`
	AssigneeID  string `json:"AssigneeId"`
}

type CreateTicketDto struct {
	Subject     string `json:"Subject" binding:"required,max=255"`
	Description string `json:"Description"`
	Priority    string `json:"Priority" binding:"omitempty,oneof=Low Normal High Urgent"`
	RequesterID string `json:"RequesterId" binding:"required,uuid"`
}

type UpdateTicketDto struct {
	Subject     string `json:"Subject" binding:"omitempty,max=255"`
	Description string `json:"Description"`
	Status      string `json:"Status" binding:"omitempty,oneof=Open InProgress Resolved Closed"`
	Priority    string `json:"Priority" binding:"omitempty,oneof=Low Normal High Urgent"`
	AssigneeID  string `json:"AssigneeId" binding:"omitempty,uuid"`
}

type MessageDto struct {
	ID       string `json:"Id"`
	TicketID string `json:"TicketId"`
	AuthorID string `json:"AuthorId"`
	Body     string `json:"Body"`
	Internal bool   `json:"Internal"`
}

type CreateMessageDto struct {
	AuthorID string `json:"AuthorId" binding:"required,uuid"`
	Body     string `json:"Body" binding:"required"`
	Internal bool   `json:"Internal"`
}

type AttachmentDto struct {
	ID          string `json:"Id"`
	TicketID    string `json:"TicketId"`
	MessageID   string `json:"MessageId"`
	FileName    string `json:"FileName"`
	ContentType string `json:"ContentType"`
	Size        int64  `json:"Size"`
	StorageURL  string `json:"StorageUrl"`
}

func toUserDto(u *entity.User) UserDto {
	if u == nil {
		return UserDto{}
	}
	return UserDto{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName,
		Language:    int(u.Language),
		Role:        u.Role,
	}
}

func toUserDtos(users []entity.User) []UserDto {
	out := make([]UserDto, 0, len(users))
	for i := range users {
		out = append(out, toUserDto(&users[i]))
	}
	return out
}

// optUUID maps an absent wire value to nil so optional uuid columns are
// written as NULL, never an empty uuid literal.
func optUUID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uuidVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toTicketDto(t *entity.Ticket) TicketDto {
	if t == nil {
		return TicketDto{}
	}
	return TicketDto{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		RequesterID: t.RequesterID,
		AssigneeID:  uuidVal(t.AssigneeID),
	}
}

func toTicketDtos(tickets []entity.Ticket) []TicketDto {
	out := make([]TicketDto, 0, len(tickets))
	for i := range tickets {
		out = append(out, toTicketDto(&tickets[i]))
	}
	return out
}

func toMessageDto(m *entity.Message) MessageDto {
	if m == nil {
		return MessageDto{}
	}
	return MessageDto{ID: m.ID, TicketID: m.TicketID, AuthorID: m.AuthorID, Body: m.Body, Internal: m.Internal}
}

func toAttachmentDto(a *entity.Attachment) AttachmentDto {
	if a == nil {
		return AttachmentDto{}
	}
	return AttachmentDto{
		ID:          a.ID,
		TicketID:    a.TicketID,
		MessageID:   uuidVal(a.MessageID),
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		StorageURL:  a.StorageURL,
	}
}

// ReconstructEmail derives the account email from the three recovery form
// fields: username + "@" + domain + "." + tld.
func ReconstructEmail(username, domain, tld string) string {
	return strings.TrimSpace(username) + "@" + strings.TrimSpace(domain) + "." + strings.TrimSpace(tld)
}
