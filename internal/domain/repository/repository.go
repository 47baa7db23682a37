package repository

import (
	"context"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
)

// Repositories follow a staged-mutation contract: Add, Update and Remove only
// record intent on the owning unit of work; nothing touches the database
// until UnitOfWork.SaveChanges commits every staged operation atomically.
// Lookups return (nil, nil) on a miss rather than an error.

type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRole(ctx context.Context, role string) ([]entity.User, error)
	AnyByUserName(ctx context.Context, userName string) (bool, error)
	AnyByEmail(ctx context.Context, email string) (bool, error)
	Add(u *entity.User)
	Update(u *entity.User)
	Remove(id string)
}

type RoleRepository interface {
	Get(ctx context.Context, id string) (*entity.Role, error)
	GetAll(ctx context.Context) ([]entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Add(r *entity.Role)
}

type TicketRepository interface {
	Get(ctx context.Context, id string) (*entity.Ticket, error)
	GetAll(ctx context.Context) ([]entity.Ticket, error)
	GetByRequester(ctx context.Context, userID string) ([]entity.Ticket, error)
	GetByAssignee(ctx context.Context, userID string) ([]entity.Ticket, error)
	Add(t *entity.Ticket)
	Update(t *entity.Ticket)
	Remove(id string)
}

type MessageRepository interface {
	Get(ctx context.Context, id string) (*entity.Message, error)
	GetByTicket(ctx context.Context, ticketID string) ([]entity.Message, error)
	Add(m *entity.Message)
	Update(m *entity.Message)
	Remove(id string)
}

type AttachmentRepository interface {
	Get(ctx context.Context, id string) (*entity.Attachment, error)
	GetByTicket(ctx context.Context, ticketID string) ([]entity.Attachment, error)
	Add(a *entity.Attachment)
	Remove(id string)
}

// UnitOfWork groups the repositories sharing one transactional boundary.
// SaveChanges commits all staged mutations across every repository in a
// single transaction; on failure nothing is applied and the staged set is
// kept so the caller may retry or discard.
type UnitOfWork interface {
	Users() UserRepository
	Roles() RoleRepository
	Tickets() TicketRepository
	Messages() MessageRepository
	Attachments() AttachmentRepository
	SaveChanges(ctx context.Context) error
	Discard()
}

// Factory mints a fresh unit of work per request/operation so staged state
// is never shared across call contexts.
type Factory interface {
	NewUnitOfWork() UnitOfWork
}
