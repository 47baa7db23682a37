package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
)

// UnitOfWork implements repository.UnitOfWork on top of gorm. Reads go
// straight to the database; mutations are staged as closures and executed
// inside a single transaction when SaveChanges runs. A failed commit leaves
// the staged set intact so the caller can retry or Discard.
type UnitOfWork struct {
	db      *gorm.DB
	pending []func(tx *gorm.DB) error

	users       repository.UserRepository
	roles       repository.RoleRepository
	tickets     repository.TicketRepository
	messages    repository.MessageRepository
	attachments repository.AttachmentRepository
}

func newUnitOfWork(db *gorm.DB) *UnitOfWork {
	u := &UnitOfWork{db: db}
	u.users = &userStore{repo: newRepo[entity.User](u)}
	u.roles = &roleStore{repo: newRepo[entity.Role](u)}
	u.tickets = &ticketStore{repo: newRepo[entity.Ticket](u)}
	u.messages = &messageStore{repo: newRepo[entity.Message](u)}
	u.attachments = &attachmentStore{repo: newRepo[entity.Attachment](u)}
	return u
}

func (u *UnitOfWork) Users() repository.UserRepository             { return u.users }
func (u *UnitOfWork) Roles() repository.RoleRepository             { return u.roles }
func (u *UnitOfWork) Tickets() repository.TicketRepository         { return u.tickets }
func (u *UnitOfWork) Messages() repository.MessageRepository       { return u.messages }
func (u *UnitOfWork) Attachments() repository.AttachmentRepository { return u.attachments }

func (u *UnitOfWork) stage(op func(tx *gorm.DB) error) {
	u.pending = append(u.pending, op)
}

// SaveChanges commits every staged mutation atomically. All-or-nothing: any
// failing operation rolls back the whole batch.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if len(u.pending) == 0 {
		return nil
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range u.pending {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.pending = nil
	return nil
}

// Discard drops every staged mutation without touching the database.
func (u *UnitOfWork) Discard() {
	u.pending = nil
}

// Factory mints one UnitOfWork per request/operation.
type Factory struct {
	db *gorm.DB
}

func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) NewUnitOfWork() repository.UnitOfWork {
	return newUnitOfWork(f.db)
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
var _ repository.Factory = (*Factory)(nil)

// repo is the generic data-access core shared by every entity store: point
// lookups, filtered reads, existence checks, and staged mutations.
type repo[T any] struct {
	uow *UnitOfWork
}

func newRepo[T any](u *UnitOfWork) repo[T] {
	return repo[T]{uow: u}
}

type cond struct {
	query string
	args  []any
}

func where(query string, args ...any) cond {
	return cond{query: query, args: args}
}

func (r repo[T]) scoped(ctx context.Context, conds ...cond) *gorm.DB {
	tx := r.uow.db.WithContext(ctx).Model(new(T))
	for _, c := range conds {
		tx = tx.Where(c.query, c.args...)
	}
	return tx
}

// get returns the row with the given primary key, or (nil, nil) on a miss.
func (r repo[T]) get(ctx context.Context, id string) (*T, error) {
	var out T
	err := r.uow.db.WithContext(ctx).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r repo[T]) getAll(ctx context.Context, conds ...cond) ([]T, error) {
	var out []T
	if err := r.scoped(ctx, conds...).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// getFirst returns the first match in stored order, or (nil, nil).
func (r repo[T]) getFirst(ctx context.Context, conds ...cond) (*T, error) {
	var out T
	err := r.scoped(ctx, conds...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r repo[T]) any(ctx context.Context, conds ...cond) (bool, error) {
	var n int64
	if err := r.scoped(ctx, conds...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r repo[T]) add(e *T) {
	r.uow.stage(func(tx *gorm.DB) error {
		return tx.Create(e).Error
	})
}

func (r repo[T]) update(e *T) {
	r.uow.stage(func(tx *gorm.DB) error {
		return tx.Save(e).Error
	})
}

func (r repo[T]) remove(id string) {
	r.uow.stage(func(tx *gorm.DB) error {
		return tx.Delete(new(T), "id = ?", id).Error
	})
}
