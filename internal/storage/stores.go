package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
)

// Entity stores adapt the generic repo to the named lookups the services
// use. IDs are assigned client-side when absent so staged rows can be
// referenced before SaveChanges runs.

type userStore struct {
	repo repo[entity.User]
}

func (s *userStore) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.get(ctx, id)
}

func (s *userStore) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.repo.getAll(ctx)
}

func (s *userStore) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	return s.repo.getFirst(ctx, where("user_name = ?", userName))
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.repo.getFirst(ctx, where("email = ?", email))
}

func (s *userStore) GetByRole(ctx context.Context, role string) ([]entity.User, error) {
	return s.repo.getAll(ctx, where("role = ?", role))
}

func (s *userStore) AnyByUserName(ctx context.Context, userName string) (bool, error) {
	return s.repo.any(ctx, where("user_name = ?", userName))
}

func (s *userStore) AnyByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.any(ctx, where("email = ?", email))
}

func (s *userStore) Add(u *entity.User) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.repo.add(u)
}

func (s *userStore) Update(u *entity.User) { s.repo.update(u) }
func (s *userStore) Remove(id string)      { s.repo.remove(id) }

type roleStore struct {
	repo repo[entity.Role]
}

func (s *roleStore) Get(ctx context.Context, id string) (*entity.Role, error) {
	return s.repo.get(ctx, id)
}

func (s *roleStore) GetAll(ctx context.Context) ([]entity.Role, error) {
	return s.repo.getAll(ctx)
}

func (s *roleStore) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return s.repo.getFirst(ctx, where("name = ?", name))
}

func (s *roleStore) Add(r *entity.Role) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.repo.add(r)
}

type ticketStore struct {
	repo repo[entity.Ticket]
}

func (s *ticketStore) Get(ctx context.Context, id string) (*entity.Ticket, error) {
	return s.repo.get(ctx, id)
}

func (s *ticketStore) GetAll(ctx context.Context) ([]entity.Ticket, error) {
	return s.repo.getAll(ctx)
}

func (s *ticketStore) GetByRequester(ctx context.Context, userID string) ([]entity.Ticket, error) {
	return s.repo.getAll(ctx, where("requester_id = ?", userID))
}

func (s *ticketStore) GetByAssignee(ctx context.Context, userID string) ([]entity.Ticket, error) {
	return s.repo.getAll(ctx, where("assignee_id = ?", userID))
}

func (s *ticketStore) Add(t *entity.Ticket) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.repo.add(t)
}

func (s *ticketStore) Update(t *entity.Ticket) { s.repo.update(t) }
func (s *ticketStore) Remove(id string)        { s.repo.remove(id) }

type messageStore struct {
	repo repo[entity.Message]
}

func (s *messageStore) Get(ctx context.Context, id string) (*entity.Message, error) {
	return s.repo.get(ctx, id)
}

func (s *messageStore) GetByTicket(ctx context.Context, ticketID string) ([]entity.Message, error) {
	return s.repo.getAll(ctx, where("ticket_id = ?", ticketID))
}

func (s *messageStore) Add(m *entity.Message) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.repo.add(m)
}

func (s *messageStore) Update(m *entity.Message) { s.repo.update(m) }
func (s *messageStore) Remove(id string)         { s.repo.remove(id) }

type attachmentStore struct {
	repo repo[entity.Attachment]
}

func (s *attachmentStore) Get(ctx context.Context, id string) (*entity.Attachment, error) {
	return s.repo.get(ctx, id)
}

func (s *attachmentStore) GetByTicket(ctx context.Context, ticketID string) ([]entity.Attachment, error) {
	return s.repo.getAll(ctx, where("ticket_id = ?", ticketID))
}

func (s *attachmentStore) Add(a *entity.Attachment) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.repo.add(a)
}

func (s *attachmentStore) Remove(id string) { s.repo.remove(id) }
