package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
)

// memStore backs the in-memory unit of work used by service tests. Mutations
// stage against the owning unit of work and only land on SaveChanges, same
// contract as the real storage layer.
type memStore struct {
	mu          sync.Mutex
	users       map[string]entity.User
	roles       map[string]entity.Role
	tickets     map[string]entity.Ticket
	messages    map[string]entity.Message
	attachments map[string]entity.Attachment

	saveErr error // forced SaveChanges failure
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]entity.User),
		roles:       make(map[string]entity.Role),
		tickets:     make(map[string]entity.Ticket),
		messages:    make(map[string]entity.Message),
		attachments: make(map[string]entity.Attachment),
	}
}

func (s *memStore) putUser(u entity.User) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
}

func (s *memStore) putRole(r entity.Role) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.roles[r.ID] = r
}

func (s *memStore) putTicket(t entity.Ticket) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tickets[t.ID] = t
}

type memFactory struct {
	store *memStore
}

func newMemFactory(store *memStore) *memFactory {
	return &memFactory{store: store}
}

func (f *memFactory) NewUnitOfWork() repository.UnitOfWork {
	return &memUoW{store: f.store}
}

type memUoW struct {
	store   *memStore
	pending []func(*memStore)
}

func (u *memUoW) stage(fn func(*memStore)) { u.pending = append(u.pending, fn) }

func (u *memUoW) Users() repository.UserRepository             { return &memUserRepo{u} }
func (u *memUoW) Roles() repository.RoleRepository             { return &memRoleRepo{u} }
func (u *memUoW) Tickets() repository.TicketRepository         { return &memTicketRepo{u} }
func (u *memUoW) Messages() repository.MessageRepository       { return &memMessageRepo{u} }
func (u *memUoW) Attachments() repository.AttachmentRepository { return &memAttachmentRepo{u} }

func (u *memUoW) SaveChanges(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.saveErr != nil {
		return u.store.saveErr
	}
	for _, fn := range u.pending {
		fn(u.store)
	}
	u.pending = nil
	return nil
}

func (u *memUoW) Discard() { u.pending = nil }

type memUserRepo struct{ uow *memUoW }

func (r *memUserRepo) Get(_ context.Context, id string) (*entity.User, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if u, ok := r.uow.store.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetAll(context.Context) ([]entity.User, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	out := make([]entity.User, 0, len(r.uow.store.users))
	for _, u := range r.uow.store.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	for _, u := range r.uow.store.users {
		if u.UserName == userName {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	for _, u := range r.uow.store.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByRole(_ context.Context, role string) ([]entity.User, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []entity.User
	for _, u := range r.uow.store.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) AnyByUserName(ctx context.Context, userName string) (bool, error) {
	u, err := r.GetByUserName(ctx, userName)
	return u != nil, err
}

func (r *memUserRepo) AnyByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *memUserRepo) Add(u *entity.User) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	r.uow.stage(func(s *memStore) { s.users[cp.ID] = cp })
}

func (r *memUserRepo) Update(u *entity.User) {
	cp := *u
	r.uow.stage(func(s *memStore) { s.users[cp.ID] = cp })
}

func (r *memUserRepo) Remove(id string) {
	r.uow.stage(func(s *memStore) { delete(s.users, id) })
}

type memRoleRepo struct{ uow *memUoW }

func (r *memRoleRepo) Get(_ context.Context, id string) (*entity.Role, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if role, ok := r.uow.store.roles[id]; ok {
		cp := role
		return &cp, nil
	}
	return nil, nil
}

func (r *memRoleRepo) GetAll(context.Context) ([]entity.Role, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	out := make([]entity.Role, 0, len(r.uow.store.roles))
	for _, role := range r.uow.store.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	for _, role := range r.uow.store.roles {
		if role.Name == name {
			cp := role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRoleRepo) Add(role *entity.Role) {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	cp := *role
	r.uow.stage(func(s *memStore) { s.roles[cp.ID] = cp })
}

type memTicketRepo struct{ uow *memUoW }

func (r *memTicketRepo) Get(_ context.Context, id string) (*entity.Ticket, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if t, ok := r.uow.store.tickets[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTicketRepo) GetAll(context.Context) ([]entity.Ticket, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	out := make([]entity.Ticket, 0, len(r.uow.store.tickets))
	for _, t := range r.uow.store.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTicketRepo) GetByRequester(_ context.Context, userID string) ([]entity.Ticket, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []entity.Ticket
	for _, t := range r.uow.store.tickets {
		if t.RequesterID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) GetByAssignee(_ context.Context, userID string) ([]entity.Ticket, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []entity.Ticket
	for _, t := range r.uow.store.tickets {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) Add(t *entity.Ticket) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	r.uow.stage(func(s *memStore) { s.tickets[cp.ID] = cp })
}

func (r *memTicketRepo) Update(t *entity.Ticket) {
	cp := *t
	r.uow.stage(func(s *memStore) { s.tickets[cp.ID] = cp })
}

func (r *memTicketRepo) Remove(id string) {
	r.uow.stage(func(s *memStore) { delete(s.tickets, id) })
}

type memMessageRepo struct{ uow *memUoW }

func (r *memMessageRepo) Get(_ context.Context, id string) (*entity.Message, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if m, ok := r.uow.store.messages[id]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (r *memMessageRepo) GetByTicket(_ context.Context, ticketID string) ([]entity.Message, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []entity.Message
	for _, m := range r.uow.store.messages {
		if m.TicketID == ticketID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) Add(m *entity.Message) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	cp := *m
	r.uow.stage(func(s *memStore) { s.messages[cp.ID] = cp })
}

func (r *memMessageRepo) Update(m *entity.Message) {
	cp := *m
	r.uow.stage(func(s *memStore) { s.messages[cp.ID] = cp })
}

func (r *memMessageRepo) Remove(id string) {
	r.uow.stage(func(s *memStore) { delete(s.messages, id) })
}

type memAttachmentRepo struct{ uow *memUoW }

func (r *memAttachmentRepo) Get(_ context.Context, id string) (*entity.Attachment, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if a, ok := r.uow.store.attachments[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAttachmentRepo) GetByTicket(_ context.Context, ticketID string) ([]entity.Attachment, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []entity.Attachment
	for _, a := range r.uow.store.attachments {
		if a.TicketID == ticketID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) Add(a *entity.Attachment) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	r.uow.stage(func(s *memStore) { s.attachments[cp.ID] = cp })
}

func (r *memAttachmentRepo) Remove(id string) {
	r.uow.stage(func(s *memStore) { delete(s.attachments, id) })
}

// capturePublisher records enqueued email jobs.
type capturePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}
