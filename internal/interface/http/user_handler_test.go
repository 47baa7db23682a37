package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/helpdesk-api/config"
	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/response"
)

// userFixture backs handler tests with a minimal unit of work holding only
// user rows. Mutations apply immediately; SaveChanges is a no-op.
type userFixture struct {
	users map[string]entity.User
}

func newUserFixture(users ...entity.User) *userFixture {
	f := &userFixture{users: make(map[string]entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *userFixture) NewUnitOfWork() repository.UnitOfWork { return &fixtureUoW{f} }

type fixtureUoW struct{ f *userFixture }

func (u *fixtureUoW) Users() repository.UserRepository             { return &fixtureUserRepo{u.f} }
func (u *fixtureUoW) Roles() repository.RoleRepository             { return nil }
func (u *fixtureUoW) Tickets() repository.TicketRepository         { return nil }
func (u *fixtureUoW) Messages() repository.MessageRepository       { return nil }
func (u *fixtureUoW) Attachments() repository.AttachmentRepository { return nil }
func (u *fixtureUoW) SaveChanges(context.Context) error            { return nil }
func (u *fixtureUoW) Discard()                                     {}

type fixtureUserRepo struct{ f *userFixture }

func (r *fixtureUserRepo) Get(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.f.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *fixtureUserRepo) GetAll(context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.f.users))
	for _, u := range r.f.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fixtureUserRepo) GetByUserName(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (r *fixtureUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (r *fixtureUserRepo) GetByRole(context.Context, string) ([]entity.User, error) {
	return nil, nil
}

func (r *fixtureUserRepo) AnyByUserName(context.Context, string) (bool, error) { return false, nil }
func (r *fixtureUserRepo) AnyByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *fixtureUserRepo) Add(u *entity.User)                                  { r.f.users[u.ID] = *u }
func (r *fixtureUserRepo) Update(u *entity.User)                               { r.f.users[u.ID] = *u }
func (r *fixtureUserRepo) Remove(id string)                                    { delete(r.f.users, id) }

func removeRouter(f *userFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := application.NewUserService(f, nil, nil, nil, &config.Config{})
	h := NewUserHandler(users, nil, nil)
	r := gin.New()
	r.DELETE("/users/remove/:id", h.Remove)
	return r
}

func TestRemoveMissingUserAnswers200WithErrorEnvelope(t *testing.T) {
	r := removeRouter(newUserFixture())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/remove/ghost-id", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope[bool]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeUserNotFound, env.Error.Id)
	assert.Contains(t, env.Error.Description, "ghost-id")
	assert.False(t, env.ReturnData)
}

func TestRemoveExistingUserAnswers200True(t *testing.T) {
	f := newUserFixture(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	r := removeRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/remove/u1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope[bool]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.True(t, env.ReturnData)
	_, exists := f.users["u1"]
	assert.False(t, exists)
}
