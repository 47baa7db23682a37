package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// TicketService handles ticket CRUD, assignment and status transitions, and
// mirrors tickets into Elasticsearch for search.
type TicketService struct {
	UoWF    repository.Factory
	ES      *elasticsearch.Client // nil disables indexing and search
	ESIndex string
	Logger  *logrus.Logger
}

func NewTicketService(uowf repository.Factory, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *TicketService {
	return &TicketService{UoWF: uowf, ES: es, ESIndex: esIndex, Logger: logger}
}

func (s *TicketService) Get(ctx context.Context, id string) (TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.Get", err, logrus.Fields{"ticket_id": id})
		return TicketDto{}, err
	}
	if t == nil {
		return TicketDto{}, ErrTicketNotFound
	}
	return toTicketDto(t), nil
}

func (s *TicketService) GetAll(ctx context.Context) ([]TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	tickets, err := uow.Tickets().GetAll(ctx)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.GetAll", err, nil)
		return nil, err
	}
	return toTicketDtos(tickets), nil
}

func (s *TicketService) GetByRequester(ctx context.Context, requesterID string) ([]TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	tickets, err := uow.Tickets().GetByRequester(ctx, requesterID)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.GetByRequester", err, logrus.Fields{"requester_id": requesterID})
		return nil, err
	}
	return toTicketDtos(tickets), nil
}

func (s *TicketService) GetByAssignee(ctx context.Context, assigneeID string) ([]TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	tickets, err := uow.Tickets().GetByAssignee(ctx, assigneeID)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.GetByAssignee", err, logrus.Fields{"assignee_id": assigneeID})
		return nil, err
	}
	return toTicketDtos(tickets), nil
}

// Create opens a ticket for the requester. New tickets start Open; priority
// defaults to Normal when the caller leaves it blank.
func (s *TicketService) Create(ctx context.Context, dto CreateTicketDto) (TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	requester, err := uow.Users().Get(ctx, dto.RequesterID)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.Create", err, logrus.Fields{"requester_id": dto.RequesterID})
		return TicketDto{}, err
	}
	if requester == nil {
		return TicketDto{}, ErrUserNotFound
	}

	priority := entity.TicketPriority(dto.Priority)
	if priority == "" {
		priority = entity.TicketPriorityNormal
	}
	t := &entity.Ticket{
		Subject:     dto.Subject,
		Description: dto.Description,
		Status:      entity.TicketStatusOpen,
		Priority:    priority,
		RequesterID: dto.RequesterID,
	}
	uow.Tickets().Add(t)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "TicketService.Create", err, logrus.Fields{"requester_id": dto.RequesterID})
		return TicketDto{}, err
	}

	_ = s.indexTicket(ctx, t)
	return toTicketDto(t), nil
}

// Update applies the provided fields; blanks leave the current value alone.
// Assigning a ticket that is still Open moves it to InProgress.
func (s *TicketService) Update(ctx context.Context, id string, dto UpdateTicketDto) (TicketDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.Update", err, logrus.Fields{"ticket_id": id})
		return TicketDto{}, err
	}
	if t == nil {
		return TicketDto{}, ErrTicketNotFound
	}

	if dto.Subject != "" {
		t.Subject = dto.Subject
	}
	if dto.Description != "" {
		t.Description = dto.Description
	}
	if dto.Priority != "" {
		t.Priority = entity.TicketPriority(dto.Priority)
	}
	if dto.AssigneeID != "" {
		assignee, err := uow.Users().Get(ctx, dto.AssigneeID)
		if err != nil {
			helpers.LogError(s.Logger, "TicketService.Update", err, logrus.Fields{"assignee_id": dto.AssigneeID})
			return TicketDto{}, err
		}
		if assignee == nil {
			return TicketDto{}, ErrUserNotFound
		}
		t.AssigneeID = optUUID(dto.AssigneeID)
		if t.Status == entity.TicketStatusOpen {
			t.Status = entity.TicketStatusInProgress
		}
	}
	if dto.Status != "" {
		t.Status = entity.TicketStatus(dto.Status)
	}

	uow.Tickets().Update(t)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "TicketService.Update", err, logrus.Fields{"ticket_id": id})
		return TicketDto{}, err
	}

	_ = s.indexTicket(ctx, t)
	return toTicketDto(t), nil
}

// Remove deletes the ticket and its search document.
func (s *TicketService) Remove(ctx context.Context, id string) error {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "TicketService.Remove", err, logrus.Fields{"ticket_id": id})
		return err
	}
	if t == nil {
		return ErrTicketNotFound
	}
	uow.Tickets().Remove(id)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "TicketService.Remove", err, logrus.Fields{"ticket_id": id})
		return err
	}

	s.deleteIndexed(ctx, id)
	return nil
}

func (s *TicketService) indexTicket(ctx context.Context, t *entity.Ticket) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           t.ID,
		"subject":      t.Subject,
		"description":  t.Description,
		"status":       string(t.Status),
		"priority":     string(t.Priority),
		"requester_id": t.RequesterID,
		"assignee_id":  uuidVal(t.AssigneeID),
		"created_at":   t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ticket_id", t.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("ticket_id", t.ID).Warn("es index response error")
	}
	return nil
}

func (s *TicketService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ticket_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match search on subject and description.
func (s *TicketService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"subject^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
