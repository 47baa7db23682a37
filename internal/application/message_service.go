package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// MessageService manages the conversation thread of a ticket.
type MessageService struct {
	UoWF   repository.Factory
	Logger *logrus.Logger
}

func NewMessageService(uowf repository.Factory, logger *logrus.Logger) *MessageService {
	return &MessageService{UoWF: uowf, Logger: logger}
}

func (s *MessageService) Get(ctx context.Context, id string) (MessageDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	m, err := uow.Messages().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.Get", err, logrus.Fields{"message_id": id})
		return MessageDto{}, err
	}
	if m == nil {
		return MessageDto{}, ErrMessageNotFound
	}
	return toMessageDto(m), nil
}

// GetByTicket lists the thread in creation order. includeInternal filters
// staff-only notes out for requester-facing views.
func (s *MessageService) GetByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]MessageDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.GetByTicket", err, logrus.Fields{"ticket_id": ticketID})
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	msgs, err := uow.Messages().GetByTicket(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.GetByTicket", err, logrus.Fields{"ticket_id": ticketID})
		return nil, err
	}
	out := make([]MessageDto, 0, len(msgs))
	for i := range msgs {
		if msgs[i].Internal && !includeInternal {
			continue
		}
		out = append(out, toMessageDto(&msgs[i]))
	}
	return out, nil
}

// Create appends a message to an existing ticket.
func (s *MessageService) Create(ctx context.Context, ticketID string, dto CreateMessageDto) (MessageDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.Create", err, logrus.Fields{"ticket_id": ticketID})
		return MessageDto{}, err
	}
	if t == nil {
		return MessageDto{}, ErrTicketNotFound
	}
	author, err := uow.Users().Get(ctx, dto.AuthorID)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.Create", err, logrus.Fields{"author_id": dto.AuthorID})
		return MessageDto{}, err
	}
	if author == nil {
		return MessageDto{}, ErrUserNotFound
	}

	m := &entity.Message{
		TicketID: ticketID,
		AuthorID: dto.AuthorID,
		Body:     dto.Body,
		Internal: dto.Internal,
	}
	uow.Messages().Add(m)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "MessageService.Create", err, logrus.Fields{"ticket_id": ticketID})
		return MessageDto{}, err
	}
	return toMessageDto(m), nil
}

// UpdateBody replaces the message text.
func (s *MessageService) UpdateBody(ctx context.Context, id, body string) (MessageDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	m, err := uow.Messages().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.UpdateBody", err, logrus.Fields{"message_id": id})
		return MessageDto{}, err
	}
	if m == nil {
		return MessageDto{}, ErrMessageNotFound
	}
	m.Body = body
	uow.Messages().Update(m)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "MessageService.UpdateBody", err, logrus.Fields{"message_id": id})
		return MessageDto{}, err
	}
	return toMessageDto(m), nil
}

func (s *MessageService) Remove(ctx context.Context, id string) error {
	uow := s.UoWF.NewUnitOfWork()
	m, err := uow.Messages().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "MessageService.Remove", err, logrus.Fields{"message_id": id})
		return err
	}
	if m == nil {
		return ErrMessageNotFound
	}
	uow.Messages().Remove(id)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "MessageService.Remove", err, logrus.Fields{"message_id": id})
		return err
	}
	return nil
}
