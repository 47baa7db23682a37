package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// BlobStore writes attachment payloads to object storage and answers with a
// durable URL. Satisfied by helpers.GCSBucket.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// AttachmentService stores ticket attachments in object storage and persists
// their metadata. Only the public URL reaches the database; blobs stay in
// the bucket.
type AttachmentService struct {
	UoWF   repository.Factory
	Blobs  BlobStore // nil disables uploads
	Logger *logrus.Logger
}

func NewAttachmentService(uowf repository.Factory, blobs BlobStore, logger *logrus.Logger) *AttachmentService {
	return &AttachmentService{UoWF: uowf, Blobs: blobs, Logger: logger}
}

func (s *AttachmentService) Get(ctx context.Context, id string) (AttachmentDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	a, err := uow.Attachments().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Get", err, logrus.Fields{"attachment_id": id})
		return AttachmentDto{}, err
	}
	if a == nil {
		return AttachmentDto{}, ErrAttachmentMissing
	}
	return toAttachmentDto(a), nil
}

func (s *AttachmentService) GetByTicket(ctx context.Context, ticketID string) ([]AttachmentDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.GetByTicket", err, logrus.Fields{"ticket_id": ticketID})
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	atts, err := uow.Attachments().GetByTicket(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.GetByTicket", err, logrus.Fields{"ticket_id": ticketID})
		return nil, err
	}
	out := make([]AttachmentDto, 0, len(atts))
	for i := range atts {
		out = append(out, toAttachmentDto(&atts[i]))
	}
	return out, nil
}

// Upload streams the file into the blob store under tickets/<ticketID>/ and
// persists the attachment row pointing at the public URL. messageID and
// uploadedBy are optional; blanks are persisted as NULL.
func (s *AttachmentService) Upload(ctx context.Context, ticketID, messageID, uploadedBy, fileName, contentType string, size int64, r io.Reader) (AttachmentDto, error) {
	if s.Blobs == nil {
		return AttachmentDto{}, ErrUploadsDisabled
	}
	uow := s.UoWF.NewUnitOfWork()
	t, err := uow.Tickets().Get(ctx, ticketID)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Upload", err, logrus.Fields{"ticket_id": ticketID})
		return AttachmentDto{}, err
	}
	if t == nil {
		return AttachmentDto{}, ErrTicketNotFound
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(fileName))
	objectPath := filepath.ToSlash(filepath.Join("tickets", ticketID, id+ext))
	url, err := s.Blobs.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Upload", err, logrus.Fields{"ticket_id": ticketID, "file": fileName})
		return AttachmentDto{}, err
	}

	a := &entity.Attachment{
		ID:          id,
		TicketID:    ticketID,
		MessageID:   optUUID(messageID),
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		StorageURL:  url,
		UploadedBy:  optUUID(uploadedBy),
	}
	uow.Attachments().Add(a)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Upload", err, logrus.Fields{"ticket_id": ticketID})
		return AttachmentDto{}, err
	}
	return toAttachmentDto(a), nil
}

// Remove drops the metadata row. The blob is left in the bucket; lifecycle
// rules on the bucket reap orphans.
func (s *AttachmentService) Remove(ctx context.Context, id string) error {
	uow := s.UoWF.NewUnitOfWork()
	a, err := uow.Attachments().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Remove", err, logrus.Fields{"attachment_id": id})
		return err
	}
	if a == nil {
		return ErrAttachmentMissing
	}
	uow.Attachments().Remove(id)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "AttachmentService.Remove", err, logrus.Fields{"attachment_id": id})
		return err
	}
	return nil
}
