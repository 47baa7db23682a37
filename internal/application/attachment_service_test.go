package application

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
)

// fakeBlobStore records uploads and hands back a deterministic URL.
type fakeBlobStore struct {
	paths []string
	err   error
}

func (f *fakeBlobStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, r)
	f.paths = append(f.paths, objectPath)
	return "https://blobs.test/" + objectPath, nil
}

func TestAttachmentUploadPersistsNullOptionalRefs(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "x", RequesterID: "u1"})
	blobs := &fakeBlobStore{}
	svc := NewAttachmentService(newMemFactory(store), blobs, nil)

	dto, err := svc.Upload(context.Background(), "t1", "", "", "screenshot.png", "image/png", 42, strings.NewReader("bytes"))

	require.NoError(t, err)
	require.Len(t, blobs.paths, 1)
	assert.True(t, strings.HasPrefix(blobs.paths[0], "tickets/t1/"))
	assert.True(t, strings.HasSuffix(blobs.paths[0], ".png"))

	// No message or uploader given: the uuid references stay nil so the
	// columns land as NULL.
	stored := store.attachments[dto.ID]
	assert.Nil(t, stored.MessageID)
	assert.Nil(t, stored.UploadedBy)
	assert.Empty(t, dto.MessageID)
	assert.Equal(t, "https://blobs.test/"+blobs.paths[0], stored.StorageURL)
}

func TestAttachmentUploadKeepsMessageRef(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "x", RequesterID: "u1"})
	svc := NewAttachmentService(newMemFactory(store), &fakeBlobStore{}, nil)

	dto, err := svc.Upload(context.Background(), "t1", "m1", "u1", "log.txt", "text/plain", 7, strings.NewReader("log"))

	require.NoError(t, err)
	stored := store.attachments[dto.ID]
	require.NotNil(t, stored.MessageID)
	assert.Equal(t, "m1", *stored.MessageID)
	require.NotNil(t, stored.UploadedBy)
	assert.Equal(t, "u1", *stored.UploadedBy)
	assert.Equal(t, "m1", dto.MessageID)
}

func TestAttachmentUploadRequiresTicketAndBlobStore(t *testing.T) {
	store := newMemStore()
	svc := NewAttachmentService(newMemFactory(store), &fakeBlobStore{}, nil)

	_, err := svc.Upload(context.Background(), "ghost", "", "", "f.txt", "text/plain", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTicketNotFound)

	disabled := NewAttachmentService(newMemFactory(store), nil, nil)
	_, err = disabled.Upload(context.Background(), "ghost", "", "", "f.txt", "text/plain", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestAttachmentRemove(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "x", RequesterID: "u1"})
	svc := NewAttachmentService(newMemFactory(store), &fakeBlobStore{}, nil)
	ctx := context.Background()

	dto, err := svc.Upload(ctx, "t1", "", "", "f.txt", "text/plain", 1, strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, dto.ID))
	assert.ErrorIs(t, svc.Remove(ctx, dto.ID), ErrAttachmentMissing)
}
