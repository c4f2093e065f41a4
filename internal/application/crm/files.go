package crm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/shared/biztime"
	"github.com/autocrm/autocrm/internal/shared/constants"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

// UploadTicketFile stores the object under the ticket id then records it in
// ticket_files. If the insert fails the object stays in storage.
func (s *Service) UploadTicketFile(ctx context.Context, ticketID uint, up Upload) (*ticket.File, error) {
	if up.Body == nil {
		return nil, errors.NewValidationError("file is required")
	}
	if up.Size > constants.MaxUploadBytes {
		return nil, errors.NewValidationError("file too large",
			fmt.Sprintf("maximum upload size is %d bytes", constants.MaxUploadBytes))
	}

	t, err := s.deps.Tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, errors.NewBackendError("failed to get ticket", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found", strconv.FormatUint(uint64(ticketID), 10))
	}

	path := ownedPath(strconv.FormatUint(uint64(ticketID), 10), objectName(up.FileName, biztime.NowUTC()))
	if err := s.deps.Storage.Upload(ctx, s.opts.FileBucket, path, up.ContentType, up.Body); err != nil {
		return nil, errors.NewBackendError("failed to upload file", err)
	}

	f, err := ticket.NewFile(ticketID, up.FileName, up.ContentType, s.deps.Storage.PublicURL(s.opts.FileBucket, path))
	if err != nil {
		return nil, errors.NewValidationError("invalid file", err.Error())
	}
	if err := s.deps.Files.Create(ctx, f); err != nil {
		return nil, errors.NewBackendError(fmt.Sprintf("failed to record uploaded file %s", path), err)
	}
	s.logger.Infow("ticket file uploaded", "ticket_id", ticketID, "file_id", f.ID(), "path", path)
	return f, nil
}

func (s *Service) GetTicketFiles(ctx context.Context, ticketID uint) ([]*ticket.File, error) {
	files, err := s.deps.Files.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, errors.NewBackendError("failed to list ticket files", err)
	}
	return files, nil
}

// DeleteTicketFile removes the object then the row. A failed row delete
// leaves a record pointing at a missing object.
func (s *Service) DeleteTicketFile(ctx context.Context, fileID uint) error {
	f, err := s.deps.Files.Get(ctx, fileID)
	if err != nil {
		return errors.NewBackendError("failed to get file", err)
	}
	if f == nil {
		return errors.NewNotFoundError("file not found", strconv.FormatUint(uint64(fileID), 10))
	}

	path, err := f.StoragePath(s.opts.FileBucket)
	if err != nil {
		return errors.NewInternalError("cannot locate stored file", err.Error())
	}
	if err := s.deps.Storage.Remove(ctx, s.opts.FileBucket, path); err != nil {
		return errors.NewBackendError("failed to remove stored file", err)
	}
	if err := s.deps.Files.Delete(ctx, fileID); err != nil {
		return errors.NewBackendError(fmt.Sprintf("failed to delete file record after removing %s", path), err)
	}
	s.logger.Infow("ticket file deleted", "file_id", fileID, "path", path)
	return nil
}

// GetTicketFile returns (nil, nil) when the file does not exist.
func (s *Service) GetTicketFile(ctx context.Context, fileID uint) (*ticket.File, error) {
	f, err := s.deps.Files.Get(ctx, fileID)
	if err != nil {
		return nil, errors.NewBackendError("failed to get file", err)
	}
	return f, nil
}
