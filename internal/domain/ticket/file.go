package ticket

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// File is an attachment uploaded to object storage and linked to a ticket.
type File struct {
	id        uint
	ticketID  uint
	fileName  string
	mimeType  string
	fileURL   string
	createdAt time.Time
}

func NewFile(ticketID uint, fileName, mimeType, fileURL string) (*File, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if fileURL == "" {
		return nil, fmt.Errorf("file URL is required")
	}
	return &File{
		ticketID: ticketID,
		fileName: fileName,
		mimeType: mimeType,
		fileURL:  fileURL,
	}, nil
}

func ReconstructFile(id, ticketID uint, fileName, mimeType, fileURL string, createdAt time.Time) (*File, error) {
	if id == 0 {
		return nil, fmt.Errorf("file ID cannot be zero")
	}
	return &File{
		id:        id,
		ticketID:  ticketID,
		fileName:  fileName,
		mimeType:  mimeType,
		fileURL:   fileURL,
		createdAt: createdAt,
	}, nil
}

func (f *File) ID() uint {
	return f.id
}

func (f *File) TicketID() uint {
	return f.ticketID
}

func (f *File) FileName() string {
	return f.fileName
}

func (f *File) MimeType() string {
	return f.mimeType
}

func (f *File) URL() string {
	return f.fileURL
}

func (f *File) CreatedAt() time.Time {
	return f.createdAt
}

func (f *File) SetID(id uint) error {
	if f.id != 0 && f.id != id {
		return fmt.Errorf("file ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("file ID cannot be zero")
	}
	f.id = id
	return nil
}

func (f *File) SetCreatedAt(createdAt time.Time) {
	f.createdAt = createdAt
}

// StoragePath recovers the object path inside bucket from the public URL.
func (f *File) StoragePath(bucket string) (string, error) {
	u, err := url.Parse(f.fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file URL: %w", err)
	}
	marker := "/object/public/" + bucket + "/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", fmt.Errorf("file URL is not in bucket %s", bucket)
	}
	path := u.Path[idx+len(marker):]
	if path == "" {
		return "", fmt.Errorf("file URL has no object path")
	}
	return path, nil
}
