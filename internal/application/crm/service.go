// Package crm is the data-access façade the HTTP layer and CLI work through.
// Every remote failure comes back as an errors.AppError.
package crm

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

const (
	defaultVerificationInterval = 2 * time.Second
	defaultUserCacheTTL         = 10 * time.Minute
	defaultUserCacheEntries     = 1000
)

// AuthProvider is the backend authentication service.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password, redirectTo string) (*auth.Account, error)
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*auth.Account, error)
	ResendVerification(ctx context.Context, email, redirectTo string) error
	RecoverPassword(ctx context.Context, email, redirectTo string) error
}

// ObjectStorage is the backend file store.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error
	PublicURL(bucket, path string) string
	Remove(ctx context.Context, bucket string, paths ...string) error
}

// Pinger checks database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Tickets  ticket.Repository
	Messages ticket.MessageRepository
	Tags     ticket.TagRepository
	Files    ticket.FileRepository
	Users    user.Repository
	Queues   queue.Repository
	Auth     AuthProvider
	Storage  ObjectStorage
	Database Pinger
	Logger   logger.Interface
}

type Options struct {
	ProfileBucket        string
	FileBucket           string
	EmailRedirectURL     string
	VerificationInterval time.Duration
	UserCacheTTL         time.Duration
	UserCacheMaxEntries  int
}

func DefaultOptions() Options {
	return Options{
		ProfileBucket:        "auto_crm_profile_pictures",
		FileBucket:           "auto_crm_ticket_files",
		VerificationInterval: defaultVerificationInterval,
		UserCacheTTL:         defaultUserCacheTTL,
		UserCacheMaxEntries:  defaultUserCacheEntries,
	}
}

type Service struct {
	deps   Deps
	opts   Options
	users  *userCache
	logger logger.Interface
}

func NewService(deps Deps, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if opts.VerificationInterval <= 0 {
		opts.VerificationInterval = defaultVerificationInterval
	}
	return &Service{
		deps:   deps,
		opts:   opts,
		users:  newUserCache(opts.UserCacheMaxEntries, opts.UserCacheTTL),
		logger: deps.Logger.Named("crm"),
	}
}

// TicketInput carries the writable columns of a ticket. A zero ID inserts;
// zero creator or assignee ids mean the unassigned user.
type TicketInput struct {
	ID          uint
	Title       string
	Description string
	Status      string
	Priority    string
	Type        string
	CreatorID   uuid.UUID
	AssigneeID  uuid.UUID
	QueueID     *uint
}

type MessageInput struct {
	TicketID uint
	Text     string
	SenderID uuid.UUID
	// Type defaults to public
	Type string
}

type UserInput struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	FriendlyName string
	Role         string
}

type SignupInput struct {
	Email    string
	Password string
	// RedirectTo overrides the configured verification landing page
	RedirectTo string
}

// Upload is a file received from the client.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// TicketDetails is a ticket with every related record resolved.
type TicketDetails struct {
	Ticket   *ticket.Ticket
	Creator  *user.User
	Assignee *user.User
	Messages []MessageView
	Tags     []*ticket.Tag
	Files    []*ticket.File
}

// MessageView pairs a message with its resolved sender.
type MessageView struct {
	Message *ticket.Message
	Sender  *user.User
}
