package testutil

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/database/dbtest"
	"github.com/autocrm/autocrm/internal/infrastructure/permission"
	"github.com/autocrm/autocrm/internal/infrastructure/repository"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

// MemoryStorage keeps uploaded objects in a map keyed by bucket/path.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[bucket+"/"+path] = data
	return nil
}

func (m *MemoryStorage) PublicURL(bucket, path string) string {
	return "https://backend.test/storage/v1/object/public/" + bucket + "/" + path
}

func (m *MemoryStorage) Remove(ctx context.Context, bucket string, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.Objects, bucket+"/"+p)
	}
	return nil
}

func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

// CRM is a façade over a seeded sqlite database with an in-memory store and
// the default role policy.
type CRM struct {
	Service  *crm.Service
	Storage  *MemoryStorage
	Enforcer *permission.Enforcer
}

func NewCRM(t *testing.T, authProvider crm.AuthProvider) *CRM {
	t.Helper()
	db := dbtest.New(t, true)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := logger.NewNopLogger()
	storage := NewMemoryStorage()
	svc := crm.NewService(crm.Deps{
		Tickets:  repository.NewTicketRepository(db),
		Messages: repository.NewMessageRepository(db),
		Tags:     repository.NewTagRepository(db),
		Files:    repository.NewTicketFileRepository(db),
		Users:    repository.NewUserRepository(db, log),
		Queues:   repository.NewQueueRepository(db),
		Auth:     authProvider,
		Storage:  storage,
		Database: sqlDB,
		Logger:   log,
	}, crm.DefaultOptions())

	enforcer, err := permission.NewEnforcer(nil, log)
	require.NoError(t, err)

	return &CRM{Service: svc, Storage: storage, Enforcer: enforcer}
}

// User upserts a profile with the given role and returns its id.
func (f *CRM) User(t *testing.T, email string, role user.Role) uuid.UUID {
	t.Helper()
	u, err := f.Service.UpsertUser(context.Background(), crm.UserInput{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role.String(),
	})
	require.NoError(t, err)
	return u.ID()
}
