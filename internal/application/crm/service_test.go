package crm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/database/dbtest"
	"github.com/autocrm/autocrm/internal/infrastructure/repository"
	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

const testStorageBase = "https://backend.test/storage/v1/object/public"

type mockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string

	UploadFunc func(bucket, path string) error
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (m *mockStorage) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	if m.UploadFunc != nil {
		if err := m.UploadFunc(bucket, path); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+path] = data
	return nil
}

func (m *mockStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", testStorageBase, bucket, path)
}

func (m *mockStorage) Remove(ctx context.Context, bucket string, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.objects, bucket+"/"+p)
		m.removed = append(m.removed, p)
	}
	return nil
}

func (m *mockStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

type mockAuthProvider struct {
	SignUpFunc             func(email, password, redirectTo string) (*auth.Account, error)
	SignInWithPasswordFunc func(email, password string) (*auth.Session, error)
	SignOutFunc            func(accessToken string) error
	GetUserFunc            func(accessToken string) (*auth.Account, error)
	ResendFunc             func(email, redirectTo string) error
	RecoverFunc            func(email, redirectTo string) error
}

func (m *mockAuthProvider) SignUp(ctx context.Context, email, password, redirectTo string) (*auth.Account, error) {
	return m.SignUpFunc(email, password, redirectTo)
}

func (m *mockAuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	return m.SignInWithPasswordFunc(email, password)
}

func (m *mockAuthProvider) SignOut(ctx context.Context, accessToken string) error {
	if m.SignOutFunc == nil {
		return nil
	}
	return m.SignOutFunc(accessToken)
}

func (m *mockAuthProvider) GetUser(ctx context.Context, accessToken string) (*auth.Account, error) {
	return m.GetUserFunc(accessToken)
}

func (m *mockAuthProvider) ResendVerification(ctx context.Context, email, redirectTo string) error {
	return m.ResendFunc(email, redirectTo)
}

func (m *mockAuthProvider) RecoverPassword(ctx context.Context, email, redirectTo string) error {
	return m.RecoverFunc(email, redirectTo)
}

type testEnv struct {
	db      *gorm.DB
	svc     *Service
	storage *mockStorage
	auth    *mockAuthProvider
}

// newTestService wires the façade to sqlite-backed repositories.
func newTestService(t *testing.T, seed bool) *testEnv {
	t.Helper()
	db := dbtest.New(t, seed)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := logger.NewNopLogger()
	storage := newMockStorage()
	authProvider := &mockAuthProvider{}

	opts := DefaultOptions()
	opts.EmailRedirectURL = "https://crm.test/welcome"
	opts.VerificationInterval = time.Millisecond

	svc := NewService(Deps{
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
	}, opts)
	return &testEnv{db: db, svc: svc, storage: storage, auth: authProvider}
}

func createUser(t *testing.T, svc *Service, email string, role user.Role) *user.User {
	t.Helper()
	u, err := svc.UpsertUser(context.Background(), UserInput{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role.String(),
	})
	require.NoError(t, err)
	return u
}

func upload(name string, content string) Upload {
	return Upload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Body:        bytes.NewBufferString(content),
	}
}
