package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barboard/internal/backend"
	"barboard/internal/config"
	appdb "barboard/internal/db"
	"barboard/internal/storage"
)

func withTestSessionManager(t *testing.T) (*scs.SessionManager, func()) {
	t.Helper()
	original := sessionManager
	sm := scs.New()
	sessionManager = sm
	return sm, func() {
		sessionManager = original
	}
}

func withTestBackend(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	original := client
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := appdb.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	client = backend.NewDB(db)
	return db, func() {
		client = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func withTestStorage(t *testing.T) (*storage.FileStore, func()) {
	t.Helper()
	original := fileStore
	store, err := storage.New(config.StorageConfig{
		Root:          t.TempDir(),
		PublicBaseURL: "http://files.test",
	})
	if err != nil {
		t.Fatalf("failed to open test storage: %v", err)
	}
	fileStore = store
	return store, func() {
		fileStore = original
	}
}

// failingStorage refuses every operation, standing in for an unreachable
// object store.
type failingStorage struct{}

func (failingStorage) Upload(context.Context, string, string, io.Reader, bool) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingStorage) Remove(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func (failingStorage) PublicURL(bucket, path string) string {
	return ""
}

func withFailingStorage(t *testing.T) func() {
	t.Helper()
	original := fileStore
	fileStore = failingStorage{}
	return func() {
		fileStore = original
	}
}

func authenticateRequest(t *testing.T, sm *scs.SessionManager, req *http.Request, adminID uint) *http.Request {
	t.Helper()
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	req = req.WithContext(ctx)
	sm.Put(req.Context(), sessionAdminIDKey, int(adminID))
	sm.Put(req.Context(), sessionAuthenticatedKey, true)
	return req
}
