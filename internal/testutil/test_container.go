//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

var (
	sharedContainer    *MongoDBContainer
	sharedContainerErr error
	sharedOnce         sync.Once
	sharedMu           sync.RWMutex

	dbSeq atomic.Int64
)

// maxDBNameLen leaves room for the uniqueness suffix below MongoDB's 63 byte limit.
const maxDBNameLen = 48

// GetSharedMongoDB returns the MongoDB instance shared by every test of a
// package, starting it on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		sharedMu.Lock()
		defer sharedMu.Unlock()
		sharedContainer, sharedContainerErr = SetupMongoDB(ctx)
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return sharedContainer, sharedContainerErr
}

// CleanupSharedMongoDB stops the shared instance.
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer == nil {
		return nil
	}
	err := sharedContainer.Cleanup(ctx)
	sharedContainer = nil
	return err
}

// SetupTestMainWithMongoDB runs m against a shared MongoDB instance:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "integration tests need MongoDB:", err)
		return 1
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: shared MongoDB cleanup failed:", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared instance. It panics
// when GetSharedMongoDB has not succeeded.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if sharedContainer == nil {
		panic("shared MongoDB not initialized, call GetSharedMongoDB first")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
// Characters MongoDB rejects in database names become underscores.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		if r > 0x7e {
			return '_'
		}
		return r
	}, testName)

	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return fmt.Sprintf("%s_%d_%d", name, os.Getpid()%10000, dbSeq.Add(1))
}
