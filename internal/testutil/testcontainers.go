//go:build integration

// Package testutil starts the MongoDB instance used by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const defaultMongoImage = "mongo:7.0"

// MongoDBContainer is a running MongoDB test instance. Container is nil when
// the instance was provided through LOADSIM_TEST_MONGODB_URI.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container. LOADSIM_TEST_MONGODB_URI points the
// tests at an existing server instead, and LOADSIM_TEST_MONGODB_IMAGE
// overrides the image.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	if uri := os.Getenv("LOADSIM_TEST_MONGODB_URI"); uri != "" {
		return &MongoDBContainer{URI: uri}, nil
	}

	image := os.Getenv("LOADSIM_TEST_MONGODB_IMAGE")
	if image == "" {
		image = defaultMongoImage
	}

	mongoContainer, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", image, err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}

	return &MongoDBContainer{
		Container: mongoContainer,
		URI:       uri,
	}, nil
}

// Cleanup terminates the container. External servers are left running.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}
