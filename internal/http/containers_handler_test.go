package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/mocks"
	"github.com/hyperkh65/loadsim/internal/service"
)

// auditRecorder collects audit entries written through the logging service.
type auditRecorder struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (r *auditRecorder) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *auditRecorder) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	for _, e := range entries {
		_ = r.CreateLog(ctx, e)
	}
	return nil
}

func (r *auditRecorder) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (r *auditRecorder) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (r *auditRecorder) action(actionType string) func() *model.LogEntry {
	return func() *model.LogEntry {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, e := range r.entries {
			if e.ActionType == actionType {
				return e
			}
		}
		return nil
	}
}

var _ service.LoggingService = (*auditRecorder)(nil)

func TestListContainers(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, http.MethodGet, "/api/containers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ContainerListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, config.DefaultContainers, envelope.Data.Containers)
}

func TestGetContainer(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		code           string
		expectedStatus int
		expectedLabel  string
	}{
		{name: "preset", code: "40hc", expectedStatus: http.StatusOK, expectedLabel: "40ft High Cube"},
		{name: "case insensitive", code: "20FT", expectedStatus: http.StatusOK, expectedLabel: "20ft Standard"},
		{name: "unknown", code: "53ft", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, "/api/containers/"+tt.code, "")
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, `Unknown container "`+tt.code+`"`, decodeError(t, w).Message)
				return
			}
			var envelope struct {
				Data model.Container `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			assert.Equal(t, tt.expectedLabel, envelope.Data.Label)
		})
	}
}

func TestListContainers_CatalogError(t *testing.T) {
	catalog := &mocks.MockContainerCatalog{}
	catalog.On("List", mock.Anything).Return(nil, errors.New("boom"))

	router := NewRouter(nil, NewContainersHandler(catalog, nil), nil, testRouterConfig())
	w := doJSON(router, http.MethodGet, "/api/containers", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	catalog.AssertExpectations(t)
}

func TestPutContainer(t *testing.T) {
	reefer := model.Container{Code: "20rf", Label: "20ft Reefer", Inner: model.Dimension{Length: 5444, Width: 2268, Height: 2276}}
	stored := &model.ContainerRecord{Container: reefer, Version: 2, UpdatedBy: "anonymous"}

	tests := []struct {
		name           string
		code           string
		body           string
		setup          func(*mocks.MockContainerCatalog, *mockSimulator)
		expectedStatus int
	}{
		{
			name: "stores container and drops cached simulations",
			code: "20RF",
			body: `{"label":" 20ft Reefer ","length":5444,"width":2268,"height":2276}`,
			setup: func(catalog *mocks.MockContainerCatalog, sim *mockSimulator) {
				catalog.On("Upsert", mock.Anything, reefer, "anonymous").Return(stored, nil)
				sim.On("InvalidateCache").Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing dimension",
			code:           "20rf",
			body:           `{"label":"x","length":5444,"width":2268}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative dimension",
			code:           "20rf",
			body:           `{"label":"x","length":5444,"width":-1,"height":2276}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "database not configured",
			code: "20rf",
			body: `{"label":"20ft Reefer","length":5444,"width":2268,"height":2276}`,
			setup: func(catalog *mocks.MockContainerCatalog, _ *mockSimulator) {
				catalog.On("Upsert", mock.Anything, reefer, "anonymous").Return(nil, service.ErrRepositoryNotConfigured)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "circuit open",
			code: "20rf",
			body: `{"label":"20ft Reefer","length":5444,"width":2268,"height":2276}`,
			setup: func(catalog *mocks.MockContainerCatalog, _ *mockSimulator) {
				catalog.On("Upsert", mock.Anything, reefer, "anonymous").Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &mocks.MockContainerCatalog{}
			sim := &mockSimulator{}
			if tt.setup != nil {
				tt.setup(catalog, sim)
			}

			router := NewRouter(nil, NewContainersHandler(catalog, sim), nil, testRouterConfig())
			w := doJSON(router, http.MethodPut, "/api/containers/"+tt.code, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				var envelope struct {
					Data model.ContainerRecord `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
				assert.Equal(t, 2, envelope.Data.Version)
				assert.Equal(t, reefer, envelope.Data.Container)
			} else {
				assert.Equal(t, dto.ErrCodeFromStatus(tt.expectedStatus), decodeError(t, w).Error)
			}
			catalog.AssertExpectations(t)
			sim.AssertExpectations(t)
		})
	}
}

func TestPutContainer_AuditLog(t *testing.T) {
	reefer := model.Container{Code: "20rf", Label: "20ft Reefer", Inner: model.Dimension{Length: 5444, Width: 2268, Height: 2276}}

	catalog := &mocks.MockContainerCatalog{}
	catalog.On("Upsert", mock.Anything, reefer, "alph****").
		Return(&model.ContainerRecord{Container: reefer, Version: 1}, nil)

	audit := &auditRecorder{}
	cfg := testRouterConfig()
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"alpha-key": true}
	cfg.LoggingService = audit

	router := NewRouter(nil, NewContainersHandler(catalog, nil), nil, cfg)
	body := `{"label":"20ft Reefer","length":5444,"width":2268,"height":2276}`

	w := doJSON(router, http.MethodPut, "/api/containers/20rf", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPut, "/api/containers/20rf", body, "X-API-Key", "alpha-key")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	find := audit.action("container_upsert")
	require.Eventually(t, func() bool { return find() != nil }, time.Second, 10*time.Millisecond)

	entry := find()
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "alph****", entry.Actor)
	assert.Equal(t, "20rf", entry.Fields["code"])
	assert.Equal(t, 1, entry.Fields["version"])
	catalog.AssertExpectations(t)
}
