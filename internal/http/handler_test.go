package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
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

func init() {
	gin.SetMode(gin.TestMode)
}

const chairBody = `{"container":"20ft","items":[{"name":"Chair","length":600,"width":400,"height":300,"per_carton":12,"order_qty":120}]}`

func testRouterConfig() RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return cfg
}

func setupRouter(opts ...HandlerOption) *gin.Engine {
	simulator := service.NewSimulatorService()
	catalog := service.NewContainerCatalog(config.DefaultContainers, nil)
	opts = append([]HandlerOption{WithDefaultContainer("20ft")}, opts...)
	return NewRouter(
		NewSimulationHandler(simulator, catalog, opts...),
		NewContainersHandler(catalog, simulator),
		NewHealthHandler(),
		testRouterConfig(),
	)
}

func doJSON(router *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeSimulation(t *testing.T, w *httptest.ResponseRecorder) dto.SimulationResponse {
	t.Helper()
	var envelope struct {
		Data      dto.SimulationResponse `json:"data"`
		RequestID string                 `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.RequestID)
	return envelope.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSimulate(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		body           string
		headers        []string
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "catalog container",
			body:           chairBody,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				assert.NotEmpty(t, sim.ID)
				assert.Equal(t, "20ft", sim.Container.Code)
				assert.Equal(t, model.NoRotation, sim.RotationMode)
				assert.Equal(t, 10, sim.PlacedCount)
				assert.Zero(t, sim.OverflowCount)
				assert.Len(t, sim.Placements, 10)
				assert.Empty(t, sim.Warnings)
				require.Len(t, sim.Report.Products, 1)
				assert.Equal(t, 120, sim.Report.Products[0].UnitsShipped)
			},
		},
		{
			name:           "default container",
			body:           `{"items":[{"length":600,"width":400,"height":300,"cartons":2}]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				assert.Equal(t, "20ft", sim.Container.Code)
				assert.Equal(t, 2, sim.PlacedCount)
				assert.Equal(t, "Product 1", sim.Placements[0].Product)
			},
		},
		{
			name:           "custom dimensions",
			body:           `{"container_dimensions":{"length":1000,"width":1000,"height":1000},"items":[{"name":"Cube","length":500,"width":500,"height":500,"cartons":9}]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				assert.Equal(t, model.CustomContainerCode, sim.Container.Code)
				assert.Equal(t, 8, sim.PlacedCount)
				assert.Equal(t, 1, sim.OverflowCount)
				require.Len(t, sim.Warnings, 1)
				assert.Equal(t, "Cube: 1 carton(s) do not fit, the container is full", sim.Warnings[0])
				assert.InDelta(t, 100, sim.Report.UtilizationPercent, 1e-9)
			},
		},
		{
			name:           "placements omitted on request",
			body:           `{"container":"20FT","include_placements":false,"items":[{"length":600,"width":400,"height":300,"cartons":3}]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				assert.Equal(t, 3, sim.PlacedCount)
				assert.Nil(t, sim.Placements)
			},
		},
		{
			name:           "oversized carton is overflow not an error",
			body:           `{"container":"20ft","rotation_mode":"global_best","items":[{"name":"Pole","length":7000,"width":100,"height":100,"cartons":2}]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				assert.Equal(t, model.GlobalBestOrientation, sim.RotationMode)
				assert.Zero(t, sim.PlacedCount)
				require.Len(t, sim.Overflow, 1)
				assert.Equal(t, model.OverflowOversized, sim.Overflow[0].Reason)
				require.Len(t, sim.Warnings, 1)
				assert.Contains(t, sim.Warnings[0], "larger than the container")
			},
		},
		{
			name:           "korean warnings",
			body:           `{"container":"20ft","items":[{"name":"Pole","length":7000,"width":100,"height":100,"cartons":1}]}`,
			headers:        []string{"Accept-Language", "ko-KR,ko;q=0.9"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				sim := decodeSimulation(t, w)
				require.Len(t, sim.Warnings, 1)
				assert.True(t, strings.HasPrefix(sim.Warnings[0], "Pole"))
				assert.NotContains(t, sim.Warnings[0], "larger than the container")
			},
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no items",
			body:           `{"container":"20ft","items":[]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
				assert.Contains(t, resp.Details, "items")
			},
		},
		{
			name:           "unknown rotation mode",
			body:           `{"container":"20ft","rotation_mode":"spin","items":[{"length":1,"width":1,"height":1,"cartons":1}]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, decodeError(t, w).Details, "rotation_mode")
			},
		},
		{
			name:           "non-positive carton dimension",
			body:           `{"container":"20ft","items":[{"name":"Flat","length":600,"width":0,"height":300,"cartons":1}]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, "Product 1: carton length, width and height must be positive", resp.Message)
				assert.Contains(t, resp.Details, "items[0].carton")
			},
		},
		{
			name:           "duplicate product names",
			body:           `{"container":"20ft","items":[{"name":"Chair","length":1,"width":1,"height":1,"cartons":1},{"name":"Chair","length":2,"width":2,"height":2,"cartons":1}]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, "Product 2: the name is already used by another product", resp.Message)
				assert.Contains(t, resp.Details, "items[1].name")
			},
		},
		{
			name:           "unknown container",
			body:           `{"container":"99ft","items":[{"length":1,"width":1,"height":1,"cartons":1}]}`,
			expectedStatus: http.StatusNotFound,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
				assert.Equal(t, `Unknown container "99ft"`, resp.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/simulations", tt.body, tt.headers...)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestSimulate_DependencyErrors(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*mockSimulator, *mocks.MockContainerCatalog)
		expectedStatus int
	}{
		{
			name: "catalog circuit open",
			setup: func(_ *mockSimulator, catalog *mocks.MockContainerCatalog) {
				catalog.On("Get", mock.Anything, "20ft").Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "catalog failure",
			setup: func(_ *mockSimulator, catalog *mocks.MockContainerCatalog) {
				catalog.On("Get", mock.Anything, "20ft").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "simulator failure",
			setup: func(sim *mockSimulator, catalog *mocks.MockContainerCatalog) {
				catalog.On("Get", mock.Anything, "20ft").Return(config.DefaultContainers[0], nil)
				sim.On("Simulate", mock.AnythingOfType("service.SimulationInput")).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &mockSimulator{}
			catalog := &mocks.MockContainerCatalog{}
			tt.setup(sim, catalog)

			router := NewRouter(NewSimulationHandler(sim, catalog), nil, nil, testRouterConfig())
			w := doJSON(router, http.MethodPost, "/api/simulations", chairBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, dto.ErrCodeFromStatus(tt.expectedStatus), decodeError(t, w).Error)
			sim.AssertExpectations(t)
			catalog.AssertExpectations(t)
		})
	}
}

func TestSimulate_PlacementLimit(t *testing.T) {
	simulator := service.NewSimulatorService(service.WithMaxPlacements(5))
	catalog := service.NewContainerCatalog(config.DefaultContainers, nil)
	router := NewRouter(NewSimulationHandler(simulator, catalog), nil, nil, testRouterConfig())

	w := doJSON(router, http.MethodPost, "/api/simulations", chairBody)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeFromStatus(http.StatusUnprocessableEntity), resp.Error)
	assert.Contains(t, resp.Details["items"], "5")
}

func TestSimulate_PassesModeAndRequests(t *testing.T) {
	sim := &mockSimulator{}
	catalog := &mocks.MockContainerCatalog{}
	container := config.DefaultContainers[1]

	catalog.On("Get", mock.Anything, "40ft").Return(container, nil)
	sim.On("Simulate", mock.MatchedBy(func(in service.SimulationInput) bool {
		return in.Container == container &&
			in.Mode == model.GlobalBestOrientation &&
			len(in.Requests) == 1 &&
			in.Requests[0].Count == 10 &&
			in.Requests[0].PerCarton == 12
	})).Return(model.Simulation{ID: "sim-1", Container: container, Mode: model.GlobalBestOrientation}, nil)

	router := NewRouter(NewSimulationHandler(sim, catalog), nil, nil, testRouterConfig())
	w := doJSON(router, http.MethodPost, "/api/simulations",
		`{"container":"40ft","rotation_mode":"global_best","items":[{"name":"Chair","length":600,"width":400,"height":300,"per_carton":12,"order_qty":115}]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "sim-1", decodeSimulation(t, w).ID)
	sim.AssertExpectations(t)
}

func TestExport(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name           string
		query          string
		body           string
		expectedStatus int
		contentType    string
		prefix         string
		filename       string
	}{
		{name: "pdf", query: "format=pdf", body: chairBody, expectedStatus: http.StatusOK, contentType: "application/pdf", prefix: "%PDF-", filename: ".pdf"},
		{name: "labels", query: "format=labels", body: chairBody, expectedStatus: http.StatusOK, contentType: "application/pdf", prefix: "%PDF-", filename: "-labels.pdf"},
		{name: "xlsx", query: "format=XLSX", body: chairBody, expectedStatus: http.StatusOK, contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", prefix: "PK", filename: ".xlsx"},
		{name: "dxf", query: "format=dxf", body: chairBody, expectedStatus: http.StatusOK, contentType: "image/vnd.dxf", filename: ".dxf"},
		{name: "svg side view", query: "format=svg&view=side", body: chairBody, expectedStatus: http.StatusOK, contentType: "image/svg+xml", prefix: "<?xml", filename: ".svg"},
		{name: "missing format", query: "", body: chairBody, expectedStatus: http.StatusBadRequest},
		{name: "unknown format", query: "format=docx", body: chairBody, expectedStatus: http.StatusBadRequest},
		{name: "unknown view", query: "format=svg&view=iso", body: chairBody, expectedStatus: http.StatusBadRequest},
		{name: "invalid body", query: "format=pdf", body: `{}`, expectedStatus: http.StatusBadRequest},
		{
			name:           "labels without placements",
			query:          "format=labels",
			body:           `{"container":"20ft","items":[{"name":"Pole","length":7000,"width":100,"height":100,"cartons":1}]}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/simulations/export?"+tt.query, tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, dto.ErrCodeInvalidRequest, decodeError(t, w).Error)
				return
			}

			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("X-Simulation-ID"))
			disposition := w.Header().Get("Content-Disposition")
			assert.True(t, strings.HasPrefix(disposition, `attachment; filename="loadsim-`), disposition)
			assert.True(t, strings.HasSuffix(disposition, tt.filename+`"`), disposition)
			assert.NotZero(t, w.Body.Len())
			if tt.prefix != "" {
				assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte(tt.prefix)))
			}
		})
	}
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", content))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/simulations/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImport(t *testing.T) {
	sheet := "name,length,width,height,per_carton,qty\nChair,600,400,300,12,120\nBad,x,1,1,1,1\n"

	tests := []struct {
		name           string
		opts           []HandlerOption
		field          string
		filename       string
		content        string
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "csv sheet",
			field:          "file",
			filename:       "order.csv",
			content:        sheet,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var envelope struct {
					Data dto.ImportResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
				assert.Equal(t, []dto.CargoItem{{Name: "Chair", Length: 600, Width: 400, Height: 300, PerCarton: 12, OrderQty: 120}}, envelope.Data.Items)
				require.Len(t, envelope.Data.Warnings, 1)
				assert.Contains(t, envelope.Data.Warnings[0], "Line 3")
			},
		},
		{
			name:           "missing file field",
			content:        "x",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, decodeError(t, w).Details, "file")
			},
		},
		{
			name:           "unsupported extension",
			field:          "file",
			filename:       "order.pdf",
			content:        sheet,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, `Unsupported file "order.pdf", upload an .xlsx or .csv sheet`, decodeError(t, w).Message)
			},
		},
		{
			name:           "no valid rows",
			field:          "file",
			filename:       "order.csv",
			content:        "name,length,width,height,qty\nBad,x,1,1,1\n",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, "The uploaded sheet could not be read", resp.Message)
				assert.Equal(t, "No valid cargo lines found", resp.Details["error_1"])
			},
		},
		{
			name:           "upload too large",
			opts:           []HandlerOption{WithMaxUploadBytes(256)},
			field:          "file",
			filename:       "order.csv",
			content:        strings.Repeat(sheet, 10),
			expectedStatus: http.StatusRequestEntityTooLarge,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeTooLarge, decodeError(t, w).Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(tt.opts...)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartUpload(t, tt.field, tt.filename, tt.content))

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestOverflowWarnings(t *testing.T) {
	sim := model.Simulation{Result: model.PlacementResult{Overflow: []model.Overflow{
		{Name: "Chair", Rejected: 3, Reason: model.OverflowContainerFull},
		{Name: "Pole", Rejected: 1, Reason: model.OverflowOversized},
	}}}

	got := OverflowWarnings(sim, "en")
	assert.Equal(t, []string{
		"Chair: 3 carton(s) do not fit, the container is full",
		"Pole: the carton is larger than the container in every allowed orientation, 1 carton(s) not loaded",
	}, got)

	assert.Empty(t, OverflowWarnings(model.Simulation{}, "en"))
	assert.NotNil(t, OverflowWarnings(model.Simulation{}, "en"))
}
