package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/export"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/importer"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/middleware"
	"github.com/hyperkh65/loadsim/internal/packing"
	"github.com/hyperkh65/loadsim/internal/service"
)

const defaultMaxUploadBytes = 8 << 20

// SimulationHandler serves the simulate, export and import endpoints.
type SimulationHandler struct {
	simulator        service.Simulator
	catalog          service.ContainerCatalog
	defaultContainer string
	maxUploadBytes   int64
}

// HandlerOption configures a SimulationHandler.
type HandlerOption func(*SimulationHandler)

// WithDefaultContainer sets the catalog code used when a request names none.
func WithDefaultContainer(code string) HandlerOption {
	return func(h *SimulationHandler) {
		h.defaultContainer = code
	}
}

// WithMaxUploadBytes limits the size of imported sheets.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *SimulationHandler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewSimulationHandler creates a new SimulationHandler instance.
func NewSimulationHandler(simulator service.Simulator, catalog service.ContainerCatalog, opts ...HandlerOption) *SimulationHandler {
	h := &SimulationHandler{
		simulator:      simulator,
		catalog:        catalog,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Simulate handles POST /api/simulations.
//
// @Summary      Run a loading simulation
// @Description  Loads the requested cartons into a catalog or custom container with the shelf heuristic and returns the placements, overflow and volume report. Cartons that do not fit are reported as overflow and localized warnings, never as an error. Supports idempotency via the Idempotency-Key header.
// @Tags         Simulations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Accept-Language header string false "Response language (en, ko)"
// @Param        request body dto.SimulationRequest true "Container and cargo lines"
// @Success      200 {object} dto.SuccessResponse{data=dto.SimulationResponse} "Simulation result"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Failure      404 {object} dto.ErrorResponse "Unknown container code"
// @Failure      422 {object} dto.ErrorResponse "Placement limit exceeded"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Container catalog unavailable"
// @Router       /api/simulations [post]
func (h *SimulationHandler) Simulate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, sim, ok := h.run(c, builder)
	if !ok {
		return
	}

	middleware.AuditLog(loggingServiceFrom(c), c, "simulate", "Simulation completed", map[string]interface{}{
		"simulation_id": sim.ID,
		"container":     sim.Container.Code,
		"items":         len(req.Items),
		"placed":        sim.Result.PlacedCount(),
		"overflow":      sim.Result.OverflowCount(),
	})

	warnings := OverflowWarnings(sim, builder.Locale())
	builder.SuccessOK(dto.NewSimulationResponse(sim, req.WantsPlacements(), warnings))
}

// Export handles POST /api/simulations/export.
//
// @Summary      Export a loading simulation
// @Description  Runs the simulation and returns it as a document: a PDF report, a PDF sheet of QR carton labels, an Excel workbook, a DXF wireframe or an SVG elevation.
// @Tags         Simulations
// @Accept       json
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      image/svg+xml
// @Produce      image/vnd.dxf
// @Param        format query string true "Document format" Enums(pdf, labels, xlsx, dxf, svg)
// @Param        view query string false "SVG projection" Enums(top, side)
// @Param        request body dto.SimulationRequest true "Container and cargo lines"
// @Success      200 {file} file "Rendered document"
// @Failure      400 {object} dto.ErrorResponse "Invalid input or format"
// @Failure      404 {object} dto.ErrorResponse "Unknown container code"
// @Failure      422 {object} dto.ErrorResponse "Placement limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Container catalog unavailable"
// @Router       /api/simulations/export [post]
func (h *SimulationHandler) Export(c *gin.Context) {
	builder := NewResponseBuilder(c)

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		builder.Errorf(http.StatusBadRequest, i18n.ErrKeyUnsupportedFormat, err, c.Query("format"))
		return
	}
	view, err := export.ParseView(c.Query("view"))
	if err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest,
			i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, builder.Locale()),
			map[string]string{"view": err.Error()}, err)
		return
	}

	_, sim, ok := h.run(c, builder)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, sim, export.Options{View: view}); err != nil {
		if errors.Is(err, export.ErrNoPlacements) {
			builder.ErrorWithDetails(http.StatusBadRequest,
				i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, builder.Locale()),
				map[string]string{"format": err.Error()}, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	exportLog := logger.ForSimulation(sim.ID, sim.Container.Code)
	exportLog.Info().
		Str("format", string(format)).
		Int("bytes", buf.Len()).
		Msg("Simulation exported")

	c.Header("Content-Disposition", `attachment; filename="`+format.FileName(sim)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Import handles POST /api/simulations/import.
//
// @Summary      Import cargo lines from a sheet
// @Description  Parses an uploaded .xlsx or .csv sheet into cargo lines. Headers are matched by name in English or Korean; rows with invalid numbers are skipped and reported as warnings.
// @Tags         Simulations
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Sheet with name, length, width, height, per_carton and order_qty columns"
// @Success      200 {object} dto.SuccessResponse{data=dto.ImportResponse} "Parsed cargo lines"
// @Failure      400 {object} dto.ErrorResponse "Missing, unsupported or unreadable file"
// @Failure      413 {object} dto.ErrorResponse "File too large"
// @Router       /api/simulations/import [post]
func (h *SimulationHandler) Import(c *gin.Context) {
	builder := NewResponseBuilder(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyPayloadTooLarge, err)
			return
		}
		builder.ErrorWithDetails(http.StatusBadRequest,
			i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, builder.Locale()),
			map[string]string{"file": "a multipart file field named \"file\" is required"}, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyImportFailed, err)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := importer.Import(fh.Filename, f)
	if err != nil {
		builder.Errorf(http.StatusBadRequest, i18n.ErrKeyUnsupportedFile, err, fh.Filename)
		return
	}
	if len(res.Errors) > 0 {
		details := make(map[string]string, len(res.Errors))
		for i, e := range res.Errors {
			details["error_"+strconv.Itoa(i+1)] = e
		}
		builder.ErrorWithDetails(http.StatusBadRequest,
			i18n.GetTranslator().Translate(i18n.ErrKeyImportFailed, builder.Locale()), details, res.Err())
		return
	}

	log := logger.Logger()
	log.Info().
		Str("file", fh.Filename).
		Int("items", len(res.Items)).
		Int("warnings", len(res.Warnings)).
		Msg("Cargo sheet imported")

	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	builder.SuccessOK(dto.ImportResponse{Items: res.Items, Warnings: warnings})
}

// run binds and validates the request, resolves the container and runs the
// simulation. It writes the error response and returns false on failure.
func (h *SimulationHandler) run(c *gin.Context, builder *ResponseBuilder) (*dto.SimulationRequest, model.Simulation, bool) {
	req, err := BuildRequest[dto.SimulationRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return nil, model.Simulation{}, false
	}
	if req.Container == "" && req.ContainerDimensions == nil {
		req.Container = h.defaultContainer
	}
	if err := req.Validate(); err != nil {
		h.validationError(builder, err)
		return nil, model.Simulation{}, false
	}

	container, ok := h.resolveContainer(c, builder, req)
	if !ok {
		return nil, model.Simulation{}, false
	}

	sim, err := h.simulator.Simulate(service.SimulationInput{
		Container: container,
		Mode:      req.Mode(),
		Requests:  req.BoxRequests(),
	})
	if err != nil {
		h.validationError(builder, err)
		return nil, model.Simulation{}, false
	}

	middleware.SetSimulation(c, sim.ID, sim.Container.Code)
	c.Header("X-Simulation-ID", sim.ID)
	return req, sim, true
}

func (h *SimulationHandler) resolveContainer(c *gin.Context, builder *ResponseBuilder, req *dto.SimulationRequest) (model.Container, bool) {
	if req.ContainerDimensions != nil {
		return model.CustomContainer(req.ContainerDimensions.ToModel()), true
	}

	container, err := h.catalog.Get(c.Request.Context(), req.Container)
	if err != nil {
		writeCatalogError(builder, err, req.Container)
		return model.Container{}, false
	}
	return container, true
}

// validationError maps request and engine validation failures to a 400
// response with the offending field in details. Runs past the placement cap
// become a 422. Other errors become a 500.
func (h *SimulationHandler) validationError(builder *ResponseBuilder, err error) {
	locale := builder.Locale()
	tr := i18n.GetTranslator()

	var engineErr *packing.ValidationError
	if errors.As(err, &engineErr) {
		var message string
		if engineErr.Index >= 0 {
			message = tr.Translatef(i18n.ValidationKey(engineErr.Code), locale, engineErr.Index+1)
		} else {
			message = tr.Translate(i18n.ValidationKey(engineErr.Code), locale)
		}
		field := engineErr.Field
		if engineErr.Index >= 0 {
			field = "items[" + strconv.Itoa(engineErr.Index) + "]." + field
		}
		status := http.StatusBadRequest
		if errors.Is(err, packing.ErrCapacityLimit) {
			status = http.StatusUnprocessableEntity
		}
		builder.ErrorWithDetails(status, message, map[string]string{field: engineErr.Message}, err)
		return
	}

	var reqErr *dto.ValidationError
	if errors.As(err, &reqErr) {
		builder.ErrorWithDetails(http.StatusBadRequest, tr.Translate(i18n.ErrKeyInvalidRequest, locale),
			map[string]string{reqErr.Field: reqErr.Message}, err)
		return
	}

	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}

// writeCatalogError maps container catalog failures to responses.
func writeCatalogError(builder *ResponseBuilder, err error, code string) {
	switch {
	case errors.Is(err, service.ErrContainerNotFound):
		builder.Errorf(http.StatusNotFound, i18n.ErrKeyContainerNotFound, err, code)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, service.ErrRepositoryNotConfigured):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// loggingServiceFrom returns the audit log service the router placed in the
// context, or nil.
func loggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, ok := c.Get(loggingServiceKey); ok {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}

// OverflowWarnings returns one localized warning per overflow entry of sim.
func OverflowWarnings(sim model.Simulation, locale string) []string {
	tr := i18n.GetTranslator()
	out := make([]string, 0, len(sim.Result.Overflow))
	for _, o := range sim.Result.Overflow {
		key := i18n.WarnKeyContainerFull
		if o.Reason == model.OverflowOversized {
			key = i18n.WarnKeyOversized
		}
		out = append(out, tr.Translatef(key, locale, o.Name, o.Rejected))
	}
	return out
}
