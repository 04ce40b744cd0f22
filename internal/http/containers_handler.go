package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/middleware"
	"github.com/hyperkh65/loadsim/internal/service"
)

// ContainersHandler serves the container catalog.
type ContainersHandler struct {
	catalog   service.ContainerCatalog
	simulator service.Simulator
}

// NewContainersHandler creates a new ContainersHandler. simulator may be nil;
// when set its cache is dropped after every catalog change.
func NewContainersHandler(catalog service.ContainerCatalog, simulator service.Simulator) *ContainersHandler {
	return &ContainersHandler{catalog: catalog, simulator: simulator}
}

// ListContainers handles GET /api/containers.
//
// @Summary      List container types
// @Description  Returns the built-in container presets followed by containers stored in the catalog database. Stored entries override presets of the same code.
// @Tags         Containers
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.ContainerListResponse} "Container catalog"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Container catalog unavailable"
// @Router       /api/containers [get]
func (h *ContainersHandler) ListContainers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	containers, err := h.catalog.List(c.Request.Context())
	if err != nil {
		writeCatalogError(builder, err, "")
		return
	}
	builder.SuccessOK(dto.ContainerListResponse{Containers: containers})
}

// GetContainer handles GET /api/containers/{code}.
//
// @Summary      Get a container type
// @Description  Returns the inner dimensions of one container type.
// @Tags         Containers
// @Produce      json
// @Param        code path string true "Container code" example(20ft)
// @Success      200 {object} dto.SuccessResponse{data=model.Container} "Container"
// @Failure      404 {object} dto.ErrorResponse "Unknown container code"
// @Failure      503 {object} dto.ErrorResponse "Container catalog unavailable"
// @Router       /api/containers/{code} [get]
func (h *ContainersHandler) GetContainer(c *gin.Context) {
	builder := NewResponseBuilder(c)
	code := c.Param("code")

	container, err := h.catalog.Get(c.Request.Context(), code)
	if err != nil {
		writeCatalogError(builder, err, code)
		return
	}
	builder.SuccessOK(container)
}

// PutContainer handles PUT /api/containers/{code}.
//
// @Summary      Create or replace a container type
// @Description  Stores a container under the given code. Requires an API key when authentication is enabled; every change is written to the audit log.
// @Tags         Containers
// @Accept       json
// @Produce      json
// @Param        code path string true "Container code" example(20rf)
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.ContainerRequest true "Container label and inner dimensions"
// @Success      200 {object} dto.SuccessResponse{data=model.ContainerRecord} "Stored container"
// @Failure      400 {object} dto.ErrorResponse "Invalid dimensions"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Container catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/containers/{code} [put]
func (h *ContainersHandler) PutContainer(c *gin.Context) {
	builder := NewResponseBuilder(c)
	code := service.NormalizeCode(c.Param("code"))
	middleware.SetContainer(c, code)

	req, err := BuildRequestAndValidate[dto.ContainerRequest](c)
	if err != nil {
		var ve *dto.ValidationError
		if errors.As(err, &ve) {
			builder.ErrorWithDetails(http.StatusBadRequest,
				i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, builder.Locale()),
				map[string]string{ve.Field: ve.Message}, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	container := req.ToContainer(code)
	fields := map[string]interface{}{
		"code":   code,
		"label":  container.Label,
		"length": container.Inner.Length,
		"width":  container.Inner.Width,
		"height": container.Inner.Height,
	}

	actor := middleware.GetActor(c)
	if actor == "" {
		actor = "anonymous"
	}
	fields["actor"] = actor

	record, err := h.catalog.Upsert(c.Request.Context(), container, actor)
	if err != nil {
		middleware.AuditLogError(loggingServiceFrom(c), c, "container_upsert", "Container update failed", err, fields)
		writeCatalogError(builder, err, code)
		return
	}

	if h.simulator != nil {
		h.simulator.InvalidateCache()
	}

	fields["version"] = record.Version
	middleware.AuditLog(loggingServiceFrom(c), c, "container_upsert", "Container stored", fields)
	builder.SuccessOK(record)
}
