package packing

import (
	"math"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// DefaultMaxPlacements bounds the number of shelf iterations of a single run.
const DefaultMaxPlacements = 2_000_000

// Engine places cartons with a deterministic greedy shelf heuristic: fill a
// row along the container length, then start a new row further along the
// width, then a new layer higher up. There is no backtracking; once a layer
// cannot be opened every remaining carton overflows.
//
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	mode          model.RotationMode
	maxPlacements int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRotationMode selects how cartons are oriented. Defaults to NoRotation.
func WithRotationMode(mode model.RotationMode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithMaxPlacements overrides the iteration cap. Zero or a negative value
// disables it.
func WithMaxPlacements(n int) Option {
	return func(e *Engine) {
		e.maxPlacements = n
	}
}

// NewEngine returns an engine with the given options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		mode:          model.NoRotation,
		maxPlacements: DefaultMaxPlacements,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the configured rotation mode.
func (e *Engine) Mode() model.RotationMode {
	return e.mode
}

// cursor is the shelf position for a single run.
type cursor struct {
	x, y, z float64
	// rowDepth is the widest carton in the current row.
	rowDepth float64
	// layerHeight is the tallest carton in the current layer.
	layerHeight float64
}

// next moves the cursor to the position for a carton of size o and reports
// whether that position is inside the container height.
func (c *cursor) next(inner, o model.Dimension) bool {
	if c.x+o.Length > inner.Length+Tolerance {
		c.x = 0
		c.y += c.rowDepth
		c.rowDepth = 0
	}
	if c.y+o.Width > inner.Width+Tolerance {
		c.x = 0
		c.y = 0
		c.z += c.layerHeight
		c.rowDepth = 0
		c.layerHeight = 0
	}
	return c.z+o.Height <= inner.Height+Tolerance
}

func (c *cursor) commit(o model.Dimension) model.Point3 {
	p := model.Point3{X: c.x, Y: c.y, Z: c.z}
	c.x += o.Length
	c.rowDepth = math.Max(c.rowDepth, o.Width)
	c.layerHeight = math.Max(c.layerHeight, o.Height)
	return p
}

// Pack loads the requests into the container in request order. Invalid input
// is rejected before any carton is placed. Cartons that cannot be placed are
// reported in the result's Overflow list, never as an error.
func (e *Engine) Pack(container model.Container, requests []model.BoxRequest) (model.PlacementResult, error) {
	if e.mode != model.NoRotation && e.mode != model.GlobalBestOrientation {
		return model.PlacementResult{}, invalid(CodeRotationInvalid, "rotation_mode", -1,
			"unknown rotation mode %q", e.mode)
	}
	requests = NormalizeRequests(requests)
	if err := Validate(container, requests); err != nil {
		return model.PlacementResult{}, err
	}

	inner := container.Inner
	result := model.PlacementResult{
		Placements: make([]model.PlacedBox, 0, placementHint(requests)),
		Overflow:   []model.Overflow{},
		Plans:      make([]model.OrientationPlan, 0, len(requests)),
	}

	var cur cursor
	full := false
	iterations := 0

	for i, req := range requests {
		orientation, theoretical := BestOrientation(inner, req.Carton, e.mode)
		result.Plans = append(result.Plans, model.OrientationPlan{
			Request:        i,
			Name:           req.Name,
			Orientation:    orientation,
			TheoreticalMax: theoretical,
		})

		if theoretical == 0 {
			result.Overflow = append(result.Overflow, model.Overflow{
				Request:  i,
				Name:     req.Name,
				Rejected: req.Count,
				Reason:   model.OverflowOversized,
			})
			continue
		}

		placed := 0
		for !full && placed < req.Count {
			if e.maxPlacements > 0 && iterations >= e.maxPlacements {
				return model.PlacementResult{}, limitExceeded(e.maxPlacements)
			}
			iterations++

			if !cur.next(inner, orientation) {
				full = true
				break
			}
			result.Placements = append(result.Placements, model.PlacedBox{
				Request:     i,
				Name:        req.Name,
				Orientation: orientation,
				Position:    cur.commit(orientation),
			})
			placed++
		}

		if rest := req.Count - placed; rest > 0 {
			result.Overflow = append(result.Overflow, model.Overflow{
				Request:  i,
				Name:     req.Name,
				Rejected: rest,
				Reason:   model.OverflowContainerFull,
			})
		}
	}

	return result, nil
}

func placementHint(requests []model.BoxRequest) int {
	const maxHint = 1 << 16
	n := 0
	for _, r := range requests {
		n += r.Count
		if n >= maxHint {
			return maxHint
		}
	}
	return n
}

// NormalizeRequests returns a copy of requests with default names filled in
// and Count derived from the order quantity where it was left unset.
func NormalizeRequests(requests []model.BoxRequest) []model.BoxRequest {
	out := make([]model.BoxRequest, len(requests))
	for i, r := range requests {
		if r.Name == "" {
			r.Name = model.DefaultName(i)
		}
		if r.Count == 0 && r.OrderQty > 0 {
			r.Count = model.CartonCount(r.OrderQty, r.PerCarton)
		}
		out[i] = r
	}
	return out
}

// Validate checks the container and requests. It returns a *ValidationError
// for the first problem found.
func Validate(container model.Container, requests []model.BoxRequest) error {
	if !container.Inner.Positive() {
		return invalid(CodeContainerInvalid, "container", -1,
			"dimensions must be positive, got %s", container.Inner)
	}
	if len(requests) == 0 {
		return invalid(CodeNoRequests, "items", -1, "at least one box request is required")
	}

	seen := make(map[string]int, len(requests))
	for i, r := range requests {
		if !r.Carton.Positive() {
			return invalid(CodeDimensionInvalid, "carton", i,
				"dimensions must be positive, got %s", r.Carton)
		}
		if r.Count < 1 {
			return invalid(CodeCountInvalid, "count", i, "carton count must be at least 1")
		}
		if j, dup := seen[r.Name]; dup {
			return invalid(CodeDuplicateName, "name", i, "%q is already used by items[%d]", r.Name, j)
		}
		seen[r.Name] = i
	}
	return nil
}
