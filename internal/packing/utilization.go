package packing

import (
	"math"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// Summarize computes per-product and aggregate volume metrics for a packing
// result. requests must be the (normalized) requests the result was built from.
func Summarize(container model.Container, requests []model.BoxRequest, result model.PlacementResult) model.UtilizationReport {
	placed := make([]int, len(requests))
	overflow := make([]int, len(requests))
	for _, p := range result.Placements {
		if p.Request >= 0 && p.Request < len(placed) {
			placed[p.Request]++
		}
	}
	for _, o := range result.Overflow {
		if o.Request >= 0 && o.Request < len(overflow) {
			overflow[o.Request] += o.Rejected
		}
	}

	containerMM3 := container.Inner.Volume()
	usedMM3 := 0.0
	for i, r := range requests {
		usedMM3 += float64(placed[i]) * r.Carton.Volume()
	}
	freeMM3 := math.Max(containerMM3-usedMM3, 0)

	report := model.UtilizationReport{
		Products:           make([]model.ProductUtilization, len(requests)),
		ContainerVolumeCBM: containerMM3 / model.MM3PerCBM,
		UsedVolumeCBM:      usedMM3 / model.MM3PerCBM,
		FreeVolumeCBM:      freeMM3 / model.MM3PerCBM,
	}
	if containerMM3 > 0 {
		report.UtilizationPercent = usedMM3 / containerMM3 * 100
	}

	for i, r := range requests {
		unit := r.Carton.Volume()
		report.Products[i] = model.ProductUtilization{
			Name:                  r.Name,
			Requested:             r.Count,
			Placed:                placed[i],
			Overflow:              overflow[i],
			UnitsShipped:          r.UnitsShipped(placed[i]),
			UnitVolumeCBM:         unit / model.MM3PerCBM,
			TotalVolumeCBM:        float64(placed[i]) * unit / model.MM3PerCBM,
			AdditionalFitEstimate: AdditionalFit(freeMM3, unit),
		}
	}
	return report
}

// AdditionalFit estimates how many more units of unitVolume fit into
// freeVolume by volume alone. Both arguments use the same unit. The estimate
// ignores geometry and can exceed what a real loading achieves.
func AdditionalFit(freeVolume, unitVolume float64) int {
	if unitVolume <= 0 || freeVolume <= 0 {
		return 0
	}
	n := math.Floor(freeVolume/unitVolume + Tolerance)
	if n > maxFitCount {
		return maxFitCount
	}
	return int(n)
}
