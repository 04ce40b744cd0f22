package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/i18n"
)

// WriteText prints the utilization table of sim followed by one warning per
// overflow entry.
func WriteText(w io.Writer, sim model.Simulation, locale string) error {
	report := sim.Report

	fmt.Fprintf(w, "Container: %s (%s mm, %.2f CBM)\n", sim.Container.Label, sim.Container.Inner, report.ContainerVolumeCBM)
	fmt.Fprintf(w, "Rotation:  %s\n\n", sim.Mode)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Product\tRequested\tPlaced\tOverflow\tUnits\tCBM\tExtra fit\t")
	for _, p := range report.Products {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\t%d\t\n",
			p.Name, p.Requested, p.Placed, p.Overflow, p.UnitsShipped, p.TotalVolumeCBM, p.AdditionalFitEstimate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nUsed %.2f of %.2f CBM (%.2f%%), %.2f CBM free\n",
		report.UsedVolumeCBM, report.ContainerVolumeCBM, report.UtilizationPercent, report.FreeVolumeCBM)

	tr := i18n.GetTranslator()
	for _, o := range sim.Result.Overflow {
		key := i18n.WarnKeyContainerFull
		if o.Reason == model.OverflowOversized {
			key = i18n.WarnKeyOversized
		}
		if _, err := fmt.Fprintln(w, "warning: "+tr.Translatef(key, locale, o.Name, o.Rejected)); err != nil {
			return err
		}
	}
	return nil
}
