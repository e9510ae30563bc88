package cmd

import (
	"context"
	"fmt"
	"io"

	"jobspy-client/services"
)

var exportModes = []string{services.ModeJSON, services.ModeCSV, services.ModeServerCSV, services.ModePostgres}

// runExport exports the filtered view of snap in the given mode.
func runExport(ctx context.Context, d *commandDeps, w io.Writer, mode string, snap services.Snapshot) error {
	switch mode {
	case services.ModeJSON:
		path, err := d.Exporter.ExportJSON(snap.Filtered)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved %d listings to %s\n", len(snap.Filtered), path)

	case services.ModeCSV:
		path, err := d.Exporter.ExportCSV(snap.Filtered)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(w, "Nothing to export.")
			return nil
		}
		fmt.Fprintf(w, "Saved %d listings to %s\n", len(snap.Filtered), path)

	case services.ModeServerCSV:
		if snap.Filter.IsActive() {
			fmt.Fprintln(w, "Note: the server export runs the search again and ignores local filters.")
		} else {
			fmt.Fprintln(w, "Note: the server export runs the search again; results may differ from the screen.")
		}
		path, err := d.Exporter.ExportServerCSV(ctx, snap.Query)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved server CSV to %s\n", path)

	case services.ModePostgres:
		if err := d.exportSink(); err != nil {
			return err
		}
		n, err := d.Exporter.ExportPostgres(snap.Filtered)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Stored %d listings in exported_jobs\n", n)

	default:
		return fmt.Errorf("unknown export mode %q (want one of %v)", mode, exportModes)
	}
	return nil
}
