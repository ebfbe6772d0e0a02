package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/example/penmode/internal/appstate"
)

// termDialogs answers dialogs without user interaction: confirmations are
// accepted and the save and export dialogs pick a time-stamped file in the
// save directory.
type termDialogs struct {
	out     io.Writer
	saveDir string
	state   *appstate.AppState
	now     func() time.Time
}

func (d *termDialogs) Show(kind appstate.DialogKind) {
	fmt.Fprintf(d.out, "dialog: %s\n", kind)
	if d.state == nil {
		return
	}
	switch kind {
	case appstate.DialogClearSheet:
		d.state.ClearSheet()
	case appstate.DialogNewSheet:
		d.state.NewSheet()
	case appstate.DialogSaveSheetAs:
		path, ok := d.target("sheet")
		if !ok {
			return
		}
		if err := d.state.SaveAs(path); err != nil {
			fmt.Fprintf(d.out, "save failed: %v\n", err)
			return
		}
		fmt.Fprintf(d.out, "saved %s\n", path)
	case appstate.DialogExportSheet, appstate.DialogExportSelection:
		selection := kind == appstate.DialogExportSelection
		prefix := "export"
		if selection {
			prefix = "selection"
		}
		path, ok := d.target(prefix)
		if !ok {
			return
		}
		if err := d.state.Export(path, selection); err != nil {
			fmt.Fprintf(d.out, "export failed: %v\n", err)
			return
		}
		fmt.Fprintf(d.out, "exported %s\n", path)
	}
}

// target returns a time-stamped PNG path in the save directory.
func (d *termDialogs) target(prefix string) (string, bool) {
	if d.saveDir == "" {
		fmt.Fprintf(d.out, "no save_dir configured, %s not written\n", prefix)
		return "", false
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	return filepath.Join(d.saveDir, prefix+now().Format("-20060102-150405.png")), true
}
