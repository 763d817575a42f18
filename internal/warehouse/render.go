package warehouse

import (
	"gridworks/internal/fileio"
	"gridworks/internal/grid"
)

// Render draws the room with the robot as '@'.
func (w *Warehouse) Render() string {
	return grid.Render(w.Grid, func(p grid.Point, _ grid.Cell) (byte, bool) {
		return '@', p == w.Robot
	})
}

// Dumper writes room snapshots to a text file: the first snapshot replaces
// the file, later ones are appended.
type Dumper struct {
	Path    string
	written bool
}

func (d *Dumper) Dump(w *Warehouse) error {
	if d == nil || d.Path == "" {
		return nil
	}
	if !d.written {
		d.written = true
		return fileio.WriteText(d.Path, w.Render())
	}
	return fileio.AppendText(d.Path, w.Render())
}
