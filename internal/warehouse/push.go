package warehouse

import "gridworks/internal/grid"

// TryPush shifts the block at p, and every block stacked behind it, one cell
// along d. If any block in the chain would hit a wall nothing moves and
// TryPush returns false. A p that holds no block needs no push and reports
// whether it is free.
func (w *Warehouse) TryPush(p grid.Point, d grid.Direction) bool {
	cell := w.Grid.At(p)
	if !cell.IsBlock() {
		return cell != grid.Wall
	}
	if !w.wide {
		return w.tryPush(p, d)
	}
	if !w.canMove(p, d) {
		return false
	}
	w.move(p, d)
	return true
}

// tryPush handles single-cell blocks. The far end of the chain is moved
// first, so a wall anywhere aborts before any cell changes.
func (w *Warehouse) tryPush(p grid.Point, d grid.Direction) bool {
	next := p.Add(d.Delta())
	switch c := w.Grid.At(next); {
	case c == grid.Wall:
		return false
	case c.IsBlock():
		if !w.tryPush(next, d) {
			return false
		}
	}
	w.Grid.Set(next, w.Grid.At(p))
	w.Grid.Set(p, grid.Empty)
	return true
}

// partner returns the other half of the wide block at p.
func partner(g *grid.Grid, p grid.Point) (grid.Point, bool) {
	switch g.At(p) {
	case grid.BlockLeft:
		return p.Add(grid.Right.Delta()), true
	case grid.BlockRight:
		return p.Add(grid.Left.Delta()), true
	}
	return p, false
}

// nextPositions lists the cells that must be clear before the block half at
// p can move along d. Sideways only the cell ahead matters; the partner is
// either that cell or behind p. Vertically the partner's target counts too,
// unless the cell ahead is the same half of another block, which then
// accounts for it.
func (w *Warehouse) nextPositions(p grid.Point, d grid.Direction) []grid.Point {
	next := p.Add(d.Delta())
	if d.Horizontal() {
		return []grid.Point{next}
	}
	mate, ok := partner(w.Grid, p)
	if !ok || w.Grid.At(next) == w.Grid.At(p) {
		return []grid.Point{next}
	}
	return []grid.Point{next, mate.Add(d.Delta())}
}

// canMove is the read-only half of a wide push: it reports whether the block
// at p and everything it would shove can move along d.
func (w *Warehouse) canMove(p grid.Point, d grid.Direction) bool {
	return w.canMoveFrom(p, d, make(map[grid.Point]bool))
}

func (w *Warehouse) canMoveFrom(p grid.Point, d grid.Direction, checked map[grid.Point]bool) bool {
	if checked[p] {
		return true
	}
	checked[p] = true
	for _, next := range w.nextPositions(p, d) {
		c := w.Grid.At(next)
		if c == grid.Wall {
			return false
		}
		if c.IsBlock() && !w.canMoveFrom(next, d, checked) {
			return false
		}
	}
	return true
}

// move is the mutating half of a wide push. Callers must have checked
// canMove first.
func (w *Warehouse) move(p grid.Point, d grid.Direction) {
	if d.Horizontal() {
		w.moveHorizontal(p, d)
		return
	}
	w.moveVertical(p, d, true)
}

func (w *Warehouse) moveHorizontal(p grid.Point, d grid.Direction) {
	cell := w.Grid.At(p)
	if !cell.IsBlock() {
		return
	}
	next := p.Add(d.Delta())
	if w.Grid.At(next).IsBlock() {
		w.moveHorizontal(next, d)
	}
	w.Grid.Set(next, cell)
	w.Grid.Set(p, grid.Empty)
}

// moveVertical moves the half at p, clearing its way first, then its
// partner. The nested partner call does not move its own partner again.
// A p that no longer holds a block was already moved through another path.
func (w *Warehouse) moveVertical(p grid.Point, d grid.Direction, movePartner bool) {
	cell := w.Grid.At(p)
	if !cell.IsBlock() {
		return
	}
	mate, paired := partner(w.Grid, p)
	next := p.Add(d.Delta())
	if w.Grid.At(next).IsBlock() {
		w.moveVertical(next, d, true)
	}
	w.Grid.Set(next, cell)
	w.Grid.Set(p, grid.Empty)

	if movePartner && paired {
		w.moveVertical(mate, d, false)
	}
}
