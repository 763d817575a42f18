// Package warehouse simulates a robot pushing blocks around a walled room.
//
// Blocks are either single cells ('O') or two cells wide ('[' followed by
// ']'). The two halves of a wide block are linked only by adjacency: a
// BlockLeft cell's partner is the cell to its right, and the other way round.
// Moves that would push any block into a wall are skipped.
package warehouse

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gridworks/internal/grid"
)

var (
	ErrNoLayout     = errors.New("warehouse: no layout rows")
	ErrInvalidCell  = errors.New("warehouse: invalid layout character")
	ErrInvalidMove  = errors.New("warehouse: invalid move character")
	ErrRobotCount   = errors.New("warehouse: layout must contain exactly one robot")
	ErrCorruptBlock = errors.New("warehouse: wide block halves are not paired")
)

type Warehouse struct {
	Grid  *grid.Grid
	Robot grid.Point
	Moves []grid.Direction

	wide bool
	next int
}

// Wide reports whether the room holds two-cell blocks.
func (w *Warehouse) Wide() bool {
	return w.wide
}

// Pending is the number of queued moves not yet applied.
func (w *Warehouse) Pending() int {
	return len(w.Moves) - w.next
}

// Step moves the robot one cell along d, pushing any blocks in the way.
// It reports whether the robot moved.
func (w *Warehouse) Step(d grid.Direction) bool {
	target := w.Robot.Add(d.Delta())
	cell := w.Grid.At(target)
	if cell == grid.Wall {
		log.Trace().Stringer("robot", w.Robot).Stringer("dir", d).Msg("blocked by wall")
		return false
	}
	if cell.IsBlock() && !w.TryPush(target, d) {
		log.Trace().Stringer("robot", w.Robot).Stringer("dir", d).Msg("push blocked")
		return false
	}
	w.Robot = target
	return true
}

// Run applies every pending move in order and returns how many of them
// actually moved the robot.
func (w *Warehouse) Run() int {
	moved := 0
	for ; w.next < len(w.Moves); w.next++ {
		if w.Step(w.Moves[w.next]) {
			moved++
		}
	}
	log.Debug().Int("moves", len(w.Moves)).Int("moved", moved).Msg("warehouse run finished")
	return moved
}

// GPSSum adds 100*row+col over the anchor cell of every block: the only
// cell of a single block, the left half of a wide one.
func (w *Warehouse) GPSSum() int {
	sum := 0
	w.Grid.Each(func(p grid.Point, c grid.Cell) {
		if c == grid.BlockSingle || c == grid.BlockLeft {
			sum += 100*p.Row + p.Col
		}
	})
	return sum
}

// Validate checks that every wide block half sits next to its partner.
func Validate(g *grid.Grid) error {
	var err error
	g.Each(func(p grid.Point, c grid.Cell) {
		if err != nil {
			return
		}
		switch c {
		case grid.BlockLeft:
			if g.At(p.Add(grid.Right.Delta())) != grid.BlockRight {
				err = fmt.Errorf("%w: '[' at %v", ErrCorruptBlock, p)
			}
		case grid.BlockRight:
			if g.At(p.Add(grid.Left.Delta())) != grid.BlockLeft {
				err = fmt.Errorf("%w: ']' at %v", ErrCorruptBlock, p)
			}
		}
	})
	return err
}
