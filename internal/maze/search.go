package maze

import (
	"container/heap"

	"github.com/rs/zerolog/log"

	"gridworks/internal/grid"
)

// Costs prices one step. A step that keeps the current facing costs
// Straight; any other step, reversal included, costs Turn.
type Costs struct {
	Straight int
	Turn     int
}

var DefaultCosts = Costs{Straight: 1, Turn: 1001}

// Result is the cheapest route found by Search.
type Result struct {
	Cost int
	// Path runs from start to end inclusive.
	Path []grid.Point
	// Straight and Turns count the edges of Path by kind.
	Straight int
	Turns    int
}

// Mask returns the set of cells on the path.
func (r *Result) Mask() map[grid.Point]bool {
	mask := make(map[grid.Point]bool, len(r.Path))
	for _, p := range r.Path {
		mask[p] = true
	}
	return mask
}

type state struct {
	at     grid.Point
	facing grid.Direction
}

type edge struct {
	from state
	turn bool
}

type item struct {
	state
	cost int
}

type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// Search runs Dijkstra over (cell, facing) states from m.Start, initially
// facing facing, and stops as soon as a state on m.End leaves the queue.
// Keying by facing keeps a cheap arrival pointing the wrong way from hiding a
// dearer arrival that needs no further turn.
func Search(m *Maze, costs Costs, facing grid.Direction) (*Result, error) {
	start := state{at: m.Start, facing: facing}
	best := map[state]int{start: 0}
	prev := make(map[state]edge)

	q := &queue{{state: start}}
	settled := 0
	for q.Len() > 0 {
		cur := heap.Pop(q).(item)
		if cur.cost > best[cur.state] {
			continue
		}
		settled++
		if cur.at == m.End {
			res := reconstruct(prev, start, cur.state, costs)
			log.Debug().Int("settled", settled).Int("cost", res.Cost).Msg("maze search finished")
			return res, nil
		}

		for _, next := range m.Grid.Neighbors(cur.at) {
			d, _ := grid.DirectionOf(next.Sub(cur.at))
			turn := d != cur.facing
			cost := cur.cost + costs.Straight
			if turn {
				cost = cur.cost + costs.Turn
			}
			ns := state{at: next, facing: d}
			if old, seen := best[ns]; seen && old <= cost {
				continue
			}
			best[ns] = cost
			prev[ns] = edge{from: cur.state, turn: turn}
			heap.Push(q, item{state: ns, cost: cost})
		}
	}
	log.Debug().Int("settled", settled).Msg("maze search exhausted")
	return nil, ErrNoPath
}

// reconstruct walks predecessor links back from end and prices every edge.
func reconstruct(prev map[state]edge, start, end state, costs Costs) *Result {
	res := &Result{}
	cur := end
	for cur != start {
		e := prev[cur]
		res.Path = append(res.Path, cur.at)
		if e.turn {
			res.Turns++
			res.Cost += costs.Turn
		} else {
			res.Straight++
			res.Cost += costs.Straight
		}
		cur = e.from
	}
	res.Path = append(res.Path, start.at)
	for i, j := 0, len(res.Path)-1; i < j; i, j = i+1, j-1 {
		res.Path[i], res.Path[j] = res.Path[j], res.Path[i]
	}
	return res
}
