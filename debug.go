package tilegrid

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing and overlay metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime      time.Duration
	drawTime      time.Duration
	maps          int
	occupiedCells int
	lines         int
	fills         int
}

// debugOut is where debug output goes. Tests swap it out.
var debugOut io.Writer = os.Stderr

// debugLog prints timing and overlay stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[tilegrid] tick: %v | draw: %v | total: %v\n",
		stats.tickTime, stats.drawTime, stats.tickTime+stats.drawTime)
	_, _ = fmt.Fprintf(debugOut,
		"[tilegrid] maps: %d | occupied cells: %d | lines: %d | fills: %d\n",
		stats.maps, stats.occupiedCells, stats.lines, stats.fills)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tilegrid debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[tilegrid] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
