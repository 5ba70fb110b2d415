package main

// ScoreBreakdown holds the per-skull contributions of one grid.
type ScoreBreakdown struct {
	Lover    int `json:"lover"`
	Villager int `json:"villager"`
	Assassin int `json:"assassin"`
	Priest   int `json:"priest"`
	Royal    int `json:"royal"`
	Guard    int `json:"guard"`
	Hangman  int `json:"hangman"`
}

// Total is the grid score.
func (b ScoreBreakdown) Total() int {
	return b.Lover + b.Villager + b.Assassin + b.Priest + b.Royal + b.Guard + b.Hangman
}

const (
	loverPairScore   = 6
	assassinScore    = 2
	priestLevelScore = 2
)

// Score returns the total score of the grid.
func (g SkullGrid) Score() int {
	return g.Breakdown().Total()
}

// Breakdown walks the grid bottom-to-top, left-to-right, applying every
// skull rule once per cell.
func (g SkullGrid) Breakdown() ScoreBreakdown {
	var b ScoreBreakdown

	excludedLovers := newCellSet(g)
	var excludedAssassins cellSet
	var buf []adjacent
	var stack []Coord

	villagersBelow := 0
	royalsBelow := 0

	for y := 0; y < g.Height; y++ {
		villagersInLevel := 0
		royalsInLevel := 0
		priestScored := false

		start, end := g.rowSpan(y)
		for x := start; x < end; x += 2 {
			c := Coord{x, y}
			switch g.cells[g.index(c)] {
			case SkullLover:
				if excludedLovers[g.index(c)] {
					continue
				}
				excludedLovers[g.index(c)] = true
				var found int
				found, buf, stack = g.connected(c, SkullLover, excludedLovers, buf, stack)
				// odd lovers score nothing
				b.Lover += ((1 + found) / 2) * loverPairScore

			case SkullVillager:
				b.Villager++
				villagersInLevel++

			case SkullAssassin:
				buf = g.adjacents(c, excludedLovers, SkullAny, buf[:0])
				for _, a := range buf {
					if a.Skull == SkullPriest {
						b.Assassin += assassinScore
						break
					}
				}

			case SkullPriest:
				if !priestScored {
					b.Priest += priestLevelScore
					priestScored = true
				}

			case SkullRoyal:
				b.Royal += villagersBelow + royalsBelow
				royalsInLevel++

			case SkullGuard:
				b.Guard += 1 + royalsBelow

			case SkullHangman:
				if excludedAssassins == nil {
					excludedAssassins = newCellSet(g)
				} else {
					clear(excludedAssassins)
				}
				var found int
				found, buf, stack = g.connected(c, SkullAssassin, excludedAssassins, buf, stack)
				b.Hangman += 1 + found
			}
		}

		villagersBelow += villagersInLevel
		royalsBelow += royalsInLevel
	}
	return b
}

// connected counts the cells of kind reachable from seed through chains of
// kind, marking each one in visited. The seed itself is not counted. buf and
// stack are scratch space and are returned for reuse.
func (g SkullGrid) connected(seed Coord, kind Skull, visited cellSet, buf []adjacent, stack []Coord) (int, []adjacent, []Coord) {
	count := 0
	stack = append(stack[:0], seed)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		buf = g.adjacents(cur, visited, kind, buf[:0])
		for _, a := range buf {
			visited[g.index(a.Coord)] = true
			stack = append(stack, a.Coord)
		}
		count += len(buf)
	}
	return count, buf, stack
}
