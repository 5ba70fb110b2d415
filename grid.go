package main

// A permutation forms a pyramid by slotting its first Size cards into rows,
// left-to-right and bottom-to-top. A base-3, height-3 pyramid:
//
//	  5
//	 3 4
//	0 1 2
//
// and the skull grid it projects to (S = skull, - = void padding):
//
//	5: - - S - -
//	4: - - S - -
//	3: - S - S -
//	2: - S - S -
//	1: S - S - S
//	0: S - S - S
//	   0 1 2 3 4

// SkullGrid is a rectangular, row-major buffer of skulls with y=0 at the bottom.
type SkullGrid struct {
	cells  []Skull
	Width  int
	Height int
}

// NewSkullGrid returns an all-void grid.
func NewSkullGrid(width, height int) SkullGrid {
	return SkullGrid{
		cells:  make([]Skull, width*height),
		Width:  width,
		Height: height,
	}
}

// BuildGrid converts the placed prefix of cards into a skull grid.
// Callers guarantee len(cards) >= p.Size.
func BuildGrid(cards []Card, p Pyramid) SkullGrid {
	g := NewSkullGrid(p.Base*2-1, p.Height*2)

	cardX, cardY := 0, 0
	for i := 0; i < p.Size; i++ {
		x := cardY + cardX*2
		botY := cardY * 2
		g.cells[x+botY*g.Width] = cards[i].Bottom
		g.cells[x+(botY+1)*g.Width] = cards[i].Top

		cardX++
		if cardX == p.Base-cardY {
			cardX = 0
			cardY++
		}
	}
	return g
}

// At returns the skull at (x, y); out-of-bounds reads are void.
func (g SkullGrid) At(x, y int) Skull {
	if !g.inBounds(x, y) {
		return SkullVoid
	}
	return g.cells[x+y*g.Width]
}

func (g SkullGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g SkullGrid) index(c Coord) int {
	return c.X + c.Y*g.Width
}

// rowSpan returns the first column and the exclusive end of the columns that
// can hold a skull in grid row y. Columns advance in steps of 2.
func (g SkullGrid) rowSpan(y int) (start, end int) {
	return y / 2, g.Width - y/2
}

// ── Adjacency ───────────────────────────────────────────────────────

// cellSet marks grid cells, indexed like SkullGrid.cells.
type cellSet []bool

func newCellSet(g SkullGrid) cellSet {
	return make(cellSet, len(g.cells))
}

type adjacent struct {
	Coord Coord
	Skull Skull
}

var (
	sameRowOffsets = [2]Coord{{-2, 0}, {2, 0}}
	// bottom faces link to their own top and to the tops of the two cards below
	evenRowOffsets = [3]Coord{{0, 1}, {-1, -1}, {1, -1}}
	// top faces link to their own bottom and to the bottoms of the two cards above
	oddRowOffsets = [3]Coord{{0, -1}, {-1, 1}, {1, 1}}
)

// adjacents appends to buf the non-void neighbours of c that are not in
// excluded (nil means none) and match filter (SkullAny matches all).
func (g SkullGrid) adjacents(c Coord, excluded cellSet, filter Skull, buf []adjacent) []adjacent {
	add := func(off Coord) {
		n := Coord{c.X + off.X, c.Y + off.Y}
		if !g.inBounds(n.X, n.Y) {
			return
		}
		i := g.index(n)
		if excluded != nil && excluded[i] {
			return
		}
		s := g.cells[i]
		if s != SkullVoid && (filter == SkullAny || s == filter) {
			buf = append(buf, adjacent{Coord: n, Skull: s})
		}
	}

	for _, off := range sameRowOffsets {
		add(off)
	}
	if c.Y%2 == 0 {
		for _, off := range evenRowOffsets {
			add(off)
		}
	} else {
		for _, off := range oddRowOffsets {
			add(off)
		}
	}
	return buf
}
