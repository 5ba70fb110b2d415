package main

import "fmt"

// Skull is a single face of a card. Each kind scores by its own rule.
type Skull uint8

const (
	SkullVoid Skull = iota
	SkullLover
	SkullVillager
	SkullAssassin
	SkullPriest
	SkullRoyal
	SkullGuard
	SkullHangman
	// SkullAny is a neighbour-query filter only; it never appears in a grid.
	SkullAny
)

func (s Skull) String() string {
	switch s {
	case SkullVoid:
		return "Void"
	case SkullLover:
		return "Lover"
	case SkullVillager:
		return "Villager"
	case SkullAssassin:
		return "Assassin"
	case SkullPriest:
		return "Priest"
	case SkullRoyal:
		return "Royal"
	case SkullGuard:
		return "Guard"
	case SkullHangman:
		return "Hangman"
	case SkullAny:
		return "Any"
	}
	return fmt.Sprintf("Skull(%d)", uint8(s))
}

func parseSkull(ch byte) (Skull, error) {
	switch ch {
	case 'L':
		return SkullLover, nil
	case 'V':
		return SkullVillager, nil
	case 'A':
		return SkullAssassin, nil
	case 'P':
		return SkullPriest, nil
	case 'R':
		return SkullRoyal, nil
	case 'G':
		return SkullGuard, nil
	case 'H':
		return SkullHangman, nil
	case '-':
		return SkullVoid, nil
	}
	return SkullVoid, fmt.Errorf("%w: %q", ErrUnknownSkull, ch)
}

func skullChar(s Skull) byte {
	switch s {
	case SkullLover:
		return 'L'
	case SkullVillager:
		return 'V'
	case SkullAssassin:
		return 'A'
	case SkullPriest:
		return 'P'
	case SkullRoyal:
		return 'R'
	case SkullGuard:
		return 'G'
	case SkullHangman:
		return 'H'
	case SkullVoid:
		return '-'
	}
	panic(fmt.Sprintf("skullChar: no face letter for %v", s))
}

// CardID is the stable identity of a card within its pool.
type CardID = uint8

// Card is a vertical pair of skulls. Cards compare by ID only.
type Card struct {
	Bottom Skull
	Top    Skull
	ID     CardID
}

// NewCard decodes a two-letter face string, bottom letter first.
func NewCard(faces string, id CardID) (Card, error) {
	if len(faces) != 2 {
		return Card{}, fmt.Errorf("card %d: faces %q must be exactly 2 letters", id, faces)
	}
	bottom, err := parseSkull(faces[0])
	if err != nil {
		return Card{}, fmt.Errorf("card %d: %w", id, err)
	}
	top, err := parseSkull(faces[1])
	if err != nil {
		return Card{}, fmt.Errorf("card %d: %w", id, err)
	}
	return Card{Bottom: bottom, Top: top, ID: id}, nil
}

// Faces returns the two-letter form accepted by NewCard.
func (c Card) Faces() string {
	return string([]byte{skullChar(c.Bottom), skullChar(c.Top)})
}

func compareCards(a, b Card) int {
	return int(a.ID) - int(b.ID)
}

const maxPyramidBase = 10

// Pyramid describes how many cards are placed and how. Pyramids may have
// flat tops, so they are defined by both base width and height.
type Pyramid struct {
	Base   int `json:"base"`
	Height int `json:"height"`
	Size   int `json:"size"`
}

// NewPyramid validates the shape and derives Size.
func NewPyramid(base, height int) (Pyramid, error) {
	if base < 1 || base > maxPyramidBase {
		return Pyramid{}, fmt.Errorf("%w: base %d not in [1,%d]", ErrPyramidBounds, base, maxPyramidBase)
	}
	if height < 1 || height > base {
		return Pyramid{}, fmt.Errorf("%w: height %d not in [1,%d]", ErrPyramidBounds, height, base)
	}
	size := 0
	for y := 0; y < height; y++ {
		size += base - y
	}
	return Pyramid{Base: base, Height: height, Size: size}, nil
}

// Fits reports an error if the pool cannot fill the pyramid.
func (p Pyramid) Fits(poolSize int) error {
	if p.Size > poolSize {
		return fmt.Errorf("%w: pyramid needs %d cards, pool has %d", ErrPyramidTooLarge, p.Size, poolSize)
	}
	return nil
}

func (p Pyramid) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Base, p.Height, p.Size)
}

// Coord addresses a grid cell; y=0 is the bottom row.
type Coord struct {
	X int
	Y int
}
