package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// FormatGrid renders the grid top row first, one face letter per cell.
func FormatGrid(g SkullGrid) string {
	var b strings.Builder
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			b.WriteByte(skullChar(g.At(x, y)))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatPermutation renders score, card order and grid of one candidate.
func FormatPermutation(p Permutation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d\n", p.Score)
	b.WriteString("Permutation:\n")
	for _, c := range p.Cards {
		fmt.Fprintf(&b, "%d ", c.ID)
	}
	b.WriteByte('\n')
	b.WriteString(FormatGrid(p.Grid()))
	return b.String()
}

// FormatLeaderboard renders a summary table followed by every slot's candidate.
func FormatLeaderboard(res Result) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Pyramid %s  session %s", res.Pyramid, res.Session))
	t.AppendHeader(table.Row{"Slot", "Score", "Final", "Lineages", "Phases", "Placed cards"})
	for _, s := range res.Slots {
		placed := s.Cards
		if len(placed) > res.Pyramid.Size {
			placed = placed[:res.Pyramid.Size]
		}
		mark := ""
		if s.Slot == res.BestSlot {
			mark = " *"
		}
		t.AppendRow(table.Row{fmt.Sprintf("#%d%s", s.Slot, mark), s.Score, s.Final, s.Lineages, s.Phases, joinInts(placed)})
	}
	t.AppendFooter(table.Row{"Best", res.Best().Score, "", "", "", fmt.Sprintf("%.1fs", res.Elapsed.Seconds())})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n\nFINAL RESULTS:\n")
	for _, s := range res.Slots {
		fmt.Fprintf(&b, "Slot #%d:\n", s.Slot)
		b.WriteString(FormatPermutation(s.Best))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatBreakdown renders the per-skull contributions of a grid.
func FormatBreakdown(bd ScoreBreakdown) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Skull", "Score"})
	t.AppendRows([]table.Row{
		{SkullLover, bd.Lover},
		{SkullVillager, bd.Villager},
		{SkullAssassin, bd.Assassin},
		{SkullPriest, bd.Priest},
		{SkullRoyal, bd.Royal},
		{SkullGuard, bd.Guard},
		{SkullHangman, bd.Hangman},
	})
	t.AppendFooter(table.Row{"Total", bd.Total()})
	return t.Render()
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
