package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRules(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		height int
		faces  []string
		want   ScoreBreakdown
	}{
		// lovers
		{name: "lover singleton", base: 1, height: 1, faces: []string{"L-"}, want: ScoreBreakdown{}},
		{name: "lover pair in row", base: 2, height: 1, faces: []string{"L-", "L-"}, want: ScoreBreakdown{Lover: 6}},
		{name: "lover pair on one card", base: 1, height: 1, faces: []string{"LL"}, want: ScoreBreakdown{Lover: 6}},
		{name: "lover cluster of three", base: 3, height: 1, faces: []string{"L-", "L-", "L-"}, want: ScoreBreakdown{Lover: 6}},
		{name: "lover cluster of four", base: 4, height: 1, faces: []string{"L-", "L-", "L-", "L-"}, want: ScoreBreakdown{Lover: 12}},
		{name: "lovers not touching", base: 3, height: 1, faces: []string{"L-", "--", "L-"}, want: ScoreBreakdown{}},

		// villagers
		{name: "villagers", base: 1, height: 1, faces: []string{"VV"}, want: ScoreBreakdown{Villager: 2}},

		// priests
		{name: "two priests same row", base: 2, height: 1, faces: []string{"P-", "P-"}, want: ScoreBreakdown{Priest: 2}},
		{name: "two priests two rows", base: 1, height: 1, faces: []string{"PP"}, want: ScoreBreakdown{Priest: 4}},

		// assassins
		{name: "lone assassin", base: 1, height: 1, faces: []string{"A-"}, want: ScoreBreakdown{}},
		{name: "assassin under priest", base: 1, height: 1, faces: []string{"AP"}, want: ScoreBreakdown{Assassin: 2, Priest: 2}},
		{
			name: "assassin over priest diagonal", base: 2, height: 2,
			faces: []string{"-P", "--", "A-"},
			want:  ScoreBreakdown{Assassin: 2, Priest: 2},
		},

		// royals
		{name: "royal with nothing below", base: 1, height: 1, faces: []string{"R-"}, want: ScoreBreakdown{}},
		{name: "royal over villager", base: 1, height: 1, faces: []string{"VR"}, want: ScoreBreakdown{Villager: 1, Royal: 1}},
		{name: "royal beside villager", base: 2, height: 1, faces: []string{"V-", "R-"}, want: ScoreBreakdown{Villager: 1}},
		{name: "royal over royal", base: 1, height: 1, faces: []string{"RR"}, want: ScoreBreakdown{Royal: 1}},

		// guards
		{name: "guard with no royals", base: 1, height: 1, faces: []string{"G-"}, want: ScoreBreakdown{Guard: 1}},
		{name: "guard over royal", base: 1, height: 1, faces: []string{"RG"}, want: ScoreBreakdown{Guard: 2}},
		{name: "guard beside royal", base: 2, height: 1, faces: []string{"R-", "G-"}, want: ScoreBreakdown{Guard: 1}},

		// hangmen
		{name: "lone hangman", base: 1, height: 1, faces: []string{"H-"}, want: ScoreBreakdown{Hangman: 1}},
		{name: "hangman beside assassin", base: 2, height: 1, faces: []string{"H-", "A-"}, want: ScoreBreakdown{Hangman: 2}},
		{name: "hangman assassin chain", base: 3, height: 1, faces: []string{"H-", "A-", "A-"}, want: ScoreBreakdown{Hangman: 3}},
		{name: "hangmen share an assassin", base: 3, height: 1, faces: []string{"H-", "A-", "H-"}, want: ScoreBreakdown{Hangman: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(t, tt.base, tt.height, tt.faces...)
			got := g.Breakdown()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Total(), g.Score())
		})
	}
}

func TestScoreRegressionFixture(t *testing.T) {
	g := gridOf(t, 3, 3, "AH", "PH", "VH", "HA", "HR", "HL")

	want := ScoreBreakdown{Villager: 1, Assassin: 2, Priest: 2, Royal: 1, Hangman: 9}
	assert.Equal(t, want, g.Breakdown())
	assert.Equal(t, 15, g.Score())
}

func TestScoreIdempotent(t *testing.T) {
	g := gridOf(t, 4, 4, "LV", "GA", "PP", "HR", "AL", "VA", "RP", "GL", "LA", "AA")
	first := g.Score()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Score())
	}
}

func TestScoreBelowTotalsCommitPerGridRow(t *testing.T) {
	// V and R on the bottom faces of the base row, R on the top face of the
	// second card: only villagers from grid rows strictly below count.
	g := gridOf(t, 2, 1, "V-", "RR")
	// (0,0) V +1; (2,0) R sees nothing below; (2,1) R sees 1 villager and 1 royal
	assert.Equal(t, ScoreBreakdown{Villager: 1, Royal: 2}, g.Breakdown())
}
