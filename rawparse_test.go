package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCardPool(t *testing.T) {
	pool, err := LoadCardPool("")
	require.NoError(t, err)
	require.Len(t, pool, 30)

	assert.Equal(t, "AH", pool[0].Faces())
	assert.Equal(t, "VA", pool[29].Faces())
	assert.True(t, slices.IsSortedFunc(pool, compareCards))
	for i, c := range pool {
		assert.Equal(t, CardID(i), c.ID)
	}
}

func TestParseCardPool(t *testing.T) {
	cards, err := ParseCardPool(`{"cards": ["LV", {"faces": "GA", "group": "guard"}, "--"]}`)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, Card{Bottom: SkullLover, Top: SkullVillager, ID: 0}, cards[0])
	assert.Equal(t, Card{Bottom: SkullGuard, Top: SkullAssassin, ID: 1}, cards[1])
	assert.Equal(t, Card{ID: 2}, cards[2])
}

func TestParseCardPoolErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "invalid json", data: `{"cards": [`},
		{name: "no cards array", data: `{"cards": "LV"}`},
		{name: "unknown skull", data: `{"cards": ["LX"]}`, wantErr: ErrUnknownSkull},
		{name: "wrong length", data: `{"cards": ["LVA"]}`},
		{name: "object without faces", data: `{"cards": [{"group": "guard"}]}`},
		{name: "empty", data: `{"cards": []}`, wantErr: ErrEmptyPool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCardPool(tt.data)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadCardPoolFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "cards.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"cards": ["VV", "PP"]}`), 0o644))

	cards, err := LoadCardPool(good)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"cards": ["Q-"]}`), 0o644))
	_, err = LoadCardPool(bad)
	assert.ErrorIs(t, err, ErrUnknownSkull)
	assert.ErrorContains(t, err, "bad.json")

	_, err = LoadCardPool(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestOrderCards(t *testing.T) {
	pool, err := LoadCardPool("")
	require.NoError(t, err)

	got, err := orderCards(pool, "5, 3 1")
	require.NoError(t, err)
	require.Len(t, got, 30)
	ids := Permutation{Cards: got}.IDs()
	assert.Equal(t, []int{5, 3, 1, 0, 2, 4, 6}, ids[:7])

	_, err = orderCards(pool, "1,1")
	assert.ErrorContains(t, err, "twice")
	_, err = orderCards(pool, "99")
	assert.ErrorContains(t, err, "not in pool")
	_, err = orderCards(pool, "x")
	assert.Error(t, err)
}
