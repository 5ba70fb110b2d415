package main

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/tidwall/gjson"
)

//go:embed cards.json
var defaultCardData string

// LoadCardPool reads card data from path, or the built-in pool when path is empty.
func LoadCardPool(path string) ([]Card, error) {
	if path == "" {
		return ParseCardPool(defaultCardData)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card data: %w", err)
	}
	cards, err := ParseCardPool(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// ParseCardPool decodes {"cards": [...]} where each entry is either a face
// string like "AH" or an object with a "faces" field. IDs follow entry order
// and the result is sorted by ID.
func ParseCardPool(data string) ([]Card, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("card data is not valid JSON")
	}
	entries := gjson.Get(data, "cards")
	if !entries.IsArray() {
		return nil, fmt.Errorf("card data has no \"cards\" array")
	}

	var cards []Card
	var parseErr error
	entries.ForEach(func(_, v gjson.Result) bool {
		if len(cards) > math.MaxUint8 {
			parseErr = fmt.Errorf("card pool exceeds %d cards", math.MaxUint8+1)
			return false
		}
		faces := v.String()
		if v.IsObject() {
			faces = v.Get("faces").String()
		}
		card, err := NewCard(faces, CardID(len(cards)))
		if err != nil {
			parseErr = err
			return false
		}
		cards = append(cards, card)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(cards) == 0 {
		return nil, ErrEmptyPool
	}

	slices.SortFunc(cards, compareCards)
	return cards, nil
}
