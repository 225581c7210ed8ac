// Package catalog derives the visible storefront view from the static skin
// catalog: filtering and ordering only, no mutation of the source entries.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Skotchmaster/skinstore/internal/models"
)

// Sort modes understood by Apply.
const (
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// FilterAll matches every game or rarity.
const FilterAll = "all"

// Params is the transient query state driven by the UI. Zero value means
// "show everything, popular first" once Game and Rarity are set to FilterAll.
type Params struct {
	Search string `json:"search" query:"search"`
	Game   string `json:"game" query:"game"`
	Rarity string `json:"rarity" query:"rarity"`
	Sort   string `json:"sort" query:"sort"`
}

// DefaultParams returns the view state the storefront opens with.
func DefaultParams() Params {
	return Params{Game: FilterAll, Rarity: FilterAll, Sort: SortPopular}
}

// Apply returns the catalog entries matching p, ordered by p.Sort. It is a
// pure function: the input slice is never reordered or modified, the same
// inputs always yield the same output, and it is cheap enough to re-run on
// every keystroke. The result is non-nil even when nothing matches, so an
// empty view is distinguishable from a view that was never computed.
//
// Filtering matches the item name case-insensitively against p.Search as a
// substring (empty search matches everything) and the game and rarity fields
// exactly, with FilterAll as a wildcard. Sorting is stable: items that
// compare equal keep the catalog's own order.
func Apply(items []models.Skin, p Params) []models.Skin {
	search := strings.ToLower(p.Search)

	out := make([]models.Skin, 0, len(items))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		if p.Game != "" && p.Game != FilterAll && it.Game != p.Game {
			continue
		}
		if p.Rarity != "" && p.Rarity != FilterAll && it.Rarity != p.Rarity {
			continue
		}
		out = append(out, it)
	}

	switch p.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popular && !out[j].Popular })
	}

	return out
}

// Load reads a catalog from a JSON file. The file holds a plain array of
// skin objects.
func Load(path string) ([]models.Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var items []models.Skin
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %w", err)
	}
	return items, nil
}

// Default returns the built-in skin catalog the storefront ships with.
func Default() []models.Skin {
	return []models.Skin{
		{ID: 1, Name: "Dragon Lore AWP", Game: "CS:GO", Price: 2500, Rarity: models.RarityLegendary, Image: "🔫", Popular: true},
		{ID: 2, Name: "Butterfly Knife Fade", Game: "CS:GO", Price: 1800, Rarity: models.RarityLegendary, Image: "🔪", Popular: true},
		{ID: 3, Name: "AK-47 Fire Serpent", Game: "CS:GO", Price: 950, Rarity: models.RarityEpic, Image: "🔫", Popular: true},
		{ID: 4, Name: "Reaver Vandal", Game: "Valorant", Price: 45, Rarity: models.RarityEpic, Image: "⚔️", Popular: false},
		{ID: 5, Name: "Elderflame Operator", Game: "Valorant", Price: 55, Rarity: models.RarityLegendary, Image: "🐉", Popular: true},
		{ID: 6, Name: "Arcane Jinx", Game: "League of Legends", Price: 25, Rarity: models.RarityRare, Image: "✨", Popular: false},
		{ID: 7, Name: "M4A4 Howl", Game: "CS:GO", Price: 3200, Rarity: models.RarityLegendary, Image: "🔫", Popular: true},
		{ID: 8, Name: "Karambit Tiger Tooth", Game: "CS:GO", Price: 1200, Rarity: models.RarityLegendary, Image: "🔪", Popular: true},
		{ID: 9, Name: "Prime Vandal", Game: "Valorant", Price: 40, Rarity: models.RarityEpic, Image: "⚡", Popular: true},
		{ID: 10, Name: "Spirit Blossom Ahri", Game: "League of Legends", Price: 30, Rarity: models.RarityEpic, Image: "🌸", Popular: false},
		{ID: 11, Name: "Desert Eagle Blaze", Game: "CS:GO", Price: 450, Rarity: models.RarityRare, Image: "🔫", Popular: false},
		{ID: 12, Name: "Glock Fade", Game: "CS:GO", Price: 380, Rarity: models.RarityRare, Image: "🔫", Popular: false},
	}
}
