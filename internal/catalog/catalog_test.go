package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/skinstore/internal/models"
)

func testItems() []models.Skin {
	return []models.Skin{
		{ID: 1, Name: "AK-47 Fire Serpent", Game: "CS:GO", Price: 500, Rarity: models.RarityEpic, Popular: true},
		{ID: 2, Name: "Glock Fade", Game: "CS:GO", Price: 100, Rarity: models.RarityRare, Popular: false},
		{ID: 3, Name: "Reaver Vandal", Game: "Valorant", Price: 300, Rarity: models.RarityEpic, Popular: true},
	}
}

func ids(items []models.Skin) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	items := testItems()

	for _, term := range []string{"AK", "ak", "aK"} {
		got := Apply(items, Params{Search: term, Game: FilterAll, Rarity: FilterAll})
		require.Len(t, got, 1, "search %q", term)
		assert.Equal(t, "AK-47 Fire Serpent", got[0].Name)
	}

	got := Apply(items, Params{Search: "", Game: FilterAll, Rarity: FilterAll})
	assert.Len(t, got, 3, "empty search matches everything")
}

func TestApply_GameAndRarityFilters(t *testing.T) {
	t.Parallel()

	items := testItems()

	got := Apply(items, Params{Game: "Valorant", Rarity: FilterAll})
	assert.Equal(t, []int{3}, ids(got))

	got = Apply(items, Params{Game: FilterAll, Rarity: models.RarityRare})
	assert.Equal(t, []int{2}, ids(got))

	got = Apply(items, Params{Game: "CS:GO", Rarity: models.RarityEpic})
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_PriceSort(t *testing.T) {
	t.Parallel()

	items := testItems()

	low := Apply(items, withSort(SortPriceLow))
	assert.Equal(t, []int{2, 3, 1}, ids(low))
	assert.Equal(t, []float64{100, 300, 500}, prices(low))

	high := Apply(items, withSort(SortPriceHigh))
	assert.Equal(t, []float64{500, 300, 100}, prices(high))
}

func TestApply_PriceSort_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	items := []models.Skin{
		{ID: 1, Name: "A", Price: 40},
		{ID: 2, Name: "B", Price: 40},
		{ID: 3, Name: "C", Price: 10},
		{ID: 4, Name: "D", Price: 40},
	}

	got := Apply(items, withSort(SortPriceLow))
	assert.Equal(t, []int{3, 1, 2, 4}, ids(got))
}

func TestApply_PopularSortStable(t *testing.T) {
	t.Parallel()

	items := []models.Skin{
		{ID: 1, Name: "A", Popular: false},
		{ID: 2, Name: "B", Popular: true},
		{ID: 3, Name: "C", Popular: false},
		{ID: 4, Name: "D", Popular: true},
	}

	got := Apply(items, withSort(SortPopular))
	assert.Equal(t, []int{2, 4, 1, 3}, ids(got))
}

func TestApply_PureAndDeterministic(t *testing.T) {
	t.Parallel()

	items := testItems()
	before := ids(items)
	p := Params{Game: FilterAll, Rarity: FilterAll, Sort: SortPriceHigh}

	first := Apply(items, p)
	second := Apply(items, p)

	assert.Equal(t, first, second, "same params, same output")
	assert.Equal(t, before, ids(items), "input slice untouched")
}

func TestApply_EmptyResultIsNotNil(t *testing.T) {
	t.Parallel()

	got := Apply(testItems(), Params{Search: "no such skin", Game: FilterAll, Rarity: FilterAll})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func prices(items []models.Skin) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Price
	}
	return out
}

// withSort keeps the filter wildcards and sets only the sort.
func withSort(sort string) Params {
	p := DefaultParams()
	p.Sort = sort
	return p
}
