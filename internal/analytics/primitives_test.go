package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy(t *testing.T) {
	lines := []OrderLine{
		{OrderID: 1, ProductID: 10, Quantity: 2},
		{OrderID: 1, ProductID: 11, Quantity: 1},
		{OrderID: 2, ProductID: 10, Quantity: 3},
	}

	groups := GroupBy(lines, func(l OrderLine) uint { return l.OrderID })

	assert.Len(t, groups, 2)
	assert.Len(t, groups[1], 2)
	assert.Len(t, groups[2], 1)

	t.Run("AbsentKeysOmitted", func(t *testing.T) {
		_, ok := groups[3]
		assert.False(t, ok)
	})
}

func TestDistinctCount(t *testing.T) {
	lines := []OrderLine{
		{OrderID: 1, ProductID: 10},
		{OrderID: 1, ProductID: 11},
		{OrderID: 2, ProductID: 10},
	}

	assert.Equal(t, 2, DistinctCount(lines, func(l OrderLine) uint { return l.OrderID }))
	assert.Equal(t, 0, DistinctCount(nil, func(l OrderLine) uint { return l.OrderID }))
}

func TestRankWithTies(t *testing.T) {
	type scored struct {
		name  string
		score float64
	}

	t.Run("TiesShareRankAndSkip", func(t *testing.T) {
		rows := []scored{
			{"a", 5},
			{"b", 5},
			{"c", 3},
		}

		ranked := RankWithTies(rows, func(s scored) float64 { return s.score })

		require.Len(t, ranked, 3)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, 1, ranked[1].Rank)
		assert.Equal(t, 3, ranked[2].Rank)
	})

	t.Run("MonotoneOnStrictOrder", func(t *testing.T) {
		rows := []scored{
			{"low", 1},
			{"high", 9},
			{"mid", 4},
		}

		ranked := RankWithTies(rows, func(s scored) float64 { return s.score })

		assert.Equal(t, "high", ranked[0].Row.name)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, "mid", ranked[1].Row.name)
		assert.Equal(t, 2, ranked[1].Rank)
		assert.Equal(t, "low", ranked[2].Row.name)
		assert.Equal(t, 3, ranked[2].Rank)
	})

	t.Run("StableOnTies", func(t *testing.T) {
		rows := []scored{
			{"first", 2},
			{"second", 2},
		}

		ranked := RankWithTies(rows, func(s scored) float64 { return s.score })

		assert.Equal(t, "first", ranked[0].Row.name)
		assert.Equal(t, "second", ranked[1].Row.name)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, RankWithTies(nil, func(s scored) float64 { return s.score }))
	})
}

func TestTopNPerPartition(t *testing.T) {
	orders := []Order{
		{ID: 1, UserID: 1},
		{ID: 2, UserID: 1},
		{ID: 3, UserID: 1},
		{ID: 4, UserID: 1},
		{ID: 5, UserID: 2},
	}

	top := TopNPerPartition(orders,
		func(o Order) uint { return o.UserID },
		func(a, b Order) bool { return a.ID > b.ID },
		3,
	)

	require.Len(t, top[1], 3)
	assert.Equal(t, uint(4), top[1][0].ID)
	assert.Equal(t, uint(3), top[1][1].ID)
	assert.Equal(t, uint(2), top[1][2].ID)

	t.Run("SmallPartitionKept", func(t *testing.T) {
		require.Len(t, top[2], 1)
		assert.Equal(t, uint(5), top[2][0].ID)
	})
}

func TestScalarLookup(t *testing.T) {
	products := []Product{
		{ID: 1, Price: 30},
		{ID: 2, Price: 10},
		{ID: 3, Price: 20},
	}

	t.Run("FirstOfOrderedInner", func(t *testing.T) {
		got := ScalarLookup(products,
			func(Product) bool { return true },
			func(a, b Product) bool { return a.Price < b.Price },
			func(p Product) uint { return p.ID },
		)

		require.NotNil(t, got)
		assert.Equal(t, uint(2), *got)
	})

	t.Run("NilWhenEmpty", func(t *testing.T) {
		got := ScalarLookup(products,
			func(p Product) bool { return p.Price > 1000 },
			func(a, b Product) bool { return a.Price < b.Price },
			func(p Product) uint { return p.ID },
		)

		assert.Nil(t, got)
	})
}

func TestExists(t *testing.T) {
	products := []Product{{ID: 1, Price: 120}}

	assert.True(t, Exists(products, func(p Product) bool { return p.Price > 100 }))
	assert.False(t, Exists(products, func(p Product) bool { return p.Price > 200 }))
	assert.False(t, Exists(nil, func(p Product) bool { return true }))
}

func TestUnion(t *testing.T) {
	a := []ProductRef{{ProductID: 1, Name: "a"}, {ProductID: 2, Name: "b"}}
	b := []ProductRef{{ProductID: 2, Name: "b"}, {ProductID: 3, Name: "c"}}

	got := Union(a, b)

	require.Len(t, got, 3)
	assert.Equal(t, []ProductRef{
		{ProductID: 1, Name: "a"},
		{ProductID: 2, Name: "b"},
		{ProductID: 3, Name: "c"},
	}, got)

	t.Run("TupleIdentity", func(t *testing.T) {
		// Same id with a different name is a different tuple.
		got := Union(
			[]ProductRef{{ProductID: 1, Name: "a"}},
			[]ProductRef{{ProductID: 1, Name: "renamed"}},
		)
		assert.Len(t, got, 2)
	})
}

func TestClassify(t *testing.T) {
	inStock := Product{ID: 1, Stock: 5}
	outOfStock := Product{ID: 2, Stock: 0}

	pred := func(p Product) bool { return p.Stock > 0 }

	assert.Equal(t, "In Stock", Classify(inStock, pred, "In Stock", "Out of Stock"))
	assert.Equal(t, "Out of Stock", Classify(outOfStock, pred, "In Stock", "Out of Stock"))
}

func TestRawAggregates(t *testing.T) {
	t.Run("SumMinMax", func(t *testing.T) {
		vals := []float64{3, 1, 2}

		assert.Equal(t, 6.0, SumOf(vals))
		require.NotNil(t, MinOf(vals))
		assert.Equal(t, 1.0, *MinOf(vals))
		require.NotNil(t, MaxOf(vals))
		assert.Equal(t, 3.0, *MaxOf(vals))
	})

	t.Run("AvgNilOnEmpty", func(t *testing.T) {
		assert.Nil(t, AvgOf[float64](nil))
		assert.Nil(t, MinOf[float64](nil))
		assert.Nil(t, MaxOf[float64](nil))
	})

	t.Run("Avg", func(t *testing.T) {
		avg := AvgOf([]float64{10, 20})
		require.NotNil(t, avg)
		assert.Equal(t, 15.0, *avg)
	})
}
