package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analysisAsOf = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func TestBuildOrderAnalysis_ShippedCount(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	assert.Equal(t, 2, report.ShippedCount)
}

func TestBuildOrderAnalysis_ZeroStockProducts(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	assert.Equal(t, []ProductRef{{ProductID: 2, Name: "Gadget"}}, report.ZeroStockProducts)
}

func TestBuildOrderAnalysis_ExpensiveExists(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	require.Len(t, report.ExpensiveExists, 2)
	assert.Equal(t, "Gadget", report.ExpensiveExists[0].Name)
	assert.Equal(t, 600.0, report.ExpensiveExists[0].Price)
	assert.Equal(t, "Doohickey", report.ExpensiveExists[1].Name)
}

func TestBuildOrderAnalysis_OrdersWithCheapestProduct(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	// Widget at 10 is cheapest and appears in orders 1 and 4.
	assert.Equal(t, []OrderUserRow{
		{OrderID: 1, Username: "alice"},
		{OrderID: 4, Username: "bob"},
	}, report.OrdersWithCheapestProduct)

	t.Run("PriceTieBrokenByLowestID", func(t *testing.T) {
		snap := &Snapshot{
			Users:    []User{{ID: 1, Username: "alice"}},
			Products: []Product{{ID: 7, Name: "Seven", Price: 10, Stock: 1}, {ID: 3, Name: "Three", Price: 10, Stock: 1}},
			Orders:   []Order{{ID: 1, UserID: 1, OrderedAt: day(1), Status: StatusPending}},
			Lines:    []OrderLine{{OrderID: 1, ProductID: 3, Quantity: 1}},
		}

		report := BuildOrderAnalysis(snap, analysisAsOf)

		assert.Equal(t, []OrderUserRow{{OrderID: 1, Username: "alice"}}, report.OrdersWithCheapestProduct)
	})

	t.Run("NoProducts", func(t *testing.T) {
		report := BuildOrderAnalysis(&Snapshot{}, analysisAsOf)
		assert.Empty(t, report.OrdersWithCheapestProduct)
	})
}

func TestBuildOrderAnalysis_ProductStockStatus(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	require.Len(t, report.ProductStockStatus, 5)
	assert.Equal(t, "In Stock", report.ProductStockStatus[0].StockStatus)
	assert.Equal(t, "Out of Stock", report.ProductStockStatus[1].StockStatus)
	assert.Equal(t, "In Stock", report.ProductStockStatus[2].StockStatus)
}

func TestBuildOrderAnalysis_MultiProductOrders(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	assert.Equal(t, []MultiProductOrderRow{
		{OrderID: 1, ProductCount: 2},
		{OrderID: 4, ProductCount: 3},
	}, report.MultiProductOrders)
}

func TestBuildOrderAnalysis_QFilteredProducts(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	// price > 100 or stock < 10
	var names []string
	for _, p := range report.QFilteredProducts {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"Widget", "Gadget", "Doohickey", "Orphan"}, names)
}

func TestBuildOrderAnalysis_RecentOrders(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	// cutoff is 2026-01-11, which drops only order 1
	var ids []uint
	for _, o := range report.RecentOrders {
		ids = append(ids, o.OrderID)
	}
	assert.Equal(t, []uint{2, 3, 4}, ids)

	t.Run("AllTooOld", func(t *testing.T) {
		report := BuildOrderAnalysis(statsSnapshot(), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Empty(t, report.RecentOrders)
	})
}

func TestBuildOrderAnalysis_CTEOrderTotals(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	require.Len(t, report.CTEOrderTotals, 4)
	require.NotNil(t, report.CTEOrderTotals[0].TotalPrice)
	assert.Equal(t, 620.0, *report.CTEOrderTotals[0].TotalPrice)
	assert.Nil(t, report.CTEOrderTotals[2].TotalPrice)

	t.Run("AgreesWithOrderTotals", func(t *testing.T) {
		snap := statsSnapshot()
		stats := BuildOrderProductStats(snap)
		analysis := BuildOrderAnalysis(snap, analysisAsOf)

		require.Len(t, analysis.CTEOrderTotals, len(stats.OrderTotals))
		for i, row := range analysis.CTEOrderTotals {
			other := stats.OrderTotals[i]
			assert.Equal(t, other.OrderID, row.OrderID)
			if other.TotalPrice == nil {
				assert.Nil(t, row.TotalPrice)
			} else {
				require.NotNil(t, row.TotalPrice)
				assert.Equal(t, *other.TotalPrice, *row.TotalPrice)
			}
		}
	})
}

func TestBuildOrderAnalysis_AvgPriceRaw(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	require.NotNil(t, report.AvgPriceRaw)
	assert.Equal(t, 165.0, *report.AvgPriceRaw)

	t.Run("MatchesStructuredAverage", func(t *testing.T) {
		stats := BuildOrderProductStats(statsSnapshot())
		require.NotNil(t, stats.ProductPriceStats.AvgPrice)
		assert.Equal(t, *stats.ProductPriceStats.AvgPrice, *report.AvgPriceRaw)
	})

	t.Run("NilWithoutProducts", func(t *testing.T) {
		report := BuildOrderAnalysis(&Snapshot{}, analysisAsOf)
		assert.Nil(t, report.AvgPriceRaw)
	})
}

func TestBuildOrderAnalysis_OrdersWithPrefetchedProducts(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	require.Len(t, report.OrdersWithPrefetchedProducts, 4)

	first := report.OrdersWithPrefetchedProducts[0]
	assert.Equal(t, uint(1), first.OrderID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, []OrderLineDetail{
		{ProductID: 1, ProductName: "Widget", Quantity: 2},
		{ProductID: 2, ProductName: "Gadget", Quantity: 1},
	}, first.Products)

	t.Run("EmptyOrderHasEmptyList", func(t *testing.T) {
		third := report.OrdersWithPrefetchedProducts[2]
		assert.Equal(t, uint(3), third.OrderID)
		assert.Equal(t, []OrderLineDetail{}, third.Products)
	})

	t.Run("CapAtFive", func(t *testing.T) {
		snap := statsSnapshot()
		for id := uint(5); id <= 8; id++ {
			snap.Orders = append(snap.Orders, Order{ID: id, UserID: 1, OrderedAt: day(5), Status: StatusPending})
		}

		report := BuildOrderAnalysis(snap, analysisAsOf)
		assert.Len(t, report.OrdersWithPrefetchedProducts, 5)
	})
}

func TestBuildOrderAnalysis_ProductUnion(t *testing.T) {
	report := BuildOrderAnalysis(statsSnapshot(), analysisAsOf)

	// cheap (< 50) first in id order, then expensive (> 500)
	assert.Equal(t, []ProductRef{
		{ProductID: 1, Name: "Widget"},
		{ProductID: 3, Name: "Trinket"},
		{ProductID: 2, Name: "Gadget"},
	}, report.ProductUnion)
}

func TestBuildOrderAnalysis_Idempotent(t *testing.T) {
	snap := statsSnapshot()

	assert.Equal(t, BuildOrderAnalysis(snap, analysisAsOf), BuildOrderAnalysis(snap, analysisAsOf))
}
