package analytics

import (
	"sort"
	"time"
)

// BuildOrderAnalysis computes the order analysis bundle. The recency
// filter uses the caller-supplied asOf instant, never the wall clock.
func BuildOrderAnalysis(snap *Snapshot, asOf time.Time) *OrderAnalysisReport {
	products := snap.productsByID()
	usersByID := snap.usersByID()
	linesByOrder := GroupBy(snap.Lines, func(l OrderLine) uint { return l.OrderID })

	orders := make([]Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	sortedProducts := make([]Product, len(snap.Products))
	copy(sortedProducts, snap.Products)
	sort.Slice(sortedProducts, func(i, j int) bool { return sortedProducts[i].ID < sortedProducts[j].ID })

	report := &OrderAnalysisReport{
		ZeroStockProducts:            []ProductRef{},
		ExpensiveExists:              []ProductPriceRow{},
		OrdersWithCheapestProduct:    []OrderUserRow{},
		ProductStockStatus:           []StockStatusRow{},
		MultiProductOrders:           []MultiProductOrderRow{},
		QFilteredProducts:            []ProductDetailRow{},
		RecentOrders:                 []OrderTimeRow{},
		CTEOrderTotals:               []OrderTotalOnlyRow{},
		OrdersWithPrefetchedProducts: []OrderWithProducts{},
		ProductUnion:                 []ProductRef{},
	}

	// shipped_count
	report.ShippedCount = len(Filter(snap.Orders, func(o Order) bool {
		return o.Status == StatusShipped
	}))

	// zero_stock_products
	for _, p := range sortedProducts {
		if p.Stock == 0 {
			report.ZeroStockProducts = append(report.ZeroStockProducts, ProductRef{ProductID: p.ID, Name: p.Name})
		}
	}

	// expensive_exists: an existence check of each product against itself,
	// degenerate but kept equivalent: every product priced > 100.
	for _, p := range sortedProducts {
		expensive := Exists(snap.Products, func(q Product) bool {
			return q.ID == p.ID && q.Price > 100
		})
		if expensive {
			report.ExpensiveExists = append(report.ExpensiveExists, ProductPriceRow{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
			})
		}
	}

	// orders_with_cheapest_product: lowest price, lowest id on ties.
	cheapest := ScalarLookup(snap.Products,
		func(Product) bool { return true },
		func(a, b Product) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		},
		func(p Product) uint { return p.ID },
	)
	if cheapest != nil {
		for _, o := range orders {
			contains := Exists(linesByOrder[o.ID], func(l OrderLine) bool {
				return l.ProductID == *cheapest
			})
			if contains {
				report.OrdersWithCheapestProduct = append(report.OrdersWithCheapestProduct, OrderUserRow{
					OrderID:  o.ID,
					Username: usersByID[o.UserID].Username,
				})
			}
		}
	}

	// product_stock_status
	for _, p := range sortedProducts {
		report.ProductStockStatus = append(report.ProductStockStatus, StockStatusRow{
			ProductID:   p.ID,
			Name:        p.Name,
			Stock:       p.Stock,
			StockStatus: Classify(p, func(p Product) bool { return p.Stock > 0 }, "In Stock", "Out of Stock"),
		})
	}

	// multi_product_orders: two or more lines.
	for _, o := range orders {
		if count := len(linesByOrder[o.ID]); count >= 2 {
			report.MultiProductOrders = append(report.MultiProductOrders, MultiProductOrderRow{
				OrderID:      o.ID,
				ProductCount: count,
			})
		}
	}

	// q_filtered_products: price > 100 OR stock < 10.
	for _, p := range sortedProducts {
		if p.Price > 100 || p.Stock < 10 {
			report.QFilteredProducts = append(report.QFilteredProducts, ProductDetailRow{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Stock:     p.Stock,
			})
		}
	}

	// recent_orders: within the last 30 days of asOf.
	cutoff := asOf.AddDate(0, 0, -30)
	for _, o := range orders {
		if !o.OrderedAt.Before(cutoff) {
			report.RecentOrders = append(report.RecentOrders, OrderTimeRow{OrderID: o.ID, OrderedAt: o.OrderedAt})
		}
	}

	// cte_order_totals: each order correlated against its precomputed
	// per-order total; must match order_totals numerically.
	type orderTotal struct {
		orderID uint
		total   float64
	}
	var totals []orderTotal
	for _, o := range orders {
		lines := linesByOrder[o.ID]
		if len(lines) == 0 {
			continue
		}
		var total float64
		for _, l := range lines {
			total += float64(l.Quantity) * products[l.ProductID].Price
		}
		totals = append(totals, orderTotal{orderID: o.ID, total: total})
	}
	for _, o := range orders {
		row := OrderTotalOnlyRow{OrderID: o.ID}
		row.TotalPrice = ScalarLookup(totals,
			func(t orderTotal) bool { return t.orderID == o.ID },
			func(a, b orderTotal) bool { return a.orderID < b.orderID },
			func(t orderTotal) float64 { return t.total },
		)
		report.CTEOrderTotals = append(report.CTEOrderTotals, row)
	}

	// avg_price_rawsql: the raw-aggregate escape hatch over the bare price
	// column; numerically identical to the structured average.
	prices := make([]float64, 0, len(snap.Products))
	for _, p := range snap.Products {
		prices = append(prices, p.Price)
	}
	report.AvgPriceRaw = AvgOf(prices)

	// orders_with_prefetched_products: first 5 orders by id, denormalized.
	prefetch := orders
	if len(prefetch) > 5 {
		prefetch = prefetch[:5]
	}
	for _, o := range prefetch {
		row := OrderWithProducts{
			OrderID:  o.ID,
			Username: usersByID[o.UserID].Username,
			Products: []OrderLineDetail{},
		}
		for _, l := range linesByOrder[o.ID] {
			row.Products = append(row.Products, OrderLineDetail{
				ProductID:   l.ProductID,
				ProductName: products[l.ProductID].Name,
				Quantity:    l.Quantity,
			})
		}
		report.OrdersWithPrefetchedProducts = append(report.OrdersWithPrefetchedProducts, row)
	}

	// product_union: cheap (< 50) united with expensive (> 500), deduped
	// on the (id, name) tuple.
	var cheap, pricey []ProductRef
	for _, p := range sortedProducts {
		if p.Price < 50 {
			cheap = append(cheap, ProductRef{ProductID: p.ID, Name: p.Name})
		}
		if p.Price > 500 {
			pricey = append(pricey, ProductRef{ProductID: p.ID, Name: p.Name})
		}
	}
	report.ProductUnion = Union(cheap, pricey)

	return report
}
