package analytics

import "sort"

// BuildOrderProductStats computes the product/order statistics bundle.
func BuildOrderProductStats(snap *Snapshot) *OrderProductStatsReport {
	products := snap.productsByID()
	usersByID := snap.usersByID()
	linesByOrder := GroupBy(snap.Lines, func(l OrderLine) uint { return l.OrderID })
	linesByProduct := GroupBy(snap.Lines, func(l OrderLine) uint { return l.ProductID })

	orders := make([]Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	sortedProducts := make([]Product, len(snap.Products))
	copy(sortedProducts, snap.Products)
	sort.Slice(sortedProducts, func(i, j int) bool { return sortedProducts[i].ID < sortedProducts[j].ID })

	report := &OrderProductStatsReport{
		OrderTotals:               []OrderTotalRow{},
		MostOrderedProducts:       []ProductQuantityRow{},
		DailyOrders:               []DailyOrderRow{},
		ProductInventoryValue:     []InventoryValueRow{},
		OrderPriceRange:           []OrderPriceRangeRow{},
		ProductOrderCount:         []ProductOrderCountRow{},
		ExpensiveProductsPerOrder: []OrderMaxPriceRow{},
	}

	// order_totals: left-join, an order with no lines appears with a nil
	// total rather than being dropped.
	for _, o := range orders {
		row := OrderTotalRow{OrderID: o.ID, Username: usersByID[o.UserID].Username}
		if lines := linesByOrder[o.ID]; len(lines) > 0 {
			var total float64
			for _, l := range lines {
				total += products[l.ProductID].Price * float64(l.Quantity)
			}
			row.TotalPrice = &total
		}
		report.OrderTotals = append(report.OrderTotals, row)
	}

	// most_ordered_products: inner-join, never-ordered products excluded.
	type productQty struct {
		product Product
		qty     int
	}
	var quantities []productQty
	for _, p := range sortedProducts {
		lines := linesByProduct[p.ID]
		if len(lines) == 0 {
			continue
		}
		qtys := make([]int, 0, len(lines))
		for _, l := range lines {
			qtys = append(qtys, l.Quantity)
		}
		quantities = append(quantities, productQty{product: p, qty: SumOf(qtys)})
	}
	sort.SliceStable(quantities, func(i, j int) bool { return quantities[i].qty > quantities[j].qty })
	if len(quantities) > 5 {
		quantities = quantities[:5]
	}
	for _, pq := range quantities {
		report.MostOrderedProducts = append(report.MostOrderedProducts, ProductQuantityRow{
			ProductID:     pq.product.ID,
			Name:          pq.product.Name,
			TotalQuantity: pq.qty,
		})
	}

	// daily_orders: timestamps truncated to the calendar date, ascending.
	byDate := GroupBy(snap.Orders, func(o Order) string {
		return o.OrderedAt.Format("2006-01-02")
	})
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		report.DailyOrders = append(report.DailyOrders, DailyOrderRow{Date: d, Count: len(byDate[d])})
	}

	// total_ordered_products: nil when no lines exist anywhere.
	if len(snap.Lines) > 0 {
		qtys := make([]int, 0, len(snap.Lines))
		for _, l := range snap.Lines {
			qtys = append(qtys, l.Quantity)
		}
		total := SumOf(qtys)
		report.TotalOrderedProducts = &total
	}

	// product_inventory_value
	for _, p := range sortedProducts {
		report.ProductInventoryValue = append(report.ProductInventoryValue, InventoryValueRow{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			TotalValue: p.Price * float64(p.Stock),
		})
	}

	// order_price_range: nil/nil for an order with no lines.
	for _, o := range orders {
		row := OrderPriceRangeRow{OrderID: o.ID, Username: usersByID[o.UserID].Username}
		prices := make([]float64, 0, len(linesByOrder[o.ID]))
		for _, l := range linesByOrder[o.ID] {
			prices = append(prices, products[l.ProductID].Price)
		}
		row.MaxPrice = MaxOf(prices)
		row.MinPrice = MinOf(prices)
		report.OrderPriceRange = append(report.OrderPriceRange, row)
	}

	// product_order_count: left-join, never-ordered products report 0.
	for _, p := range sortedProducts {
		report.ProductOrderCount = append(report.ProductOrderCount, ProductOrderCountRow{
			ProductID:  p.ID,
			Name:       p.Name,
			OrderCount: DistinctCount(linesByProduct[p.ID], func(l OrderLine) uint { return l.OrderID }),
		})
	}

	// product_price_stats: avg is nil with no products.
	prices := make([]float64, 0, len(snap.Products))
	for _, p := range snap.Products {
		prices = append(prices, p.Price)
	}
	report.ProductPriceStats = PriceStats{
		MinPrice: MinOf(prices),
		MaxPrice: MaxOf(prices),
		AvgPrice: AvgOf(prices),
	}

	// expensive_products_per_order: orders with at least one line, sorted
	// descending by the max line price; order id ascending on equal price.
	type orderMax struct {
		order Order
		max   float64
	}
	var maxima []orderMax
	for _, o := range orders {
		linePrices := make([]float64, 0, len(linesByOrder[o.ID]))
		for _, l := range linesByOrder[o.ID] {
			linePrices = append(linePrices, products[l.ProductID].Price)
		}
		if m := MaxOf(linePrices); m != nil {
			maxima = append(maxima, orderMax{order: o, max: *m})
		}
	}
	sort.SliceStable(maxima, func(i, j int) bool { return maxima[i].max > maxima[j].max })
	for _, om := range maxima {
		report.ExpensiveProductsPerOrder = append(report.ExpensiveProductsPerOrder, OrderMaxPriceRow{
			OrderID:  om.order.ID,
			Username: usersByID[om.order.UserID].Username,
			MaxPrice: om.max,
		})
	}

	return report
}
