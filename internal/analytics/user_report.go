package analytics

import (
	"sort"
	"time"
)

// BuildUserOrderSummary computes the per-user spend/rank/recency bundle.
// All four sub-results read the same snapshot.
func BuildUserOrderSummary(snap *Snapshot) *UserOrderSummaryReport {
	products := snap.productsByID()
	ordersByUser := GroupBy(snap.Orders, func(o Order) uint { return o.UserID })
	linesByOrder := GroupBy(snap.Lines, func(l OrderLine) uint { return l.OrderID })

	users := make([]User, len(snap.Users))
	copy(users, snap.Users)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	report := &UserOrderSummaryReport{
		UserSummary:     make([]UserSummaryRow, 0, len(users)),
		UserRanks:       make([]UserRankRow, 0, len(users)),
		LastThreeOrders: []RecentOrderRow{},
		UserOrders:      []UserOrderRow{},
	}

	// user_summary: total_spent stays nil for a user with zero lines.
	for _, u := range users {
		row := UserSummaryRow{
			UserID:      u.ID,
			Username:    u.Username,
			TotalOrders: DistinctCount(ordersByUser[u.ID], func(o Order) uint { return o.ID }),
		}

		var spent float64
		var hasLines bool
		var last *time.Time

		for _, o := range ordersByUser[u.ID] {
			for _, l := range linesByOrder[o.ID] {
				spent += products[l.ProductID].Price * float64(l.Quantity)
				hasLines = true
			}
			if last == nil || o.OrderedAt.After(*last) {
				t := o.OrderedAt
				last = &t
			}
		}

		if hasLines {
			row.TotalSpent = &spent
		}
		row.LastOrderDate = last
		report.UserSummary = append(report.UserSummary, row)
	}

	// user_ranks: tie-aware RANK on order_count, users with zero orders
	// included. Feeding users in id order keeps ties deterministic.
	ranked := RankWithTies(users, func(u User) float64 {
		return float64(len(ordersByUser[u.ID]))
	})
	for _, r := range ranked {
		report.UserRanks = append(report.UserRanks, UserRankRow{
			UserID:     r.Row.ID,
			Username:   r.Row.Username,
			OrderCount: int(r.Score),
			Rank:       r.Rank,
		})
	}

	// last_3_orders: newest first, order id descending breaks timestamp ties.
	top := TopNPerPartition(snap.Orders,
		func(o Order) uint { return o.UserID },
		func(a, b Order) bool {
			if !a.OrderedAt.Equal(b.OrderedAt) {
				return a.OrderedAt.After(b.OrderedAt)
			}
			return a.ID > b.ID
		},
		3,
	)
	for _, u := range users {
		for _, o := range top[u.ID] {
			report.LastThreeOrders = append(report.LastThreeOrders, RecentOrderRow{
				OrderID:   o.ID,
				UserID:    o.UserID,
				OrderedAt: o.OrderedAt,
			})
		}
	}

	// user_orders: flat audit listing, (user id asc, ordered_at desc).
	usersByID := snap.usersByID()
	orders := make([]Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].UserID != orders[j].UserID {
			return orders[i].UserID < orders[j].UserID
		}
		if !orders[i].OrderedAt.Equal(orders[j].OrderedAt) {
			return orders[i].OrderedAt.After(orders[j].OrderedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	for _, o := range orders {
		report.UserOrders = append(report.UserOrders, UserOrderRow{
			UserID:    o.UserID,
			Username:  usersByID[o.UserID].Username,
			OrderID:   o.ID,
			OrderedAt: o.OrderedAt,
		})
	}

	return report
}
