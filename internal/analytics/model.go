package analytics

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

type User struct {
	ID       uint
	Username string
}

type Product struct {
	ID    uint
	Name  string
	Price float64
	Stock int
}

type Order struct {
	ID        uint
	UserID    uint
	OrderedAt time.Time
	Status    OrderStatus
}

type OrderLine struct {
	OrderID   uint
	ProductID uint
	Quantity  int
}

// Snapshot is the fixed state of all entities at the instant a report
// begins. Every sub-result of a report is computed from the same snapshot;
// reports never mutate it.
type Snapshot struct {
	Users    []User
	Products []Product
	Orders   []Order
	Lines    []OrderLine
}

func (s *Snapshot) productsByID() map[uint]Product {
	m := make(map[uint]Product, len(s.Products))
	for _, p := range s.Products {
		m[p.ID] = p
	}
	return m
}

func (s *Snapshot) usersByID() map[uint]User {
	m := make(map[uint]User, len(s.Users))
	for _, u := range s.Users {
		m[u.ID] = u
	}
	return m
}

func (s *Snapshot) ordersByID() map[uint]Order {
	m := make(map[uint]Order, len(s.Orders))
	for _, o := range s.Orders {
		m[o.ID] = o
	}
	return m
}

// --- User Order Summary report ---

type UserSummaryRow struct {
	UserID        uint       `json:"id"`
	Username      string     `json:"username"`
	TotalOrders   int        `json:"total_orders"`
	TotalSpent    *float64   `json:"total_spent"`
	LastOrderDate *time.Time `json:"last_order_date"`
}

type UserRankRow struct {
	UserID     uint   `json:"id"`
	Username   string `json:"username"`
	OrderCount int    `json:"order_count"`
	Rank       int    `json:"rank"`
}

type RecentOrderRow struct {
	OrderID   uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	OrderedAt time.Time `json:"ordered_at"`
}

type UserOrderRow struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	OrderID   uint      `json:"order_id"`
	OrderedAt time.Time `json:"ordered_at"`
}

type UserOrderSummaryReport struct {
	UserSummary     []UserSummaryRow `json:"user_summary"`
	UserRanks       []UserRankRow    `json:"user_ranks"`
	LastThreeOrders []RecentOrderRow `json:"last_3_orders"`
	UserOrders      []UserOrderRow   `json:"user_orders"`
}

// --- Product & Order Statistics report ---

type OrderTotalRow struct {
	OrderID    uint     `json:"id"`
	Username   string   `json:"username"`
	TotalPrice *float64 `json:"total_price"`
}

type ProductQuantityRow struct {
	ProductID     uint   `json:"id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type DailyOrderRow struct {
	Date  string `json:"order_date"`
	Count int    `json:"count"`
}

type InventoryValueRow struct {
	ProductID  uint    `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	TotalValue float64 `json:"total_value"`
}

type OrderPriceRangeRow struct {
	OrderID  uint     `json:"id"`
	Username string   `json:"username"`
	MaxPrice *float64 `json:"max_price"`
	MinPrice *float64 `json:"min_price"`
}

type ProductOrderCountRow struct {
	ProductID  uint   `json:"id"`
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}

type PriceStats struct {
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	AvgPrice *float64 `json:"avg_price"`
}

type OrderMaxPriceRow struct {
	OrderID  uint    `json:"order_id"`
	Username string  `json:"username"`
	MaxPrice float64 `json:"max_price"`
}

type OrderProductStatsReport struct {
	OrderTotals               []OrderTotalRow        `json:"order_totals"`
	MostOrderedProducts       []ProductQuantityRow   `json:"most_ordered_products"`
	DailyOrders               []DailyOrderRow        `json:"daily_orders"`
	TotalOrderedProducts      *int                   `json:"total_ordered_products"`
	ProductInventoryValue     []InventoryValueRow    `json:"product_inventory_value"`
	OrderPriceRange           []OrderPriceRangeRow   `json:"order_price_range"`
	ProductOrderCount         []ProductOrderCountRow `json:"product_order_count"`
	ProductPriceStats         PriceStats             `json:"product_price_stats"`
	ExpensiveProductsPerOrder []OrderMaxPriceRow     `json:"expensive_products_per_order"`
}

// --- Order Analysis report ---

type ProductRef struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
}

type ProductPriceRow struct {
	ProductID uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type OrderUserRow struct {
	OrderID  uint   `json:"id"`
	Username string `json:"username"`
}

type StockStatusRow struct {
	ProductID   uint   `json:"id"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	StockStatus string `json:"stock_status"`
}

type MultiProductOrderRow struct {
	OrderID      uint `json:"id"`
	ProductCount int  `json:"product_count"`
}

type ProductDetailRow struct {
	ProductID uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type OrderTimeRow struct {
	OrderID   uint      `json:"id"`
	OrderedAt time.Time `json:"ordered_at"`
}

type OrderTotalOnlyRow struct {
	OrderID    uint     `json:"id"`
	TotalPrice *float64 `json:"total_price"`
}

type OrderLineDetail struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderWithProducts struct {
	OrderID  uint              `json:"order_id"`
	Username string            `json:"user"`
	Products []OrderLineDetail `json:"products"`
}

type OrderAnalysisReport struct {
	ShippedCount                 int                    `json:"shipped_count"`
	ZeroStockProducts            []ProductRef           `json:"zero_stock_products"`
	ExpensiveExists              []ProductPriceRow      `json:"expensive_exists"`
	OrdersWithCheapestProduct    []OrderUserRow         `json:"orders_with_cheapest_product"`
	ProductStockStatus           []StockStatusRow       `json:"product_stock_status"`
	MultiProductOrders           []MultiProductOrderRow `json:"multi_product_orders"`
	QFilteredProducts            []ProductDetailRow     `json:"q_filtered_products"`
	RecentOrders                 []OrderTimeRow         `json:"recent_orders"`
	CTEOrderTotals               []OrderTotalOnlyRow    `json:"cte_order_totals"`
	AvgPriceRaw                  *float64               `json:"avg_price_rawsql"`
	OrdersWithPrefetchedProducts []OrderWithProducts    `json:"orders_with_prefetched_products"`
	ProductUnion                 []ProductRef           `json:"product_union"`
}
