package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

// CartLine is one requested (product, quantity) pair.
type CartLine struct {
	ProductID uint
	Quantity  int
}

// PlacedLine is a cart line as recorded on the order.
type PlacedLine struct {
	ProductID uint
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// OrderSummary is the result of a successful placement. Items follow the
// order of the cart lines.
type OrderSummary struct {
	OrderID uint
	Total   decimal.Decimal
	Items   []PlacedLine
}

// OrderService places and reads orders.
type OrderService struct {
	db        *gorm.DB
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	txTimeout time.Duration
}

// NewOrderService builds an OrderService. txTimeout bounds each placement
// transaction; zero means only the caller's context applies.
func NewOrderService(db *gorm.DB, products *repositories.ProductRepository, txTimeout time.Duration) *OrderService {
	return &OrderService{
		db:        db,
		products:  products,
		orders:    repositories.NewOrderRepository(db),
		txTimeout: txTimeout,
	}
}

// PlaceOrder reserves stock for every line and records the order in a single
// transaction. Either all lines are applied or nothing is. The returned error
// is always an *OrderError.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID uint, lines []CartLine) (*OrderSummary, error) {
	start := time.Now()
	log := logger.WithCtx(ctx).With("user_id", buyerID)

	summary, oerr := s.place(ctx, buyerID, lines)
	metrics.ObserveOrder(outcome(oerr), start)

	if oerr != nil {
		if oerr.Client() {
			log.Info("order rejected", "reason", oerr.Detail)
		} else {
			log.Error("order placement failed", "error", oerr.Err)
		}
		return nil, oerr
	}

	ids := make([]uint, 0, len(summary.Items))
	for _, it := range summary.Items {
		ids = append(ids, it.ProductID)
	}
	if err := s.products.Forget(ctx, ids...); err != nil {
		log.Warn("product cache invalidation failed", "error", err)
	}

	log.Info("order placed", "order_id", summary.OrderID, "total", summary.Total.StringFixed(2))
	return summary, nil
}

func (s *OrderService) place(ctx context.Context, buyerID uint, lines []CartLine) (*OrderSummary, *OrderError) {
	if len(lines) == 0 {
		return nil, invalidRequest("No items")
	}

	ids := make([]uint, 0, len(lines))
	want := make(map[uint]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, invalidRequest("Quantity for product %d must be positive", l.ProductID)
		}
		if _, seen := want[l.ProductID]; !seen {
			ids = append(ids, l.ProductID)
		}
		want[l.ProductID] += l.Quantity
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	var summary *OrderSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		orders := s.orders.WithTx(tx)

		locked, err := products.LockForUpdate(ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]models.Product, len(locked))
		for _, p := range locked {
			byID[p.ID] = p
		}

		// Validate everything before the first write. Duplicate lines for one
		// product are checked against their combined quantity.
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return productNotFound(l.ProductID)
			}
			if want[l.ProductID] > p.Stock {
				return insufficientStock(l.ProductID)
			}
		}

		order := models.Order{UserID: buyerID, TotalAmount: decimal.Zero, Status: models.OrderStatusPending}
		if err := orders.Create(&order); err != nil {
			return err
		}

		total := decimal.Zero
		placed := make([]PlacedLine, 0, len(lines))
		for _, l := range lines {
			p := byID[l.ProductID]

			ok, err := products.DecrementStock(p.ID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return insufficientStock(p.ID)
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: p.ID,
				UnitPrice: p.Price,
				Quantity:  l.Quantity,
				LineTotal: lineTotal,
			}
			if err := orders.AddItem(&item); err != nil {
				return err
			}

			total = total.Add(lineTotal)
			placed = append(placed, PlacedLine{
				ProductID: p.ID,
				UnitPrice: p.Price,
				Quantity:  l.Quantity,
				LineTotal: lineTotal,
			})
		}

		if err := orders.SetTotal(order.ID, total); err != nil {
			return err
		}

		summary = &OrderSummary{OrderID: order.ID, Total: total, Items: placed}
		return nil
	})
	if err != nil {
		var oerr *OrderError
		if errors.As(err, &oerr) {
			return nil, oerr
		}
		return nil, internal(err)
	}
	return summary, nil
}

func outcome(err *OrderError) string {
	if err == nil {
		return "placed"
	}
	switch err.Kind {
	case ErrInvalidRequest:
		return "invalid"
	case ErrProductNotFound:
		return "product_not_found"
	case ErrInsufficientStock:
		return "insufficient_stock"
	default:
		return "error"
	}
}

// Get returns an order with its items.
func (s *OrderService) Get(ctx context.Context, id uint) (models.Order, error) {
	o, err := s.orders.FindWithItems(ctx, id)
	if orm.IsNotFound(err) {
		return o, notFound("Order not found")
	}
	return o, err
}
