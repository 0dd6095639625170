package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/internal/testdb"
	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
)

type OrderServiceSuite struct {
	suite.Suite
	db       *gorm.DB
	store    cache.Store
	products *repositories.ProductRepository
	svc      *services.OrderService
	buyer    models.User
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.db = testdb.Open(s.T())
	s.store = cache.NewMemoryStore()
	s.products = repositories.NewProductRepository(s.db, s.store, time.Minute)
	s.svc = services.NewOrderService(s.db, s.products, 5*time.Second)
	s.buyer = testdb.User(s.T(), s.db, "alice")
}

func (s *OrderServiceSuite) money(want string, got decimal.Decimal) {
	s.T().Helper()
	s.Equal(want, got.StringFixed(2))
}

func (s *OrderServiceSuite) count(model any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func (s *OrderServiceSuite) assertNothingWritten() {
	s.Zero(s.count(&models.Order{}))
	s.Zero(s.count(&models.OrderItem{}))
}

func (s *OrderServiceSuite) TestSingleLine() {
	a := testdb.Product(s.T(), s.db, "A", "5.00", 10)

	sum, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: 3}})
	s.Require().NoError(err)

	s.money("15.00", sum.Total)
	s.Require().Len(sum.Items, 1)
	s.money("5.00", sum.Items[0].UnitPrice)
	s.money("15.00", sum.Items[0].LineTotal)
	s.Equal(7, testdb.Stock(s.T(), s.db, a.ID))

	order, err := s.svc.Get(context.Background(), sum.OrderID)
	s.Require().NoError(err)
	s.Equal(s.buyer.ID, order.UserID)
	s.Equal(models.OrderStatusPending, order.Status)
	s.money("15.00", order.TotalAmount)
	s.Require().Len(order.Items, 1)
	s.Equal(3, order.Items[0].Quantity)
}

func (s *OrderServiceSuite) TestMultiLineTotalsFollowInputOrder() {
	a := testdb.Product(s.T(), s.db, "A", "10.00", 5)
	b := testdb.Product(s.T(), s.db, "B", "2.50", 10)
	c := testdb.Product(s.T(), s.db, "C", "0.10", 100)

	sum, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{
		{ProductID: c.ID, Quantity: 3},
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 4},
	})
	s.Require().NoError(err)

	s.Require().Len(sum.Items, 3)
	s.Equal(c.ID, sum.Items[0].ProductID)
	s.Equal(a.ID, sum.Items[1].ProductID)
	s.Equal(b.ID, sum.Items[2].ProductID)
	s.money("0.30", sum.Items[0].LineTotal)
	s.money("20.00", sum.Items[1].LineTotal)
	s.money("10.00", sum.Items[2].LineTotal)
	s.money("30.30", sum.Total)

	order, err := s.svc.Get(context.Background(), sum.OrderID)
	s.Require().NoError(err)
	lineSum := decimal.Zero
	for _, it := range order.Items {
		s.True(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.LineTotal))
		lineSum = lineSum.Add(it.LineTotal)
	}
	s.True(lineSum.Equal(order.TotalAmount))

	s.Equal(3, testdb.Stock(s.T(), s.db, a.ID))
	s.Equal(6, testdb.Stock(s.T(), s.db, b.ID))
	s.Equal(97, testdb.Stock(s.T(), s.db, c.ID))
}

func (s *OrderServiceSuite) TestInsufficientStockLeavesEverythingUntouched() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)
	b := testdb.Product(s.T(), s.db, "B", "1.00", 2)
	counter := metrics.OrdersPlaced.WithLabelValues("insufficient_stock")
	before := testutil.ToFloat64(counter)

	_, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: b.ID, Quantity: 5},
	})

	s.Require().ErrorIs(err, services.ErrInsufficientStock)
	var oerr *services.OrderError
	s.Require().ErrorAs(err, &oerr)
	s.Equal(b.ID, oerr.ProductID)
	s.True(oerr.Client())
	s.Equal(10, testdb.Stock(s.T(), s.db, a.ID))
	s.Equal(2, testdb.Stock(s.T(), s.db, b.ID))
	s.assertNothingWritten()
	s.Equal(before+1, testutil.ToFloat64(counter))
}

func (s *OrderServiceSuite) TestUnknownProduct() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)

	_, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})

	s.Require().ErrorIs(err, services.ErrProductNotFound)
	s.EqualError(err, "Product 9999 not found")
	s.Equal(10, testdb.Stock(s.T(), s.db, a.ID))
	s.assertNothingWritten()
}

func (s *OrderServiceSuite) TestEmptyCart() {
	_, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, nil)
	s.Require().ErrorIs(err, services.ErrInvalidRequest)
	s.EqualError(err, "No items")
	s.assertNothingWritten()
}

func (s *OrderServiceSuite) TestNonPositiveQuantity() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)

	for _, qty := range []int{0, -3} {
		_, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: qty}})
		s.Require().ErrorIs(err, services.ErrInvalidRequest)
		s.Contains(err.Error(), "must be positive")
	}
	s.Equal(10, testdb.Stock(s.T(), s.db, a.ID))
	s.assertNothingWritten()
}

func (s *OrderServiceSuite) TestDuplicateLinesAreCheckedTogether() {
	a := testdb.Product(s.T(), s.db, "A", "3.00", 5)

	_, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: a.ID, Quantity: 3},
	})
	s.Require().ErrorIs(err, services.ErrInsufficientStock)
	s.Equal(5, testdb.Stock(s.T(), s.db, a.ID))

	sum, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: a.ID, Quantity: 3},
	})
	s.Require().NoError(err)
	s.Len(sum.Items, 2)
	s.money("15.00", sum.Total)
	s.Zero(testdb.Stock(s.T(), s.db, a.ID))
}

func (s *OrderServiceSuite) TestUnitPriceIsSnapshotted() {
	a := testdb.Product(s.T(), s.db, "A", "4.00", 10)

	sum, err := s.svc.PlaceOrder(context.Background(), s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: 2}})
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Product{}).Where("id = ?", a.ID).
		Update("price", decimal.RequireFromString("9.99")).Error)

	order, err := s.svc.Get(context.Background(), sum.OrderID)
	s.Require().NoError(err)
	s.money("4.00", order.Items[0].UnitPrice)
	s.money("8.00", order.TotalAmount)
}

func (s *OrderServiceSuite) TestUnknownBuyerIsInternal() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)

	_, err := s.svc.PlaceOrder(context.Background(), 4242, []services.CartLine{{ProductID: a.ID, Quantity: 1}})

	s.Require().ErrorIs(err, services.ErrInternal)
	var oerr *services.OrderError
	s.Require().ErrorAs(err, &oerr)
	s.Equal("Could not place order", oerr.Detail)
	s.False(oerr.Client())
	s.Equal(10, testdb.Stock(s.T(), s.db, a.ID))
	s.assertNothingWritten()
}

func (s *OrderServiceSuite) TestCancelledContextRollsBack() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.svc.PlaceOrder(ctx, s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: 1}})

	s.Require().ErrorIs(err, services.ErrInternal)
	s.ErrorIs(err, context.Canceled)
	s.Equal(10, testdb.Stock(s.T(), s.db, a.ID))
	s.assertNothingWritten()
}

func (s *OrderServiceSuite) TestPlacementRefreshesCachedProduct() {
	ctx := context.Background()
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)

	cached, err := s.products.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(10, cached.Stock)

	_, err = s.svc.PlaceOrder(ctx, s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: 4}})
	s.Require().NoError(err)

	fresh, err := s.products.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(6, fresh.Stock)
}

func (s *OrderServiceSuite) TestStaleCachedCopyDoesNotHideStock() {
	ctx := context.Background()
	a := testdb.Product(s.T(), s.db, "A", "1.00", 10)

	stale, err := s.products.FindByID(ctx, a.ID)
	s.Require().NoError(err)

	_, err = s.svc.PlaceOrder(ctx, s.buyer.ID, []services.CartLine{{ProductID: a.ID, Quantity: 4}})
	s.Require().NoError(err)

	// A read that started before the commit writes its copy back late.
	s.Require().NoError(s.store.Set(ctx, repositories.ProductKey(a.ID), stale, time.Minute))

	got, err := s.products.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(6, got.Stock)
	s.Equal("A", got.Name)
}

func (s *OrderServiceSuite) TestLastUnitGoesToExactlyOneBuyer() {
	a := testdb.Product(s.T(), s.db, "A", "1.00", 1)
	bob := testdb.User(s.T(), s.db, "bob")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, buyer := range []uint{s.buyer.ID, bob.ID} {
		wg.Add(1)
		go func(i int, buyer uint) {
			defer wg.Done()
			_, errs[i] = s.svc.PlaceOrder(context.Background(), buyer, []services.CartLine{{ProductID: a.ID, Quantity: 1}})
		}(i, buyer)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, services.ErrInsufficientStock):
			short++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, ok)
	s.Equal(1, short)
	s.Zero(testdb.Stock(s.T(), s.db, a.ID))
	s.Equal(int64(1), s.count(&models.Order{}))
}

func (s *OrderServiceSuite) TestConcurrentBuyersNeverOversell() {
	a := testdb.Product(s.T(), s.db, "A", "2.00", 5)
	b := testdb.Product(s.T(), s.db, "B", "3.00", 50)

	const buyers = 10
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate line order so carts overlap in both directions.
			lines := []services.CartLine{{ProductID: a.ID, Quantity: 1}, {ProductID: b.ID, Quantity: 2}}
			if i%2 == 1 {
				lines[0], lines[1] = lines[1], lines[0]
			}
			_, errs[i] = s.svc.PlaceOrder(context.Background(), s.buyer.ID, lines)
		}(i)
	}
	wg.Wait()

	placed := 0
	for _, err := range errs {
		if err == nil {
			placed++
			continue
		}
		s.ErrorIs(err, services.ErrInsufficientStock)
	}
	s.Equal(5, placed)
	s.Zero(testdb.Stock(s.T(), s.db, a.ID))
	s.Equal(40, testdb.Stock(s.T(), s.db, b.ID))
	s.Equal(int64(placed), s.count(&models.Order{}))
	s.Equal(int64(placed*2), s.count(&models.OrderItem{}))
}

func (s *OrderServiceSuite) TestGetMissingOrder() {
	_, err := s.svc.Get(context.Background(), 12345)
	s.Require().ErrorIs(err, services.ErrNotFound)
	s.EqualError(err, "Order not found")
}
