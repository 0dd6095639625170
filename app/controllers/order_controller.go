package controllers

import (
	"github.com/shashiranjanraj/kashvi-shop/app/resources"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

type placeOrderRequest struct {
	UserID uint               `json:"user_id" validate:"required"`
	Items  []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Store places an order. POST /orders/
func (oc *OrderController) Store(c *ctx.Context) {
	var in placeOrderRequest
	if !c.BindJSON(&in) {
		return
	}

	lines := make([]services.CartLine, len(in.Items))
	for i, it := range in.Items {
		lines[i] = services.CartLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	summary, err := oc.orders.PlaceOrder(c.Context(), in.UserID, lines)
	if err != nil {
		fail(c, err, "Could not place order")
		return
	}
	c.Created(resource.One(*summary, resources.OrderSummary))
}

// Show returns one order with its items. GET /orders/{id}
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}
	order, err := oc.orders.Get(c.Context(), id)
	if err != nil {
		fail(c, err, "Could not load order")
		return
	}
	c.Success(resource.One(order, resources.Order))
}
