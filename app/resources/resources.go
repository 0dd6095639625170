// Package resources defines the JSON shape of every API response body.
package resources

import (
	"time"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

func Category(c models.Category) resource.Map {
	return resource.Map{"id": c.ID, "name": c.Name}
}

func Product(p services.ProductView) resource.Map {
	var category any
	if p.CategoryName != nil {
		category = *p.CategoryName
	}
	return resource.Map{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       resource.Money(p.Price),
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"category":    category,
	}
}

// User never exposes the password hash.
func User(u models.User) resource.Map {
	return resource.Map{"id": u.ID, "username": u.Username, "email": u.Email}
}

// OrderSummary is the body returned when an order is placed.
func OrderSummary(s services.OrderSummary) resource.Map {
	return resource.Map{
		"order_id": s.OrderID,
		"total":    resource.Money(s.Total),
		"items":    resource.Many(s.Items, placedLine),
	}
}

func placedLine(l services.PlacedLine) resource.Map {
	return resource.Map{
		"product_id": l.ProductID,
		"unit_price": resource.Money(l.UnitPrice),
		"quantity":   l.Quantity,
		"line_total": resource.Money(l.LineTotal),
	}
}

func Order(o models.Order) resource.Map {
	return resource.Map{
		"id":           o.ID,
		"user_id":      o.UserID,
		"total_amount": resource.Money(o.TotalAmount),
		"status":       o.Status,
		"created_at":   o.CreatedAt.UTC().Format(time.RFC3339),
		"items":        resource.Many(o.Items, orderItem),
	}
}

func orderItem(it models.OrderItem) resource.Map {
	return resource.Map{
		"id":         it.ID,
		"product_id": it.ProductID,
		"unit_price": resource.Money(it.UnitPrice),
		"quantity":   it.Quantity,
		"line_total": resource.Money(it.LineTotal),
	}
}
