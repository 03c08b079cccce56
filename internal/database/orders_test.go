package database

import (
	"errors"
	"testing"

	"store-manager/internal/models"
)

func TestCreateOrderWithItems(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	pA := seedProduct(t, "cola", 500, 300, 5)
	pB := seedProduct(t, "chips", 200, 100, 5)

	order, err := CreateOrder(user.ID, []OrderItemInput{
		{ProductID: pA.ID, Quantity: 10, Price: 300},
		{ProductID: pB.ID, Quantity: 20, Price: 100},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Errorf("expected pending got %s", order.Status)
	}
	if order.Total != 5000 {
		t.Errorf("expected total 5000 got %.2f", order.Total)
	}

	var itemCount int64
	DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	if itemCount != 2 {
		t.Errorf("expected 2 items got %d", itemCount)
	}

	// Creating an order never touches stock
	if got := productQuantity(t, pA.ID); got != 5 {
		t.Errorf("expected stock 5 got %d", got)
	}
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	pA := seedProduct(t, "cola", 500, 300, 5)

	_, err := CreateOrder(user.ID, []OrderItemInput{
		{ProductID: pA.ID, Quantity: 10, Price: 300},
		{ProductID: 9999, Quantity: 1, Price: 50},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}

	var orderCount, itemCount int64
	DB.Model(&models.Order{}).Count(&orderCount)
	DB.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Errorf("expected no writes, got %d orders %d items", orderCount, itemCount)
	}
}

func TestOrderShippedIncrementsStockOnce(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	pA := seedProduct(t, "cola", 500, 300, 5)
	pB := seedProduct(t, "chips", 200, 100, 2)

	order, err := CreateOrder(user.ID, []OrderItemInput{
		{ProductID: pA.ID, Quantity: 10, Price: 300},
		{ProductID: pB.ID, Quantity: 3, Price: 100},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// pending -> confirmed has no stock effect
	if _, err := UpdateOrderStatus(order.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := productQuantity(t, pA.ID); got != 5 {
		t.Errorf("confirm changed stock: %d", got)
	}

	// confirmed -> shipped adds each item's quantity exactly once
	if _, err := UpdateOrderStatus(order.ID, models.StatusShipped); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if got := productQuantity(t, pA.ID); got != 15 {
		t.Errorf("expected 15 got %d", got)
	}
	if got := productQuantity(t, pB.ID); got != 5 {
		t.Errorf("expected 5 got %d", got)
	}

	// Re-applying the terminal transition must fail and not double-increment
	_, err = UpdateOrderStatus(order.ID, models.StatusShipped)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState got %v", err)
	}
	if got := productQuantity(t, pA.ID); got != 15 {
		t.Errorf("double increment: expected 15 got %d", got)
	}
}

func TestOrderTransitionTable(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	p := seedProduct(t, "cola", 500, 300, 5)

	newOrder := func() *models.Order {
		order, err := CreateOrder(user.ID, []OrderItemInput{{ProductID: p.ID, Quantity: 1, Price: 300}})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		return order
	}

	// pending -> shipped is not an edge: unconfirmed goods cannot arrive
	order := newOrder()
	if _, err := UpdateOrderStatus(order.ID, models.StatusShipped); !errors.Is(err, ErrInvalidState) {
		t.Errorf("pending->shipped: expected ErrInvalidState got %v", err)
	}
	if got := productQuantity(t, p.ID); got != 5 {
		t.Errorf("rejected transition touched stock: %d", got)
	}

	// pending -> cancelled is terminal
	order = newOrder()
	if _, err := UpdateOrderStatus(order.ID, models.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := UpdateOrderStatus(order.ID, models.StatusConfirmed); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancelled->confirmed: expected ErrInvalidState got %v", err)
	}

	// confirmed -> cancelled is allowed, without stock effect
	order = newOrder()
	if _, err := UpdateOrderStatus(order.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := UpdateOrderStatus(order.ID, models.StatusCancelled); err != nil {
		t.Fatalf("confirmed->cancelled: %v", err)
	}
	if got := productQuantity(t, p.ID); got != 5 {
		t.Errorf("cancel touched stock: %d", got)
	}

	// unknown order
	if _, err := UpdateOrderStatus(9999, models.StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound got %v", err)
	}
}

func TestDeleteOrderPendingOnly(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	p := seedProduct(t, "cola", 500, 300, 5)

	order, err := CreateOrder(user.ID, []OrderItemInput{{ProductID: p.ID, Quantity: 4, Price: 300}})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := DeleteOrder(order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	var orderCount, itemCount int64
	DB.Model(&models.Order{}).Count(&orderCount)
	DB.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Errorf("expected order and items gone, got %d orders %d items", orderCount, itemCount)
	}
	if got := productQuantity(t, p.ID); got != 5 {
		t.Errorf("delete touched stock: %d", got)
	}
}

func TestDeleteOrderRejectedAfterPending(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	p := seedProduct(t, "cola", 500, 300, 5)

	order, err := CreateOrder(user.ID, []OrderItemInput{{ProductID: p.ID, Quantity: 4, Price: 300}})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := UpdateOrderStatus(order.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := DeleteOrder(order.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState got %v", err)
	}

	var orderCount, itemCount int64
	DB.Model(&models.Order{}).Count(&orderCount)
	DB.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 1 || itemCount != 1 {
		t.Errorf("rejected delete removed rows: %d orders %d items", orderCount, itemCount)
	}
}

func TestGetOrderDetail(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "buyer", models.RoleEmployee)
	p := seedProduct(t, "cola", 500, 300, 5)

	order, err := CreateOrder(user.ID, []OrderItemInput{{ProductID: p.ID, Quantity: 4, Price: 250}})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	detail, err := GetOrderDetail(order.ID)
	if err != nil {
		t.Fatalf("GetOrderDetail: %v", err)
	}
	if detail.UserName != "buyer" {
		t.Errorf("expected creator name joined, got %q", detail.UserName)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(detail.Items))
	}
	if detail.Items[0].ProductName != "cola" {
		t.Errorf("expected product name joined, got %q", detail.Items[0].ProductName)
	}
	if detail.Items[0].PriceAtOrder != 250 {
		t.Errorf("expected captured price 250 got %.2f", detail.Items[0].PriceAtOrder)
	}

	if _, err := GetOrderDetail(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound got %v", err)
	}
}
