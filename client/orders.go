package client

import (
	"context"
	"net/http"
)

// OrdersService tracks order fulfillment.
type OrdersService struct {
	service
}

type ordersPage struct {
	Orders []Order  `json:"orders"`
	Meta   ListMeta `json:"meta"`
}

func (s *OrdersService) List(ctx context.Context, opts ListOptions) ([]Order, *ListMeta, error) {
	var page ordersPage
	if err := s.client.do(ctx, http.MethodGet, "/api/orders/"+opts.query(), nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Orders, &page.Meta, nil
}

func (s *OrdersService) Get(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := s.client.do(ctx, http.MethodGet, "/api/orders/"+id+"/", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus advances an order through the fulfillment pipeline.
func (s *OrdersService) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	var order Order
	err := s.client.do(ctx, http.MethodPut, "/api/orders/"+id+"/status/",
		UpdateOrderStatusRequest{Status: status}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
