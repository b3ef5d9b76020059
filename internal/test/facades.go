package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/ordermart/internal/domain/model"
	pkgAuth "github.com/polkiloo/ordermart/internal/pkg/auth"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (pkgAuth.Claims, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: model.RoleCustomer}, nil
}

// SampleHeader returns a header populated enough for HTTP rendering.
func SampleHeader(id int64) model.OrderHeader {
	return model.OrderHeader{
		ID:     id,
		UserID: 1,
		ShippingInfo: model.ShippingInfo{
			Name: "Ada", PhoneNumber: "555", StreetAddress: "1 Main", City: "Springfield", State: "IL", PostalCode: "62701",
		},
		OrderTotal:    decimal.NewFromInt(10),
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Version:       1,
	}
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn  func(context.Context, model.Requester, model.ShippingInfo, []model.OrderLine) (*model.Order, error)
	OrdersFn  func(context.Context, model.Requester, string) ([]model.OrderHeader, error)
	DetailsFn func(context.Context, model.Requester, int64) (*model.Order, error)
	PaymentFn func(context.Context, int64, string) (*model.OrderHeader, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, requester model.Requester, shipping model.ShippingInfo, lines []model.OrderLine) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, requester, shipping, lines)
	}
	h := SampleHeader(1)
	h.UserID = requester.UserID
	h.ShippingInfo = shipping
	return &model.Order{Header: h}, nil
}

// Orders returns predefined orders for the requester.
func (s OrderFacadeStub) Orders(ctx context.Context, requester model.Requester, status string) ([]model.OrderHeader, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, requester, status)
	}
	return []model.OrderHeader{SampleHeader(1)}, nil
}

// OrderDetails returns a default order with one line.
func (s OrderFacadeStub) OrderDetails(ctx context.Context, requester model.Requester, id int64) (*model.Order, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, requester, id)
	}
	return &model.Order{
		Header:  SampleHeader(id),
		Details: []model.OrderDetail{{ID: 1, OrderHeaderID: id, ProductID: 1, Count: 2, Price: decimal.NewFromInt(5)}},
	}, nil
}

// ConfirmPayment returns an approved header.
func (s OrderFacadeStub) ConfirmPayment(ctx context.Context, id int64, paymentIntentID string) (*model.OrderHeader, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, id, paymentIntentID)
	}
	h := SampleHeader(id)
	h.PaymentIntentID = paymentIntentID
	h.OrderStatus = model.OrderStatusApproved
	h.PaymentStatus = model.PaymentStatusApproved
	return &h, nil
}

// AdminFacadeStub simulates back-office actions.
type AdminFacadeStub struct {
	UpdateFn  func(context.Context, int64, model.DetailsUpdate) (*model.OrderHeader, error)
	ProcessFn func(context.Context, int64) (*model.OrderHeader, error)
	ShipFn    func(context.Context, int64, string, string) (*model.OrderHeader, error)
	CancelFn  func(context.Context, int64) (*model.OrderHeader, error)
	DeleteFn  func(context.Context, int64) error
}

// UpdateDetails delegates or echoes the shipping fields.
func (s AdminFacadeStub) UpdateDetails(ctx context.Context, id int64, fields model.DetailsUpdate) (*model.OrderHeader, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, fields)
	}
	h := SampleHeader(id)
	h.ShippingInfo = fields.ShippingInfo
	return &h, nil
}

// StartProcessing delegates or returns a processing header.
func (s AdminFacadeStub) StartProcessing(ctx context.Context, id int64) (*model.OrderHeader, error) {
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, id)
	}
	h := SampleHeader(id)
	h.OrderStatus = model.OrderStatusProcessing
	return &h, nil
}

// Ship delegates or returns a shipped header.
func (s AdminFacadeStub) Ship(ctx context.Context, id int64, carrier, trackingNumber string) (*model.OrderHeader, error) {
	if s.ShipFn != nil {
		return s.ShipFn(ctx, id, carrier, trackingNumber)
	}
	h := SampleHeader(id)
	h.OrderStatus = model.OrderStatusShipped
	h.Carrier = carrier
	h.TrackingNumber = trackingNumber
	return &h, nil
}

// Cancel delegates or returns a cancelled header.
func (s AdminFacadeStub) Cancel(ctx context.Context, id int64) (*model.OrderHeader, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	h := SampleHeader(id)
	h.OrderStatus = model.OrderStatusCancelled
	h.PaymentStatus = model.PaymentStatusCancelled
	return &h, nil
}

// Delete delegates or succeeds.
func (s AdminFacadeStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// FacadeStub aggregates facade dependencies for HTTP layer tests.
type FacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	AdminFacadeStub
}
