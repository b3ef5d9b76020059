package app

import (
	"context"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	pkgAuth "github.com/polkiloo/ordermart/internal/pkg/auth"
	"github.com/polkiloo/ordermart/internal/usecase"
)

// OrderMartFacade joins the use cases behind the HTTP handlers.
type OrderMartFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	query  *usecase.QueryUseCase
}

func NewOrderMartFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, query *usecase.QueryUseCase) *OrderMartFacade {
	return &OrderMartFacade{auth: auth, orders: orders, query: query}
}

func (f *OrderMartFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *OrderMartFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *OrderMartFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *OrderMartFacade) CreateOrder(ctx context.Context, requester model.Requester, shipping model.ShippingInfo, lines []model.OrderLine) (*model.Order, error) {
	return f.orders.Create(ctx, requester.UserID, requester.Role, shipping, lines)
}

func (f *OrderMartFacade) Orders(ctx context.Context, requester model.Requester, status string) ([]model.OrderHeader, error) {
	return f.query.GetAll(ctx, requester, status)
}

// OrderDetails hides orders the requester is not allowed to read.
func (f *OrderMartFacade) OrderDetails(ctx context.Context, requester model.Requester, id int64) (*model.Order, error) {
	order, err := f.orders.Details(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.query.CanView(requester, &order.Header) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func (f *OrderMartFacade) ConfirmPayment(ctx context.Context, id int64, paymentIntentID string) (*model.OrderHeader, error) {
	return f.orders.ConfirmPayment(ctx, id, paymentIntentID)
}

func (f *OrderMartFacade) UpdateDetails(ctx context.Context, id int64, fields model.DetailsUpdate) (*model.OrderHeader, error) {
	return f.orders.UpdateDetails(ctx, id, fields)
}

func (f *OrderMartFacade) StartProcessing(ctx context.Context, id int64) (*model.OrderHeader, error) {
	return f.orders.StartProcessing(ctx, id)
}

func (f *OrderMartFacade) Ship(ctx context.Context, id int64, carrier, trackingNumber string) (*model.OrderHeader, error) {
	return f.orders.Ship(ctx, id, carrier, trackingNumber)
}

func (f *OrderMartFacade) Cancel(ctx context.Context, id int64) (*model.OrderHeader, error) {
	return f.orders.Cancel(ctx, id)
}

func (f *OrderMartFacade) Delete(ctx context.Context, id int64) error {
	return f.orders.Delete(ctx, id)
}

// EnsureAdmin creates the bootstrap administrator account when it is missing.
func (f *OrderMartFacade) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	_, created, err := f.auth.EnsureUser(ctx, login, password, model.RoleAdmin)
	return created, err
}
