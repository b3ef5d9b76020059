package handlers

import (
	"context"

	"github.com/polkiloo/ordermart/internal/domain/model"
	pkgAuth "github.com/polkiloo/ordermart/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// OrderFacade encapsulates order operations available to signed-in users.
type OrderFacade interface {
	CreateOrder(ctx context.Context, requester model.Requester, shipping model.ShippingInfo, lines []model.OrderLine) (*model.Order, error)
	Orders(ctx context.Context, requester model.Requester, status string) ([]model.OrderHeader, error)
	OrderDetails(ctx context.Context, requester model.Requester, id int64) (*model.Order, error)
	ConfirmPayment(ctx context.Context, id int64, paymentIntentID string) (*model.OrderHeader, error)
}

// AdminFacade provides back-office lifecycle actions.
type AdminFacade interface {
	UpdateDetails(ctx context.Context, id int64, fields model.DetailsUpdate) (*model.OrderHeader, error)
	StartProcessing(ctx context.Context, id int64) (*model.OrderHeader, error)
	Ship(ctx context.Context, id int64, carrier, trackingNumber string) (*model.OrderHeader, error)
	Cancel(ctx context.Context, id int64) (*model.OrderHeader, error)
	Delete(ctx context.Context, id int64) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	AuthFacade
	OrderFacade
	AdminFacade
}
