package usecase

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/domain/repository"
)

// Status buckets understood by GetAll.
const (
	FilterPaymentPending = "paymentPending"
	FilterInProcess      = "inProcess"
	FilterCompleted      = "completed"
	FilterApproved       = "approved"
)

// ViewPolicy decides whether a role may see every order.
type ViewPolicy func(model.Role) bool

// StaffCanViewAll is the default policy: admins and employees see everything.
func StaffCanViewAll(role model.Role) bool {
	return role.IsStaff()
}

// QueryDeps lists collaborators of QueryUseCase.
type QueryDeps struct {
	fx.In

	Orders     repository.OrderRepository
	CanViewAll ViewPolicy `optional:"true"`
}

// QueryUseCase lists orders visible to a requester.
type QueryUseCase struct {
	orders     repository.OrderRepository
	canViewAll ViewPolicy
}

// NewQueryUseCase constructs QueryUseCase.
func NewQueryUseCase(deps QueryDeps) *QueryUseCase {
	policy := deps.CanViewAll
	if policy == nil {
		policy = StaffCanViewAll
	}
	return &QueryUseCase{orders: deps.Orders, canViewAll: policy}
}

// GetAll returns orders visible to requester narrowed by the status bucket.
// Unknown or empty filters return the whole visible set.
func (q *QueryUseCase) GetAll(ctx context.Context, requester model.Requester, filter string) ([]model.OrderHeader, error) {
	var query repository.OrderQuery
	if !q.canViewAll(requester.Role) {
		owner := requester.UserID
		query.UserID = &owner
	}

	headers, err := q.orders.List(ctx, query)
	if err != nil {
		return nil, err
	}

	match := bucket(filter)
	if match == nil {
		return headers, nil
	}
	out := make([]model.OrderHeader, 0, len(headers))
	for _, h := range headers {
		if match(h) {
			out = append(out, h)
		}
	}
	return out, nil
}

// CanView reports whether requester may read the order.
func (q *QueryUseCase) CanView(requester model.Requester, h *model.OrderHeader) bool {
	return q.canViewAll(requester.Role) || h.UserID == requester.UserID
}

// bucket matches filter names exactly; anything else selects every order.
func bucket(filter string) func(model.OrderHeader) bool {
	switch filter {
	case FilterPaymentPending:
		return func(h model.OrderHeader) bool { return h.PaymentStatus == model.PaymentStatusPending }
	case FilterInProcess:
		return func(h model.OrderHeader) bool { return h.OrderStatus == model.OrderStatusProcessing }
	case FilterCompleted:
		return func(h model.OrderHeader) bool { return h.OrderStatus == model.OrderStatusShipped }
	case FilterApproved:
		return func(h model.OrderHeader) bool { return h.OrderStatus == model.OrderStatusApproved }
	default:
		return nil
	}
}
