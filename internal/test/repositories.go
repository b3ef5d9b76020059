package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Products map[int64]model.Product
	Err      error
}

// GetByIDs returns the known products among ids.
func (s ProductRepositoryStub) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[int64]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.Products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// OrderRepositoryStub keeps orders in memory and mimics version checks.
//
// Fn overrides take precedence; Err fails every mutating call.
type OrderRepositoryStub struct {
	mu sync.Mutex

	Headers map[int64]model.OrderHeader
	Lines   map[int64][]model.OrderDetail
	Events  []model.OrderEvent
	Next    int64
	Err     error

	GetFn          func(context.Context, int64) (*model.OrderHeader, error)
	UpdateFn       func(context.Context, *model.OrderHeader, model.OrderEvent) error
	UpdateStatusFn func(context.Context, int64, int64, model.OrderStatus, model.PaymentStatus, model.OrderEvent) error

	Writes int
}

// NewOrderRepositoryStub seeds the stub with headers keyed by their IDs.
func NewOrderRepositoryStub(headers ...model.OrderHeader) *OrderRepositoryStub {
	s := &OrderRepositoryStub{
		Headers: make(map[int64]model.OrderHeader),
		Lines:   make(map[int64][]model.OrderDetail),
	}
	for _, h := range headers {
		if h.Version == 0 {
			h.Version = 1
		}
		s.Headers[h.ID] = h
		if h.ID > s.Next {
			s.Next = h.ID
		}
	}
	return s
}

// Header returns a stored header for assertions.
func (s *OrderRepositoryStub) Header(id int64) (model.OrderHeader, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.Headers[id]
	return h, ok
}

// Create stores header and details with fresh identifiers.
func (s *OrderRepositoryStub) Create(ctx context.Context, header *model.OrderHeader, details []model.OrderDetail, build repository.EventBuilder) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	h := *header
	h.ID = s.Next
	h.Version = 1
	lines := make([]model.OrderDetail, len(details))
	for i, d := range details {
		d.ID = int64(i + 1)
		d.OrderHeaderID = h.ID
		lines[i] = d
	}
	event, err := build(&h)
	if err != nil {
		return nil, err
	}
	s.Headers[h.ID] = h
	s.Lines[h.ID] = lines
	s.Events = append(s.Events, event)
	s.Writes++
	return &model.Order{Header: h, Details: lines}, nil
}

// Get returns a copy of the stored header.
func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.OrderHeader, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.Headers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &h, nil
}

// Details returns stored lines.
func (s *OrderRepositoryStub) Details(ctx context.Context, id int64) ([]model.OrderDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderDetail(nil), s.Lines[id]...), nil
}

// List returns headers ordered by id, filtered by owner when requested.
func (s *OrderRepositoryStub) List(ctx context.Context, query repository.OrderQuery) ([]model.OrderHeader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.OrderHeader, 0, len(s.Headers))
	for _, h := range s.Headers {
		if query.UserID != nil && h.UserID != *query.UserID {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces the header when versions match.
func (s *OrderRepositoryStub) Update(ctx context.Context, header *model.OrderHeader, event model.OrderEvent) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, header, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.Headers[header.ID]
	if !ok || stored.Version != header.Version {
		return domainErrors.ErrConflict
	}
	header.Version++
	s.Headers[header.ID] = *header
	s.Events = append(s.Events, event)
	s.Writes++
	return nil
}

// UpdateStatus sets both statuses when versions match.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id, version int64, status model.OrderStatus, payment model.PaymentStatus, event model.OrderEvent) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, version, status, payment, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.Headers[id]
	if !ok || stored.Version != version {
		return domainErrors.ErrConflict
	}
	stored.OrderStatus = status
	stored.PaymentStatus = payment
	stored.Version++
	s.Headers[id] = stored
	s.Events = append(s.Events, event)
	s.Writes++
	return nil
}

// Remove deletes header and lines.
func (s *OrderRepositoryStub) Remove(ctx context.Context, id int64, event model.OrderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Headers[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Headers, id)
	delete(s.Lines, id)
	s.Events = append(s.Events, event)
	s.Writes++
	return nil
}

// EventRepositoryStub serves outbox batches and records sent ids.
type EventRepositoryStub struct {
	mu sync.Mutex

	Pending  []model.OrderEvent
	Sent     []int64
	FetchErr error
	MarkErr  error
}

// FetchPending returns up to limit unsent events.
func (s *EventRepositoryStub) FetchPending(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	out := make([]model.OrderEvent, 0, limit)
	for _, e := range s.Pending {
		if len(out) == limit {
			break
		}
		if !s.sentLocked(e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

// MarkSent records the event as delivered.
func (s *EventRepositoryStub) MarkSent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	s.Sent = append(s.Sent, id)
	return nil
}

// SentIDs returns a snapshot of delivered ids.
func (s *EventRepositoryStub) SentIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Sent...)
}

func (s *EventRepositoryStub) sentLocked(id int64) bool {
	for _, sent := range s.Sent {
		if sent == id {
			return true
		}
	}
	return false
}

// FactoryStub bundles repository stubs behind repository.Factory.
type FactoryStub struct {
	UserRepo    repository.UserRepository
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	EventRepo   repository.EventRepository
}

func (f FactoryStub) Users() repository.UserRepository       { return f.UserRepo }
func (f FactoryStub) Orders() repository.OrderRepository     { return f.OrderRepo }
func (f FactoryStub) Products() repository.ProductRepository { return f.ProductRepo }
func (f FactoryStub) Events() repository.EventRepository     { return f.EventRepo }

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.ProductRepository = ProductRepositoryStub{}
	_ repository.EventRepository   = (*EventRepositoryStub)(nil)
	_ repository.Factory           = FactoryStub{}
)
