package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/pricing"
	"kedai/internal/repositories"
	"kedai/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService is the gateway between priced orders and the order store. All
// status transitions and dashboard reads go through it, and it is the only
// layer allowed to surface store failures (always wrapped, never raw).
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // nil disables event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// OrderStats is the per-status order count breakdown for the admin dashboard.
type OrderStats struct {
	ByStatus map[string]int64 `json:"by_status"`
	Total    int64            `json:"total"`
}

// Checkout prices the submitted cart lines and hands the resulting order to
// Submit. Validation failures from the pricing pipeline (empty cart, missing
// customer fields, delivery without address) pass through unchanged.
func (s *OrderService) Checkout(lines []models.CartLine, customer models.CustomerInfo, actor *models.Actor) (*models.Order, error) {
	snapshot := models.CartSnapshot{Lines: lines}
	for _, line := range lines {
		snapshot.TotalItems += line.Quantity
		snapshot.TotalPrice += line.Subtotal()
	}

	summary, err := pricing.Quote(snapshot, customer)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Lines:    snapshot.Lines,
		Customer: customer,
		Summary:  summary,
	}
	return s.Submit(order, actor)
}

// Submit persists a priced order. It rejects orders with no lines or an
// inconsistent summary, assigns a fresh identity, sets status to pending, and
// publishes an order.created event. An unauthenticated caller gets a
// synthetic guest owner id; the order is then only reachable again through
// its returned id.
func (s *OrderService) Submit(order *models.Order, actor *models.Actor) (*models.Order, error) {
	if len(order.Lines) == 0 {
		return nil, apperr.Validationf("order must contain at least one line")
	}
	if !order.Summary.Consistent() {
		return nil, apperr.Validationf("order summary totals are inconsistent")
	}

	order.ID = uuid.New().String()
	if actor != nil {
		order.OwnerID = actor.ID
		order.Guest = false
	} else {
		order.OwnerID = "guest-" + uuid.New().String()
		order.Guest = true
	}
	order.Status = models.StatusPending
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to store order")
	}

	s.publish("order.created", map[string]interface{}{
		"orderID": order.ID,
		"ownerID": order.OwnerID,
		"status":  order.Status,
		"total":   order.Summary.Total,
	})

	return order, nil
}

// GetByID retrieves a single order. Non-admin callers may only read their own
// orders; guest orders are readable by anyone holding the order id (the
// receipt is the credential).
func (s *OrderService) GetByID(id string, actor *models.Actor) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, "failed to fetch order")
	}
	if !order.Guest && !actor.IsAdmin() {
		if actor == nil {
			return nil, apperr.New(apperr.Unauthenticated, "authentication required")
		}
		if order.OwnerID != actor.ID {
			return nil, apperr.New(apperr.Permission, "order belongs to another customer")
		}
	}
	return order, nil
}

// ListForOwner retrieves the orders belonging to one owner, newest first.
func (s *OrderService) ListForOwner(ownerID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to list orders")
	}
	return orders, nil
}

// ListAll retrieves every order for the admin dashboard.
func (s *OrderService) ListAll(actor *models.Actor) ([]models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to list orders")
	}
	return orders, nil
}

// TransitionStatus moves an order to newStatus. Only administrators may
// transition; the status must be one of the defined values. Transition
// ordering is deliberately unconstrained: any valid status may follow any
// other, including moving a delivered order back to pending.
func (s *OrderService) TransitionStatus(id, newStatus string, actor *models.Actor) (*models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !models.ValidStatus(newStatus) {
		return nil, apperr.Validationf("invalid order status: %s", newStatus)
	}

	if err := s.orderRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, storeErr(err, "failed to update order status")
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, "failed to fetch updated order")
	}

	s.publish("order.status_updated", map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
		"actor":   actor.ID,
	})

	return order, nil
}

// DashboardStats computes per-status order counts. The six counts are
// independent reads, so they are issued concurrently and joined before
// returning.
func (s *OrderService) DashboardStats(actor *models.Actor) (*OrderStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	counts := make(map[string]int64, len(models.OrderStatuses))

	for _, status := range models.OrderStatuses {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			n, err := s.orderRepo.CountByStatus(status)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			counts[status] = n
		}(status)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, apperr.Wrap(apperr.Unexpected, firstErr, "failed to compute order stats")
	}

	stats := &OrderStats{ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// requireAdmin is the admin gate shared by every privileged gateway operation.
func requireAdmin(actor *models.Actor) error {
	if actor == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "administrator role required")
	}
	return nil
}

// storeErr passes not-found through and wraps anything else as unexpected so
// no raw store error escapes the gateway.
func storeErr(err error, msg string) error {
	if apperr.Is(err, apperr.NotFound) {
		return err
	}
	return apperr.Wrap(apperr.Unexpected, err, msg)
}

// publish sends an order lifecycle event, logging rather than failing the
// operation when the broker is unavailable.
func (s *OrderService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
