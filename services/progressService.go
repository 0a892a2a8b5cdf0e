package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sp4c38/pizzatech-api/models"
)

// DefaultPollInterval is how often the customer app re-polls an order's
// progress while the order screen is visible.
const DefaultPollInterval = 3 * time.Second

// ProgressAPI is the part of the backend client the progress service needs.
type ProgressAPI interface {
	OrderProgress(ctx context.Context, orderID int64) (int, error)
	UpdateOrderProgress(ctx context.Context, orderID int64, newProgress int, accessToken string) error
}

// ProgressRecords is what the progress service needs from the order store.
type ProgressRecords interface {
	GetOrder(id uint) (*models.Order, error)
	UpdateProgress(id uint, progress int) error
}

// ProgressService polls and pushes order fulfillment progress. Polled values
// are clamped non-decreasing per order record: the backend contract does not
// promise monotonic progress, so the clamp is a deliberate client-side
// policy. Pushes and polls are single-flight per order.
type ProgressService struct {
	api     ProgressAPI
	records ProgressRecords

	mu      sync.Mutex
	polling map[uint]bool
	pushing map[uint]bool
}

func NewProgressService(api ProgressAPI, records ProgressRecords) *ProgressService {
	return &ProgressService{
		api:     api,
		records: records,
		polling: map[uint]bool{},
		pushing: map[uint]bool{},
	}
}

// Poll fetches the current progress of the order with the given local record
// id. While a poll for the same order is in flight, further calls return the
// last stored value without issuing another request.
func (s *ProgressService) Poll(ctx context.Context, orderID uint) (int, error) {
	order, err := s.records.GetOrder(orderID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	if s.polling[orderID] {
		s.mu.Unlock()
		return order.Progress, nil
	}
	s.polling[orderID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.polling, orderID)
		s.mu.Unlock()
	}()

	progress, err := s.api.OrderProgress(ctx, order.BackendOrderID)
	if err != nil {
		return 0, err
	}

	if progress > 100 {
		progress = 100
	}
	if progress < order.Progress {
		progress = order.Progress
	}
	if progress != order.Progress {
		if err := s.records.UpdateProgress(orderID, progress); err != nil {
			return 0, err
		}
	}
	return progress, nil
}

// Watch polls immediately and then on every tick until ctx is cancelled,
// sending each result on the returned channel. The channel is closed on
// cancellation. Poll errors are logged and the loop keeps going.
func (s *ProgressService) Watch(ctx context.Context, orderID uint, interval time.Duration) <-chan int {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	updates := make(chan int, 1)

	go func() {
		defer close(updates)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			progress, err := s.Poll(ctx, orderID)
			if err != nil {
				log.Println("Order progress poll failed:", err)
			} else {
				select {
				case updates <- progress:
				default:
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return updates
}

// Push sends a new progress percentage to the backend. At most one push per
// order may be outstanding; a second one is refused with ErrPushInFlight so
// the UI disables edits while a push is running.
func (s *ProgressService) Push(ctx context.Context, orderID uint, newProgress int, accessToken string) error {
	if newProgress < 0 || newProgress > 100 {
		return fmt.Errorf("progress %d is not in range 0 to 100", newProgress)
	}

	order, err := s.records.GetOrder(orderID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.pushing[orderID] {
		s.mu.Unlock()
		return ErrPushInFlight
	}
	s.pushing[orderID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pushing, orderID)
		s.mu.Unlock()
	}()

	if err := s.api.UpdateOrderProgress(ctx, order.BackendOrderID, newProgress, accessToken); err != nil {
		return err
	}
	return s.records.UpdateProgress(orderID, newProgress)
}
