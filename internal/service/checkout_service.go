package service

import (
	"errors"
	"time"

	"go-farm-store/internal/model"
	"go-farm-store/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("no items to checkout")

type CheckoutService interface {
	Checkout(cartID uuid.UUID, form *model.CheckoutForm) (*model.Order, error)
}

type checkoutService struct {
	carts CartService
	hub   Broadcaster
	delay time.Duration
	sleep func(time.Duration)
	now   func() time.Time
}

// NewCheckoutService simulates payment by waiting delay before completing
// an order. The wait cannot be cancelled.
func NewCheckoutService(carts CartService, hub Broadcaster, delay time.Duration) CheckoutService {
	return &checkoutService{
		carts: carts,
		hub:   hub,
		delay: delay,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Checkout validates the form, waits out the simulated payment, then
// empties the cart into an order confirmation. Sales were already
// recorded when the items were added, so none are recorded here.
func (s *checkoutService) Checkout(cartID uuid.UUID, form *model.CheckoutForm) (*model.Order, error) {
	cart, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}
	if cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	if err := validator.Check(form); err != nil {
		return nil, err
	}

	s.sleep(s.delay)

	lines := cart.drain()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	summary := model.Summarize(cartID, lines)
	order := &model.Order{
		ID:          uuid.New(),
		CartID:      cartID,
		Email:       form.Email,
		FullName:    form.FirstName + " " + form.LastName,
		Items:       summary.Items,
		Total:       summary.Total,
		ItemCount:   summary.ItemCount,
		CompletedAt: s.now().UTC(),
	}

	zap.S().Infow("order completed", "order_id", order.ID, "cart_id", cartID, "items", order.ItemCount, "total", order.Total.StringFixed(2))
	if s.hub != nil {
		s.hub.Publish(map[string]interface{}{
			"type":    "order_completed",
			"action":  "order_completed",
			"order":   map[string]interface{}{"id": order.ID, "item_count": order.ItemCount, "total": order.Total},
			"message": "order completed",
		})
	}
	return order, nil
}
