package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"agrimart-be/internal/catalog"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"
	"agrimart-be/internal/store"

	"go.uber.org/zap"
)

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
}

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, ownerID string) (*Cart, error)
	Add(ctx context.Context, ownerID string, productID int64, qty float64) (*Cart, error)
	Update(ctx context.Context, ownerID string, productID int64, qty float64) (*Cart, error)
	Remove(ctx context.Context, ownerID string, productID int64) (*Cart, error)
	Clear(ctx context.Context, ownerID string) error
	Summary(ctx context.Context, ownerID string) (Summary, error)
}

type service struct {
	store    store.Store
	products ProductLookup
	now      func() time.Time

	// serializes read-modify-write cycles on the store
	mu sync.Mutex
}

// NewService creates a new cart service
func NewService(st store.Store, products ProductLookup) Service {
	return &service{store: st, products: products, now: time.Now}
}

// Key is the store key holding ownerID's cart.
func Key(ownerID string) string {
	return "cart:" + ownerID
}

func (s *service) Get(ctx context.Context, ownerID string) (*Cart, error) {
	if ownerID == "" {
		return nil, ErrUserNotAuthenticated
	}
	return s.load(ctx, ownerID)
}

func (s *service) Add(ctx context.Context, ownerID string, productID int64, qty float64) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.Int64("product_id", productID),
		zap.Float64("quantity", qty),
	)

	cart, err := s.mutate(ctx, ownerID, "add", func(c *Cart) error {
		if qty <= 0 {
			return ErrInvalidQuantity
		}

		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if i := c.find(productID); i >= 0 {
			total := c.Items[i].Quantity + qty
			if err := checkQuantity(p, total); err != nil {
				return err
			}
			c.Items[i].Quantity = total
			return nil
		}

		if err := checkQuantity(p, qty); err != nil {
			return err
		}
		c.Items = append(c.Items, itemFrom(p, qty))
		return nil
	})
	if err != nil {
		log.Warn("add to cart rejected", zap.Error(err))
		return nil, err
	}

	log.Info("added to cart", zap.Int("items", len(cart.Items)))
	return cart, nil
}

// Update sets the quantity of a cart line; qty <= 0 removes it.
func (s *service) Update(ctx context.Context, ownerID string, productID int64, qty float64) (*Cart, error) {
	if qty <= 0 {
		return s.Remove(ctx, ownerID, productID)
	}

	return s.mutate(ctx, ownerID, "update", func(c *Cart) error {
		i := c.find(productID)
		if i < 0 {
			return ErrCartItemNotFound
		}

		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := checkQuantity(p, qty); err != nil {
			return err
		}

		c.Items[i] = itemFrom(p, qty)
		return nil
	})
}

func (s *service) Remove(ctx context.Context, ownerID string, productID int64) (*Cart, error) {
	return s.mutate(ctx, ownerID, "remove", func(c *Cart) error {
		i := c.find(productID)
		if i < 0 {
			return ErrCartItemNotFound
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	})
}

func (s *service) Clear(ctx context.Context, ownerID string) error {
	_, err := s.mutate(ctx, ownerID, "clear", func(c *Cart) error {
		c.Items = []Item{}
		return nil
	})
	return err
}

func (s *service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(c.Items), nil
}

/* ---------- STORAGE ---------- */

func (s *service) mutate(ctx context.Context, ownerID, op string, fn func(*Cart) error) (*Cart, error) {
	if ownerID == "" {
		return nil, ErrUserNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, ownerID)
	if err == nil {
		err = fn(c)
	}
	if err == nil {
		c.UpdatedAt = s.now().UTC()
		err = s.save(ctx, c)
	}

	metrics.CartOperations.WithLabelValues(op, metrics.OutcomeOf(err)).Inc()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) load(ctx context.Context, ownerID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, Key(ownerID))
	if errors.Is(err, store.ErrNotFound) {
		return &Cart{OwnerID: ownerID, Items: []Item{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}

	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return &c, nil
}

func (s *service) save(ctx context.Context, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	if err := s.store.Set(ctx, Key(c.OwnerID), raw); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}

func checkQuantity(p catalog.Product, qty float64) error {
	if qty < p.MinOrderQuantity {
		return fmt.Errorf("%w: %s requires at least %g %s", ErrBelowMinOrder, p.Name, p.MinOrderQuantity, p.Unit)
	}
	if qty > float64(p.StockQuantity) {
		return fmt.Errorf("%w: %s has %d %s available", ErrInsufficientStock, p.Name, p.StockQuantity, p.Unit)
	}
	return nil
}

func itemFrom(p catalog.Product, qty float64) Item {
	return Item{
		ProductID:        p.ID,
		Name:             p.Name,
		Price:            p.Price,
		Unit:             p.Unit,
		Quantity:         qty,
		MinOrderQuantity: p.MinOrderQuantity,
		Seller:           p.Seller,
		ImageURL:         p.ImageURL,
	}
}
