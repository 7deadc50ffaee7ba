package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/horizonte/storefront/internal/domain"
)

const keyPrefix = "cart:"

// cartDocument is the JSON value stored under each cart key.
type cartDocument struct {
	ID        string            `json:"id"`
	Items     []domain.CartItem `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CartRepository implements repository.CartRepository using Redis. Each cart
// is one JSON document whose TTL is refreshed on every write. Concurrent
// writers to the same cart are last-write-wins.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// List returns the items of the cart, or an empty list when it does not exist.
func (r *CartRepository) List(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	doc, err := r.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// Add appends item to the cart.
func (r *CartRepository) Add(ctx context.Context, cartID string, item *domain.CartItem) error {
	doc, err := r.load(ctx, cartID)
	if err != nil {
		return err
	}
	doc.Items = append(doc.Items, *item)
	return r.save(ctx, doc)
}

// Remove deletes one item. The key is dropped once the cart is empty.
func (r *CartRepository) Remove(ctx context.Context, cartID, itemID string) error {
	doc, err := r.load(ctx, cartID)
	if err != nil {
		return err
	}

	n := len(doc.Items)
	doc.Items = slices.DeleteFunc(doc.Items, func(it domain.CartItem) bool { return it.ID == itemID })
	switch {
	case len(doc.Items) == n:
		return nil
	case len(doc.Items) == 0:
		return r.Clear(ctx, cartID)
	default:
		return r.save(ctx, doc)
	}
}

// Clear removes the cart key.
func (r *CartRepository) Clear(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

func (r *CartRepository) load(ctx context.Context, cartID string) (*cartDocument, error) {
	data, err := r.client.Get(ctx, keyPrefix+cartID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cartDocument{ID: cartID, Items: []domain.CartItem{}}, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var doc cartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if doc.Items == nil {
		doc.Items = []domain.CartItem{}
	}
	return &doc, nil
}

func (r *CartRepository) save(ctx context.Context, doc *cartDocument) error {
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+doc.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}
