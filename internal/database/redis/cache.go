package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/restobook/restaurant-backend/internal/entity"

	"github.com/redis/go-redis/v9"
)

const productListKey = "products:all"

// CacheRepository кеширует список меню; записи инвалидируются при любой
// мутации товара.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetProducts(ctx context.Context, products []*entity.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, productListKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	data, err := r.client.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, err
	}

	var products []*entity.Product
	err = json.Unmarshal([]byte(data), &products)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *CacheRepository) InvalidateProducts(ctx context.Context) error {
	return r.client.Del(ctx, productListKey).Err()
}
