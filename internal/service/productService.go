package service

import (
	"context"

	repository "github.com/restobook/restaurant-backend/internal/database/postgres"
	"github.com/restobook/restaurant-backend/internal/database/redis"
	"github.com/restobook/restaurant-backend/internal/entity"

	"github.com/sirupsen/logrus"
)

type productService struct {
	productRepo repository.ProductRepository
	cacheRepo   *redis.CacheRepository
}

// NewProductService создает сервис меню. cacheRepo может быть nil,
// тогда все чтения идут напрямую в Postgres.
func NewProductService(productRepo repository.ProductRepository, cacheRepo *redis.CacheRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*entity.Product, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Available:   available,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// GetAllProducts отдает список из кеша, при промахе читает Postgres
// и прогревает кеш.
func (s *productService) GetAllProducts(ctx context.Context) ([]*entity.Product, error) {
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetProducts(ctx)
		if err == nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetProducts(ctx, products); err != nil {
			logrus.Warnf("Failed to cache products: %v", err)
		}
	}

	return products, nil
}

// UpdateProduct применяет частичное обновление: nil-поля не трогаются.
func (s *productService) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *productService) invalidateCache(ctx context.Context) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.InvalidateProducts(ctx); err != nil {
		logrus.Warnf("Failed to invalidate product cache: %v", err)
	}
}
