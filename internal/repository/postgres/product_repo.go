package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invex/internal/domain"
	"invex/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, code, name, unit, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, unit = EXCLUDED.unit,
			is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`,
		product.ID, product.Code, product.Name, product.Unit,
		product.IsActive, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByCode: %w", err)
	}
	return &product, nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE is_active ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListActive: %w", err)
	}
	return products, nil
}

func (r *productRepo) ListDescriptions(ctx context.Context) ([]domain.ProductDescription, error) {
	var descs []domain.ProductDescription
	err := r.db.SelectContext(ctx, &descs,
		`SELECT pd.* FROM product_descriptions pd
		 JOIN products p ON p.id = pd.product_id
		 WHERE p.is_active
		 ORDER BY pd.created_at`)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListDescriptions: %w", err)
	}
	return descs, nil
}

func (r *productRepo) AddDescription(ctx context.Context, desc *domain.ProductDescription) error {
	desc.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product_descriptions (id, product_id, description, source, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (product_id, description) DO NOTHING`,
		desc.ID, desc.ProductID, desc.Description, desc.Source, desc.CreatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.AddDescription: %w", err)
	}
	return nil
}

func (r *productRepo) CreateFeedback(ctx context.Context, feedback *domain.MatchFeedback) error {
	feedback.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO match_feedback (id, document_id, raw_description, cleaned_description, product_id, accepted, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		feedback.ID, feedback.DocumentID, feedback.RawDescription,
		feedback.CleanedDescription, feedback.ProductID, feedback.Accepted,
		feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.CreateFeedback: %w", err)
	}
	return nil
}
