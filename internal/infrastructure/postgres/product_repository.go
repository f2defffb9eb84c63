package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL (pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur produits. Passer pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, unit, prix_catalogue, prix_revient, taux_tva, stock_initial, stock_actuel, parent_stock_id, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Unit, &p.PrixCatalogue, &p.PrixRevient, &p.TauxTVA,
		&p.StockInitial, &p.StockActuel, &p.ParentStockID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nouveau produit.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, unit, prix_catalogue, prix_revient, taux_tva, stock_initial, stock_actuel, parent_stock_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Unit, product.PrixCatalogue, product.PrixRevient,
		product.TauxTVA, product.StockInitial, product.StockActuel, product.ParentStockID,
		product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtient un produit par ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate verrouille la ligne produit pour sérialiser les écritures de stock.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// HasChildren indique si des produits actifs pointent ce produit comme parent de stock.
func (r *ProductRepo) HasChildren(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE parent_stock_id = $1 AND active)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check children: %w", err)
	}
	return exists, nil
}

// List liste les produits, éventuellement restreint aux actifs.
func (r *ProductRepo) List(activeOnly bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Patch applique les champs non nuls du patch.
func (r *ProductRepo) Patch(id string, patch entity.ProductPatch) error {
	query := `
		UPDATE products SET
			name = COALESCE($2, name),
			unit = COALESCE($3, unit),
			prix_catalogue = COALESCE($4, prix_catalogue),
			prix_revient = COALESCE($5, prix_revient),
			taux_tva = COALESCE($6, taux_tva),
			parent_stock_id = COALESCE($7, parent_stock_id),
			active = COALESCE($8, active),
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		id, patch.Name, patch.Unit, patch.PrixCatalogue, patch.PrixRevient,
		patch.TauxTVA, patch.ParentStockID, patch.Active,
	)
	if err != nil {
		return fmt.Errorf("patch product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock écrit stock_actuel. Réservé au ledger.
func (r *ProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_actuel = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ResetAllStocks remet stock_actuel = stock_initial pour tous les produits (replay).
func (r *ProductRepo) ResetAllStocks() error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_actuel = stock_initial, updated_at = now()`,
	)
	if err != nil {
		return fmt.Errorf("reset stocks: %w", err)
	}
	return nil
}
