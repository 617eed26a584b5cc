package product

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) (uint64, error)
	List(ctx context.Context) ([]model.ProductWithShopRow, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductWithShopRow, error)
	ListByShopID(ctx context.Context, shopID uint64) ([]model.ProductEntity, error)
	ListFollowed(ctx context.Context, userID uint64) ([]model.ProductWithShopRow, error)
	Update(ctx context.Context, id uint64, req *model.UpdateProductRequest) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	insertProductQuery = `INSERT INTO product (name, price, photo, category, description, brand, unit, inset, gender, handedness, shop_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	// LEFT JOIN keeps products whose shop was deleted; shop columns come
	// back NULL and readers surface the dangling reference as a nil shop
	productWithShopBase = `SELECT p.id, p.name, p.price, p.photo, p.category, p.description,
p.brand, p.unit, p.inset, p.gender, p.handedness, p.shop_id, p.created_at, p.updated_at,
s.name AS shop_name, s.photo AS shop_photo, s.description AS shop_description, s.lat AS shop_lat, s.lng AS shop_lng
FROM product p
LEFT JOIN shop s ON p.shop_id = s.id`

	listProductsQuery = productWithShopBase + ` ORDER BY p.id DESC`
	getProductQuery   = productWithShopBase + ` WHERE p.id = ?`

	listByShopQuery = `SELECT id, name, price, photo, category, description, brand, unit, inset, gender, handedness, shop_id, created_at, updated_at
FROM product WHERE shop_id = ? ORDER BY id DESC`

	listFollowedQuery = productWithShopBase + `
JOIN follow f ON f.shop_id = p.shop_id
WHERE f.user_id = ?
ORDER BY p.id DESC`

	productExistsQuery = `SELECT EXISTS(SELECT 1 FROM product WHERE id = ?)`
	deleteProductQuery = `DELETE FROM product WHERE id = ?`
)

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ProductEntity) (uint64, error) {
	result, err := tx.ExecContext(ctx, insertProductQuery,
		data.Name, data.Price, data.Photo, data.Category, data.Description,
		data.Brand, data.Unit, data.Inset, data.Gender, data.Handedness, data.ShopID)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) List(ctx context.Context) ([]model.ProductWithShopRow, error) {
	return s.queryRows(ctx, listProductsQuery)
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductWithShopRow, error) {
	var row model.ProductWithShopRow
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *SQL) ListByShopID(ctx context.Context, shopID uint64) ([]model.ProductEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, listByShopQuery, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.ProductEntity, 0)
	for rows.Next() {
		var p model.ProductEntity
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQL) ListFollowed(ctx context.Context, userID uint64) ([]model.ProductWithShopRow, error) {
	return s.queryRows(ctx, listFollowedQuery, userID)
}

// Update applies only the fields present in req, same contract as the shop
// repository: the returned bool reports whether the product exists.
func (s *SQL) Update(ctx context.Context, id uint64, req *model.UpdateProductRequest) (bool, error) {
	set := make([]string, 0, 10)
	args := make([]any, 0, 11)

	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Photo != nil {
		set = append(set, "photo = ?")
		args = append(args, *req.Photo)
	}
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Specs != nil {
		if req.Specs.Brand != nil {
			set = append(set, "brand = ?")
			args = append(args, *req.Specs.Brand)
		}
		if req.Specs.Unit != nil {
			set = append(set, "unit = ?")
			args = append(args, *req.Specs.Unit)
		}
		if req.Specs.Inset != nil {
			set = append(set, "inset = ?")
			args = append(args, *req.Specs.Inset)
		}
		if req.Specs.Gender != nil {
			set = append(set, "gender = ?")
			args = append(args, *req.Specs.Gender)
		}
		if req.Specs.Handedness != nil {
			set = append(set, "handedness = ?")
			args = append(args, *req.Specs.Handedness)
		}
	}

	if len(set) == 0 {
		return s.exists(ctx, id)
	}

	set = append(set, "updated_at = NOW()")
	query := "UPDATE product SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}
	return s.exists(ctx, id)
}

func (s *SQL) Delete(ctx context.Context, id uint64) (bool, error) {
	result, err := s.conn.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *SQL) queryRows(ctx context.Context, query string, args ...any) ([]model.ProductWithShopRow, error) {
	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProductWithShopRow, 0)
	for rows.Next() {
		var row model.ProductWithShopRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func (s *SQL) exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	if err := s.conn.GetContext(ctx, &exists, productExistsQuery, id); err != nil {
		return false, err
	}
	return exists, nil
}
