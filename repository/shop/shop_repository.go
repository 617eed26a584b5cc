package shop

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

type ShopRepository interface {
	Create(ctx context.Context, data *model.ShopEntity) (uint64, error)
	List(ctx context.Context) ([]model.ShopEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ShopEntity, error)
	ExistsTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error)
	Update(ctx context.Context, id uint64, req *model.UpdateShopRequest) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	CountFollowers(ctx context.Context, id uint64) (int64, error)
}

func NewShopRepository(conn *sqlx.DB) ShopRepository {
	return &SQL{conn: conn}
}

const (
	insertShopQuery = `INSERT INTO shop (name, photo, description, lat, lng, created_at) VALUES (?, ?, ?, ?, ?, NOW())`
	// newest first, reverse insertion order
	listShopsQuery      = `SELECT id, name, photo, description, lat, lng, created_at, updated_at FROM shop ORDER BY id DESC`
	getShopQuery        = `SELECT id, name, photo, description, lat, lng, created_at, updated_at FROM shop WHERE id = ?`
	shopExistsQuery     = `SELECT EXISTS(SELECT 1 FROM shop WHERE id = ?)`
	deleteShopQuery     = `DELETE FROM shop WHERE id = ?`
	countFollowersQuery = `SELECT COUNT(*) FROM follow WHERE shop_id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ShopEntity) (uint64, error) {
	result, err := s.conn.ExecContext(ctx, insertShopQuery, data.Name, data.Photo, data.Description, data.Lat, data.Lng)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(lastID), nil
}

func (s *SQL) List(ctx context.Context) ([]model.ShopEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, listShopsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := make([]model.ShopEntity, 0)
	for rows.Next() {
		var sh model.ShopEntity
		if err := rows.StructScan(&sh); err != nil {
			return nil, err
		}
		shops = append(shops, sh)
	}
	return shops, rows.Err()
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ShopEntity, error) {
	var entity model.ShopEntity
	if err := s.conn.QueryRowxContext(ctx, getShopQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) ExistsTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error) {
	var exists bool
	if err := tx.GetContext(ctx, &exists, shopExistsQuery, id); err != nil {
		return false, err
	}
	return exists, nil
}

// Update applies only the fields present in req. Returns whether a shop
// with id exists; an update whose new values equal the old ones still
// counts as matched.
func (s *SQL) Update(ctx context.Context, id uint64, req *model.UpdateShopRequest) (bool, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Photo != nil {
		set = append(set, "photo = ?")
		args = append(args, *req.Photo)
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Location != nil {
		set = append(set, "lat = ?", "lng = ?")
		args = append(args, req.Location.Lat, req.Location.Lng)
	}

	if len(set) == 0 {
		return s.exists(ctx, id)
	}

	set = append(set, "updated_at = NOW()")
	query := "UPDATE shop SET " + strings.Join(set, ", ") + " WHERE id = ?"
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
	// zero affected rows can mean missing id or identical values; probe
	return s.exists(ctx, id)
}

func (s *SQL) Delete(ctx context.Context, id uint64) (bool, error) {
	result, err := s.conn.ExecContext(ctx, deleteShopQuery, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *SQL) CountFollowers(ctx context.Context, id uint64) (int64, error) {
	var count int64
	if err := s.conn.GetContext(ctx, &count, countFollowersQuery, id); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQL) exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	if err := s.conn.GetContext(ctx, &exists, shopExistsQuery, id); err != nil {
		return false, err
	}
	return exists, nil
}
