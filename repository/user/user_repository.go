package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Follow(ctx context.Context, userID, shopID uint64) (bool, error)
	Unfollow(ctx context.Context, userID, shopID uint64) (bool, error)
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, NOW())`
	getUserBase     = `SELECT id, name, email, password_hash, role, created_at, updated_at FROM user WHERE true`

	// the (user_id, shop_id) primary key makes the following list a true
	// set; INSERT IGNORE and DELETE are atomic add/remove, no read first
	followQuery       = `INSERT IGNORE INTO follow (user_id, shop_id, created_at) VALUES (?, ?, NOW())`
	unfollowQuery     = `DELETE FROM follow WHERE user_id = ? AND shop_id = ?`
	followingIDsQuery = `SELECT shop_id FROM follow WHERE user_id = ? ORDER BY shop_id`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Name, data.Email, data.PasswordHash, data.Role)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Follow adds shopID to the user's following set. The returned bool
// reports whether the membership is new; false means already following.
func (s *SQL) Follow(ctx context.Context, userID, shopID uint64) (bool, error) {
	result, err := s.conn.ExecContext(ctx, followQuery, userID, shopID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Unfollow removes shopID from the user's following set. The returned
// bool reports whether a membership was removed.
func (s *SQL) Unfollow(ctx context.Context, userID, shopID uint64) (bool, error) {
	result, err := s.conn.ExecContext(ctx, unfollowQuery, userID, shopID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *SQL) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	if err := s.conn.SelectContext(ctx, &ids, followingIDsQuery, userID); err != nil {
		return nil, err
	}
	return ids, nil
}
