package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/models"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// FindByUsername returns nil, nil on a lookup miss.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := `SELECT id, username, password_hash FROM admin_user WHERE username = $1`

	var user models.AdminUser
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateIfAbsent inserts user unless the username is taken. The unique
// constraint decides, so concurrent callers cannot both insert.
func (r *AdminRepository) CreateIfAbsent(ctx context.Context, user *models.AdminUser) (bool, error) {
	user.Prepare()

	result, err := r.pool.Exec(ctx, `
		INSERT INTO admin_user (id, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`,
		user.ID,
		user.Username,
		user.PasswordHash,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_user`).Scan(&n)
	return n, err
}
