package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/models"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_info (id, name, email, subject, message, date_sent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.DateSent,
	)
	return err
}

func (r *ContactRepository) ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subject, message, date_sent
		FROM contact_info
		ORDER BY date_sent DESC, id
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContactMessage, error) {
		var m models.ContactMessage
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.DateSent)
		return m, err
	})
}
