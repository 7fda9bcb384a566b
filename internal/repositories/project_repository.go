package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/models"
)

const projectColumns = `id, title, description, category, tools, skills, objective, summary, image_url, date_created`

type ProjectRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

func (r *ProjectRepository) ListRecent(ctx context.Context, n int) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project ORDER BY date_created DESC, id LIMIT $1`
	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// ListAll returns every project, or only those in category when it is
// non-empty.
func (r *ProjectRepository) ListAll(ctx context.Context, category string) ([]models.Project, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = r.pool.Query(ctx,
			`SELECT `+projectColumns+` FROM project WHERE category = $1 ORDER BY date_created DESC, id`,
			category,
		)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+projectColumns+` FROM project ORDER BY date_created DESC, id`)
	}
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *ProjectRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM project ORDER BY category`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// GetByID returns nil, nil when no project has the id.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM project WHERE id = $1`, id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

// Upsert runs in one transaction. With an id that exists, the row is locked,
// apply mutates it and the row is rewritten; id and date_created never change.
// Otherwise a new project gets a fresh id and the current time. created
// reports which branch ran.
func (r *ProjectRepository) Upsert(ctx context.Context, id *uuid.UUID, apply func(*models.Project)) (project *models.Project, created bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if id != nil {
		row := tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM project WHERE id = $1 FOR UPDATE`, *id)
		project, err = scanProject(row)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, err
		}
		err = nil
	}

	if project != nil {
		apply(project)
		_, err = tx.Exec(ctx, `
			UPDATE project SET
				title = $2, description = $3, category = $4, tools = $5, skills = $6,
				objective = $7, summary = $8, image_url = $9
			WHERE id = $1
		`,
			project.ID,
			project.Title,
			project.Description,
			project.Category,
			project.Tools,
			project.Skills,
			project.Objective,
			project.Summary,
			project.ImageURL,
		)
		if err != nil {
			return nil, false, err
		}
	} else {
		project = &models.Project{ID: uuid.New(), DateCreated: r.now()}
		apply(project)
		_, err = tx.Exec(ctx, `
			INSERT INTO project (`+projectColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			project.ID,
			project.Title,
			project.Description,
			project.Category,
			project.Tools,
			project.Skills,
			project.Objective,
			project.Summary,
			project.ImageURL,
			project.DateCreated,
		)
		if err != nil {
			return nil, false, err
		}
		created = true
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return project, created, nil
}

// Delete reports false when no row matched; the transaction is then rolled
// back so nothing changes.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil || !deleted {
			_ = tx.Rollback(ctx)
		}
	}()

	result, err := tx.Exec(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Tools,
		&p.Skills,
		&p.Objective,
		&p.Summary,
		&p.ImageURL,
		&p.DateCreated,
	)
	if err != nil {
		return nil, err
	}
	if p.Tools == nil {
		p.Tools = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
