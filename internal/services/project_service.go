package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/internal/metrics"
	"portfolio/internal/models"
)

const RecentProjectsLimit = 5

type ProjectStore interface {
	ListRecent(ctx context.Context, n int) ([]models.Project, error)
	ListAll(ctx context.Context, category string) ([]models.Project, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Upsert(ctx context.Context, id *uuid.UUID, apply func(*models.Project)) (*models.Project, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ProjectService struct {
	store   ProjectStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewProjectService(store ProjectStore, m *metrics.Metrics, logger *zap.Logger) *ProjectService {
	return &ProjectService{store: store, metrics: m, logger: logger.Named("projects")}
}

// ListRecent returns at most n projects, newest first.
func (s *ProjectService) ListRecent(ctx context.Context, n int) ([]models.Project, error) {
	if n <= 0 {
		return []models.Project{}, nil
	}
	projects, err := s.store.ListRecent(ctx, n)
	if err != nil {
		return nil, persistence("list recent projects", err)
	}
	return projects, nil
}

// ListAll filters by exact category when category is non-empty.
func (s *ProjectService) ListAll(ctx context.Context, category string) ([]models.Project, error) {
	projects, err := s.store.ListAll(ctx, category)
	if err != nil {
		return nil, persistence("list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) DistinctCategories(ctx context.Context) ([]string, error) {
	categories, err := s.store.DistinctCategories(ctx)
	if err != nil {
		return nil, persistence("list categories", err)
	}
	return categories, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("get project", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return project, nil
}

// Upsert validates in, then updates the project with id in place when it
// exists or creates a new one. created tells the caller which happened.
func (s *ProjectService) Upsert(ctx context.Context, id *uuid.UUID, in models.ProjectInput) (*models.Project, bool, error) {
	in.Prepare()
	if err := validateProject(in); err != nil {
		return nil, false, err
	}

	project, created, err := s.store.Upsert(ctx, id, in.Apply)
	if err != nil {
		s.metrics.ProjectMutation(mutationKind(id == nil), "failure")
		s.logger.Error("error adding/updating project", zap.Error(err))
		return nil, false, persistence("save project", err)
	}

	s.metrics.ProjectMutation(mutationKind(created), "success")
	s.logger.Info("project saved", zap.String("id", project.ID.String()), zap.Bool("created", created))
	return project, created, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.metrics.ProjectMutation("delete", "failure")
		s.logger.Error("error deleting project", zap.String("id", id.String()), zap.Error(err))
		return persistence("delete project", err)
	}
	if !deleted {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	s.metrics.ProjectMutation("delete", "success")
	s.logger.Info("project deleted", zap.String("id", id.String()))
	return nil
}

func validateProject(in models.ProjectInput) error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func mutationKind(created bool) string {
	if created {
		return "create"
	}
	return "update"
}
