package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dwr-api/internal/models"

	"go.uber.org/zap"
)

const (
	listForemenSQL      = `SELECT id, name FROM foremen WHERE is_active = true ORDER BY name`
	listLaborersSQL     = `SELECT id, name FROM laborers WHERE is_active = true ORDER BY name`
	listProjectsSQL     = `SELECT id, name FROM projects WHERE is_active = true ORDER BY name`
	listEquipmentSQL    = `SELECT id, name FROM equipment WHERE equipment_type = $1 AND is_active = true ORDER BY name`
	listProjectItemsSQL = `SELECT item_name, unit FROM project_items WHERE project_id = $1 AND is_active = true ORDER BY item_name`
)

// ReferenceRepository reads the lookup tables the report form is built from.
type ReferenceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReferenceRepository(db *sql.DB, logger *zap.Logger) *ReferenceRepository {
	return &ReferenceRepository{db: db, logger: logger}
}

func (r *ReferenceRepository) ListForemen(ctx context.Context) ([]models.Reference, error) {
	return r.listReferences(ctx, "foremen", listForemenSQL)
}

func (r *ReferenceRepository) ListLaborers(ctx context.Context) ([]models.Reference, error) {
	return r.listReferences(ctx, "laborers", listLaborersSQL)
}

func (r *ReferenceRepository) ListProjects(ctx context.Context) ([]models.Reference, error) {
	return r.listReferences(ctx, "projects", listProjectsSQL)
}

// ListEquipment returns active equipment of the given type.
func (r *ReferenceRepository) ListEquipment(ctx context.Context, equipmentType string) ([]models.Reference, error) {
	return r.listReferences(ctx, "equipment", listEquipmentSQL, equipmentType)
}

// ListProjectItems returns the active items configured for a project.
func (r *ReferenceRepository) ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItem, error) {
	rows, err := r.db.QueryContext(ctx, listProjectItemsSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project items: %w", err)
	}
	defer rows.Close()

	items := make([]models.ProjectItem, 0)
	for rows.Next() {
		var item models.ProjectItem
		if err := rows.Scan(&item.ItemName, &item.Unit); err != nil {
			return nil, fmt.Errorf("scan project item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project items: %w", err)
	}

	r.logger.Debug("listed project items", zap.String("project_id", projectID), zap.Int("count", len(items)))
	return items, nil
}

func (r *ReferenceRepository) listReferences(ctx context.Context, table, query string, args ...any) ([]models.Reference, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	refs := make([]models.Reference, 0)
	for rows.Next() {
		var ref models.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	r.logger.Debug("listed references", zap.String("table", table), zap.Int("count", len(refs)))
	return refs, nil
}
