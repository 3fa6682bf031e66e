package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcoot/folio/internal/dbx"
	"github.com/mcoot/folio/internal/model"
)

const projectColumns = `id, owner_id, title, description, image_file, created_at`

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.ImageFile, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (s *Storage) CreateProject(ctx context.Context, project *model.Project) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var owners int
		if err := tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM accounts WHERE id = ?`), project.OwnerID).Scan(&owners); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if owners == 0 {
			return model.ErrAccountNotFound
		}

		err := tx.QueryRowContext(ctx,
			s.q(`INSERT INTO projects (owner_id, title, description, image_file, created_at)
				VALUES (?, ?, ?, ?, ?) RETURNING id`),
			project.OwnerID, project.Title, project.Description, project.ImageFile, project.CreatedAt,
		).Scan(&project.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetProject(ctx context.Context, id model.ProjectID) (*model.Project, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+projectColumns+` FROM projects WHERE id = ?`), id)
	return scanProject(row)
}

func (s *Storage) ListProjects(ctx context.Context, ownerID model.AccountID) ([]*model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT `+projectColumns+` FROM projects WHERE owner_id = ? ORDER BY id`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}

func (s *Storage) UpdateProject(ctx context.Context, project *model.Project) error {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE projects SET title = ?, description = ?, image_file = ? WHERE id = ?`),
		project.Title, project.Description, project.ImageFile, project.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, model.ErrProjectNotFound)
}

func (s *Storage) DeleteProject(ctx context.Context, id model.ProjectID) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, model.ErrProjectNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
