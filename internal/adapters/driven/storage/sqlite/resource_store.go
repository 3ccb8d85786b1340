package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// CommitResource inserts a resource and all its chunks in one
// transaction. A duplicate file path surfaces as ErrAlreadyExists.
func (s *Store) CommitResource(ctx context.Context, resource domain.Resource, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO resources (id, type, subtype, file_name, file_path, recorded_at, created_at, title)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, resource.ID, string(resource.Type), string(resource.Subtype),
		resource.FileName, resource.FilePath, nullTime(resource.RecordedAt),
		resource.CreatedAt, resource.Title)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("resource at %s: %w", resource.FilePath, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("inserting resource: %w", err)
	}

	for _, chunk := range chunks {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks (id, resource_id, text, language, page, paragraph, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.ResourceID, chunk.Text, string(chunk.Language),
			nullInt(chunk.Page), nullInt(chunk.Paragraph), nullStr(chunk.Timestamp))
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing resource: %w", err)
	}
	return nil
}

// GetResourceByPath looks a resource up by its absolute file path.
func (s *Store) GetResourceByPath(ctx context.Context, path string) (domain.Resource, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, subtype, file_name, file_path, recorded_at, created_at, title
		FROM resources WHERE file_path = ?
	`, path)
	return scanResource(row)
}

// GetResourceByID looks a resource up by ID.
func (s *Store) GetResourceByID(ctx context.Context, id string) (domain.Resource, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, subtype, file_name, file_path, recorded_at, created_at, title
		FROM resources WHERE id = ?
	`, id)
	return scanResource(row)
}

// ListResources returns all resources ordered by creation time.
func (s *Store) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, subtype, file_name, file_path, recorded_at, created_at, title
		FROM resources ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// AllFilePaths returns the set of file paths already ingested.
func (s *Store) AllFilePaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT file_path FROM resources")
	if err != nil {
		return nil, fmt.Errorf("listing file paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning file path: %w", err)
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}

// ChunksByIDs returns the chunks with the given IDs joined with their
// resources. Unknown IDs are silently omitted.
func (s *Store) ChunksByIDs(ctx context.Context, ids []string) ([]domain.ChunkWithResource, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT c.id, c.resource_id, c.text, c.language, c.page, c.paragraph, c.timestamp,
		       r.id, r.type, r.subtype, r.file_name, r.file_path, r.recorded_at, r.created_at, r.title
		FROM chunks c
		JOIN resources r ON r.id = c.resource_id
		WHERE c.id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.ChunkWithResource
	for rows.Next() {
		var cw domain.ChunkWithResource
		var page, paragraph sql.NullInt64
		var timestamp sql.NullString
		var recordedAt sql.NullTime
		var ctype, csubtype, clang string

		err := rows.Scan(
			&cw.Chunk.ID, &cw.Chunk.ResourceID, &cw.Chunk.Text, &clang,
			&page, &paragraph, &timestamp,
			&cw.Resource.ID, &ctype, &csubtype, &cw.Resource.FileName,
			&cw.Resource.FilePath, &recordedAt, &cw.Resource.CreatedAt,
			&cw.Resource.Title,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}

		cw.Chunk.Language = domain.Language(clang)
		cw.Resource.Type = domain.ResourceType(ctype)
		cw.Resource.Subtype = domain.ResourceSubtype(csubtype)
		if page.Valid {
			v := int(page.Int64)
			cw.Chunk.Page = &v
		}
		if paragraph.Valid {
			v := int(paragraph.Int64)
			cw.Chunk.Paragraph = &v
		}
		if timestamp.Valid {
			cw.Chunk.Timestamp = &timestamp.String
		}
		if recordedAt.Valid {
			t := recordedAt.Time.UTC()
			cw.Resource.RecordedAt = &t
		}

		results = append(results, cw)
	}
	return results, rows.Err()
}

// CountChunks reports the number of stored chunks.
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResource(row scanner) (domain.Resource, error) {
	var r domain.Resource
	var rtype, rsubtype string
	var recordedAt sql.NullTime

	err := row.Scan(&r.ID, &rtype, &rsubtype, &r.FileName, &r.FilePath,
		&recordedAt, &r.CreatedAt, &r.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Resource{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Resource{}, fmt.Errorf("scanning resource: %w", err)
	}

	r.Type = domain.ResourceType(rtype)
	r.Subtype = domain.ResourceSubtype(rsubtype)
	if recordedAt.Valid {
		t := recordedAt.Time.UTC()
		r.RecordedAt = &t
	}
	return r, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullStr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
