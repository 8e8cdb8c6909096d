package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-api/internal/domain"
)

// TagRepo defines the persistence operations for Tags and the facility_tags
// join table. Tag names are unique case-insensitively via a lower(name) index.
type TagRepo interface {
	// List returns one id-ordered page of tags.
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error)

	// GetByID returns domain.ErrNotFound if no tag has that id.
	GetByID(ctx context.Context, id int64) (domain.Tag, error)

	// GetByIDForUpdate is GetByID holding a row lock on the tag until the
	// surrounding transaction ends. Attach takes a share lock on the same
	// row, so a delete guarded by IsReferenced cannot interleave with it.
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Tag, error)

	// FindByName looks a tag up case-insensitively.
	// Returns domain.ErrNotFound if none matches.
	FindByName(ctx context.Context, name string) (domain.Tag, error)

	// Insert creates a tag unless one with the same lower-cased name exists.
	// inserted is false, with a zero Tag and nil error, when another row
	// already holds the name; the caller re-reads it with FindByName.
	Insert(ctx context.Context, name string) (tag domain.Tag, inserted bool, err error)

	// Rename sets a tag's name. Returns domain.ErrNotFound if the tag does not
	// exist and domain.ErrConflict if another tag already owns the name.
	Rename(ctx context.Context, id int64, name string) error

	// Delete returns domain.ErrNotFound if no tag has that id.
	Delete(ctx context.Context, id int64) error

	// IsReferenced reports whether any facility carries the tag.
	IsReferenced(ctx context.Context, id int64) (bool, error)

	// Attach links a tag to a facility. Idempotent; added reports whether a
	// new row was written. Returns domain.ErrNotFound if the tag no longer
	// exists.
	Attach(ctx context.Context, facilityID, tagID int64) (added bool, err error)

	// Detach unlinks a tag from a facility and returns the number of rows
	// removed (0 when the pair did not exist).
	Detach(ctx context.Context, facilityID, tagID int64) (int64, error)

	// DetachAll removes every tag link of a facility.
	DetachAll(ctx context.Context, facilityID int64) (int64, error)

	// NamesByFacilities returns each facility's tag names ordered by name.
	// Facilities without tags are absent from the map.
	NamesByFacilities(ctx context.Context, facilityIDs []int64) (map[int64][]string, error)
}

type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

func (r *pgTagRepo) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error) {
	const q = `
		SELECT id, name
		FROM tags
		WHERE id >= @cursor
		ORDER BY id
		LIMIT @limit_plus_one`

	page, err := fetchPage(ctx, r.db, q, nil, p, scanTag, tagID)
	if err != nil {
		return domain.Page[domain.Tag]{}, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return page, nil
}

func (r *pgTagRepo) GetByID(ctx context.Context, id int64) (domain.Tag, error) {
	t, err := scanTag(r.db.QueryRow(ctx, `SELECT id, name FROM tags WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", notFound(err))
	}
	return t, nil
}

func (r *pgTagRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Tag, error) {
	const q = `SELECT id, name FROM tags WHERE id = @id FOR UPDATE`

	t, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByIDForUpdate: %w", notFound(err))
	}
	return t, nil
}

func (r *pgTagRepo) FindByName(ctx context.Context, name string) (domain.Tag, error) {
	const q = `SELECT id, name FROM tags WHERE lower(name) = lower(@name)`

	t, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.FindByName: %w", notFound(err))
	}
	return t, nil
}

// Insert uses ON CONFLICT DO NOTHING rather than letting the unique index
// raise: a raised 23505 would abort the surrounding transaction.
func (r *pgTagRepo) Insert(ctx context.Context, name string) (domain.Tag, bool, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES (@name)
		ON CONFLICT ((lower(name))) DO NOTHING
		RETURNING id, name`

	t, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Tag{}, false, nil
	}
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("repo.TagRepo.Insert: %w", err)
	}
	return t, true, nil
}

func (r *pgTagRepo) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE tags SET name = @name WHERE id = @id`,
		pgx.NamedArgs{"id": id, "name": name})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.TagRepo.Rename: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.TagRepo.Rename: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TagRepo.Rename: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTagRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TagRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTagRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM facility_tags WHERE tag_id = @id)`

	var used bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&used); err != nil {
		return false, fmt.Errorf("repo.TagRepo.IsReferenced: %w", err)
	}
	return used, nil
}

// Attach share-locks the tag row before inserting the link. The lock
// conflicts with GetByIDForUpdate, and a tag deleted while Attach waited
// is reported as domain.ErrNotFound.
func (r *pgTagRepo) Attach(ctx context.Context, facilityID, tagID int64) (bool, error) {
	var locked int64
	err := r.db.QueryRow(ctx, `SELECT id FROM tags WHERE id = @tag_id FOR SHARE`,
		pgx.NamedArgs{"tag_id": tagID}).Scan(&locked)
	if err != nil {
		return false, fmt.Errorf("repo.TagRepo.Attach: %w", notFound(err))
	}

	const q = `
		INSERT INTO facility_tags (facility_id, tag_id)
		VALUES (@facility_id, @tag_id)
		ON CONFLICT (facility_id, tag_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"facility_id": facilityID, "tag_id": tagID})
	if err != nil {
		return false, fmt.Errorf("repo.TagRepo.Attach: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgTagRepo) Detach(ctx context.Context, facilityID, tagID int64) (int64, error) {
	const q = `DELETE FROM facility_tags WHERE facility_id = @facility_id AND tag_id = @tag_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"facility_id": facilityID, "tag_id": tagID})
	if err != nil {
		return 0, fmt.Errorf("repo.TagRepo.Detach: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgTagRepo) DetachAll(ctx context.Context, facilityID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM facility_tags WHERE facility_id = @facility_id`,
		pgx.NamedArgs{"facility_id": facilityID})
	if err != nil {
		return 0, fmt.Errorf("repo.TagRepo.DetachAll: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgTagRepo) NamesByFacilities(ctx context.Context, facilityIDs []int64) (map[int64][]string, error) {
	names := make(map[int64][]string, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return names, nil
	}
	const q = `
		SELECT ft.facility_id, t.name
		FROM facility_tags ft
		JOIN tags t ON t.id = ft.tag_id
		WHERE ft.facility_id = ANY(@ids)
		ORDER BY ft.facility_id, t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": facilityIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.NamesByFacilities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("repo.TagRepo.NamesByFacilities: scan: %w", err)
		}
		names[id] = append(names[id], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.NamesByFacilities: rows: %w", err)
	}
	return names, nil
}

func scanTag(s scanner) (domain.Tag, error) {
	var t domain.Tag
	err := s.Scan(&t.ID, &t.Name)
	return t, err
}

func tagID(t domain.Tag) int64 { return t.ID }
