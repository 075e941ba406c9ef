package repository // repository defines data access for persisted venue layouts

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions

	"github.com/seatkit/layout-designer/internal/layout"
)

// ErrLayoutNotFound is returned when a venue has no persisted layout yet.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrLayoutCorrupt is returned when the stored document cannot be parsed.
// Callers treat it like a missing layout and fall back to a generated
// default instead of failing the editor.
var ErrLayoutCorrupt = errors.New("layout document corrupt")

// LayoutRepo stores one JSON layout document per venue. The document column
// carries the full persisted record shape; a save replaces the whole
// document in a single statement, so a failed save can never leave a
// half-written layout behind.
type LayoutRepo struct {
	db   *sql.DB
	cats *layout.Registry
}

// NewLayoutRepo constructs a LayoutRepo decoding against the given category
// registry.
func NewLayoutRepo(db *sql.DB, cats *layout.Registry) *LayoutRepo {
	return &LayoutRepo{db: db, cats: cats}
}

// Load fetches and decodes the layout of a venue. Missing rows map to
// ErrLayoutNotFound; undecodable documents map to ErrLayoutCorrupt.
func (r *LayoutRepo) Load(ctx context.Context, venueID uint64) (*layout.Layout, error) {
	const q = `SELECT doc FROM layouts WHERE venue_id = ?`
	var doc []byte
	err := r.db.QueryRowContext(ctx, q, venueID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	l, err := layout.DecodeLayout(doc, r.cats)
	if err != nil {
		return nil, ErrLayoutCorrupt
	}
	return l, nil
}

// LoadOwned fetches a venue's layout while enforcing ownership.
func (r *LayoutRepo) LoadOwned(ctx context.Context, venueID, ownerID uint64) (*layout.Layout, error) {
	const q = `SELECT doc FROM layouts WHERE venue_id = ? AND owner_id = ?`
	var doc []byte
	err := r.db.QueryRowContext(ctx, q, venueID, ownerID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	l, err := layout.DecodeLayout(doc, r.cats)
	if err != nil {
		return nil, ErrLayoutCorrupt
	}
	return l, nil
}

// Save upserts the full layout document for a venue. The write is a single
// statement: either the whole document lands or nothing does.
func (r *LayoutRepo) Save(ctx context.Context, venueID, ownerID uint64, l *layout.Layout) error {
	doc, err := layout.EncodeLayout(l)
	if err != nil {
		return err
	}
	const q = `INSERT INTO layouts (venue_id, owner_id, doc)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE doc = VALUES(doc), updated_at = CURRENT_TIMESTAMP`
	_, err = r.db.ExecContext(ctx, q, venueID, ownerID, doc)
	return err
}

// Owner returns the owner of a venue's stored layout, or ErrLayoutNotFound.
func (r *LayoutRepo) Owner(ctx context.Context, venueID uint64) (uint64, error) {
	const q = `SELECT owner_id FROM layouts WHERE venue_id = ?`
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, q, venueID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrLayoutNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

// Delete removes a venue's layout while enforcing ownership. Returns
// sql.ErrNoRows when nothing matched.
func (r *LayoutRepo) Delete(ctx context.Context, venueID, ownerID uint64) error {
	const q = `DELETE FROM layouts WHERE venue_id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, venueID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
