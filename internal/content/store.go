package content

import (
	"context"
)

// Store is the versioned content store for one content type. Writes follow
// the repo-wide convention: POST appends a new active version and retires
// every older one, PUT patches an addressed version in place.
type Store struct {
	typ  Type
	repo Repository
}

func NewStore(t Type, r Repository) *Store {
	return &Store{typ: t, repo: r}
}

// Type returns the declarative description of the stored content type.
func (s *Store) Type() Type {
	return s.typ
}

// GetActive resolves the single current document for public reads. When the
// soft single-active invariant is violated the newest active document wins;
// resolution never errors for that reason.
func (s *Store) GetActive(ctx context.Context) (Document, error) {
	return s.repo.GetActive(ctx)
}

// CreateVersion validates the fields, deactivates all existing versions and
// inserts a new active document attributed to the editor.
//
// The deactivate-then-insert sequence is two separate writes, not a
// transaction: a concurrent reader between them can observe zero active
// documents (served as the 404 fallback), and two concurrent creates can
// leave two active documents until the next read settles on the newest one.
// This mirrors the traffic profile the system is designed for; do not add
// locking here without flagging the behavior change.
func (s *Store) CreateVersion(ctx context.Context, fields Document, editorID string) (Document, error) {
	if verr := s.typ.Validate(fields); verr != nil {
		return nil, verr
	}
	doc := stripReserved(fields)
	if err := s.repo.DeactivateAll(ctx); err != nil {
		return nil, err
	}
	doc[FieldIsActive] = true
	doc[FieldUpdatedBy] = editorID
	return s.repo.Insert(ctx, doc)
}

// PatchVersion validates the fields and updates the addressed document in
// place. It never touches isActive and never creates a new version; that
// asymmetry with CreateVersion is intentional.
func (s *Store) PatchVersion(ctx context.Context, id string, fields Document, editorID string) (Document, error) {
	if verr := s.typ.Validate(fields); verr != nil {
		return nil, verr
	}
	set := stripReserved(fields)
	set[FieldUpdatedBy] = editorID
	return s.repo.UpdateByID(ctx, id, set)
}

// Count reports how many versions exist, active or not.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// stripReserved copies fields minus the store-owned keys.
func stripReserved(fields Document) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		switch k {
		case FieldID, FieldIsActive, FieldUpdatedBy, FieldCreatedAt, FieldUpdatedAt:
			continue
		}
		out[k] = v
	}
	return out
}
