package settings

import (
	"context"
	"sync"

	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Keys of the persisted settings documents (one per type, _id = key).
const (
	keyNavbar    = "navbar"
	keyFooter    = "footer"
	keyInformasi = "informasi"
	keySaran     = "saran"
)

// Store owns the process-wide singleton config state. State is seeded with
// defaults, overlaid from Mongo on Load, and every update is merged under a
// mutex then persisted. Between requests the semantics stay last-writer-wins:
// the lock only keeps a single merge+persist internally consistent, it does
// not serialize admin editors against each other.
type Store struct {
	mu        sync.RWMutex
	navbar    Navbar
	footer    Footer
	informasi Informasi
	saran     Saran

	// col may be nil (tests); state is then memory-only
	col *mongo.Collection
}

// NewStore seeds defaults. Pass the `settings` collection, or nil for a
// memory-only store.
func NewStore(col *mongo.Collection) *Store {
	return &Store{
		navbar:    DefaultNavbar(),
		footer:    DefaultFooter(),
		informasi: DefaultInformasi(),
		saran:     DefaultSaran(),
		col:       col,
	}
}

// Load overlays persisted documents onto the seeded defaults so edited
// settings survive process restarts. Missing documents keep their defaults.
func (s *Store) Load(ctx context.Context) error {
	if s.col == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, dst := range map[string]interface{}{
		keyNavbar:    &s.navbar,
		keyFooter:    &s.footer,
		keyInformasi: &s.informasi,
		keySaran:     &s.saran,
	} {
		err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(dst)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return err
		}
		logger.Debugf("settings: loaded persisted %s", key)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, key string, v interface{}) error {
	if s.col == nil {
		return nil
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, v, opts)
	return err
}

func (s *Store) Navbar() Navbar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navbar
}

func (s *Store) Footer() Footer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.footer
}

func (s *Store) Informasi() Informasi {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.informasi
}

func (s *Store) Saran() Saran {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saran
}

// UpdateNavbar merges the patch, validates the merged result and persists it.
// A validation failure leaves the stored state untouched.
func (s *Store) UpdateNavbar(ctx context.Context, p NavbarPatch) (Navbar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.navbar
	p.apply(&merged)
	if errs := merged.validate(); len(errs) > 0 {
		return Navbar{}, &content.ValidationError{Fields: errs}
	}
	if err := s.persist(ctx, keyNavbar, merged); err != nil {
		return Navbar{}, err
	}
	s.navbar = merged
	return merged, nil
}

func (s *Store) UpdateFooter(ctx context.Context, p FooterPatch) (Footer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.footer
	p.apply(&merged)
	if errs := merged.validate(); len(errs) > 0 {
		return Footer{}, &content.ValidationError{Fields: errs}
	}
	if err := s.persist(ctx, keyFooter, merged); err != nil {
		return Footer{}, err
	}
	s.footer = merged
	return merged, nil
}

func (s *Store) UpdateInformasi(ctx context.Context, p InformasiPatch) (Informasi, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.informasi
	p.apply(&merged)
	if errs := merged.validate(); len(errs) > 0 {
		return Informasi{}, &content.ValidationError{Fields: errs}
	}
	if err := s.persist(ctx, keyInformasi, merged); err != nil {
		return Informasi{}, err
	}
	s.informasi = merged
	return merged, nil
}

func (s *Store) UpdateSaran(ctx context.Context, p SaranPatch) (Saran, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.saran
	p.apply(&merged)
	if errs := merged.validate(); len(errs) > 0 {
		return Saran{}, &content.ValidationError{Fields: errs}
	}
	if err := s.persist(ctx, keySaran, merged); err != nil {
		return Saran{}, err
	}
	s.saran = merged
	return merged, nil
}
