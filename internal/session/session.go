// Package session holds the in-memory collections for the one active user
// session. Callers create a Session, restore it from the persistence
// gateway, mutate it through the api package and snapshot it back.
package session

import (
	"context"
	"errors"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/store"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Session struct {
	images      store.ImageStore
	stamps      []models.Stamp
	mailHistory []models.MailRecord
	orders      []models.OrderRecord
}

func New(images store.ImageStore) *Session {
	return &Session{
		images:      images,
		stamps:      []models.Stamp{},
		mailHistory: []models.MailRecord{},
		orders:      []models.OrderRecord{},
	}
}

// Restore replaces all collections with the contents of state.
func (s *Session) Restore(state models.State) {
	state = state.Normalize()
	s.stamps = append([]models.Stamp{}, state.Stamps...)
	s.mailHistory = append([]models.MailRecord{}, state.MailHistory...)
	s.orders = append([]models.OrderRecord{}, state.Orders...)
}

// Snapshot copies the collections into a persistable document.
func (s *Session) Snapshot() models.State {
	return models.State{
		Stamps:      s.List(),
		MailHistory: s.MailHistory(),
		Orders:      s.Orders(),
	}
}

// --- Stamps ---

func (s *Session) Add(stamp models.Stamp) {
	s.stamps = append(s.stamps, stamp)
}

func (s *Session) Get(id string) (models.Stamp, bool) {
	return lo.Find(s.stamps, func(st models.Stamp) bool { return st.Id == id })
}

// List returns the stamps in insertion order.
func (s *Session) List() []models.Stamp {
	return append([]models.Stamp{}, s.stamps...)
}

// Remove drops the stamp and its raster. It reports false for an unknown id.
// A raster that is already gone, or cannot be deleted, does not keep the
// record alive.
func (s *Session) Remove(ctx context.Context, id string) bool {
	stamp, ok := s.Get(id)
	if !ok {
		return false
	}

	s.stamps = lo.Reject(s.stamps, func(st models.Stamp, _ int) bool { return st.Id == id })

	if stamp.ImageRef == "" || s.images == nil {
		return true
	}
	if err := s.images.Delete(ctx, stamp.ImageRef); err != nil {
		if errors.Is(err, store.ErrImageNotFound) {
			zap.L().Warn("Stamp image already missing",
				zap.String("stamp_id", id),
				zap.String("image_ref", stamp.ImageRef))
		} else {
			zap.L().Warn("Failed to delete stamp image",
				zap.String("stamp_id", id),
				zap.String("image_ref", stamp.ImageRef),
				zap.Error(err))
		}
	}
	return true
}

// --- History ---

func (s *Session) AppendMail(rec models.MailRecord) {
	s.mailHistory = append(s.mailHistory, rec)
}

func (s *Session) MailHistory() []models.MailRecord {
	return append([]models.MailRecord{}, s.mailHistory...)
}

func (s *Session) AppendOrder(rec models.OrderRecord) {
	s.orders = append(s.orders, rec)
}

func (s *Session) Orders() []models.OrderRecord {
	return append([]models.OrderRecord{}, s.orders...)
}
