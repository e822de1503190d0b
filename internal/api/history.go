package api

import (
	"digital-stamp-go/internal/models"
)

// StampUnavailable is shown for records whose stamp has since been deleted.
const StampUnavailable = "Stamp design no longer available."

type MailHistoryEntry struct {
	Record models.MailRecord
	Stamp  *models.Stamp // nil once the stamp is deleted
}

type OrderHistoryEntry struct {
	Record models.OrderRecord
	Stamp  *models.Stamp
}

// History pairs every record with its stamp, when the stamp still exists.
type History struct {
	Mail   []MailHistoryEntry
	Orders []OrderHistoryEntry
}

func (e MailHistoryEntry) StampCaption() string {
	return stampCaption(e.Stamp)
}

func (e OrderHistoryEntry) StampCaption() string {
	return stampCaption(e.Stamp)
}

func stampCaption(stamp *models.Stamp) string {
	if stamp == nil {
		return StampUnavailable
	}
	return "Stamp: " + stamp.Label
}

// History resolves weak stamp references. Dangling ids never fail.
func (s *StampService) History() History {
	lookup := func(id string) *models.Stamp {
		stamp, ok := s.session.Get(id)
		if !ok {
			return nil
		}
		return &stamp
	}

	h := History{
		Mail:   []MailHistoryEntry{},
		Orders: []OrderHistoryEntry{},
	}
	for _, rec := range s.session.MailHistory() {
		h.Mail = append(h.Mail, MailHistoryEntry{Record: rec, Stamp: lookup(rec.StampId)})
	}
	for _, rec := range s.session.Orders() {
		h.Orders = append(h.Orders, OrderHistoryEntry{Record: rec, Stamp: lookup(rec.StampId)})
	}
	return h
}
