package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"digital-stamp-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Load reads all three collections. Any failure falls back to the empty
// state with a *models.StorageWarning.
func (s *Service) Load(ctx context.Context) (models.State, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.EmptyState(), &models.StorageWarning{Op: "load", Path: s.path, Err: err}
	}

	zap.L().Debug("Loaded state from database",
		zap.Int("stamps", len(state.Stamps)),
		zap.Int("mail_history", len(state.MailHistory)),
		zap.Int("orders", len(state.Orders)))
	return state, nil
}

func (s *Service) load(ctx context.Context) (models.State, error) {
	state := models.EmptyState()

	stamps, err := s.loadStamps(ctx)
	if err != nil {
		return state, err
	}
	mail, err := s.loadMail(ctx)
	if err != nil {
		return state, err
	}
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return state, err
	}

	state.Stamps = stamps
	state.MailHistory = mail
	state.Orders = orders
	return state, nil
}

func (s *Service) loadStamps(ctx context.Context) ([]models.Stamp, error) {
	rows, err := s.db.QueryContext(ctx, querySelectStamps)
	if err != nil {
		return nil, fmt.Errorf("failed to query stamps: %w", err)
	}
	defer rows.Close()

	stamps := []models.Stamp{}
	for rows.Next() {
		var stamp models.Stamp
		var design, color, value string
		var createdAt sql.NullTime

		if err := rows.Scan(&stamp.Id, &design, &stamp.Label, &color, &value, &stamp.ImageRef, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan stamp: %w", err)
		}

		stamp.Design = models.Design(design)
		if stamp.Color, err = models.ParseColor(color); err != nil {
			return nil, fmt.Errorf("stamp %s: %w", stamp.Id, err)
		}
		if stamp.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("failed to parse value '%s' of stamp %s: %w", value, stamp.Id, err)
		}
		if createdAt.Valid {
			stamp.CreatedAt = createdAt.Time.UTC()
		}
		stamps = append(stamps, stamp)
	}
	return stamps, rows.Err()
}

func (s *Service) loadMail(ctx context.Context) ([]models.MailRecord, error) {
	rows, err := s.db.QueryContext(ctx, querySelectMail)
	if err != nil {
		return nil, fmt.Errorf("failed to query mail history: %w", err)
	}
	defer rows.Close()

	records := []models.MailRecord{}
	for rows.Next() {
		var rec models.MailRecord
		if err := rows.Scan(&rec.StampId, &rec.Recipient, &rec.Address, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan mail record: %w", err)
		}
		rec.SentAt = rec.SentAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Service) loadOrders(ctx context.Context) ([]models.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, querySelectOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	records := []models.OrderRecord{}
	for rows.Next() {
		var rec models.OrderRecord
		var totalCost string
		if err := rows.Scan(&rec.OrderId, &rec.StampId, &rec.Quantity, &totalCost, &rec.ShippingAddress, &rec.PlacedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if rec.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
			return nil, fmt.Errorf("failed to parse total cost '%s' of order %s: %w", totalCost, rec.OrderId, err)
		}
		rec.PlacedAt = rec.PlacedAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Save rewrites every table inside one transaction, so readers see either
// the old document or the new one.
func (s *Service) Save(ctx context.Context, state models.State) error {
	if err := s.save(ctx, state.Normalize()); err != nil {
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *Service) save(ctx context.Context, state models.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{queryDeleteStamps, queryDeleteMail, queryDeleteOrders} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}

	for i, st := range state.Stamps {
		_, err := tx.ExecContext(ctx, queryInsertStamp,
			i, st.Id, string(st.Design), st.Label, st.Color.String(), st.Value.String(), st.ImageRef, nullTime(st.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert stamp %s: %w", st.Id, err)
		}
	}

	for i, rec := range state.MailHistory {
		_, err := tx.ExecContext(ctx, queryInsertMail, i, rec.StampId, rec.Recipient, rec.Address, rec.SentAt)
		if err != nil {
			return fmt.Errorf("failed to insert mail record: %w", err)
		}
	}

	for i, rec := range state.Orders {
		_, err := tx.ExecContext(ctx, queryInsertOrder,
			i, rec.OrderId, rec.StampId, rec.Quantity, rec.TotalCost.String(), rec.ShippingAddress, rec.PlacedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", rec.OrderId, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Debug("Saved state to database",
		zap.Int("stamps", len(state.Stamps)),
		zap.Int("mail_history", len(state.MailHistory)),
		zap.Int("orders", len(state.Orders)))
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
