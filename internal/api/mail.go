package api

import (
	"context"
	"strings"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/validation"

	"go.uber.org/zap"
)

// SendMailParams describes one virtual mail send
type SendMailParams struct {
	StampId     string `json:"stampId" validate:"notblank"`
	Recipient   string `json:"recipient" validate:"notblank"`
	Address     string `json:"address" validate:"notblank"`
	RemoveAfter bool   `json:"-"`
}

// SendMail records a virtual mail send paid with an existing stamp.
//
// Unknown stamps are rejected with a NotFoundError, same as PlaceOrder. When
// RemoveAfter is set the stamp is consumed only after the MailRecord has been
// appended, so the send is always on record even if removal degrades.
func (s *StampService) SendMail(ctx context.Context, params SendMailParams) (*models.MailRecord, error) {
	params.Recipient = strings.TrimSpace(params.Recipient)
	params.Address = strings.TrimSpace(params.Address)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	if _, ok := s.session.Get(params.StampId); !ok {
		zap.L().Warn("Send mail with unknown stamp", logFields(ctx,
			zap.String("stamp_id", params.StampId))...)
		return nil, models.NewStampNotFound(params.StampId)
	}

	rec := models.MailRecord{
		StampId:   params.StampId,
		Recipient: params.Recipient,
		Address:   params.Address,
		SentAt:    s.now().UTC(),
	}
	s.session.AppendMail(rec)

	zap.L().Info("Virtual mail sent", logFields(ctx,
		zap.String("stamp_id", rec.StampId),
		zap.String("recipient", rec.Recipient),
		zap.Bool("remove_after", params.RemoveAfter))...)

	if params.RemoveAfter {
		s.DeleteStamp(ctx, params.StampId)
	}

	return &rec, nil
}
