/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"errors"
	"strings"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/render"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateStampParams is the validated form input for a new design
type CreateStampParams struct {
	Design models.Design
	Label  string
	Color  models.Color
	Value  decimal.Decimal
}

// PreviewStamp validates and draws a design without storing anything.
func (s *StampService) PreviewStamp(params CreateStampParams) ([]byte, error) {
	_, data, err := s.renderer.Render(params.Design, params.Label, params.Color, params.Value)
	return data, err
}

// CreateStamp renders the design, stores its raster and appends the record.
func (s *StampService) CreateStamp(ctx context.Context, params CreateStampParams) (*models.Stamp, error) {
	id, data, err := s.renderer.Render(params.Design, params.Label, params.Color, params.Value)
	if err != nil {
		zap.L().Info("Rejected stamp design", logFields(ctx,
			zap.String("design", string(params.Design)),
			zap.Error(err))...)
		return nil, err
	}

	ref, err := s.images.Put(ctx, id, data)
	if err != nil {
		zap.L().Error("Failed to store stamp image", logFields(ctx,
			zap.String("stamp_id", id),
			zap.Error(err))...)
		return nil, &models.StorageWarning{Op: "store stamp image", Path: id, Err: err}
	}

	stamp := models.Stamp{
		Id:        id,
		Design:    params.Design,
		Label:     strings.TrimSpace(params.Label),
		Color:     params.Color,
		Value:     params.Value,
		ImageRef:  ref,
		CreatedAt: s.now().UTC(),
	}
	s.session.Add(stamp)

	zap.L().Info("Stamp created", logFields(ctx,
		zap.String("stamp_id", stamp.Id),
		zap.String("design", string(stamp.Design)),
		zap.String("label", stamp.Label),
		zap.String("value", stamp.Value.StringFixed(2)),
		zap.String("image_ref", ref))...)

	return &stamp, nil
}

// DeleteStamp removes a stamp and its raster. Unknown ids report false.
func (s *StampService) DeleteStamp(ctx context.Context, id string) bool {
	removed := s.session.Remove(ctx, id)
	if removed {
		zap.L().Info("Stamp deleted", logFields(ctx, zap.String("stamp_id", id))...)
	} else {
		zap.L().Info("Stamp not found for delete", logFields(ctx, zap.String("stamp_id", id))...)
	}
	return removed
}

// ListStamps returns stamps in creation order, optionally narrowed to those
// whose label contains filter (case-insensitive).
func (s *StampService) ListStamps(filter string) []models.Stamp {
	stamps := s.session.List()
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return stamps
	}
	return lo.Filter(stamps, func(st models.Stamp, _ int) bool {
		return strings.Contains(strings.ToLower(st.Label), strings.ToLower(filter))
	})
}

// StampImage returns the PNG bytes of an existing stamp.
func (s *StampService) StampImage(ctx context.Context, id string) ([]byte, error) {
	stamp, ok := s.session.Get(id)
	if !ok {
		return nil, models.NewStampNotFound(id)
	}

	data, err := s.images.Get(ctx, stamp.ImageRef)
	if err != nil {
		return nil, &models.StorageWarning{Op: "read stamp image", Path: stamp.ImageRef, Err: err}
	}
	return data, nil
}

// FaceValue is the text printed on the stamp for its denomination.
func FaceValue(stamp models.Stamp) string {
	return render.FaceValueText(stamp.Value)
}

// IsUserError reports whether err is caused by input rather than storage.
func IsUserError(err error) bool {
	return errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrNotFound)
}
