package api

import (
	"context"
	"strings"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 1000
)

// PlaceOrderParams describes a physical stamp order
type PlaceOrderParams struct {
	StampId         string `json:"stampId" validate:"notblank"`
	Quantity        int    `json:"quantity" validate:"gte=1,lte=1000"`
	ShippingAddress string `json:"shippingAddress" validate:"notblank"`
}

// PlaceOrder prices an order against an existing stamp. The stamp stays in the
// collection so the same design can be ordered again.
func (s *StampService) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*models.OrderRecord, error) {
	params.ShippingAddress = strings.TrimSpace(params.ShippingAddress)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	stamp, ok := s.session.Get(params.StampId)
	if !ok {
		zap.L().Warn("Order for unknown stamp", logFields(ctx,
			zap.String("stamp_id", params.StampId))...)
		return nil, models.NewStampNotFound(params.StampId)
	}

	rec := models.OrderRecord{
		OrderId:         s.newId(),
		StampId:         stamp.Id,
		Quantity:        params.Quantity,
		TotalCost:       OrderCost(stamp.Value, params.Quantity),
		ShippingAddress: params.ShippingAddress,
		PlacedAt:        s.now().UTC(),
	}
	s.session.AppendOrder(rec)

	zap.L().Info("Order placed", logFields(ctx,
		zap.String("order_id", rec.OrderId),
		zap.String("stamp_id", rec.StampId),
		zap.Int("quantity", rec.Quantity),
		zap.String("total_cost", rec.TotalCost.StringFixed(2)))...)

	return &rec, nil
}

// OrderCost is value x quantity, exact.
func OrderCost(value decimal.Decimal, quantity int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(quantity)))
}
