package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"digital-stamp-go/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomState() models.State {
	now := time.Now().UTC().Truncate(time.Millisecond)
	stampId := uuid.NewString()
	return models.State{
		Stamps: []models.Stamp{
			{
				Id:        stampId,
				Design:    models.DesignStar,
				Label:     gofakeit.LetterN(12),
				Color:     models.Color{R: gofakeit.Uint8(), G: gofakeit.Uint8(), B: gofakeit.Uint8()},
				Value:     decimal.RequireFromString("0.55"),
				ImageRef:  "stamps/" + stampId + ".png",
				CreatedAt: now,
			},
		},
		MailHistory: []models.MailRecord{
			{StampId: stampId, Recipient: gofakeit.Name(), Address: gofakeit.Street(), SentAt: now},
			{StampId: uuid.NewString(), Recipient: gofakeit.Name(), Address: gofakeit.Street(), SentAt: now.Add(time.Minute)},
		},
		Orders: []models.OrderRecord{
			{
				OrderId:         uuid.NewString(),
				StampId:         stampId,
				Quantity:        10,
				TotalCost:       decimal.RequireFromString("5.50"),
				ShippingAddress: "123 Main St",
				PlacedAt:        now,
			},
		},
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(filepath.Join(t.TempDir(), "stamp_data.json"))
	require.NoError(t, err)
	return svc
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	state := randomState()

	require.NoError(t, svc.Save(ctx, state))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(state, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_Empty(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, models.State{}))

	raw, err := os.ReadFile(svc.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"stamps":[],"mail_history":[],"orders":[]}`, string(raw))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EmptyState(), loaded)
}

// Scenario E
func TestLoad_MissingFile(t *testing.T) {
	svc := newService(t)

	state, err := svc.Load(context.Background())
	assert.Equal(t, models.EmptyState(), state)

	var warn *models.StorageWarning
	require.True(t, errors.As(err, &warn))
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_CorruptFile(t *testing.T) {
	svc := newService(t)
	require.NoError(t, os.WriteFile(svc.Path(), []byte(`{"stamps": [`), 0o644))

	state, err := svc.Load(context.Background())
	assert.Equal(t, models.EmptyState(), state)

	var warn *models.StorageWarning
	require.True(t, errors.As(err, &warn))
	assert.Equal(t, "parse", warn.Op)
}

func TestLoad_BackwardReadable(t *testing.T) {
	svc := newService(t)
	doc := `{
		"stamps": [{"id": "s1", "design": "Wavy", "label": "Old", "color": "#00ff00", "value": "1.25", "imageRef": "stamps/s1.png", "legacy": true}],
		"mail_history": [{"stampId": "s1", "recipient": "A", "address": "B", "sentAt": "2024-01-02T03:04:05Z"}]
	}`
	require.NoError(t, os.WriteFile(svc.Path(), []byte(doc), 0o644))

	state, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, state.Stamps, 1)
	assert.Equal(t, models.Color{G: 0xff}, state.Stamps[0].Color)
	assert.True(t, state.Stamps[0].Value.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, state.Stamps[0].CreatedAt.IsZero())
	assert.Len(t, state.MailHistory, 1)
	assert.NotNil(t, state.Orders)
	assert.Empty(t, state.Orders)
}

func TestSave_FieldNames(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Save(context.Background(), randomState()))

	raw, err := os.ReadFile(svc.Path())
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.ElementsMatch(t, []string{"id", "design", "label", "color", "value", "imageRef", "createdAt"}, keys(doc["stamps"][0]))
	assert.ElementsMatch(t, []string{"stampId", "recipient", "address", "sentAt"}, keys(doc["mail_history"][0]))
	assert.ElementsMatch(t, []string{"orderId", "stampId", "quantity", "totalCost", "shippingAddress", "placedAt"}, keys(doc["orders"][0]))
}

func TestSave_OverwritesWithoutLeftovers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, randomState()))
	require.NoError(t, svc.Save(ctx, models.EmptyState()))

	entries, err := os.ReadDir(filepath.Dir(svc.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be renamed or cleaned up")

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Stamps)
}

func TestSave_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	svc, err := NewService(filepath.Join(blocker, "state.json"))
	require.NoError(t, err)

	err = svc.Save(context.Background(), randomState())
	assert.True(t, errors.Is(err, models.ErrStorage))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
