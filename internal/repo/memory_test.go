package repo

import (
	"context"
	"testing"
	"time"

	"github.com/porterhub/shipment-service/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipment(id, orderID, tracking string, createdAt time.Time) entities.Shipment {
	return entities.Shipment{
		ID:             id,
		OrderID:        orderID,
		TrackingNumber: tracking,
		Status:         entities.StatusPickupPending,
		Origin:         "Pune Warehouse",
		Destination:    "Mumbai",
		CreatedAt:      createdAt,
	}
}

func TestMemoryRepo_CreateShipment_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	now := time.Now()

	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-1", "ord-1", "TRK-1", now)))

	err := r.CreateShipment(ctx, testShipment("shp-2", "ord-1", "TRK-2", now))
	assert.ErrorIs(t, err, entities.ErrDuplicateOrder)

	err = r.CreateShipment(ctx, testShipment("shp-3", "ord-3", "TRK-1", now))
	assert.ErrorIs(t, err, entities.ErrTrackingNumberConflict)
}

func TestMemoryRepo_Lookups(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	now := time.Now()

	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-1", "ord-1", "TRK-1", now)))

	got, err := r.GetShipment(ctx, "shp-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", got.OrderID)

	got, err = r.GetShipmentByOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "shp-1", got.ID)

	got, err = r.GetShipmentByTracking(ctx, "TRK-1")
	require.NoError(t, err)
	assert.Equal(t, "shp-1", got.ID)

	_, err = r.GetShipment(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrShipmentNotFound)
}

func TestMemoryRepo_AppendEvent(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	now := time.Now()

	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-1", "ord-1", "TRK-1", now)))

	_, err := r.AppendEvent(ctx, entities.TrackingEvent{ID: "ev-x", ShipmentID: "missing"})
	assert.ErrorIs(t, err, entities.ErrShipmentNotFound)

	first, err := r.AppendEvent(ctx, entities.TrackingEvent{
		ID: "ev-1", ShipmentID: "shp-1", OccurredAt: now,
	})
	require.NoError(t, err)
	second, err := r.AppendEvent(ctx, entities.TrackingEvent{
		ID: "ev-2", ShipmentID: "shp-1", OccurredAt: now,
	})
	require.NoError(t, err)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestMemoryRepo_ListEvents_OrderAndIdempotence(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	now := time.Now()

	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-1", "ord-1", "TRK-1", now)))

	// Same timestamp for the first two: insertion order breaks the tie.
	for _, ev := range []entities.TrackingEvent{
		{ID: "ev-1", ShipmentID: "shp-1", OccurredAt: now},
		{ID: "ev-2", ShipmentID: "shp-1", OccurredAt: now},
		{ID: "ev-3", ShipmentID: "shp-1", OccurredAt: now.Add(time.Minute)},
	} {
		_, err := r.AppendEvent(ctx, ev)
		require.NoError(t, err)
	}

	first, err := r.ListEvents(ctx, "shp-1")
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "ev-1", first[0].ID)
	assert.Equal(t, "ev-2", first[1].ID)
	assert.Equal(t, "ev-3", first[2].ID)

	second, err := r.ListEvents(ctx, "shp-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	empty, err := r.ListEvents(ctx, "no-events")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryRepo_SearchShipments(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	base := time.Now()

	a := testShipment("shp-a", "ORD-5503", "TRK-100", base.Add(-2*time.Hour))
	b := testShipment("shp-b", "ORD-5504", "TRK-200", base.Add(-time.Hour))
	b.Status = entities.StatusInTransit
	b.PartnerID = "ptr-1"
	c := testShipment("shp-c", "ORD-9000", "XYZ-300", base)
	c.Status = entities.StatusInTransit

	for _, s := range []entities.Shipment{a, b, c} {
		require.NoError(t, r.CreateShipment(ctx, s))
	}

	inTransit := entities.StatusInTransit

	testCases := []struct {
		name    string
		filter  entities.ShipmentFilter
		wantIDs []string
	}{
		{
			name:    "no filter returns all newest first",
			filter:  entities.ShipmentFilter{},
			wantIDs: []string{"shp-c", "shp-b", "shp-a"},
		},
		{
			name:    "status filter",
			filter:  entities.ShipmentFilter{Status: &inTransit},
			wantIDs: []string{"shp-c", "shp-b"},
		},
		{
			name:    "courier filter",
			filter:  entities.ShipmentFilter{PartnerID: "ptr-1"},
			wantIDs: []string{"shp-b"},
		},
		{
			name:    "text matches tracking number case-insensitively",
			filter:  entities.ShipmentFilter{Query: "trk-1"},
			wantIDs: []string{"shp-a"},
		},
		{
			name:    "text matches order id",
			filter:  entities.ShipmentFilter{Query: "550"},
			wantIDs: []string{"shp-b", "shp-a"},
		},
		{
			name:    "filters are ANDed",
			filter:  entities.ShipmentFilter{Status: &inTransit, Query: "550"},
			wantIDs: []string{"shp-b"},
		},
		{
			name:    "no match",
			filter:  entities.ShipmentFilter{Query: "nothing"},
			wantIDs: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.SearchShipments(ctx, tc.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestMemoryRepo_UpdateTrackingNumber(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	now := time.Now()

	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-1", "ord-1", "TRK-1", now)))
	require.NoError(t, r.CreateShipment(ctx, testShipment("shp-2", "ord-2", "TRK-2", now)))

	err := r.UpdateTrackingNumber(ctx, "shp-1", "TRK-2")
	assert.ErrorIs(t, err, entities.ErrTrackingNumberConflict)

	// Re-assigning a shipment's own number is allowed.
	require.NoError(t, r.UpdateTrackingNumber(ctx, "shp-1", "TRK-1"))

	require.NoError(t, r.UpdateTrackingNumber(ctx, "shp-1", "TRK-9"))
	got, err := r.GetShipment(ctx, "shp-1")
	require.NoError(t, err)
	assert.Equal(t, "TRK-9", got.TrackingNumber)
}

func TestMemoryRepo_Partners(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	_, err := r.GetPartner(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrPartnerNotFound)

	r.SeedPartner(entities.DeliveryPartner{ID: "ptr-2", Name: "Zoe", Provider: "FleetX"})
	r.SeedPartner(entities.DeliveryPartner{ID: "ptr-1", Name: "Arjun", Provider: "FleetX"})

	p, err := r.GetPartner(ctx, "ptr-1")
	require.NoError(t, err)
	assert.Equal(t, "Arjun", p.Name)

	all, err := r.ListPartners(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Arjun", all[0].Name)
	assert.Equal(t, "Zoe", all[1].Name)
}
