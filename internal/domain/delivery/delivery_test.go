package delivery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/shared"
)

func TestNewGroup(t *testing.T) {
	deliveryID := uuid.New()

	t.Run("creates group successfully", func(t *testing.T) {
		group, err := NewGroup(deliveryID, "B1", 5)

		require.NoError(t, err)
		assert.Equal(t, "B1", group.GroupCode)
		assert.Equal(t, 5, group.ExpectedCount)
		assert.Equal(t, deliveryID, group.DeliveryID)
		assert.NotEqual(t, uuid.Nil, group.ID)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		group, err := NewGroup(deliveryID, "  ", 5)

		assert.Error(t, err)
		assert.Nil(t, group)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with negative expected count", func(t *testing.T) {
		group, err := NewGroup(deliveryID, "B1", -1)

		assert.Error(t, err)
		assert.Nil(t, group)
	})
}

func TestGroupAddScan(t *testing.T) {
	group, err := NewGroup(uuid.New(), "B1", 8)
	require.NoError(t, err)

	t.Run("appends resolved scans", func(t *testing.T) {
		require.NoError(t, group.AddScan(uuid.New(), 5))
		require.NoError(t, group.AddScan(uuid.New(), 3))

		assert.Len(t, group.Scans, 2)
		assert.Equal(t, group.ID, group.Scans[0].DeliveryGroupID)
		assert.Equal(t, 8, group.ScanTotal())
	})

	t.Run("rejects unresolved scanner", func(t *testing.T) {
		err := group.AddScan(uuid.Nil, 5)
		assert.Error(t, err)
	})

	t.Run("rejects negative count", func(t *testing.T) {
		err := group.AddScan(uuid.New(), -2)
		assert.Error(t, err)
	})
}

func TestDeliveryTotalDelivered(t *testing.T) {
	d := NewDelivery(uuid.New(), time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), d.DeliveryDate, "date is truncated to midnight")

	g1, err := NewGroup(d.ID, "B1", 5)
	require.NoError(t, err)
	require.NoError(t, g1.AddScan(uuid.New(), 5))

	g2, err := NewGroup(d.ID, "B2", 7)
	require.NoError(t, err)
	require.NoError(t, g2.AddScan(uuid.New(), 4))
	require.NoError(t, g2.AddScan(uuid.New(), 3))

	d.Groups = []Group{*g1, *g2}
	assert.Equal(t, 12, d.TotalDelivered())
}

func newLoadedDelivery(t *testing.T) *Delivery {
	t.Helper()

	d := NewDelivery(uuid.New(), time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC))

	s1 := &fleet.Scanner{BaseEntity: shared.NewBaseEntity(), Code: "S1", Active: true}
	s2 := &fleet.Scanner{BaseEntity: shared.NewBaseEntity(), Code: "S2", Active: true}

	d.Groups = []Group{
		{
			BaseEntity: shared.NewBaseEntity(),
			DeliveryID: d.ID,
			GroupCode:  "B1",
			Scans: []Scan{
				{BaseEntity: shared.NewBaseEntity(), ScannerID: s1.ID, Scanner: s1, DeliveredCount: 5},
				{BaseEntity: shared.NewBaseEntity(), ScannerID: s2.ID, Scanner: s2, DeliveredCount: 2},
			},
		},
		{
			BaseEntity: shared.NewBaseEntity(),
			DeliveryID: d.ID,
			GroupCode:  "B2",
			Scans: []Scan{
				{BaseEntity: shared.NewBaseEntity(), ScannerID: s1.ID, Scanner: s1, DeliveredCount: 3},
			},
		},
	}
	return d
}

func TestSummarize(t *testing.T) {
	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	t.Run("nil delivery means nothing submitted", func(t *testing.T) {
		summary := Summarize(nil, date)

		assert.False(t, summary.Submitted)
		assert.Equal(t, date, summary.DeliveryDate)
		assert.Zero(t, summary.TotalDelivered)
	})

	t.Run("projects groups, scanners and batches", func(t *testing.T) {
		summary := Summarize(newLoadedDelivery(t), date)

		assert.True(t, summary.Submitted)
		assert.Equal(t, 10, summary.TotalDelivered)
		assert.Equal(t, []string{"B1", "B2"}, summary.GroupCodes)
		assert.Equal(t, []string{"S1", "S2"}, summary.ScannerCodes)
		assert.Equal(t, []BatchRow{
			{GroupCode: "B1", ScannerCode: "S1", DeliveredCount: 5},
			{GroupCode: "B1", ScannerCode: "S2", DeliveredCount: 2},
			{GroupCode: "B2", ScannerCode: "S1", DeliveredCount: 3},
		}, summary.Batches)
	})

	t.Run("total matches single submitted batch", func(t *testing.T) {
		d := NewDelivery(uuid.New(), date)
		s := &fleet.Scanner{BaseEntity: shared.NewBaseEntity(), Code: "S1", Active: true}
		d.Groups = []Group{{
			BaseEntity: shared.NewBaseEntity(),
			GroupCode:  "B1",
			Scans:      []Scan{{BaseEntity: shared.NewBaseEntity(), ScannerID: s.ID, Scanner: s, DeliveredCount: 5}},
		}}

		summary := Summarize(d, date)

		assert.Equal(t, 5, summary.TotalDelivered)
		assert.Equal(t, []BatchRow{{GroupCode: "B1", ScannerCode: "S1", DeliveredCount: 5}}, summary.Batches)
	})

	t.Run("skips groups without a code", func(t *testing.T) {
		d := newLoadedDelivery(t)
		d.Groups[1].GroupCode = ""

		summary := Summarize(d, date)

		assert.Equal(t, []string{"B1"}, summary.GroupCodes)
		assert.Len(t, summary.Batches, 2)
		assert.Equal(t, 7, summary.TotalDelivered, "skipped group's scans do not count")
	})

	t.Run("unresolved scanner still counts toward total", func(t *testing.T) {
		d := newLoadedDelivery(t)
		d.Groups[0].Scans[1].Scanner = nil

		summary := Summarize(d, date)

		assert.Equal(t, 10, summary.TotalDelivered)
		assert.Equal(t, []string{"S1"}, summary.ScannerCodes)
		assert.Len(t, summary.Batches, 2)
	})

	t.Run("deduplicates codes in insertion order", func(t *testing.T) {
		d := newLoadedDelivery(t)
		d.Groups[1].GroupCode = "B1"

		summary := Summarize(d, date)

		assert.Equal(t, []string{"B1"}, summary.GroupCodes)
		assert.Equal(t, []string{"S1", "S2"}, summary.ScannerCodes)
	})
}
