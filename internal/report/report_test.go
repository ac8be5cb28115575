package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() (types, locs []DimOrder) {
	types = []DimOrder{{Name: "APC", SortOrder: 1}, {Name: "LAV", SortOrder: 2}, {Name: "Truck", SortOrder: 3}}
	locs = []DimOrder{{Name: "North", SortOrder: 1}, {Name: "South", SortOrder: 2}}
	return
}

func TestTypeMatrixExample(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{
		{TypeName: "APC", LocationName: "North", Status: "Active", Category: "FMC"},
		{TypeName: "APC", LocationName: "South", Status: "Inactive", Category: "NMC"},
		{TypeName: "LAV", LocationName: "North", Status: "Active", Category: "FMC"},
	}

	out := TypeMatrix(rows, types, locs)
	require.Len(t, out, 2)

	assert.Equal(t, "APC", out[0].Name)
	assert.Equal(t, 2, out[0].Total)
	assert.Equal(t, 1, out[0].StatusCounts["Active"])
	assert.Equal(t, 1, out[0].StatusCounts["Inactive"])

	assert.Equal(t, "LAV", out[1].Name)
	assert.Equal(t, 1, out[1].Total)
	assert.Equal(t, 1, out[1].StatusCounts["Active"])

	grand := 0
	for _, g := range out {
		grand += g.Total
	}
	assert.Equal(t, len(rows), grand)
}

func TestTypeMatrixBreakdownConsistency(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{
		{TypeName: "APC", LocationName: "North", Status: "Active", Category: "FMC"},
		{TypeName: "APC", LocationName: "North", Status: "Active", Category: "Degraded"},
		{TypeName: "APC", LocationName: "South", Status: "Inactive", Category: "NMC"},
		{TypeName: "Truck", LocationName: "South", Status: "Active", Category: "FMC"},
		{TypeName: "Truck", LocationName: "", Status: "", Category: ""},
	}

	for _, g := range TypeMatrix(rows, types, locs) {
		statusSum, catSum, locSum := 0, 0, 0
		for _, n := range g.StatusCounts {
			statusSum += n
		}
		for _, n := range g.CategoryCounts {
			catSum += n
		}
		for _, cell := range g.Locations {
			locSum += cell.Total
		}
		assert.Equal(t, g.Total, statusSum, "type %s status breakdown", g.Name)
		assert.Equal(t, g.Total, catSum, "type %s category breakdown", g.Name)
		assert.Equal(t, g.Total, locSum, "type %s location subtotals", g.Name)
	}
}

func TestTypeMatrixUnknownsKeptAndSortedLast(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{
		{TypeName: "Ghost", LocationName: "North", Status: "Active", Category: "FMC"},
		{TypeName: "APC", LocationName: "North", Status: "Active", Category: "FMC"},
		{TypeName: "", LocationName: "", Status: "", Category: ""},
	}

	out := TypeMatrix(rows, types, locs)
	require.Len(t, out, 3)

	// Ordering non-decreasing in rank; unranked names after ranked.
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].rank, out[i].rank)
	}
	assert.Equal(t, "APC", out[0].Name)
	require.NotNil(t, out[0].SortOrder)
	assert.Equal(t, 1, *out[0].SortOrder)
	assert.Nil(t, out[1].SortOrder)
	assert.Nil(t, out[2].SortOrder)
	// Ghost and Unknown both unranked, tie broken by name.
	assert.Equal(t, "Ghost", out[1].Name)
	assert.Equal(t, UnknownBucket, out[2].Name)

	// The blank row landed in Unknown buckets, not dropped.
	assert.Equal(t, 1, out[2].Total)
	assert.Equal(t, 1, out[2].StatusCounts[UnknownBucket])
	assert.Equal(t, 1, out[2].CategoryCounts[UnknownBucket])
}

func TestTypeMatrixUnrankedGroupOmitsSortOrderJSON(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{
		{TypeName: "Ghost", LocationName: "North", Status: "Active", Category: "FMC"},
		{TypeName: "APC", LocationName: "North", Status: "Active", Category: "FMC"},
	}

	b, err := json.Marshal(TypeMatrix(rows, types, locs))
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, float64(1), decoded[0]["sort_order"])
	_, present := decoded[1]["sort_order"]
	assert.False(t, present, "unranked group must not serialize a sentinel sort_order")
}

func TestTypeMatrixDoesNotMutateInput(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{{TypeName: "APC", LocationName: "North", Status: "Active", Category: "FMC"}}
	orig := rows[0]
	_ = TypeMatrix(rows, types, locs)
	assert.Equal(t, orig, rows[0])
}

func TestLocationPivotTotalsAndZeroColumns(t *testing.T) {
	types, locs := sampleOrders()
	rows := []VehicleRow{
		{TypeName: "APC", LocationName: "North"},
		{TypeName: "APC", LocationName: "North"},
		{TypeName: "LAV", LocationName: "South"},
	}

	p := LocationPivot(rows, types, locs)

	// Truck has a zero column sum and must be dropped.
	assert.Equal(t, []string{"APC", "LAV"}, p.TypeColumns)
	assert.Equal(t, 3, p.GrandTotal)
	assert.Equal(t, 2, p.ColumnTotals["APC"])
	assert.Equal(t, 1, p.ColumnTotals["LAV"])

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "North", p.Rows[0].Location)
	assert.Equal(t, 2, p.Rows[0].Total)
	assert.Equal(t, 2, p.Rows[0].Counts["APC"])
	assert.Equal(t, "South", p.Rows[1].Location)
	assert.Equal(t, 1, p.Rows[1].Total)

	rowSum := 0
	for _, r := range p.Rows {
		rowSum += r.Total
	}
	assert.Equal(t, p.GrandTotal, rowSum)
}

func TestLocationPivotEmptyInput(t *testing.T) {
	types, locs := sampleOrders()
	p := LocationPivot(nil, types, locs)
	assert.Empty(t, p.TypeColumns)
	assert.Empty(t, p.Rows)
	assert.Zero(t, p.GrandTotal)
}
