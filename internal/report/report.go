// Package report builds the count rollups behind the two report pages.
// Everything here is a pure function of (rows, ordered dimension lists):
// no database access, no mutation of input, deterministic output.
package report

import "sort"

// UnknownBucket collects rows whose type, location, status or category
// could not be resolved. Rows are never dropped.
const UnknownBucket = "Unknown"

// unknownSortOrder sorts after every real sort_order value.
const unknownSortOrder = int(^uint(0) >> 1)

// VehicleRow is one vehicle as consumed by the rollups: dimension names
// already resolved, empty string meaning unknown.
type VehicleRow struct {
	TypeName     string
	LocationName string
	Status       string
	Category     string
}

// DimOrder pairs a dimension value with its curated sort_order.
type DimOrder struct {
	Name      string
	SortOrder int
}

// LocationCell is the per-location leaf inside a type group.
type LocationCell struct {
	Name           string         `json:"name"`
	Total          int            `json:"total"`
	StatusCounts   map[string]int `json:"status_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// TypeGroup is one outer row of the type matrix. SortOrder is nil for a
// type absent from the reference list; such groups still sort last via
// the internal rank, but no sentinel value leaks into the JSON.
type TypeGroup struct {
	Name           string         `json:"name"`
	SortOrder      *int           `json:"sort_order,omitempty"`
	Total          int            `json:"total"`
	StatusCounts   map[string]int `json:"status_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
	Locations      []LocationCell `json:"locations"`

	rank int
}

// TypeMatrix rolls rows up into type -> location -> status/category counts.
// Outer groups come back ascending in the curated sort_order of typeOrder;
// a type absent from typeOrder (including the Unknown bucket) sorts last.
// Location cells within a group follow locationOrder the same way.
func TypeMatrix(rows []VehicleRow, typeOrder, locationOrder []DimOrder) []TypeGroup {
	typeRank := rankOf(typeOrder)
	locRank := rankOf(locationOrder)

	groups := make(map[string]*TypeGroup)
	cells := make(map[string]map[string]*LocationCell)

	for _, r := range rows {
		tn := orUnknown(r.TypeName)
		ln := orUnknown(r.LocationName)
		st := orUnknown(r.Status)
		cat := orUnknown(r.Category)

		g, ok := groups[tn]
		if !ok {
			g = &TypeGroup{
				Name:           tn,
				StatusCounts:   map[string]int{},
				CategoryCounts: map[string]int{},
				rank:           rankFor(typeRank, tn),
			}
			if r, ranked := typeRank[tn]; ranked {
				order := r
				g.SortOrder = &order
			}
			groups[tn] = g
			cells[tn] = map[string]*LocationCell{}
		}
		g.Total++
		g.StatusCounts[st]++
		g.CategoryCounts[cat]++

		cell, ok := cells[tn][ln]
		if !ok {
			cell = &LocationCell{
				Name:           ln,
				StatusCounts:   map[string]int{},
				CategoryCounts: map[string]int{},
			}
			cells[tn][ln] = cell
		}
		cell.Total++
		cell.StatusCounts[st]++
		cell.CategoryCounts[cat]++
	}

	out := make([]TypeGroup, 0, len(groups))
	for tn, g := range groups {
		locs := make([]LocationCell, 0, len(cells[tn]))
		for _, cell := range cells[tn] {
			locs = append(locs, *cell)
		}
		sort.Slice(locs, func(i, j int) bool {
			ri, rj := rankFor(locRank, locs[i].Name), rankFor(locRank, locs[j].Name)
			if ri != rj {
				return ri < rj
			}
			return locs[i].Name < locs[j].Name
		})
		g.Locations = locs
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rank != out[j].rank {
			return out[i].rank < out[j].rank
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PivotRow is one location row of the location x type pivot.
type PivotRow struct {
	Location string         `json:"location"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

// Pivot is the location x type count table with a grand-total row and
// column. Type columns whose whole-column sum is zero are dropped.
type Pivot struct {
	TypeColumns  []string       `json:"type_columns"`
	Rows         []PivotRow     `json:"rows"`
	ColumnTotals map[string]int `json:"column_totals"`
	GrandTotal   int            `json:"grand_total"`
}

// LocationPivot counts rows per (location, type). Column order follows
// typeOrder, row order follows locationOrder; unknowns sort last.
func LocationPivot(rows []VehicleRow, typeOrder, locationOrder []DimOrder) Pivot {
	typeRank := rankOf(typeOrder)
	locRank := rankOf(locationOrder)

	counts := map[string]map[string]int{}
	colTotals := map[string]int{}
	grand := 0

	for _, r := range rows {
		tn := orUnknown(r.TypeName)
		ln := orUnknown(r.LocationName)
		if counts[ln] == nil {
			counts[ln] = map[string]int{}
		}
		counts[ln][tn]++
		colTotals[tn]++
		grand++
	}

	cols := make([]string, 0, len(colTotals))
	for tn, n := range colTotals {
		if n == 0 {
			continue
		}
		cols = append(cols, tn)
	}
	sort.Slice(cols, func(i, j int) bool {
		ri, rj := rankFor(typeRank, cols[i]), rankFor(typeRank, cols[j])
		if ri != rj {
			return ri < rj
		}
		return cols[i] < cols[j]
	})

	out := Pivot{TypeColumns: cols, ColumnTotals: colTotals, GrandTotal: grand}
	locs := make([]string, 0, len(counts))
	for ln := range counts {
		locs = append(locs, ln)
	}
	sort.Slice(locs, func(i, j int) bool {
		ri, rj := rankFor(locRank, locs[i]), rankFor(locRank, locs[j])
		if ri != rj {
			return ri < rj
		}
		return locs[i] < locs[j]
	})
	for _, ln := range locs {
		row := PivotRow{Location: ln, Counts: map[string]int{}}
		for _, tn := range cols {
			n := counts[ln][tn]
			row.Counts[tn] = n
			row.Total += n
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownBucket
	}
	return s
}

func rankOf(order []DimOrder) map[string]int {
	m := make(map[string]int, len(order))
	for _, d := range order {
		m[d.Name] = d.SortOrder
	}
	return m
}

func rankFor(rank map[string]int, name string) int {
	if r, ok := rank[name]; ok {
		return r
	}
	return unknownSortOrder
}
