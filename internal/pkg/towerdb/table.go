// Package towerdb implements the tower-lookup collaborator consumed by the
// parsing engine: an in-memory table mapping normalized cell-identifier keys
// to tower site records. Tables load from operator CSV or XLSX exports and
// are read-only once built; callers must not reload a table while a parse
// using it is in flight.
package towerdb

import (
	"strconv"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/logger"
)

// Tower is one cell site from the lookup table.
type Tower struct {
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	HasCoords bool    `json:"-"`
	Address   string  `json:"address"`
	Market    string  `json:"market,omitempty"`
	SiteID    string  `json:"siteId,omitempty"`
}

// Lookup is the capability the engine consumes. The engine only produces
// keys; matching strategy and data belong to the implementation.
type Lookup interface {
	Lookup(compositeKey, fullKey, shortKey string) (*Tower, bool)
}

// Table is an in-memory tower table indexed by the three key shapes of the
// cell-id normalizer: composite "area-cell", full-id and short-id.
type Table struct {
	byComposite map[string]*Tower
	byFull      map[string]*Tower
	byShort     map[string]*Tower
}

func newTable() *Table {
	return &Table{
		byComposite: make(map[string]*Tower),
		byFull:      make(map[string]*Tower),
		byShort:     make(map[string]*Tower),
	}
}

// Len returns the number of distinct full-id entries.
func (t *Table) Len() int {
	return len(t.byFull)
}

// Lookup resolves a tower by composite key first, then full-id, then
// short-id. Empty keys are skipped.
func (t *Table) Lookup(compositeKey, fullKey, shortKey string) (*Tower, bool) {
	if compositeKey != "" {
		if tower, ok := t.byComposite[compositeKey]; ok {
			return tower, true
		}
	}
	if fullKey != "" {
		if tower, ok := t.byFull[fullKey]; ok {
			return tower, true
		}
	}
	if shortKey != "" {
		if tower, ok := t.byShort[shortKey]; ok {
			return tower, true
		}
	}
	return nil, false
}

// columnMap holds the resolved column indices of a tower table, -1 when the
// table lacks the column.
type columnMap struct {
	cellID  int
	area    int
	cell    int
	lat     int
	lon     int
	address int
	market  int
	siteID  int
}

// resolveColumns fuzzily matches header cells: lowercased, whitespace
// collapsed, substring tests. Operator exports never agree on spelling.
func resolveColumns(header []string) columnMap {
	cols := columnMap{cellID: -1, area: -1, cell: -1, lat: -1, lon: -1, address: -1, market: -1, siteID: -1}
	for i, h := range header {
		n := normHeader(h)
		switch {
		case cols.cellID < 0 && (strings.Contains(n, "ecgi") || strings.Contains(n, "cgi") ||
			(strings.Contains(n, "cell") && strings.Contains(n, "id") && !strings.Contains(n, "site"))):
			cols.cellID = i
		case cols.area < 0 && (strings.Contains(n, "lac") || strings.Contains(n, "tac") ||
			(strings.Contains(n, "area") && strings.Contains(n, "code"))):
			cols.area = i
		case cols.cell < 0 && strings.Contains(n, "eci") && !strings.Contains(n, "ecgi"):
			cols.cell = i
		case cols.lat < 0 && strings.Contains(n, "lat"):
			cols.lat = i
		case cols.lon < 0 && (strings.Contains(n, "lon") || strings.Contains(n, "lng")):
			cols.lon = i
		case cols.address < 0 && (strings.Contains(n, "address") || strings.Contains(n, "location name")):
			cols.address = i
		case cols.market < 0 && strings.Contains(n, "market"):
			cols.market = i
		case cols.siteID < 0 && strings.Contains(n, "site"):
			cols.siteID = i
		}
	}
	return cols
}

var headerSpaceRE = strings.NewReplacer("\t", " ", "_", " ", "-", " ")

func normHeader(h string) string {
	n := strings.ToLower(strings.TrimSpace(headerSpaceRE.Replace(h)))
	return strings.Join(strings.Fields(n), " ")
}

// fromRows builds a table from header+data rows. Rows without a usable cell
// identifier are skipped. When the table has no explicit area column, area
// codes are derived from the identifier itself (ECGI fallback), so
// dash-delimited table identifiers can still match bare-hex dump
// identifiers on the composite key.
func fromRows(rows [][]string) *Table {
	table := newTable()
	if len(rows) == 0 {
		return table
	}
	cols := resolveColumns(rows[0])
	if cols.cellID < 0 {
		logger.Warn("tower table has no recognizable cell id column",
			"header", rows[0])
		return table
	}
	for _, row := range rows[1:] {
		id := cellValue(row, cols.cellID)
		if id == "" {
			continue
		}
		tower := &Tower{
			Address: cellValue(row, cols.address),
			Market:  cellValue(row, cols.market),
			SiteID:  cellValue(row, cols.siteID),
		}
		lat, latErr := strconv.ParseFloat(cellValue(row, cols.lat), 64)
		lon, lonErr := strconv.ParseFloat(cellValue(row, cols.lon), 64)
		if latErr == nil && lonErr == nil {
			tower.Lat, tower.Lon, tower.HasCoords = lat, lon, true
		}

		fullKey := cellid.FullKey(id)
		if fullKey != "" {
			table.byFull[fullKey] = tower
		}
		if shortKey, ok := cellid.ShortKey(id); ok {
			table.byShort[shortKey] = tower
		}

		area := cellValue(row, cols.area)
		if area == "" {
			area, _ = cellid.DeriveAreaCode(id)
		}
		cell := cellValue(row, cols.cell)
		if cell == "" {
			if ident := cellid.Decode(fullKey); ident != nil {
				cell = ident.CellID
				if area == "" {
					area = ident.LAC
				}
			}
		}
		if area != "" && cell != "" {
			table.byComposite[area+"-"+cell] = tower
		}
	}
	logger.Debug("tower table loaded",
		"entries", table.Len(),
		"composite_keys", len(table.byComposite),
		"short_keys", len(table.byShort))
	return table
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
