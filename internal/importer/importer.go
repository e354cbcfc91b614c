package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/service/shippingzone"
)

// GeoLookup resolves the CSV country and state codes.
type GeoLookup interface {
	GetCountryByISO2(ctx context.Context, iso2 string) (*domain.Country, error)
	ListStates(ctx context.Context, countryID string) ([]domain.State, error)
}

type ZoneCreator interface {
	Create(ctx context.Context, in shippingzone.CreateInput) (*domain.ShippingZone, error)
}

// CSVImporter reads zone_name,country_iso2,state_code rows and creates one
// shipping zone per zone name under a profile.
type CSVImporter struct {
	reader    *csv.Reader
	geo       GeoLookup
	zones     ZoneCreator
	profileID string

	countries map[string]*domain.Country
	states    map[string]map[string]string // countryID -> state code -> state id
}

func NewCSVImporter(r io.Reader, geo GeoLookup, zones ZoneCreator, profileID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:    csvr,
		geo:       geo,
		zones:     zones,
		profileID: profileID,
		countries: make(map[string]*domain.Country),
		states:    make(map[string]map[string]string),
	}
}

type zoneDraft struct {
	name      string
	countries []domain.ZoneCountryInput
	index     map[string]int // countryID -> position in countries
	entire    map[string]bool
}

type csvRow struct {
	Zone    string
	Country string
	State   string
	Line    int
}

// Run parses every row, then creates the zones in order of first appearance.
// It stops at the first zone the service rejects.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"zone_name", "country_iso2"} {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		drafts []*zoneDraft
		byName = make(map[string]*zoneDraft)
		line   = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index, line)
		if row == nil {
			continue
		}
		d, ok := byName[row.Zone]
		if !ok {
			d = &zoneDraft{name: row.Zone, index: make(map[string]int), entire: make(map[string]bool)}
			byName[row.Zone] = d
			drafts = append(drafts, d)
		}
		if err := i.add(ctx, d, row); err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, d := range drafts {
		_, err := i.zones.Create(ctx, shippingzone.CreateInput{
			ShippingProfileID: i.profileID,
			ZoneName:          d.name,
			Countries:         d.countries,
		})
		if err != nil {
			return imported, fmt.Errorf("create zone %q: %w", d.name, err)
		}
		imported++
	}
	return imported, nil
}

// add merges one row into its zone. A row without a state code claims the
// whole country and wins over state rows for the same country.
func (i *CSVImporter) add(ctx context.Context, d *zoneDraft, row *csvRow) error {
	country, err := i.country(ctx, row.Country)
	if err != nil {
		return fmt.Errorf("line %d: %w", row.Line, err)
	}
	pos, ok := d.index[country.ID]
	if !ok {
		pos = len(d.countries)
		d.index[country.ID] = pos
		d.countries = append(d.countries, domain.ZoneCountryInput{CountryID: country.ID})
	}

	if row.State == "" {
		d.entire[country.ID] = true
		d.countries[pos].StateIDs = nil
		return nil
	}
	if d.entire[country.ID] {
		return nil
	}
	stateID, err := i.state(ctx, country, row.State)
	if err != nil {
		return fmt.Errorf("line %d: %w", row.Line, err)
	}
	for _, s := range d.countries[pos].StateIDs {
		if s == stateID {
			return nil
		}
	}
	d.countries[pos].StateIDs = append(d.countries[pos].StateIDs, stateID)
	return nil
}

func (i *CSVImporter) country(ctx context.Context, iso2 string) (*domain.Country, error) {
	key := strings.ToUpper(iso2)
	if c, ok := i.countries[key]; ok {
		return c, nil
	}
	c, err := i.geo.GetCountryByISO2(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown country %q", iso2)
		}
		return nil, fmt.Errorf("lookup country %q: %w", iso2, err)
	}
	i.countries[key] = c
	return c, nil
}

func (i *CSVImporter) state(ctx context.Context, country *domain.Country, code string) (string, error) {
	codes, ok := i.states[country.ID]
	if !ok {
		states, err := i.geo.ListStates(ctx, country.ID)
		if err != nil {
			return "", fmt.Errorf("list states of %s: %w", country.ISO2, err)
		}
		codes = make(map[string]string, len(states))
		for _, s := range states {
			codes[strings.ToUpper(s.Code)] = s.ID
		}
		i.states[country.ID] = codes
	}
	id, ok := codes[strings.ToUpper(code)]
	if !ok {
		return "", fmt.Errorf("unknown state %q in %s", code, country.ISO2)
	}
	return id, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) *csvRow {
	row := &csvRow{
		Zone:    pick(record, index, "zone_name"),
		Country: pick(record, index, "country_iso2"),
		State:   pick(record, index, "state_code"),
		Line:    line,
	}
	if row.Zone == "" || row.Country == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
