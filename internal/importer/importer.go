package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tailorcart/internal/domain"
)

type Kind string

const (
	KindCatalog  Kind = "catalog"
	KindDelivery Kind = "delivery"
)

// CatalogWriter is the write side of the catalog repository.
type CatalogWriter interface {
	UpsertVendor(ctx context.Context, v domain.Vendor) error
	UpsertItem(ctx context.Context, item domain.CatalogItem) error
	UpsertFabric(ctx context.Context, f domain.FabricOption) error
	UpsertDeliveryOption(ctx context.Context, d domain.DeliveryOption) error
}

// Stats counts upserted records per type.
type Stats struct {
	Vendors  int
	Items    int
	Fabrics  int
	Delivery int
}

func (s Stats) Total() int {
	return s.Vendors + s.Items + s.Fabrics + s.Delivery
}

// CSVImporter reads catalog or delivery CSV files and upserts their rows.
//
// A catalog file is grouped: a row with vendor.id opens a vendor, following
// rows with item.id belong to it, and rows with fabric.id attach to the last
// item. A single row may carry all three.
type CSVImporter struct {
	reader *csv.Reader
	repo   CatalogWriter
	kind   Kind
}

func NewCSVImporter(r io.Reader, repo CatalogWriter) (*CSVImporter, error) {
	br := bufio.NewReader(r)
	kind, err := DetectKind(br)
	if err != nil {
		return nil, err
	}
	csvr := csv.NewReader(br)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo, kind: kind}, nil
}

func (i *CSVImporter) Kind() Kind {
	return i.kind
}

// DetectKind peeks at the header line. r must be a *bufio.Reader for the
// header to stay readable afterwards.
func DetectKind(r io.Reader) (Kind, error) {
	var header string
	if br, ok := r.(*bufio.Reader); ok {
		line, err := peekLine(br)
		if err != nil {
			return "", err
		}
		header = line
	} else {
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read headers: %w", err)
		}
		header = line
	}

	cols := headerIndex(strings.Split(strings.TrimSpace(header), ","))
	switch {
	case has(cols, "vendor.id") || has(cols, "item.id"):
		return KindCatalog, nil
	case has(cols, "mode") && has(cols, "cost"):
		return KindDelivery, nil
	}
	return "", fmt.Errorf("unrecognised csv header %q", strings.TrimSpace(header))
}

func peekLine(br *bufio.Reader) (string, error) {
	for n := 64; ; n *= 2 {
		buf, err := br.Peek(n)
		if idx := strings.IndexByte(string(buf), '\n'); idx >= 0 {
			return string(buf[:idx]), nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
				if len(buf) == 0 {
					return "", fmt.Errorf("read headers: %w", io.EOF)
				}
				return string(buf), nil
			}
			return "", fmt.Errorf("read headers: %w", err)
		}
	}
}

// Run parses every row and upserts it.
func (i *CSVImporter) Run(ctx context.Context) (Stats, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return Stats{}, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if i.kind == KindDelivery {
		return i.runDelivery(ctx, index)
	}
	return i.runCatalog(ctx, index)
}

func (i *CSVImporter) runCatalog(ctx context.Context, index map[string]int) (Stats, error) {
	var (
		stats   Stats
		vendor  string
		item    string
		lineNum = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read row: %w", err)
		}
		lineNum++

		row, err := parseCatalogRow(record, index)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if row.vendor != nil {
			if err := i.repo.UpsertVendor(ctx, *row.vendor); err != nil {
				return stats, fmt.Errorf("upsert vendor %q: %w", row.vendor.ID, err)
			}
			vendor, item = row.vendor.ID, ""
			stats.Vendors++
		}
		if row.item != nil {
			if vendor == "" {
				return stats, fmt.Errorf("line %d: item %q has no vendor", lineNum, row.item.ID)
			}
			row.item.VendorID = vendor
			if err := i.repo.UpsertItem(ctx, *row.item); err != nil {
				return stats, fmt.Errorf("upsert item %q: %w", row.item.ID, err)
			}
			item = row.item.ID
			stats.Items++
		}
		if row.fabric != nil {
			if item == "" {
				return stats, fmt.Errorf("line %d: fabric %q has no item", lineNum, row.fabric.ID)
			}
			row.fabric.CatalogItemID = item
			if err := i.repo.UpsertFabric(ctx, *row.fabric); err != nil {
				return stats, fmt.Errorf("upsert fabric %q: %w", row.fabric.ID, err)
			}
			stats.Fabrics++
		}
	}
	return stats, nil
}

func (i *CSVImporter) runDelivery(ctx context.Context, index map[string]int) (Stats, error) {
	var stats Stats
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read row: %w", err)
		}
		mode := domain.DeliveryMode(strings.ToLower(pick(record, index, "mode")))
		if mode == "" {
			continue
		}
		cost, err := parseAmount(pick(record, index, "cost"))
		if err != nil {
			return stats, fmt.Errorf("delivery %q: %w", mode, err)
		}
		label := pick(record, index, "label")
		if label == "" {
			label = string(mode)
		}
		if err := i.repo.UpsertDeliveryOption(ctx, domain.DeliveryOption{Mode: mode, Label: label, Cost: cost}); err != nil {
			return stats, fmt.Errorf("upsert delivery %q: %w", mode, err)
		}
		stats.Delivery++
	}
	return stats, nil
}

type catalogRow struct {
	vendor *domain.Vendor
	item   *domain.CatalogItem
	fabric *domain.FabricOption
}

func parseCatalogRow(record []string, index map[string]int) (catalogRow, error) {
	var row catalogRow

	if id := pick(record, index, "vendor.id"); id != "" {
		name := pick(record, index, "vendor.name")
		if name == "" {
			return row, fmt.Errorf("vendor %q: name required", id)
		}
		row.vendor = &domain.Vendor{ID: id, Name: name, LocationDescription: pick(record, index, "vendor.location")}
	}

	if id := pick(record, index, "item.id"); id != "" {
		name := pick(record, index, "item.name")
		category := strings.ToLower(pick(record, index, "item.category"))
		if name == "" || category == "" {
			return row, fmt.Errorf("item %q: name and category required", id)
		}
		price, err := parseAmount(pick(record, index, "item.price"))
		if err != nil {
			return row, fmt.Errorf("item %q: %w", id, err)
		}
		row.item = &domain.CatalogItem{ID: id, Category: category, Name: name, ImageRef: pick(record, index, "item.image"), Price: price}
	}

	if id := pick(record, index, "fabric.id"); id != "" {
		typ := pick(record, index, "fabric.type")
		if typ == "" {
			return row, fmt.Errorf("fabric %q: type required", id)
		}
		price, err := parseAmount(pick(record, index, "fabric.price"))
		if err != nil {
			return row, fmt.Errorf("fabric %q: %w", id, err)
		}
		row.fabric = &domain.FabricOption{ID: id, Type: typ, Description: pick(record, index, "fabric.description"), AdditionalPrice: price}
	}
	return row, nil
}

// parseAmount reads a whole IDR amount; an empty value is zero.
func parseAmount(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(v, ".", ""), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid amount %q", v)
	}
	return n, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func has(index map[string]int, key string) bool {
	_, ok := index[key]
	return ok
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
