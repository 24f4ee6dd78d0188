package inventory

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/export"
)

type Dataset string

const (
	DatasetProducts         Dataset = "products"
	DatasetWorkshops        Dataset = "workshops"
	DatasetProductWorkshops Dataset = "product_workshops"
	DatasetProductTypes     Dataset = "product_types"
	DatasetMaterialTypes    Dataset = "material_types"
	DatasetStatistics       Dataset = "statistics"
)

// DefaultExports: наборы и имена файлов для выгрузки «всё сразу».
var DefaultExports = []struct {
	Dataset Dataset
	File    string
}{
	{DatasetProducts, "products_export.csv"},
	{DatasetWorkshops, "workshops_export.csv"},
	{DatasetProductWorkshops, "products_workshops_export.csv"},
}

func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DatasetProducts, DatasetWorkshops, DatasetProductWorkshops,
		DatasetProductTypes, DatasetMaterialTypes, DatasetStatistics:
		return d, nil
	}
	return "", dberr.New("export", dberr.KindMalformed, "unknown dataset %q", s)
}

// Rows выполняет запрос набора и возвращает строки для выгрузки.
func (m *Manager) Rows(ctx context.Context, d Dataset) ([]export.Row, error) {
	switch d {
	case DatasetProducts:
		items, err := m.ListProducts(ctx, 0)
		return export.Rows(items), err
	case DatasetWorkshops:
		items, err := m.ListWorkshops(ctx)
		return export.Rows(items), err
	case DatasetProductWorkshops:
		items, err := m.ProductsWithWorkshops(ctx)
		return export.Rows(items), err
	case DatasetProductTypes:
		items, err := m.ListProductTypes(ctx)
		return export.Rows(items), err
	case DatasetMaterialTypes:
		items, err := m.ListMaterialTypes(ctx)
		return export.Rows(items), err
	case DatasetStatistics:
		items, err := m.Statistics(ctx)
		return export.Rows(items), err
	}
	return nil, dberr.New("export", dberr.KindMalformed, "unknown dataset %q", string(d))
}

// ExportCSV пишет набор в path. Пустой набор: export.ErrEmpty, файла нет.
func (m *Manager) ExportCSV(ctx context.Context, d Dataset, path string) error {
	rows, err := m.Rows(ctx, d)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(path, rows); err != nil {
		if !errors.Is(err, export.ErrEmpty) {
			m.log.Error("export failed", "dataset", d, "path", path, "err", err)
		}
		return err
	}
	m.log.Info("exported", "dataset", d, "path", path, "rows", len(rows))
	return nil
}

func (m *Manager) ExportXLSX(ctx context.Context, d Dataset, path string) error {
	rows, err := m.Rows(ctx, d)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(path, string(d), rows); err != nil {
		if !errors.Is(err, export.ErrEmpty) {
			m.log.Error("export failed", "dataset", d, "path", path, "err", err)
		}
		return err
	}
	m.log.Info("exported", "dataset", d, "path", path, "rows", len(rows))
	return nil
}

// ExportAll пишет DefaultExports в dir и возвращает созданные файлы.
// Пустые наборы пропускаются.
func (m *Manager) ExportAll(ctx context.Context, dir string) ([]string, error) {
	var written []string
	for _, e := range DefaultExports {
		path := filepath.Join(dir, e.File)
		err := m.ExportCSV(ctx, e.Dataset, path)
		if errors.Is(err, export.ErrEmpty) {
			m.log.Warn("nothing to export", "dataset", e.Dataset)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("export %s: %w", e.Dataset, err)
		}
		written = append(written, path)
	}
	return written, nil
}
