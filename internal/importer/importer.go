// Package importer загружает справочники, продукцию и назначения на цеха
// из файлов импорта (xlsx или csv). Внешние ключи разрешаются по названиям.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/domain/catalog"
	"github.com/Spok95/furniture-db/internal/domain/materials"
	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/products"
)

// Store: операции хранилища, нужные импорту. Реализуется inventory.Manager.
type Store interface {
	CreateMaterialType(ctx context.Context, in materials.NewMaterialType) (*materials.MaterialType, error)
	CreateProductType(ctx context.Context, in catalog.NewProductType) (*catalog.ProductType, error)
	CreateWorkshop(ctx context.Context, in catalog.NewWorkshop) (*catalog.Workshop, error)
	ProductTypeByName(ctx context.Context, name string) (*catalog.ProductType, error)
	MaterialTypeByName(ctx context.Context, name string) (*materials.MaterialType, error)
	WorkshopByName(ctx context.Context, name string) (*catalog.Workshop, error)
	ProductIDByName(ctx context.Context, name string) (int64, error)
	AddProduct(ctx context.Context, in products.NewProduct) (int64, error)
	AddLink(ctx context.Context, in production.NewLink) (int64, error)
}

// Имена файлов без расширения.
const (
	FileMaterialTypes    = "Material_type_import"
	FileProductTypes     = "Product_type_import"
	FileWorkshops        = "Workshops_import"
	FileProducts         = "Products_import"
	FileProductWorkshops = "Product_workshops_import"
)

// Колонки файлов импорта.
const (
	colMaterialType = "Тип материала"
	colWaste        = "Процент потерь сырья"
	colProductType  = "Тип продукции"
	colCoefficient  = "Коэффициент типа продукции"
	colWorkshop     = "Название цеха"
	colWorkshopType = "Тип цеха"
	colStaff        = "Количество человек для производства"
	colProductName  = "Наименование продукции"
	colArticle      = "Артикул"
	colPrice        = "Минимальная стоимость для партнера"
	colMaterial     = "Основной материал"
	colHours        = "Время изготовления, ч"
)

type RowError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("%s: Ошибка в строке %d: %s", e.File, e.Line, e.Message)
}

type FileResult struct {
	File       string `json:"file"`
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	Missing    bool   `json:"missing"`
}

type Report struct {
	RunID  string       `json:"run_id"`
	Files  []FileResult `json:"files"`
	Errors []RowError   `json:"errors"`
}

func (r *Report) Imported() int {
	n := 0
	for _, f := range r.Files {
		n += f.Imported
	}
	return n
}

type Importer struct {
	store Store
	log   *slog.Logger
}

func New(store Store, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{store: store, log: log}
}

// duplicateKeys: уникальные ключи, нарушение которых при повторном импорте
// считается дубликатом, а не ошибкой строки.
var duplicateKeys = map[string]bool{
	"products_article_number_key":           true,
	"product_workshops_product_workshop_key": true,
}

type step struct {
	file string
	cols []string
	row  func(ctx context.Context, t *table, row []string) error
}

// ImportDir загружает все пять файлов из dir по порядку зависимостей.
// Ошибка строки попадает в отчёт, импорт продолжается. Отсутствующий
// файл пропускается. Ошибка соединения прерывает импорт.
func (im *Importer) ImportDir(ctx context.Context, dir string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Errors: []RowError{}}
	log := im.log.With("run_id", rep.RunID, "dir", dir)
	log.Info("import started")

	steps := []step{
		{FileMaterialTypes, []string{colMaterialType, colWaste}, im.materialType},
		{FileProductTypes, []string{colProductType, colCoefficient}, im.productType},
		{FileWorkshops, []string{colWorkshop, colWorkshopType, colStaff}, im.workshop},
		{FileProducts, []string{colProductType, colProductName, colArticle, colPrice, colMaterial}, im.product},
		{FileProductWorkshops, []string{colProductName, colWorkshop, colHours}, im.link},
	}

	for _, s := range steps {
		res := FileResult{File: s.file}
		t, err := openTable(dir, s.file)
		if errors.Is(err, errNoFile) {
			log.Warn("import file missing", "file", s.file)
			res.Missing = true
			rep.Files = append(rep.Files, res)
			continue
		}
		if err == nil {
			err = t.require(s.cols...)
		}
		if err != nil {
			log.Error("import file unreadable", "file", s.file, "err", err)
			rep.Errors = append(rep.Errors, RowError{File: s.file, Line: 1, Message: err.Error()})
			rep.Files = append(rep.Files, res)
			continue
		}

		for i, row := range t.rows {
			if blank(row) {
				continue
			}
			err := s.row(ctx, t, row)
			switch {
			case err == nil:
				res.Imported++
			case dberr.Is(err, dberr.KindConnection):
				rep.Files = append(rep.Files, res)
				return rep, err
			case dberr.Is(err, dberr.KindConstraint) && duplicateKeys[dberr.ConstraintName(err)]:
				res.Duplicates++
			default:
				// строка 1: заголовок
				re := RowError{File: t.file, Line: i + 2, Message: err.Error()}
				log.Warn("import row rejected", "file", re.File, "line", re.Line, "err", err)
				rep.Errors = append(rep.Errors, re)
			}
		}
		log.Info("import file done", "file", t.file, "imported", res.Imported, "duplicates", res.Duplicates)
		rep.Files = append(rep.Files, res)
	}

	log.Info("import finished", "imported", rep.Imported(), "errors", len(rep.Errors))
	return rep, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func (im *Importer) materialType(ctx context.Context, t *table, row []string) error {
	name := t.get(row, colMaterialType)
	if name == "" {
		return fmt.Errorf("пустое поле %q", colMaterialType)
	}
	waste, err := parseFraction(t.get(row, colWaste))
	if err != nil {
		return fmt.Errorf("%s: %w", colWaste, err)
	}
	_, err = im.store.CreateMaterialType(ctx, materials.NewMaterialType{Name: name, Waste: waste})
	return err
}

func (im *Importer) productType(ctx context.Context, t *table, row []string) error {
	name := t.get(row, colProductType)
	if name == "" {
		return fmt.Errorf("пустое поле %q", colProductType)
	}
	coef, err := parseDecimal(t.get(row, colCoefficient))
	if err != nil {
		return fmt.Errorf("%s: %w", colCoefficient, err)
	}
	_, err = im.store.CreateProductType(ctx, catalog.NewProductType{Name: name, Coefficient: coef})
	return err
}

func (im *Importer) workshop(ctx context.Context, t *table, row []string) error {
	name := t.get(row, colWorkshop)
	if name == "" {
		return fmt.Errorf("пустое поле %q", colWorkshop)
	}
	staff, err := parseCount(t.get(row, colStaff))
	if err != nil {
		return fmt.Errorf("%s: %w", colStaff, err)
	}
	_, err = im.store.CreateWorkshop(ctx, catalog.NewWorkshop{
		Name:       name,
		Type:       t.get(row, colWorkshopType),
		StaffCount: staff,
	})
	return err
}

func (im *Importer) product(ctx context.Context, t *table, row []string) error {
	name := t.get(row, colProductName)
	article := normalizeArticle(t.get(row, colArticle))
	if name == "" || article == "" {
		return fmt.Errorf("пустое название или артикул")
	}
	price, err := parseDecimal(t.get(row, colPrice))
	if err != nil {
		return fmt.Errorf("%s: %w", colPrice, err)
	}

	typeName := t.get(row, colProductType)
	pt, err := im.store.ProductTypeByName(ctx, typeName)
	if err != nil {
		return err
	}
	if pt == nil {
		return fmt.Errorf("тип продукции %q не найден", typeName)
	}
	matName := t.get(row, colMaterial)
	mt, err := im.store.MaterialTypeByName(ctx, matName)
	if err != nil {
		return err
	}
	if mt == nil {
		return fmt.Errorf("тип материала %q не найден", matName)
	}

	_, err = im.store.AddProduct(ctx, products.NewProduct{
		Name:            name,
		Article:         article,
		ProductTypeID:   pt.ID,
		MaterialTypeID:  mt.ID,
		MinPartnerPrice: price,
	})
	return err
}

func (im *Importer) link(ctx context.Context, t *table, row []string) error {
	hours, err := parseDecimal(t.get(row, colHours))
	if err != nil {
		return fmt.Errorf("%s: %w", colHours, err)
	}

	prodName := t.get(row, colProductName)
	pid, err := im.store.ProductIDByName(ctx, prodName)
	if err != nil {
		return err
	}
	if pid == 0 {
		return fmt.Errorf("продукт %q не найден", prodName)
	}
	wsName := t.get(row, colWorkshop)
	ws, err := im.store.WorkshopByName(ctx, wsName)
	if err != nil {
		return err
	}
	if ws == nil {
		return fmt.Errorf("цех %q не найден", wsName)
	}

	_, err = im.store.AddLink(ctx, production.NewLink{ProductID: pid, WorkshopID: ws.ID, Hours: hours})
	return err
}
