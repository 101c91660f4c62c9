// Package importer разбирает таблицу ароматов, выгруженную из Excel в CSV.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"perfume-store/internal/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrEmptyFile - в файле нет ни одной строки
var ErrEmptyFile = errors.New("csv data is empty")

// ErrNoHeader - в первой строке нет обязательных колонок
var ErrNoHeader = errors.New("csv header is missing required columns")

// Колонки таблицы
const (
	ColumnName          = "name"
	ColumnBrand         = "brand"
	ColumnPrice         = "price"
	ColumnCategory      = "category"
	ColumnVolume        = "volume"
	ColumnNotes         = "notes"
	ColumnImage         = "image"
	ColumnConcentration = "concentration"
	ColumnDiscount      = "discount"
	ColumnAvailability  = "availability"
)

var required = []string{ColumnName, ColumnBrand, ColumnPrice, ColumnCategory, ColumnVolume}

// Русские заголовки из выгрузки админки
var aliases = map[string]string{
	"название":     ColumnName,
	"бренд":        ColumnBrand,
	"цена":         ColumnPrice,
	"категория":    ColumnCategory,
	"объем":        ColumnVolume,
	"объём":        ColumnVolume,
	"ноты":         ColumnNotes,
	"изображение":  ColumnImage,
	"концентрация": ColumnConcentration,
	"скидка":       ColumnDiscount,
	"наличие":      ColumnAvailability,
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// Result - разобранные ароматы и причины пропуска строк
type Result struct {
	Products []models.ProductInput
	Skipped  []string
}

// Parse читает CSV с разделителем «;» в Windows-1251 или UTF-8.
// Некорректные строки пропускаются с указанием номера строки.
func Parse(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1251.NewDecoder())
	}

	csvReader := csv.NewReader(src)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{Products: []models.ProductInput{}}
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			continue
		}
		in, err := parseRow(row, columns)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("строка %d: %v", line, err))
			continue
		}
		result.Products = append(result.Products, in)
	}
	return result, nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		columns[name] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHeader, strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (models.ProductInput, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	in := models.ProductInput{
		Name:     cell(ColumnName),
		Brand:    cell(ColumnBrand),
		Category: cell(ColumnCategory),
		Volume:   cell(ColumnVolume),
		Image:    cell(ColumnImage),
		Notes:    splitNotes(cell(ColumnNotes)),
	}

	price, err := parseInt(cell(ColumnPrice))
	if err != nil {
		return in, fmt.Errorf("цена: %w", err)
	}
	in.Price = price

	if v := cell(ColumnDiscount); v != "" {
		discount, err := parseInt(strings.TrimSuffix(v, "%"))
		if err != nil {
			return in, fmt.Errorf("скидка: %w", err)
		}
		in.Discount = int(discount)
	}

	if v := cell(ColumnConcentration); v != "" {
		in.Concentration = &v
	}

	if v := cell(ColumnAvailability); v != "" {
		available, err := parseBool(v)
		if err != nil {
			return in, fmt.Errorf("наличие: %w", err)
		}
		in.Availability = &available
	}

	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// Цены в выгрузке бывают с пробелами-разделителями тысяч и копейками
func parseInt(v string) (int64, error) {
	v = strings.NewReplacer(" ", "", "\u00a0", "", "₽", "").Replace(v)
	v = strings.Replace(v, ",", ".", 1)
	if v == "" {
		return 0, errors.New("пустое значение")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "да", "есть", "yes":
		return true, nil
	case "0", "false", "нет", "no":
		return false, nil
	}
	return false, fmt.Errorf("неизвестное значение %q", v)
}

func splitNotes(v string) []string {
	notes := []string{}
	for _, note := range strings.Split(v, ",") {
		if note = strings.TrimSpace(note); note != "" {
			notes = append(notes, note)
		}
	}
	return notes
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
