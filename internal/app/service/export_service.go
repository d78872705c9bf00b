package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/pkg/logger"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
	ExportFormatXLSX = "xlsx"
)

// csvHeader is the fixed column order of the flattened export. Spreadsheet
// users depend on it, so changing it is a breaking change.
var csvHeader = []string{
	"顧客ID",
	"名前",
	"性別",
	"生年月日",
	"電話番号",
	"メールアドレス",
	"顧客備考",
	"顧客登録日",
	"顧客更新日",
	"施術ID",
	"施術日",
	"施術内容",
	"スタイリスト名",
	"料金",
	"施術時間",
	"施術備考",
	"施術登録日",
	"施術画像URL",
}

// ExportResult is a ready-to-download file.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	Export(format string, customerID *uint) (*ExportResult, error)
}

type exportService struct {
	customerRepo repository.CustomerRepository
}

func NewExportService(customerRepo repository.CustomerRepository) ExportService {
	return &exportService{customerRepo: customerRepo}
}

// Export renders the customer dataset as a downloadable file. Unlike the list
// view, export order is created_at ascending, oldest first.
func (s *exportService) Export(format string, customerID *uint) (*ExportResult, error) {
	customers, err := s.customerRepo.FindForExport(customerID)
	if err != nil {
		logger.Error("Failed to load export dataset", err, nil)
		return nil, err
	}

	switch format {
	case ExportFormatJSON:
		return exportJSON(customers, customerID)
	case ExportFormatXLSX:
		return exportXLSX(customers, customerID)
	default:
		return exportCSV(customers, customerID)
	}
}

func exportFileName(customerID *uint, ext string) string {
	if customerID != nil {
		return fmt.Sprintf("customer_%d_data.%s", *customerID, ext)
	}
	return "all_customers_data." + ext
}

func exportJSON(customers []model.Customer, customerID *uint) (*ExportResult, error) {
	data, err := json.MarshalIndent(customers, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    exportFileName(customerID, "json"),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

func exportCSV(customers []model.Customer, customerID *uint) (*ExportResult, error) {
	lines := make([]string, 0, len(customers)+1)
	lines = append(lines, joinCSVRow(csvHeader))
	for _, row := range flattenCustomers(customers) {
		lines = append(lines, joinCSVRow(row))
	}

	var buf bytes.Buffer
	// BOM keeps Excel from garbling the Japanese headers
	buf.WriteString("\uFEFF")
	buf.WriteString(strings.Join(lines, "\n"))

	return &ExportResult{
		FileName:    exportFileName(customerID, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func exportXLSX(customers []model.Customer, customerID *uint) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headerRow := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range flattenCustomers(customers) {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    exportFileName(customerID, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// flattenCustomers produces one row per (customer, treatment) pair. A customer
// with no treatments still emits one row with the treatment columns empty.
func flattenCustomers(customers []model.Customer) [][]string {
	var rows [][]string
	for i := range customers {
		customer := &customers[i]
		base := []string{
			strconv.FormatUint(uint64(customer.ID), 10),
			customer.Name,
			stringOrEmpty(customer.Gender),
			stringOrEmpty(customer.DateOfBirth),
			stringOrEmpty(customer.Phone),
			stringOrEmpty(customer.Email),
			stringOrEmpty(customer.Notes),
			formatExportTime(customer.CreatedAt),
			formatExportTime(customer.UpdatedAt),
		}

		if len(customer.Treatments) == 0 {
			row := append(append([]string{}, base...), "", "", "", "", "", "", "", "", "")
			rows = append(rows, row)
			continue
		}

		for j := range customer.Treatments {
			treatment := &customer.Treatments[j]
			imageURLs := make([]string, 0, len(treatment.Images))
			for _, image := range treatment.Images {
				imageURLs = append(imageURLs, image.ImageURL)
			}

			row := append(append([]string{}, base...),
				strconv.FormatUint(uint64(treatment.ID), 10),
				formatExportDate(treatment.Date),
				treatment.Menu,
				treatment.StylistName,
				intOrEmpty(treatment.Price),
				intOrEmpty(treatment.Duration),
				stringOrEmpty(treatment.Notes),
				formatExportTime(treatment.CreatedAt),
				strings.Join(imageURLs, "; "),
			)
			rows = append(rows, row)
		}
	}
	return rows
}

// escapeCSV wraps a value in double quotes only when it contains a comma, a
// quote or a line break; inner quotes are doubled.
func escapeCSV(value string) string {
	escaped := strings.ReplaceAll(value, `"`, `""`)
	if strings.ContainsAny(escaped, ",\"\n\r") {
		return `"` + escaped + `"`
	}
	return escaped
}

func joinCSVRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = escapeCSV(field)
	}
	return strings.Join(escaped, ",")
}

// formatExportTime renders a timestamp the way Japanese spreadsheets expect,
// e.g. "2025/3/7 14:05:09".
func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006/1/2 15:04:05")
}

// formatExportDate renders a stored "YYYY-MM-DD" date as "2025/3/7". Values
// that fail to parse pass through untouched.
func formatExportDate(date string) string {
	if date == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("2006/1/2")
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intOrEmpty(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
