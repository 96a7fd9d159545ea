package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/spendwise/spendwise-backend/internal/calendar"
	"github.com/spendwise/spendwise-backend/internal/currency"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/repository/storage"
)

const (
	// ReportURLExpiry is how long a generated report download link stays valid
	ReportURLExpiry = 15 * time.Minute
)

var (
	ErrInvalidDateRange           = errors.New("start date must not be after end date")
	ErrReportStorageNotConfigured = errors.New("report storage not configured")
)

// ExpenseReport describes a generated report artifact
type ExpenseReport struct {
	ObjectPath  string    `json:"objectPath"`
	DownloadURL string    `json:"downloadUrl"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Count       int       `json:"count"`
	Total       int64     `json:"total"`
}

// ExportService renders expense reports as PDFs and stores them as
// private artifacts behind presigned download links
type ExportService struct {
	expenseRepo domain.ExpenseRepository
	storage     storage.ObjectRepository
	now         func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(expenseRepo domain.ExpenseRepository, storage storage.ObjectRepository) *ExportService {
	return &ExportService{
		expenseRepo: expenseRepo,
		storage:     storage,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// IsEnabled indicates whether report generation is supported (storage configured).
func (s *ExportService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// GenerateExpenseReport renders the owner's expenses within the inclusive
// day range [start, end] into a PDF, uploads it, and returns a presigned
// download URL.
func (s *ExportService) GenerateExpenseReport(ctx context.Context, owner string, start, end time.Time) (*ExpenseReport, error) {
	if !s.IsEnabled() {
		return nil, ErrReportStorageNotConfigured
	}

	rangeStart := calendar.StartOfDay(start)
	rangeEnd := calendar.EndOfDay(end)
	if rangeStart.After(rangeEnd) {
		return nil, ErrInvalidDateRange
	}

	all, err := s.expenseRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}

	expenses := make([]*domain.Expense, 0, len(all))
	var total int64
	for _, e := range all {
		if e.CreatedAt.Before(rangeStart) || e.CreatedAt.After(rangeEnd) {
			continue
		}
		expenses = append(expenses, e)
		total += e.Amount
	}

	pdfData, err := s.renderPDF(expenses, rangeStart, rangeEnd, total)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	objectPath := fmt.Sprintf("reports/%s/%s.pdf", sanitizePathSegment(owner), uuid.New().String())
	if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(pdfData), "application/pdf", int64(len(pdfData))); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, objectPath, ReportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report: %w", err)
	}

	return &ExpenseReport{
		ObjectPath:  objectPath,
		DownloadURL: url,
		Start:       rangeStart,
		End:         rangeEnd,
		Count:       len(expenses),
		Total:       total,
	}, nil
}

// renderPDF lays out the report: a title, the covered range, one row per
// expense, and a closing total line.
func (s *ExportService) renderPDF(expenses []*domain.Expense, start, end time.Time, total int64) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Expense Report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	pdf.Ln(12)

	// Column header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 8, "Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Payment", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range expenses {
		amount, err := currency.Format(e.Amount, currency.Canonical, "en", currency.RowDigits)
		if err != nil {
			return nil, err
		}
		pdf.CellFormat(70, 7, e.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, amount, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, e.CreatedAt.Format("2006-01-02"), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, string(e.PaymentMethod), "", 1, "L", false, 0, "")
	}

	if len(expenses) == 0 {
		pdf.Cell(0, 7, "No expenses in this period")
		pdf.Ln(7)
	}

	pdf.Ln(4)
	totalStr, err := currency.Format(total, currency.Canonical, "en", currency.RowDigits)
	if err != nil {
		return nil, err
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, totalStr, "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitizePathSegment makes an owner identity safe for use in object keys
func sanitizePathSegment(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
