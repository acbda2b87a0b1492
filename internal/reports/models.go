package reports

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Constants for validation
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"

	DefaultDays = 30
)

var (
	ErrRangeTooLarge = errors.New("date range too large")
	ErrNoData        = errors.New("nothing logged in the requested range")
)

// ExportRequest — параметры выгрузки
type ExportRequest struct {
	Days   int    `validate:"gte=1"`
	Format string `validate:"oneof=csv pdf"`
}

// Validate fills defaults and checks the request.
func (r *ExportRequest) Validate() error {
	if r.Days == 0 {
		r.Days = DefaultDays
	}
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = FormatCSV
	}
	return validate.Struct(r)
}

// Report — метаданные выгруженного отчёта
type Report struct {
	ID        uuid.UUID
	Format    string
	From      string // YYYY-MM-DD
	To        string // YYYY-MM-DD
	Days      int    // rows in the report
	ObjectKey string
	SizeBytes int64
	Location  string // URL or file path
	CreatedAt time.Time
}

func contentType(format string) string {
	if format == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}
