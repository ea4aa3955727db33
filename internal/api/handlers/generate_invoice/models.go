package generate_invoice

import (
	"time"

	generateInvoice "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/generate_invoice"
)

// InvoiceResponse HTTP response model
type InvoiceResponse struct {
	MemberID         int64  `json:"memberId"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	ClassesScheduled int    `json:"classesScheduled"`
	ClassesBilled    int    `json:"classesBilled"`
	UnitPrice        string `json:"unitPrice"`
	GrossAmount      string `json:"grossAmount"`
	DiscountPct      string `json:"discountPct"`
	NetAmount        string `json:"netAmount"`
	GeneratedAt      string `json:"generatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Денежные суммы сериализуются строками, чтобы не терять точность во float.
func FromUseCaseResponse(resp *generateInvoice.Response) *InvoiceResponse {
	return &InvoiceResponse{
		MemberID:         resp.MemberID,
		Year:             resp.Year,
		Month:            resp.Month,
		ClassesScheduled: resp.ClassesScheduled,
		ClassesBilled:    resp.ClassesBilled,
		UnitPrice:        resp.UnitPrice.StringFixed(2),
		GrossAmount:      resp.GrossAmount.StringFixed(2),
		DiscountPct:      resp.DiscountPct.String(),
		NetAmount:        resp.NetAmount.StringFixed(2),
		GeneratedAt:      resp.GeneratedAt.Format(time.RFC3339),
	}
}
