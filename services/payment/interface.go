package payment

import (
	"context"

	"podium/models"
)

// InvoiceService issues program-fee invoices for confirmed applicants.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error)
}
