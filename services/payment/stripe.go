package payment

import (
	"context"
	"fmt"
	"time"

	"podium/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/invoiceitem"
	"go.uber.org/zap"
)

// StripeInvoiceService bills the parent by email via Stripe's send_invoice
// collection flow. The global stripe.Key must be set before use.
type StripeInvoiceService struct {
	ProgramName string
	Logger      *zap.Logger
}

// NewStripeInvoiceService creates the production invoice service.
func NewStripeInvoiceService(programName string, logger *zap.Logger) *StripeInvoiceService {
	return &StripeInvoiceService{ProgramName: programName, Logger: logger}
}

// CreateInvoice creates (or reuses) a Stripe customer for the parent, attaches
// the program-fee line item and finalizes an emailed invoice due in 30 days.
func (s *StripeInvoiceService) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	cust, err := s.findOrCreateCustomer(req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	itemParams := &stripe.InvoiceItemParams{
		Customer:    stripe.String(cust.ID),
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(fmt.Sprintf("%s program fee for %s", s.ProgramName, req.StudentName)),
	}
	itemParams.Context = ctx
	if _, err := invoiceitem.New(itemParams); err != nil {
		return nil, fmt.Errorf("failed to create invoice item: %w", err)
	}

	invParams := &stripe.InvoiceParams{
		Customer:         stripe.String(cust.ID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(30),
		AutoAdvance:      stripe.Bool(true),
	}
	invParams.Context = ctx
	invParams.AddMetadata("applicationId", req.ApplicationID)
	inv, err := invoice.New(invParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.Logger.Info("invoice created",
		zap.String("applicationId", req.ApplicationID),
		zap.String("invoiceId", inv.ID),
		zap.Int64("amountCents", req.AmountCents))

	return &models.Invoice{
		ID:          inv.ID,
		AmountCents: req.AmountCents,
		Currency:    string(inv.Currency),
		Status:      string(inv.Status),
		CreatedAt:   time.Unix(inv.Created, 0).UTC(),
	}, nil
}

func (s *StripeInvoiceService) findOrCreateCustomer(req models.InvoiceRequest) (*stripe.Customer, error) {
	searchParams := &stripe.CustomerSearchParams{}
	searchParams.Query = fmt.Sprintf("email:%q", req.ParentEmail)
	iter := customer.Search(searchParams)
	for iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{
		Name:  stripe.String(req.ParentName),
		Email: stripe.String(req.ParentEmail),
	}
	params.AddMetadata("applicationId", req.ApplicationID)
	return customer.New(params)
}
