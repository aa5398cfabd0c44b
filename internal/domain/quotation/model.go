// Package quotation provides quotations with their line items, discount
// handling and status lifecycle.
package quotation

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotify/internal/core/apperror"
	"quotify/internal/core/id"
	"quotify/internal/core/types"
)

// EntityName is the audit trail identifier for quotations.
const EntityName = "Quotation"

// NumberPrefix is the prefix of auto-generated quotation numbers.
const NumberPrefix = "QT"

// Statuses form the quotation lifecycle. Stored lowercase; comparisons
// are case-insensitive everywhere.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Quotation is a priced offer issued to a client.
type Quotation struct {
	ID       id.ID  `db:"id" json:"id"`
	Number   string `db:"number" json:"number"`
	PONumber string `db:"po_number" json:"poNumber,omitempty"`

	ClientID   *id.ID `db:"client_id" json:"clientId,omitempty"`
	ClientName string `db:"client_name" json:"clientName,omitempty"`

	QuoteDate  time.Time  `db:"quote_date" json:"quoteDate"`
	ValidUntil *time.Time `db:"valid_until" json:"validUntil,omitempty"`

	Status string `db:"status" json:"status"`

	// Discount is a percentage when DiscountType is "percentage",
	// otherwise an absolute amount.
	DiscountType string      `db:"discount_type" json:"discountType"`
	Discount     types.Money `db:"discount" json:"discount"`

	// Derived amounts, recomputed from lines on every mutation.
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	Total          types.Money `db:"total" json:"total"`
	NetAmount      types.Money `db:"net_amount" json:"netAmount"`

	PartialDeposit types.Money `db:"partial_deposit" json:"partialDeposit"`

	Project        string       `db:"project" json:"project,omitempty"`
	AssignedUser   string       `db:"assigned_user" json:"assignedUser,omitempty"`
	Vendor         string       `db:"vendor" json:"vendor,omitempty"`
	Design         string       `db:"design" json:"design,omitempty"`
	ExchangeRate   *types.Money `db:"exchange_rate" json:"exchangeRate,omitempty"`
	InclusiveTaxes bool         `db:"inclusive_taxes" json:"inclusiveTaxes"`
	Notes          string       `db:"notes" json:"notes,omitempty"`

	CreatedByID    *id.ID `db:"created_by_id" json:"createdById,omitempty"`
	CreatedByEmail string `db:"created_by_email" json:"createdByEmail,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Lines []Line `db:"-" json:"items"`
}

// Line is a single priced position of a quotation.
type Line struct {
	ID          id.ID       `db:"id" json:"id"`
	QuotationID id.ID       `db:"quotation_id" json:"quotationId"`
	ItemName    string      `db:"item_name" json:"itemName"`
	Description string      `db:"description" json:"description,omitempty"`
	UnitCost    types.Money `db:"unit_cost" json:"unitCost"`
	Quantity    types.Money `db:"quantity" json:"quantity"`
	LineTotal   types.Money `db:"line_total" json:"lineTotal"`
	Position    int         `db:"position" json:"position"`
}

// New creates a quotation with generated ID and draft status.
func New() *Quotation {
	now := time.Now().UTC()
	return &Quotation{
		ID:           id.New(),
		QuoteDate:    now,
		Status:       StatusDraft,
		DiscountType: DiscountFixed,
		CreatedAt:    now,
		UpdatedAt:    now,
		Lines:        make([]Line, 0),
	}
}

// SetLines replaces all lines and recomputes totals. Line totals are
// always derived server-side; whatever the caller sent is ignored.
func (q *Quotation) SetLines(lines []Line) {
	q.Lines = make([]Line, 0, len(lines))
	for i, line := range lines {
		if id.IsNil(line.ID) {
			line.ID = id.New()
		}
		line.QuotationID = q.ID
		line.Position = i + 1
		line.LineTotal = line.UnitCost.Mul(line.Quantity)
		q.Lines = append(q.Lines, line)
	}
	q.Recalculate()
}

// Recalculate derives subtotal, discount amount, total and net amount
// from the current lines and discount settings.
func (q *Quotation) Recalculate() {
	subtotal := decimal.Zero
	for i := range q.Lines {
		q.Lines[i].LineTotal = q.Lines[i].UnitCost.Mul(q.Lines[i].Quantity)
		subtotal = subtotal.Add(q.Lines[i].LineTotal)
	}
	q.Subtotal = subtotal

	if strings.EqualFold(q.DiscountType, DiscountPercentage) {
		q.DiscountAmount = types.Percent(subtotal, q.Discount)
	} else {
		q.DiscountAmount = q.Discount
	}

	q.Total = subtotal.Sub(q.DiscountAmount)
	q.NetAmount = q.Total
}

// NormalizeStatus lowercases and trims a status value.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// ValidStatus reports whether the status belongs to the known vocabulary.
func ValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusDraft, StatusSent, StatusAccepted, StatusDeclined, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Validate checks quotation invariants.
func (q *Quotation) Validate(ctx context.Context) error {
	if strings.TrimSpace(q.Number) == "" {
		return apperror.NewValidation("quotation number is required").
			WithDetail("field", "number")
	}
	if !ValidStatus(q.Status) {
		return apperror.NewValidation("invalid quotation status").
			WithDetail("field", "status").
			WithDetail("value", q.Status)
	}
	if q.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}
	if !strings.EqualFold(q.DiscountType, DiscountPercentage) && !strings.EqualFold(q.DiscountType, DiscountFixed) {
		return apperror.NewValidation("invalid discount type").
			WithDetail("field", "discountType").
			WithDetail("value", q.DiscountType)
	}
	for i := range q.Lines {
		if strings.TrimSpace(q.Lines[i].ItemName) == "" {
			return apperror.NewValidation("line item name is required").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if q.Lines[i].Quantity.IsNegative() {
			return apperror.NewValidation("line quantity cannot be negative").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
	}
	return nil
}

// Patch describes a partial update. Nil fields are left unchanged;
// a non-nil Lines slice replaces all lines and triggers recomputation.
type Patch struct {
	Number         *string
	PONumber       *string
	ClientID       *id.ID
	ClientName     *string
	QuoteDate      *time.Time
	ValidUntil     *time.Time
	Status         *string
	DiscountType   *string
	Discount       *types.Money
	PartialDeposit *types.Money
	Project        *string
	AssignedUser   *string
	Vendor         *string
	Design         *string
	ExchangeRate   *types.Money
	InclusiveTaxes *bool
	Notes          *string
	Lines          []Line
}

// Apply copies the patch onto the quotation and recomputes totals.
func (p Patch) Apply(q *Quotation) {
	if p.Number != nil && *p.Number != "" {
		q.Number = *p.Number
	}
	if p.PONumber != nil {
		q.PONumber = *p.PONumber
	}
	if p.ClientID != nil {
		q.ClientID = p.ClientID
	}
	if p.ClientName != nil {
		q.ClientName = *p.ClientName
	}
	if p.QuoteDate != nil {
		q.QuoteDate = *p.QuoteDate
	}
	if p.ValidUntil != nil {
		q.ValidUntil = p.ValidUntil
	}
	if p.Status != nil && *p.Status != "" {
		q.Status = NormalizeStatus(*p.Status)
	}
	if p.DiscountType != nil && *p.DiscountType != "" {
		q.DiscountType = strings.ToLower(*p.DiscountType)
	}
	if p.Discount != nil {
		q.Discount = *p.Discount
	}
	if p.PartialDeposit != nil {
		q.PartialDeposit = *p.PartialDeposit
	}
	if p.Project != nil {
		q.Project = *p.Project
	}
	if p.AssignedUser != nil {
		q.AssignedUser = *p.AssignedUser
	}
	if p.Vendor != nil {
		q.Vendor = *p.Vendor
	}
	if p.Design != nil {
		q.Design = *p.Design
	}
	if p.ExchangeRate != nil {
		q.ExchangeRate = p.ExchangeRate
	}
	if p.InclusiveTaxes != nil {
		q.InclusiveTaxes = *p.InclusiveTaxes
	}
	if p.Notes != nil {
		q.Notes = *p.Notes
	}
	if p.Lines != nil {
		q.SetLines(p.Lines)
	} else {
		q.Recalculate()
	}
	q.UpdatedAt = time.Now().UTC()
}

// Filter selects quotations in list queries.
type Filter struct {
	// Status filters by exact status; "all" or empty disables.
	Status string

	// Search matches number or client name substrings, case-insensitive.
	Search string

	DateFrom *time.Time
	DateTo   *time.Time

	// Ownership scoping for non-admin users. Empty values disable.
	ScopeUserID *id.ID
	ScopeEmail  string

	Limit  int
	Offset int
}
