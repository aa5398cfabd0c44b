package dto

import (
	"time"

	"quotify/internal/core/id"
	"quotify/internal/core/types"
	"quotify/internal/domain/quotation"
)

// LineRequest is one line of a quotation payload. Line totals are
// derived server-side.
type LineRequest struct {
	ID          string      `json:"id,omitempty"`
	ItemName    string      `json:"itemName" binding:"required"`
	Description string      `json:"description,omitempty"`
	UnitCost    types.Money `json:"unitCost"`
	Quantity    types.Money `json:"quantity"`
}

func (r LineRequest) toLine() quotation.Line {
	line := quotation.Line{
		ItemName:    r.ItemName,
		Description: r.Description,
		UnitCost:    r.UnitCost,
		Quantity:    r.Quantity,
	}
	if parsed, err := id.Parse(r.ID); err == nil {
		line.ID = parsed
	}
	return line
}

func toLines(reqs []LineRequest) []quotation.Line {
	lines := make([]quotation.Line, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, r.toLine())
	}
	return lines
}

// CreateQuotationRequest for quotation creation.
type CreateQuotationRequest struct {
	Number         string        `json:"number,omitempty"`
	PONumber       string        `json:"poNumber,omitempty"`
	ClientID       string        `json:"clientId,omitempty"`
	ClientName     string        `json:"clientName,omitempty"`
	QuoteDate      *time.Time    `json:"quoteDate,omitempty"`
	ValidUntil     *time.Time    `json:"validUntil,omitempty"`
	Status         string        `json:"status,omitempty"`
	DiscountType   string        `json:"discountType,omitempty"`
	Discount       types.Money   `json:"discount"`
	PartialDeposit types.Money   `json:"partialDeposit"`
	Project        string        `json:"project,omitempty"`
	AssignedUser   string        `json:"assignedUser,omitempty"`
	Vendor         string        `json:"vendor,omitempty"`
	Design         string        `json:"design,omitempty"`
	ExchangeRate   *types.Money  `json:"exchangeRate,omitempty"`
	InclusiveTaxes bool          `json:"inclusiveTaxes"`
	Notes          string        `json:"notes,omitempty"`
	Items          []LineRequest `json:"items"`
}

// ToQuotation converts to a domain quotation.
func (r *CreateQuotationRequest) ToQuotation() *quotation.Quotation {
	q := quotation.New()
	q.Number = r.Number
	q.PONumber = r.PONumber
	q.ClientName = r.ClientName
	if parsed, err := id.Parse(r.ClientID); err == nil {
		q.ClientID = &parsed
	}
	if r.QuoteDate != nil {
		q.QuoteDate = *r.QuoteDate
	}
	q.ValidUntil = r.ValidUntil
	if r.Status != "" {
		q.Status = r.Status
	}
	if r.DiscountType != "" {
		q.DiscountType = r.DiscountType
	}
	q.Discount = r.Discount
	q.PartialDeposit = r.PartialDeposit
	q.Project = r.Project
	q.AssignedUser = r.AssignedUser
	q.Vendor = r.Vendor
	q.Design = r.Design
	q.ExchangeRate = r.ExchangeRate
	q.InclusiveTaxes = r.InclusiveTaxes
	q.Notes = r.Notes
	q.Lines = toLines(r.Items)
	return q
}

// UpdateQuotationRequest for partial quotation updates. A non-nil
// Items slice replaces all lines.
type UpdateQuotationRequest struct {
	Number         *string       `json:"number"`
	PONumber       *string       `json:"poNumber"`
	ClientID       *string       `json:"clientId"`
	ClientName     *string       `json:"clientName"`
	QuoteDate      *time.Time    `json:"quoteDate"`
	ValidUntil     *time.Time    `json:"validUntil"`
	Status         *string       `json:"status"`
	DiscountType   *string       `json:"discountType"`
	Discount       *types.Money  `json:"discount"`
	PartialDeposit *types.Money  `json:"partialDeposit"`
	Project        *string       `json:"project"`
	AssignedUser   *string       `json:"assignedUser"`
	Vendor         *string       `json:"vendor"`
	Design         *string       `json:"design"`
	ExchangeRate   *types.Money  `json:"exchangeRate"`
	InclusiveTaxes *bool         `json:"inclusiveTaxes"`
	Notes          *string       `json:"notes"`
	Items          []LineRequest `json:"items"`
}

// ToPatch converts to a domain patch.
func (r *UpdateQuotationRequest) ToPatch() quotation.Patch {
	p := quotation.Patch{
		Number:         r.Number,
		PONumber:       r.PONumber,
		ClientName:     r.ClientName,
		QuoteDate:      r.QuoteDate,
		ValidUntil:     r.ValidUntil,
		Status:         r.Status,
		DiscountType:   r.DiscountType,
		Discount:       r.Discount,
		PartialDeposit: r.PartialDeposit,
		Project:        r.Project,
		AssignedUser:   r.AssignedUser,
		Vendor:         r.Vendor,
		Design:         r.Design,
		ExchangeRate:   r.ExchangeRate,
		InclusiveTaxes: r.InclusiveTaxes,
		Notes:          r.Notes,
	}
	if r.ClientID != nil {
		if parsed, err := id.Parse(*r.ClientID); err == nil {
			p.ClientID = &parsed
		}
	}
	if r.Items != nil {
		p.Lines = toLines(r.Items)
	}
	return p
}

// SetStatusRequest transitions a quotation status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuotationListQuery contains quotation list parameters.
type QuotationListQuery struct {
	Status   string     `form:"status"`
	Search   string     `form:"search"`
	DateFrom *time.Time `form:"dateFrom"`
	DateTo   *time.Time `form:"dateTo"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// ToFilter converts to a domain filter.
func (r *QuotationListQuery) ToFilter() quotation.Filter {
	return quotation.Filter{
		Status:   r.Status,
		Search:   r.Search,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// NextNumberResponse carries the next free quotation number.
type NextNumberResponse struct {
	Number string `json:"number"`
}
