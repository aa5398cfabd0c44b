// Package dashboard aggregates metrics and recent records for the
// landing view.
package dashboard

import (
	"strconv"
	"strings"
	"time"

	"quotify/internal/core/id"
	"quotify/internal/core/types"
)

// Period names. Anything unrecognized falls back to the current month.
const (
	PeriodThisWeek  = "this week"
	PeriodThisYear  = "this year"
	PeriodThisMonth = "this month"
)

// Period is a resolved reporting window with its chart labels.
type Period struct {
	Name   string
	Start  time.Time
	Labels []string
}

// ResolvePeriod maps a period name to its window and chart labels.
// "this week" starts on the most recent Monday with Mon..Sun labels,
// "this year" on January 1 with month labels, anything else on the
// first of the current month with day-number labels.
func ResolvePeriod(name string, now time.Time) Period {
	name = strings.ToLower(strings.TrimSpace(name))
	now = now.UTC()

	switch name {
	case PeriodThisWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -(weekday - 1))
		return Period{
			Name:   PeriodThisWeek,
			Start:  start,
			Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		}
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Name:   PeriodThisYear,
			Start:  start,
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		}
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		days := now.Day()
		labels := make([]string, days)
		for i := 0; i < days; i++ {
			labels[i] = strconv.Itoa(i + 1)
		}
		return Period{Name: PeriodThisMonth, Start: start, Labels: labels}
	}
}

// LabelIndex returns the chart bucket index for a timestamp, or -1 when
// it falls outside the period.
func (p Period) LabelIndex(t time.Time) int {
	t = t.UTC()
	if t.Before(p.Start) {
		return -1
	}
	var idx int
	switch p.Name {
	case PeriodThisWeek:
		idx = int(t.Sub(p.Start).Hours() / 24)
	case PeriodThisYear:
		idx = int(t.Month()) - 1
	default:
		idx = t.Day() - 1
	}
	if idx < 0 || idx >= len(p.Labels) {
		return -1
	}
	return idx
}

// Scope restricts aggregate queries to records owned by or assigned to
// a user. Zero value means unscoped.
type Scope struct {
	UserID *id.ID
	Email  string
}

// Empty reports whether the scope imposes no restriction.
func (s Scope) Empty() bool {
	return s.UserID == nil && s.Email == ""
}

// QuotationStat is the slim projection used for chart aggregation.
type QuotationStat struct {
	QuoteDate time.Time   `db:"quote_date"`
	Status    string      `db:"status"`
	Total     types.Money `db:"total"`
}

// Chart is a labelled single-series dataset.
type Chart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Overview bundles the headline metrics of a period.
type Overview struct {
	Period          string      `json:"period"`
	TotalClients    int         `json:"totalClients"`
	TotalQuotations int         `json:"totalQuotations"`
	TotalItems      int         `json:"totalItems"`
	TotalAmount     types.Money `json:"totalAmount"`
	PendingCount    int         `json:"pendingCount"`
	ApprovedCount   int         `json:"approvedCount"`
	RejectedCount   int         `json:"rejectedCount"`
	Chart           Chart       `json:"chart"`
}

// PipelineSeries is one status line of the pipeline chart.
type PipelineSeries struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

// Pipeline groups quotations by day and status bucket.
type Pipeline struct {
	Period string           `json:"period"`
	Labels []string         `json:"labels"`
	Series []PipelineSeries `json:"series"`
}
