package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/security"
	"quotify/internal/domain/activity"
	"quotify/internal/domain/client"
	"quotify/internal/domain/quotation"
)

const defaultRecentLimit = 5

// Service assembles dashboard views.
type Service struct {
	repo     Repository
	activity *activity.Service
	policy   security.VisibilityPolicy
	buckets  security.StatusBuckets
}

func NewService(repo Repository, activitySvc *activity.Service, policy security.VisibilityPolicy, buckets security.StatusBuckets) *Service {
	return &Service{
		repo:     repo,
		activity: activitySvc,
		policy:   policy,
		buckets:  buckets,
	}
}

// scope derives the aggregate scope for the current user. Admins (per
// policy) see everything; a missing identity on a scoped path is an
// authorization failure, never an unscoped result.
func (s *Service) scope(ctx context.Context) (Scope, error) {
	user := appctx.GetUser(ctx)
	if !s.policy.Scoped(user) {
		return Scope{}, nil
	}
	if user == nil {
		return Scope{}, apperror.NewUnauthorized("authentication required")
	}
	scope := Scope{Email: user.NormalizedEmail()}
	if uid, err := id.Parse(user.UserID); err == nil {
		scope.UserID = &uid
	}
	return scope, nil
}

// Overview computes the headline metrics for the period.
func (s *Service) Overview(ctx context.Context, periodName string) (*Overview, error) {
	period := ResolvePeriod(periodName, time.Now())
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}

	totalClients, err := s.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	totalItems, err := s.repo.CountItems(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.QuotationStats(ctx, period.Start, scope)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		Period:       period.Name,
		TotalClients: totalClients,
		TotalItems:   totalItems,
		TotalAmount:  decimal.Zero,
		Chart: Chart{
			Labels: period.Labels,
			Data:   make([]int, len(period.Labels)),
		},
	}
	for _, st := range stats {
		out.TotalQuotations++
		out.TotalAmount = out.TotalAmount.Add(st.Total)
		switch {
		case s.buckets.InPending(st.Status):
			out.PendingCount++
		case s.buckets.InApproved(st.Status):
			out.ApprovedCount++
		case s.buckets.InRejected(st.Status):
			out.RejectedCount++
		}
		if idx := period.LabelIndex(st.QuoteDate); idx >= 0 {
			out.Chart.Data[idx]++
		}
	}
	return out, nil
}

// Pipeline groups quotations by quote date and status bucket.
func (s *Service) Pipeline(ctx context.Context, periodName string) (*Pipeline, error) {
	period := ResolvePeriod(periodName, time.Now())
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.QuotationStats(ctx, period.Start, scope)
	if err != nil {
		return nil, err
	}

	type dayCounts map[string]int
	byDay := make(map[string]dayCounts)
	for _, st := range stats {
		day := st.QuoteDate.UTC().Format("2006-01-02")
		counts, ok := byDay[day]
		if !ok {
			counts = make(dayCounts)
			byDay[day] = counts
		}
		counts[s.bucketName(st.Status)]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	names := []string{"Draft", "Sent", "Accepted", "Rejected", "Expired"}
	series := make([]PipelineSeries, len(names))
	for i, name := range names {
		series[i] = PipelineSeries{Name: name, Data: make([]int, len(days))}
		for j, day := range days {
			series[i].Data[j] = byDay[day][name]
		}
	}

	return &Pipeline{Period: period.Name, Labels: days, Series: series}, nil
}

func (s *Service) bucketName(status string) string {
	switch {
	case s.buckets.InPending(status):
		return "Sent"
	case s.buckets.InApproved(status):
		return "Accepted"
	case s.buckets.InRejected(status):
		return "Rejected"
	case s.buckets.InExpired(status):
		return "Expired"
	case strings.EqualFold(status, quotation.StatusDraft):
		return "Draft"
	}
	return "Draft"
}

// RecentClients returns the latest clients visible to the caller.
func (s *Service) RecentClients(ctx context.Context, limit int) ([]client.Client, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.RecentClients(ctx, scope, limit)
}

// RecentQuotations returns the latest quotations visible to the caller.
func (s *Service) RecentQuotations(ctx context.Context, limit int) ([]quotation.Quotation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.RecentQuotations(ctx, scope, limit)
}

// RecentActivities returns the caller's latest activity entries.
func (s *Service) RecentActivities(ctx context.Context, limit int) ([]activity.Entry, error) {
	return s.activity.MyRecent(ctx, limit)
}

// Data bundles everything the landing view needs in one call.
type Data struct {
	Overview         *Overview             `json:"overview"`
	RecentClients    []client.Client       `json:"recentClients"`
	RecentQuotations []quotation.Quotation `json:"recentQuotations"`
	RecentActivities []activity.Entry      `json:"recentActivities"`
}

// Data assembles the combined dashboard payload.
func (s *Service) Data(ctx context.Context, periodName string) (*Data, error) {
	overview, err := s.Overview(ctx, periodName)
	if err != nil {
		return nil, err
	}
	clients, err := s.RecentClients(ctx, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	quotations, err := s.RecentQuotations(ctx, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	activities, err := s.RecentActivities(ctx, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	return &Data{
		Overview:         overview,
		RecentClients:    clients,
		RecentQuotations: quotations,
		RecentActivities: activities,
	}, nil
}
