package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotify/internal/core/apperror"
	"quotify/internal/domain/activity"
	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
)

// activityFetchLimit caps how many audit entries a report loads.
const activityFetchLimit = 10000

// Service generates report tables.
type Service struct {
	repo         Repository
	activityRepo activity.Repository
}

func NewService(repo Repository, activityRepo activity.Repository) *Service {
	return &Service{repo: repo, activityRepo: activityRepo}
}

// Generate builds the table for a normalized query.
func (s *Service) Generate(ctx context.Context, q Query) (*Table, error) {
	var (
		table *Table
		err   error
	)
	switch q.ReportType {
	case TypeClients:
		table, err = s.clientsTable(ctx, q)
	case TypeProducts:
		table, err = s.productsTable(ctx, q)
	case TypeUsers:
		table, err = s.usersTable(ctx, q)
	case TypeQuotes, TypeInvoices:
		table, err = s.quotesTable(ctx, q)
	case TypeActivity:
		table, err = s.activityTable(ctx, q)
	default:
		return nil, apperror.NewValidation("unknown report type").
			WithDetail("reportType", q.ReportType)
	}
	if err != nil {
		return nil, err
	}

	applySearch(table, q.Search)
	applySort(table, q.SortColumn, q.SortDesc)
	return table, nil
}

// deletedSet resolves which record IDs of an entity carry a Delete
// audit entry.
func (s *Service) deletedSet(ctx context.Context, entityName string) (map[string]bool, error) {
	return s.activityRepo.DeletedRecordIDs(ctx, entityName)
}

// actionMatch resolves which record IDs of an entity have an audit
// entry with the requested action. A nil map means no restriction.
func (s *Service) actionMatch(ctx context.Context, entityName, action string) (map[string]bool, error) {
	if action == "" || action == "all" {
		return nil, nil
	}
	byRecord, err := s.activityRepo.ForEntity(ctx, entityName)
	if err != nil {
		return nil, err
	}
	matched := make(map[string]bool)
	for recordID, entries := range byRecord {
		for _, e := range entries {
			if strings.EqualFold(e.ActionType.Canonical(), action) {
				matched[recordID] = true
				break
			}
		}
	}
	return matched, nil
}

func statusCell(deleted, active bool) Value {
	switch {
	case deleted:
		return String("Deleted")
	case active:
		return String("Active")
	}
	return String("Inactive")
}

func inDateRange(t time.Time, q Query) bool {
	if q.StartDate != nil && t.Before(*q.StartDate) {
		return false
	}
	if q.EndDate != nil && t.After(*q.EndDate) {
		return false
	}
	return true
}

func (s *Service) clientsTable(ctx context.Context, q Query) (*Table, error) {
	clients, err := s.repo.Clients(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.deletedSet(ctx, client.EntityName)
	if err != nil {
		return nil, err
	}
	matched, err := s.actionMatch(ctx, client.EntityName, q.ActionType)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Title: "Clients Report",
		Columns: []Column{
			{Name: "Client Name", Kind: KindString},
			{Name: "Email", Kind: KindString},
			{Name: "Phone", Kind: KindString},
			{Name: "Address", Kind: KindString},
			{Name: "Status", Kind: KindString},
			{Name: "Created Date", Kind: KindTime},
		},
	}
	for _, c := range clients {
		isDeleted := deleted[c.ID.String()] || !c.Active
		if isDeleted && !q.IncludeDeleted {
			continue
		}
		if matched != nil && !matched[c.ID.String()] {
			continue
		}
		if !inDateRange(c.CreatedAt, q) {
			continue
		}
		if q.Client != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Client)) {
			continue
		}
		table.Rows = append(table.Rows, []Value{
			String(c.Name),
			String(c.Email),
			String(c.Phone),
			String(c.Address),
			statusCell(isDeleted, c.Active),
			Time(c.CreatedAt),
		})
	}
	return table, nil
}

func (s *Service) productsTable(ctx context.Context, q Query) (*Table, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.deletedSet(ctx, item.EntityName)
	if err != nil {
		return nil, err
	}
	matched, err := s.actionMatch(ctx, item.EntityName, q.ActionType)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Title: "Products Report",
		Columns: []Column{
			{Name: "Product Name", Kind: KindString},
			{Name: "Description", Kind: KindString},
			{Name: "Price", Kind: KindDecimal},
			{Name: "Quantity", Kind: KindInt},
			{Name: "Status", Kind: KindString},
			{Name: "Created Date", Kind: KindTime},
		},
	}
	for _, it := range items {
		isDeleted := deleted[it.ID.String()] || !it.Active
		if isDeleted && !q.IncludeDeleted {
			continue
		}
		if matched != nil && !matched[it.ID.String()] {
			continue
		}
		if !inDateRange(it.CreatedAt, q) {
			continue
		}
		table.Rows = append(table.Rows, []Value{
			String(it.Title),
			String(it.Description),
			Decimal(it.Price),
			Int(int64(it.Quantity)),
			statusCell(isDeleted, it.Active),
			Time(it.CreatedAt),
		})
	}
	return table, nil
}

func (s *Service) usersTable(ctx context.Context, q Query) (*Table, error) {
	users, err := s.repo.Users(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.deletedSet(ctx, auth.EntityName)
	if err != nil {
		return nil, err
	}
	matched, err := s.actionMatch(ctx, auth.EntityName, q.ActionType)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Title: "Users Report",
		Columns: []Column{
			{Name: "Name", Kind: KindString},
			{Name: "Email", Kind: KindString},
			{Name: "Role", Kind: KindString},
			{Name: "Phone", Kind: KindString},
			{Name: "Status", Kind: KindString},
			{Name: "Created Date", Kind: KindTime},
		},
	}
	for _, u := range users {
		isDeleted := deleted[u.ID.String()] || !u.IsActive
		if isDeleted && !q.IncludeDeleted {
			continue
		}
		if matched != nil && !matched[u.ID.String()] {
			continue
		}
		if !inDateRange(u.CreatedAt, q) {
			continue
		}
		if q.User != "" {
			needle := strings.ToLower(q.User)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		table.Rows = append(table.Rows, []Value{
			String(u.Name),
			String(u.Email),
			String(u.Role),
			String(u.Phone),
			statusCell(isDeleted, u.IsActive),
			Time(u.CreatedAt),
		})
	}
	return table, nil
}

func (s *Service) quotesTable(ctx context.Context, q Query) (*Table, error) {
	quotations, err := s.repo.Quotations(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.deletedSet(ctx, quotation.EntityName)
	if err != nil {
		return nil, err
	}
	matched, err := s.actionMatch(ctx, quotation.EntityName, q.ActionType)
	if err != nil {
		return nil, err
	}

	idColumn, dateColumn := "Quote ID", "Expiry Date"
	title := "Quotes Report"
	if q.ReportType == TypeInvoices {
		idColumn, dateColumn = "Invoice ID", "Due Date"
		title = "Invoices Report"
	}

	var minAmount, maxAmount *decimal.Decimal
	if d, err := decimal.NewFromString(q.MinAmount); err == nil && q.MinAmount != "" {
		minAmount = &d
	}
	if d, err := decimal.NewFromString(q.MaxAmount); err == nil && q.MaxAmount != "" {
		maxAmount = &d
	}

	table := &Table{
		Title: title,
		Columns: []Column{
			{Name: idColumn, Kind: KindString},
			{Name: "Client", Kind: KindString},
			{Name: "Amount", Kind: KindDecimal},
			{Name: "Date", Kind: KindTime},
			{Name: "Status", Kind: KindString},
			{Name: dateColumn, Kind: KindTime},
		},
	}
	for _, qt := range quotations {
		isDeleted := deleted[qt.ID.String()]
		if isDeleted && !q.IncludeDeleted {
			continue
		}
		if matched != nil && !matched[qt.ID.String()] {
			continue
		}
		if !inDateRange(qt.QuoteDate, q) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(qt.Status, q.Status) {
			continue
		}
		if q.Client != "" && !strings.Contains(strings.ToLower(qt.ClientName), strings.ToLower(q.Client)) {
			continue
		}
		if minAmount != nil && qt.Total.Cmp(*minAmount) < 0 {
			continue
		}
		if maxAmount != nil && qt.Total.Cmp(*maxAmount) > 0 {
			continue
		}

		status := qt.Status
		if isDeleted {
			status = "Deleted"
		}
		expiry := Null()
		if qt.ValidUntil != nil {
			expiry = Time(*qt.ValidUntil)
		}
		table.Rows = append(table.Rows, []Value{
			String(qt.Number),
			String(qt.ClientName),
			Decimal(qt.Total),
			Time(qt.QuoteDate),
			String(status),
			expiry,
		})
	}
	return table, nil
}

func (s *Service) activityTable(ctx context.Context, q Query) (*Table, error) {
	filter := activity.Filter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Limit:     activityFetchLimit,
	}
	if q.ActionType != "" && q.ActionType != "all" {
		filter.ActionType = q.ActionType
	}
	result, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Title: "Activity Report",
		Columns: []Column{
			{Name: "Date", Kind: KindTime},
			{Name: "Entity", Kind: KindString},
			{Name: "Record ID", Kind: KindString},
			{Name: "Action", Kind: KindString},
			{Name: "Description", Kind: KindString},
			{Name: "Performed By", Kind: KindString},
		},
	}
	for _, e := range result.Items {
		if q.User != "" {
			needle := strings.ToLower(q.User)
			if !strings.Contains(strings.ToLower(e.PerformedBy), needle) &&
				!strings.Contains(strings.ToLower(e.PerformedByEmail), needle) {
				continue
			}
		}
		table.Rows = append(table.Rows, []Value{
			Time(e.Timestamp),
			String(e.EntityName),
			String(e.RecordID),
			String(string(e.ActionType)),
			String(e.Description),
			String(e.PerformedBy),
		})
	}
	return table, nil
}

// applySearch keeps rows where any string cell contains the needle,
// case-insensitive.
func applySearch(table *Table, search string) {
	if search == "" {
		return
	}
	needle := strings.ToLower(search)
	filtered := table.Rows[:0]
	for _, row := range table.Rows {
		for _, cell := range row {
			if cell.Kind() == KindString && strings.Contains(strings.ToLower(cell.Str()), needle) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	table.Rows = filtered
}

// applySort orders rows by the named column. Unknown columns leave the
// table unsorted.
func applySort(table *Table, column string, desc bool) {
	if column == "" {
		return
	}
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return
	}
	sort.SliceStable(table.Rows, func(i, j int) bool {
		if idx >= len(table.Rows[i]) || idx >= len(table.Rows[j]) {
			return false
		}
		cmp := table.Rows[i][idx].Compare(table.Rows[j][idx])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}
