package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/core/id"
	"quotify/internal/core/types"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
)

type fakeRepo struct {
	clients    []client.Client
	items      []item.Item
	users      []auth.User
	quotations []quotation.Quotation
}

func (f *fakeRepo) Clients(ctx context.Context) ([]client.Client, error) { return f.clients, nil }
func (f *fakeRepo) Items(ctx context.Context) ([]item.Item, error)       { return f.items, nil }
func (f *fakeRepo) Users(ctx context.Context) ([]auth.User, error)       { return f.users, nil }
func (f *fakeRepo) Quotations(ctx context.Context) ([]quotation.Quotation, error) {
	return f.quotations, nil
}

type fakeActivityRepo struct {
	entries []activity.Entry
	deleted map[string]map[string]bool // entityName -> recordID set
}

func (f *fakeActivityRepo) Insert(ctx context.Context, entry *activity.Entry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, filter activity.Filter) (domain.ListResult[activity.Entry], error) {
	var items []activity.Entry
	for _, e := range f.entries {
		if filter.ActionType != "" && e.ActionType.Canonical() != filter.ActionType {
			continue
		}
		items = append(items, e)
	}
	return domain.ListResult[activity.Entry]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeActivityRepo) RecentFor(ctx context.Context, userID *id.ID, email string, limit int) ([]activity.Entry, error) {
	return f.entries, nil
}

func (f *fakeActivityRepo) DeletedRecordIDs(ctx context.Context, entityName string) (map[string]bool, error) {
	if f.deleted == nil {
		return map[string]bool{}, nil
	}
	set := f.deleted[entityName]
	if set == nil {
		set = map[string]bool{}
	}
	return set, nil
}

func (f *fakeActivityRepo) ForEntity(ctx context.Context, entityName string) (map[string][]activity.Entry, error) {
	byRecord := make(map[string][]activity.Entry)
	for _, e := range f.entries {
		if e.EntityName == entityName {
			byRecord[e.RecordID] = append(byRecord[e.RecordID], e)
		}
	}
	return byRecord, nil
}

func testClient(name, email string, active bool, createdAt time.Time) client.Client {
	c := client.New(name, email)
	c.Active = active
	c.CreatedAt = createdAt
	return *c
}

func TestGenerate_UnknownType(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeActivityRepo{})

	_, err := svc.Generate(context.Background(), Query{ReportType: "payments"})
	assert.Error(t, err)
}

func TestGenerate_ClientsColumns(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{clients: []client.Client{
		testClient("Acme", "info@acme.test", true, now),
	}}
	svc := NewService(repo, &fakeActivityRepo{})

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeClients})
	require.NoError(t, err)

	want := []string{"Client Name", "Email", "Phone", "Address", "Status", "Created Date"}
	require.Len(t, table.Columns, len(want))
	for i, name := range want {
		assert.Equal(t, name, table.Columns[i].Name)
	}

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Acme", table.Rows[0][0].Str())
	assert.Equal(t, "Active", table.Rows[0][4].Str())
}

func TestGenerate_ClientsExcludesDeletedByDefault(t *testing.T) {
	now := time.Now().UTC()
	active := testClient("Active Co", "a@test", true, now)
	inactive := testClient("Gone Co", "g@test", false, now)
	removed := testClient("Removed Co", "r@test", true, now)

	repo := &fakeRepo{clients: []client.Client{active, inactive, removed}}
	audit := &fakeActivityRepo{deleted: map[string]map[string]bool{
		client.EntityName: {removed.ID.String(): true},
	}}
	svc := NewService(repo, audit)

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeClients})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Active Co", table.Rows[0][0].Str())

	// IncludeDeleted brings them back with the right status cells.
	table, err = svc.Generate(context.Background(), Query{ReportType: TypeClients, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	statuses := map[string]string{}
	for _, row := range table.Rows {
		statuses[row[0].Str()] = row[4].Str()
	}
	assert.Equal(t, "Active", statuses["Active Co"])
	assert.Equal(t, "Deleted", statuses["Gone Co"])
	assert.Equal(t, "Deleted", statuses["Removed Co"])
}

func TestGenerate_ActionTypeFilter(t *testing.T) {
	now := time.Now().UTC()
	created := testClient("Created Co", "c@test", true, now)
	untouched := testClient("Untouched Co", "u@test", true, now)

	repo := &fakeRepo{clients: []client.Client{created, untouched}}
	audit := &fakeActivityRepo{entries: []activity.Entry{
		{EntityName: client.EntityName, RecordID: created.ID.String(), ActionType: activity.ActionCreate},
	}}
	svc := NewService(repo, audit)

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeClients, ActionType: "create"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Created Co", table.Rows[0][0].Str())
}

func TestGenerate_DateRange(t *testing.T) {
	old := testClient("Old", "o@test", true, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	recent := testClient("Recent", "r@test", true, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	repo := &fakeRepo{clients: []client.Client{old, recent}}
	svc := NewService(repo, &fakeActivityRepo{})

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table, err := svc.Generate(context.Background(), Query{ReportType: TypeClients, StartDate: &from})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Recent", table.Rows[0][0].Str())
}

func TestGenerate_QuotesFilters(t *testing.T) {
	now := time.Now().UTC()
	cheap := quotation.New()
	cheap.Number = "QT-000001"
	cheap.ClientName = "Acme"
	cheap.Status = quotation.StatusSent
	cheap.QuoteDate = now
	cheap.Total = types.MustMoney("100")

	expensive := quotation.New()
	expensive.Number = "QT-000002"
	expensive.ClientName = "Nordwind"
	expensive.Status = quotation.StatusAccepted
	expensive.QuoteDate = now
	expensive.Total = types.MustMoney("5000")

	repo := &fakeRepo{quotations: []quotation.Quotation{*cheap, *expensive}}
	svc := NewService(repo, &fakeActivityRepo{})

	// Status filter.
	table, err := svc.Generate(context.Background(), Query{ReportType: TypeQuotes, Status: "accepted"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "QT-000002", table.Rows[0][0].Str())

	// Amount bounds.
	table, err = svc.Generate(context.Background(), Query{ReportType: TypeQuotes, MinAmount: "500"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "QT-000002", table.Rows[0][0].Str())

	table, err = svc.Generate(context.Background(), Query{ReportType: TypeQuotes, MaxAmount: "500"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "QT-000001", table.Rows[0][0].Str())

	// Unparseable bounds are ignored.
	table, err = svc.Generate(context.Background(), Query{ReportType: TypeQuotes, MinAmount: "lots"})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestGenerate_InvoicesRenaming(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeActivityRepo{})

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeInvoices})
	require.NoError(t, err)

	assert.Equal(t, "Invoices Report", table.Title)
	assert.Equal(t, "Invoice ID", table.Columns[0].Name)
	assert.Equal(t, "Due Date", table.Columns[5].Name)
}

func TestGenerate_QuotesDeletedStatusCell(t *testing.T) {
	q := quotation.New()
	q.Number = "QT-000009"
	q.Status = quotation.StatusSent
	q.QuoteDate = time.Now().UTC()

	repo := &fakeRepo{quotations: []quotation.Quotation{*q}}
	audit := &fakeActivityRepo{deleted: map[string]map[string]bool{
		quotation.EntityName: {q.ID.String(): true},
	}}
	svc := NewService(repo, audit)

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeQuotes, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Deleted", table.Rows[0][4].Str())
}

func TestGenerate_ActivityUserFilter(t *testing.T) {
	audit := &fakeActivityRepo{entries: []activity.Entry{
		{EntityName: "Client", RecordID: "1", ActionType: activity.ActionCreate, PerformedBy: "Alice", Timestamp: time.Now()},
		{EntityName: "Client", RecordID: "2", ActionType: activity.ActionUpdate, PerformedBy: "Bob", Timestamp: time.Now()},
	}}
	svc := NewService(&fakeRepo{}, audit)

	table, err := svc.Generate(context.Background(), Query{ReportType: TypeActivity, User: "alice"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Alice", table.Rows[0][5].Str())
}

func TestApplySearch(t *testing.T) {
	table := &Table{
		Columns: []Column{{Name: "Name", Kind: KindString}, {Name: "Amount", Kind: KindDecimal}},
		Rows: [][]Value{
			{String("Acme Trading"), Decimal(types.MustMoney("10"))},
			{String("Nordwind"), Decimal(types.MustMoney("20"))},
		},
	}

	applySearch(table, "acme")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Acme Trading", table.Rows[0][0].Str())
}

func TestApplySort(t *testing.T) {
	table := &Table{
		Columns: []Column{{Name: "Name", Kind: KindString}, {Name: "Amount", Kind: KindDecimal}},
		Rows: [][]Value{
			{String("B"), Decimal(types.MustMoney("20"))},
			{String("A"), Decimal(types.MustMoney("30"))},
			{String("C"), Decimal(types.MustMoney("10"))},
		},
	}

	applySort(table, "Amount", false)
	assert.Equal(t, "C", table.Rows[0][0].Str())
	assert.Equal(t, "A", table.Rows[2][0].Str())

	applySort(table, "name", true) // column match is case-insensitive
	assert.Equal(t, "C", table.Rows[0][0].Str())

	// Unknown column leaves order untouched.
	applySort(table, "Nope", false)
	assert.Equal(t, "C", table.Rows[0][0].Str())
}

func TestApplySort_MultiWordColumn(t *testing.T) {
	table := &Table{
		Columns: []Column{{Name: "Client Name", Kind: KindString}, {Name: "Created Date", Kind: KindTime}},
		Rows: [][]Value{
			{String("Acme"), Time(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
			{String("Globex"), Time(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))},
			{String("Initech"), Time(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))},
		},
	}

	q := Request{Options: Options{SortBy: "Created Date:desc"}}.Normalize()
	assert.Equal(t, "Created Date", q.SortColumn)
	assert.True(t, q.SortDesc)

	applySort(table, q.SortColumn, q.SortDesc)
	assert.Equal(t, "Globex", table.Rows[0][0].Str())
	assert.Equal(t, "Initech", table.Rows[1][0].Str())
	assert.Equal(t, "Acme", table.Rows[2][0].Str())
}
