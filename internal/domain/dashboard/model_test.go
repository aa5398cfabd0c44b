package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriod_ThisWeek(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	p := ResolvePeriod("this week", now)

	assert.Equal(t, PeriodThisWeek, p.Name)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), p.Start, "week starts on Monday")
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, p.Labels)
}

func TestResolvePeriod_SundayBelongsToCurrentWeek(t *testing.T) {
	// 2024-06-16 is a Sunday; the week still starts the previous Monday.
	now := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
	p := ResolvePeriod("This Week", now)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), p.Start)
}

func TestResolvePeriod_ThisYear(t *testing.T) {
	now := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	p := ResolvePeriod("this year", now)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Len(t, p.Labels, 12)
	assert.Equal(t, "Jan", p.Labels[0])
	assert.Equal(t, "Dec", p.Labels[11])
}

func TestResolvePeriod_DefaultsToMonth(t *testing.T) {
	now := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	for _, name := range []string{"", "this month", "quarter", "whatever"} {
		p := ResolvePeriod(name, now)
		assert.Equal(t, PeriodThisMonth, p.Name, "period %q", name)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Len(t, p.Labels, 12, "labels run through today")
		assert.Equal(t, "1", p.Labels[0])
		assert.Equal(t, "12", p.Labels[11])
	}
}

func TestLabelIndex_Week(t *testing.T) {
	p := ResolvePeriod("this week", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, p.LabelIndex(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)), "Monday")
	assert.Equal(t, 2, p.LabelIndex(time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC)), "Wednesday")
	assert.Equal(t, 6, p.LabelIndex(time.Date(2024, 6, 16, 1, 0, 0, 0, time.UTC)), "Sunday")

	assert.Equal(t, -1, p.LabelIndex(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)), "before the window")
	assert.Equal(t, -1, p.LabelIndex(time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)), "after the window")
}

func TestLabelIndex_Year(t *testing.T) {
	p := ResolvePeriod("this year", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, p.LabelIndex(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, p.LabelIndex(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, p.LabelIndex(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestLabelIndex_Month(t *testing.T) {
	p := ResolvePeriod("", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, p.LabelIndex(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11, p.LabelIndex(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, p.LabelIndex(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)), "beyond today")
}

func TestScope_Empty(t *testing.T) {
	assert.True(t, Scope{}.Empty())
	assert.False(t, Scope{Email: "a@b.test"}.Empty())
}
