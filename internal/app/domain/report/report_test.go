package report

import (
	"testing"

	"discordstats/internal/app/domain/stats"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	got := Summary(CategoryCounts{
		Category: "valorant",
		Minute:   WindowCounts{Executions: 5, UniqueUsers: 2},
		Hour:     WindowCounts{Executions: 40, UniqueUsers: 11},
		Day:      WindowCounts{Executions: 300, UniqueUsers: 57},
	})

	want := "**📊 Execution Statistics — valorant**\n" +
		"\n**Last Minute:**\n" +
		"• Executions: 5\n• Unique Users: 2\n" +
		"\n**Last Hour:**\n" +
		"• Executions: 40\n• Unique Users: 11\n" +
		"\n**Last 24 Hours:**\n" +
		"• Executions: 300\n• Unique Users: 57"
	assert.Equal(t, want, got)
}

func TestAggregateSummary_SingleCategoryFallsBack(t *testing.T) {
	t.Parallel()

	c := CategoryCounts{Category: "x", Minute: WindowCounts{Executions: 1, UniqueUsers: 1}}
	assert.Equal(t, Summary(c), AggregateSummary([]CategoryCounts{c}))
}

func TestAggregateSummary(t *testing.T) {
	t.Parallel()

	got := AggregateSummary([]CategoryCounts{
		{Category: "fortnite", Minute: WindowCounts{Executions: 2, UniqueUsers: 2}, Hour: WindowCounts{Executions: 10, UniqueUsers: 5}, Day: WindowCounts{Executions: 50, UniqueUsers: 9}},
		{Category: "valorant", Minute: WindowCounts{Executions: 0, UniqueUsers: 0}, Hour: WindowCounts{Executions: 1, UniqueUsers: 1}, Day: WindowCounts{Executions: 7, UniqueUsers: 3}},
	})

	want := "**📊 Execution Statistics**\n" +
		"\n**fortnite**\n" +
		"• Last Minute: 2 executions, 2 unique users\n" +
		"• Last Hour: 10 executions, 5 unique users\n" +
		"• Last 24 Hours: 50 executions, 9 unique users\n" +
		"\n**valorant**\n" +
		"• Last Minute: 0 executions, 0 unique users\n" +
		"• Last Hour: 1 executions, 1 unique users\n" +
		"• Last 24 Hours: 7 executions, 3 unique users"
	assert.Equal(t, want, got)
}

func TestCategoryComparison(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmp  Comparison
		gran stats.Granularity
		want string
	}{
		{
			name: "hourly_growth",
			cmp:  Comparison{Category: "valorant", Executions: 12, UniqueUsers: 4, ExecutionsDelta: 3, UsersDelta: 1},
			gran: stats.Hour,
			want: "**📈 Hourly Comparison — valorant**\n" +
				"• Executions: 12 (3 more executions than previous hour)\n" +
				"• Unique Users: 4 (1 more unique users than previous hour)",
		},
		{
			name: "hourly_zero_delta",
			cmp:  Comparison{Category: "valorant"},
			gran: stats.Hour,
			want: "**📈 Hourly Comparison — valorant**\n" +
				"• Executions: 0 (0 more executions than previous hour)\n" +
				"• Unique Users: 0 (0 more unique users than previous hour)",
		},
		{
			name: "daily_decline",
			cmp:  Comparison{Category: "fortnite", Executions: 80, UniqueUsers: 10, ExecutionsDelta: -20, UsersDelta: -5},
			gran: stats.Day,
			want: "**📈 Daily Comparison — fortnite**\n" +
				"• Executions: 80 (20 fewer executions than previous day)\n" +
				"• Unique Users: 10 (5 fewer unique users than previous day)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryComparison(tt.cmp, tt.gran))
		})
	}
}

func TestAggregateComparison(t *testing.T) {
	t.Parallel()

	entries := []Comparison{
		{Category: "fortnite", Executions: 5, UniqueUsers: 2, ExecutionsDelta: 5, UsersDelta: 2},
		{Category: "valorant", Executions: 0, UniqueUsers: 0, ExecutionsDelta: -1, UsersDelta: -1},
	}

	got := AggregateComparison(entries, stats.Hour, false)
	want := "**📈 Hourly Comparison**\n" +
		"\n**fortnite**\n" +
		"• Executions: 5 (5 more executions than previous hour)\n" +
		"• Unique Users: 2 (2 more unique users than previous hour)\n" +
		"\n**valorant**\n" +
		"• Executions: 0 (1 fewer executions than previous hour)\n" +
		"• Unique Users: 0 (1 fewer unique users than previous hour)"
	assert.Equal(t, want, got)
}

func TestAggregateComparison_NewDayHeader(t *testing.T) {
	t.Parallel()

	got := AggregateComparison([]Comparison{{Category: "x"}}, stats.Day, true)
	want := "**🌅 New Day**\n" +
		"**📈 Daily Comparison**\n" +
		"\n**x**\n" +
		"• Executions: 0 (0 more executions than previous day)\n" +
		"• Unique Users: 0 (0 more unique users than previous day)"
	assert.Equal(t, want, got)
}

func TestRenderingDeterministic(t *testing.T) {
	t.Parallel()

	c := CategoryCounts{Category: "x", Minute: WindowCounts{Executions: 3, UniqueUsers: 2}}
	assert.Equal(t, Summary(c), Summary(c))

	cmp := Comparison{Category: "x", Executions: 1, UniqueUsers: 1}
	assert.Equal(t, CategoryComparison(cmp, stats.Hour), CategoryComparison(cmp, stats.Hour))
}
