package report

import (
	"fmt"
	"strings"

	"discordstats/internal/app/domain/stats"
)

// Pure rendering of counter reads into Discord markdown. No I/O here;
// identical inputs always produce identical text.

type WindowCounts struct {
	Executions  int
	UniqueUsers int
}

type CategoryCounts struct {
	Category string
	Minute   WindowCounts
	Hour     WindowCounts
	Day      WindowCounts
}

type Comparison struct {
	Category        string
	Executions      int
	UniqueUsers     int
	ExecutionsDelta int
	UsersDelta      int
}

// Summary renders the three windows of one category.
func Summary(c CategoryCounts) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**📊 Execution Statistics — %s**\n", c.Category))
	sb.WriteString("\n**Last Minute:**\n")
	sb.WriteString(fmt.Sprintf("• Executions: %d\n• Unique Users: %d\n", c.Minute.Executions, c.Minute.UniqueUsers))
	sb.WriteString("\n**Last Hour:**\n")
	sb.WriteString(fmt.Sprintf("• Executions: %d\n• Unique Users: %d\n", c.Hour.Executions, c.Hour.UniqueUsers))
	sb.WriteString("\n**Last 24 Hours:**\n")
	sb.WriteString(fmt.Sprintf("• Executions: %d\n• Unique Users: %d", c.Day.Executions, c.Day.UniqueUsers))
	return sb.String()
}

// AggregateSummary renders all categories in one message, in the order
// given by the caller.
func AggregateSummary(list []CategoryCounts) string {
	if len(list) == 1 {
		return Summary(list[0])
	}

	var sb strings.Builder
	sb.WriteString("**📊 Execution Statistics**\n")
	for _, c := range list {
		sb.WriteString(fmt.Sprintf("\n**%s**\n", c.Category))
		sb.WriteString(fmt.Sprintf("• Last Minute: %d executions, %d unique users\n", c.Minute.Executions, c.Minute.UniqueUsers))
		sb.WriteString(fmt.Sprintf("• Last Hour: %d executions, %d unique users\n", c.Hour.Executions, c.Hour.UniqueUsers))
		sb.WriteString(fmt.Sprintf("• Last 24 Hours: %d executions, %d unique users\n", c.Day.Executions, c.Day.UniqueUsers))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// CategoryComparison renders one category's counts next to the change
// since the previous period.
func CategoryComparison(c Comparison, gran stats.Granularity) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**📈 %s Comparison — %s**\n", periodTitle(gran), c.Category))
	sb.WriteString(comparisonBody(c, gran))
	return strings.TrimRight(sb.String(), "\n")
}

// AggregateComparison renders every category's period-over-period
// change in one message. newDay prepends the day-boundary header.
func AggregateComparison(list []Comparison, gran stats.Granularity, newDay bool) string {
	var sb strings.Builder
	if newDay {
		sb.WriteString("**🌅 New Day**\n")
	}
	sb.WriteString(fmt.Sprintf("**📈 %s Comparison**\n", periodTitle(gran)))
	for _, c := range list {
		sb.WriteString(fmt.Sprintf("\n**%s**\n", c.Category))
		sb.WriteString(comparisonBody(c, gran))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func comparisonBody(c Comparison, gran stats.Granularity) string {
	period := periodNoun(gran)
	return fmt.Sprintf("• Executions: %d (%s)\n• Unique Users: %d (%s)\n",
		c.Executions, diffPhrase(c.ExecutionsDelta, "executions", period),
		c.UniqueUsers, diffPhrase(c.UsersDelta, "unique users", period))
}

func diffPhrase(delta int, noun, period string) string {
	if delta < 0 {
		return fmt.Sprintf("%d fewer %s than previous %s", -delta, noun, period)
	}
	return fmt.Sprintf("%d more %s than previous %s", delta, noun, period)
}

func periodTitle(gran stats.Granularity) string {
	if gran == stats.Day {
		return "Daily"
	}
	return "Hourly"
}

func periodNoun(gran stats.Granularity) string {
	if gran == stats.Day {
		return "day"
	}
	return "hour"
}
