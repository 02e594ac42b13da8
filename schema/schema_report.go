package schema

// SummaryReport is the render model for the human-readable session summary.
// It is a derived snapshot of the aggregation state, built once per command.
type SummaryReport struct {
	Repositories    int
	Totals          Totals
	TopContributors []ContributorStat
	RecentBuckets   []AggregatedRow
	Period          Period
}
