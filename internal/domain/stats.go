package domain

type StatusCount struct {
	Status ReviewStatus
	Count  int64
}

// Stats is a read-only snapshot of review and finding aggregates.
type Stats struct {
	ReviewsByStatus        []StatusCount
	AverageDurationMs      *float64
	MostCommonFindingTypes []FindingTypeCount
}
