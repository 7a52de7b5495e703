package domain

import "time"

type FindingType string

const (
	FindingTypeBug             FindingType = "BUG"
	FindingTypeSecurity        FindingType = "SECURITY"
	FindingTypePerformance     FindingType = "PERFORMANCE"
	FindingTypeStyle           FindingType = "STYLE"
	FindingTypeMaintainability FindingType = "MAINTAINABILITY"
	FindingTypeDocumentation   FindingType = "DOCUMENTATION"
	FindingTypeBestPractice    FindingType = "BEST_PRACTICE"
)

var findingTypes = []FindingType{
	FindingTypeBug,
	FindingTypeSecurity,
	FindingTypePerformance,
	FindingTypeStyle,
	FindingTypeMaintainability,
	FindingTypeDocumentation,
	FindingTypeBestPractice,
}

func FindingTypes() []FindingType {
	return append([]FindingType(nil), findingTypes...)
}

func (t FindingType) Valid() bool {
	for _, known := range findingTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t FindingType) String() string {
	return string(t)
}

func ParseFindingType(s string) (FindingType, error) {
	t := FindingType(s)
	if !t.Valid() {
		return "", NewInvalidArgumentError("unknown finding type %q", s)
	}
	return t, nil
}

func DecodeFindingType(s string) (FindingType, error) {
	t := FindingType(s)
	if !t.Valid() {
		return "", NewDataCorruptionError("stored finding type %q is not recognized", s)
	}
	return t, nil
}

type SeverityLevel string

const (
	SeverityCritical SeverityLevel = "CRITICAL"
	SeverityHigh     SeverityLevel = "HIGH"
	SeverityMedium   SeverityLevel = "MEDIUM"
	SeverityLow      SeverityLevel = "LOW"
	SeverityInfo     SeverityLevel = "INFO"
)

var severityLevels = []SeverityLevel{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

func SeverityLevels() []SeverityLevel {
	return append([]SeverityLevel(nil), severityLevels...)
}

func (s SeverityLevel) Valid() bool {
	for _, known := range severityLevels {
		if s == known {
			return true
		}
	}
	return false
}

func (s SeverityLevel) String() string {
	return string(s)
}

func ParseSeverityLevel(s string) (SeverityLevel, error) {
	level := SeverityLevel(s)
	if !level.Valid() {
		return "", NewInvalidArgumentError("unknown severity level %q", s)
	}
	return level, nil
}

func DecodeSeverityLevel(s string) (SeverityLevel, error) {
	level := SeverityLevel(s)
	if !level.Valid() {
		return "", NewDataCorruptionError("stored severity level %q is not recognized", s)
	}
	return level, nil
}

type Finding struct {
	ID        string
	ReviewID  string
	Type      FindingType
	Severity  SeverityLevel
	File      string
	Message   string
	Line      int
	CommentID *int64
	CreatedAt time.Time
}

// IsPublished reports whether the finding was already posted as a review comment.
func (f *Finding) IsPublished() bool {
	return f.CommentID != nil
}

// FindingTypeCount is one row of the most-common-types aggregate.
type FindingTypeCount struct {
	Type  FindingType
	Count int64
}
