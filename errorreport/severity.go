package errorreport

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

var severityRank = map[Severity]int{
	SeverityInfo:    0,
	SeverityWarning: 1,
	SeverityError:   2,
}

func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Less reports whether s ranks below other.
func (s Severity) Less(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// ParseSeverity maps a configured level to a Severity, defaulting to error.
func ParseSeverity(level string) Severity {
	s := Severity(level)
	if level == "warn" {
		s = SeverityWarning
	}
	if !s.Valid() {
		return SeverityError
	}
	return s
}
