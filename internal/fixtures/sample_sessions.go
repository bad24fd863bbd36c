package fixtures

import "time"

// ==========================================
// SAMPLE ATTENDANCE
// ==========================================

// SampleSession is one demo shift, scanned IN at In and OUT at Out.
type SampleSession struct {
	In  time.Time
	Out time.Time
}

func mustUTC(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("fixtures: invalid timestamp " + value)
	}
	return t
}

// GetSampleSessions returns the demo shifts appended to a wallet in development
func GetSampleSessions() []SampleSession {
	return []SampleSession{
		{In: mustUTC("2025-10-04T09:15:00Z"), Out: mustUTC("2025-10-04T19:10:00Z")},
		{In: mustUTC("2025-10-08T08:45:00Z"), Out: mustUTC("2025-10-08T12:50:00Z")},
		{In: mustUTC("2025-09-10T08:40:00Z"), Out: mustUTC("2025-09-10T16:30:00Z")},
		{In: mustUTC("2025-09-15T09:10:00Z"), Out: mustUTC("2025-09-15T14:20:00Z")},
		{In: mustUTC("2025-08-20T10:05:00Z"), Out: mustUTC("2025-08-20T18:15:00Z")},
	}
}
