package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

const dayKeyLayout = "2006-01-02"

var sixty = decimal.NewFromInt(60)

type workLogKey struct {
	departmentID string
	date         string
}

// ComputeWorkLogs pairs IN and OUT entries into sessions and sums them per
// department and calendar day of the IN, as seen in loc.
//
// An IN supersedes any pending IN. An OUT closes the pending IN only when it
// belongs to the same department and was not auto-closed; otherwise it is
// ignored. Trailing INs contribute nothing. The input slice is not modified.
// Records are ordered by date, then department.
func ComputeWorkLogs(entries []wallet.ScanEntry, hourlyRate decimal.Decimal, loc *time.Location) []wallet.WorkLogRecord {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]wallet.ScanEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	totals := make(map[workLogKey]int64)
	var keys []workLogKey
	var lastIn *wallet.ScanEntry

	for i := range sorted {
		e := sorted[i]
		switch e.ScanType {
		case wallet.ScanTypeIn:
			lastIn = &sorted[i]
		case wallet.ScanTypeOut:
			if lastIn == nil || e.AutoClosed || lastIn.DepartmentID != e.DepartmentID {
				continue
			}
			key := workLogKey{
				departmentID: lastIn.DepartmentID,
				date:         lastIn.Timestamp.In(loc).Format(dayKeyLayout),
			}
			if _, seen := totals[key]; !seen {
				keys = append(keys, key)
			}
			totals[key] += sessionMinutes(lastIn.Timestamp, e.Timestamp)
			lastIn = nil
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].departmentID < keys[j].departmentID
	})

	records := make([]wallet.WorkLogRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, newWorkLogRecord(key, totals[key], hourlyRate))
	}
	return records
}

// sessionMinutes rounds the session length to the nearest minute, halves up.
func sessionMinutes(in, out time.Time) int64 {
	ms := decimal.NewFromInt(out.Sub(in).Milliseconds())
	return ms.Div(decimal.NewFromInt(60000)).Round(0).IntPart()
}

func newWorkLogRecord(key workLogKey, totalMinutes int64, hourlyRate decimal.Decimal) wallet.WorkLogRecord {
	totalHours := decimal.NewFromInt(totalMinutes).Div(sixty).Round(2)
	salary := totalHours.Mul(hourlyRate).Round(2)

	return wallet.WorkLogRecord{
		Date:         key.date,
		DepartmentID: key.departmentID,
		TotalMinutes: totalMinutes,
		Hours:        totalMinutes / 60,
		Minutes:      totalMinutes % 60,
		TotalHours:   totalHours.InexactFloat64(),
		SalaryEarned: salary.InexactFloat64(),
	}
}
