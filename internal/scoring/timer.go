package scoring

import "time"

const (
	twoSubmissionWindow   = 30 * 24 * time.Hour
	threeSubmissionWindow = 21 * 24 * time.Hour
	fourSubmissionWindow  = 14 * 24 * time.Hour
)

// TimerAdjustment maps a submission count to the deadline window the
// challenge should be under. Below two submissions there is no timer; from
// two on, every additional submission tightens the window:
//
//	2 submissions -> 30 days
//	3 submissions -> 21 days
//	4+ submissions -> 14 days
//
// ok is false when the count prescribes no timer.
func TimerAdjustment(submissionCount int) (d time.Duration, ok bool) {
	switch {
	case submissionCount < 2:
		return 0, false
	case submissionCount == 2:
		return twoSubmissionWindow, true
	case submissionCount == 3:
		return threeSubmissionWindow, true
	default:
		return fourSubmissionWindow, true
	}
}

// NextDeadline applies the timer policy for the given submission count at
// time now against the current deadline (nil when no timer is running).
// It returns the deadline the challenge should carry and whether that is a
// change. A deadline is only ever started or moved earlier, never extended,
// so reapplying with the same inputs is a no-op.
func NextDeadline(current *time.Time, now time.Time, submissionCount int) (time.Time, bool) {
	window, ok := TimerAdjustment(submissionCount)
	if !ok {
		if current != nil {
			return *current, false
		}
		return time.Time{}, false
	}

	candidate := now.Add(window)
	if current == nil {
		return candidate, true
	}
	if candidate.Before(*current) {
		return candidate, true
	}
	return *current, false
}
