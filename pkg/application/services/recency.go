package services

import "time"

// moreRecent orders records by transfer time descending. Records without a
// timestamp sort last; ties fall back to the identifier, descending.
func moreRecent(aTime *time.Time, aID string, bTime *time.Time, bID string) bool {
	switch {
	case aTime != nil && bTime != nil:
		if !aTime.Equal(*bTime) {
			return aTime.After(*bTime)
		}
	case aTime != nil:
		return true
	case bTime != nil:
		return false
	}
	return aID > bID
}
