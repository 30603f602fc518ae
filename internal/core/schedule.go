package core

// NextPaymentDate projects the next occurrence of a recurring bill.
//
// The candidate starts at startDate and advances one billing cycle at a time
// until it is strictly after today. Monthly, quarterly and yearly advances
// re-anchor the day of month to min(dueDay, days in month) when dueDay is in
// [1,28]; due days above 28 are rejected at validation, never here. If an
// end date is set and an advance steps past it the schedule has lapsed and
// the result is nil. A start date already in the future is returned as-is:
// it is the first occurrence.
//
// The projection always restarts from startDate rather than stepping from
// the last payment, so edits to the cycle or due day take effect
// retroactively. Cost is O(cycles elapsed), bounded by calendar time.
//
// An unrecognized cycle advances monthly. That mirrors long-standing
// behavior and may mask bad data; see DESIGN.md before changing it.
func NextPaymentDate(startDate Date, cycle BillingCycle, dueDay int, endDate *Date, today Date) *Date {
	if startDate.IsZero() {
		return nil
	}

	next := startDate
	for !next.After(today.Time) {
		switch cycle {
		case Daily:
			next = next.AddDays(1)
		case Weekly:
			next = next.AddDays(7)
		case Monthly:
			next = next.AddMonths(1)
			next = anchorDueDay(next, dueDay)
		case Quarterly:
			next = next.AddMonths(3)
			next = anchorDueDay(next, dueDay)
		case Yearly:
			next = next.AddMonths(12)
			next = anchorDueDay(next, dueDay)
		default:
			next = next.AddMonths(1)
		}

		if endDate != nil && next.After(endDate.Time) {
			return nil
		}
	}

	return &next
}

func anchorDueDay(d Date, dueDay int) Date {
	if dueDay < 1 || dueDay > 28 {
		return d
	}
	return d.WithDay(dueDay)
}
