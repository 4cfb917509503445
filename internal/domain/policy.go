package domain

// Loan policy. These are fixed; the library does not configure them.
const (
	LoanPeriodDays = 7
	FineRatePerDay = 50
)

// DueDate returns the last day of the loan period for a book borrowed on borrowed.
func DueDate(borrowed Date) Date {
	return borrowed.AddDays(LoanPeriodDays)
}

// DaysOverdue returns the whole days beyond the loan period as of on. Never negative.
func DaysOverdue(borrowed, on Date) int {
	elapsed := on.DaysSince(borrowed)
	if elapsed > LoanPeriodDays {
		return elapsed - LoanPeriodDays
	}
	return 0
}

// Fine returns the charge for a loan borrowed on borrowed and returned on returned.
func Fine(borrowed, returned Date) int {
	return DaysOverdue(borrowed, returned) * FineRatePerDay
}

// LoanStatus is an informational projection for an open loan.
// The authoritative fine is only computed at return time.
type LoanStatus struct {
	BorrowDate    Date
	DueDate       Date
	DaysLeft      int
	ProjectedFine int
}

// Late reports whether the due date has passed.
func (s LoanStatus) Late() bool {
	return s.DaysLeft < 0
}

// ProjectLoan computes the status of a loan opened on borrowed as seen on today.
func ProjectLoan(borrowed, today Date) LoanStatus {
	due := DueDate(borrowed)
	return LoanStatus{
		BorrowDate:    borrowed,
		DueDate:       due,
		DaysLeft:      due.DaysSince(today),
		ProjectedFine: Fine(borrowed, today),
	}
}
