package domain

import "time"

// PrintJob is an immutable snapshot of the draft handed to a printer
type PrintJob struct {
	ID        string
	Draft     Draft
	Totals    Totals
	Language  Language
	CreatedAt time.Time
}
