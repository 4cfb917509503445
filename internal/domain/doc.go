// Package domain contains the lending entities (Book, BorrowRecord), the
// calendar Date they share, and the fixed loan and fine policy.
package domain
