// Package id generates the integer-like member ids suggested at borrow time.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// UserIDLength is the number of digits in a generated user id.
	UserIDLength = 6

	leadingDigits = "123456789"
	digits        = "0123456789"

	maxAttempts = 32
)

// GenerateUserID creates a random UserIDLength-digit id with no leading zero,
// so it reads (and parses) as a plain integer.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func GenerateUserID() (string, error) {
	head, err := gonanoid.Generate(leadingDigits, 1)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	tail, err := gonanoid.Generate(digits, UserIDLength-1)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return head + tail, nil
}

// SuggestUserID generates user ids until one is not taken.
func SuggestUserID(taken func(string) bool) (string, error) {
	for range maxAttempts {
		candidate, err := GenerateUserID()
		if err != nil {
			return "", err
		}
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free user id after %d attempts", maxAttempts)
}
