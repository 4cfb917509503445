package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness runs commands against one pair of store files.
type harness struct {
	t    *testing.T
	base []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "BOOKS_PATH", "RECORDS_PATH", "STRICT_LOAD"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	return &harness{
		t: t,
		base: []string{
			"-log-level", "error",
			"-books-path", filepath.Join(dir, "library_data.json"),
			"-records-path", filepath.Join(dir, "borrow.json"),
			"-env-file", filepath.Join(dir, "missing.env"),
		},
	}
}

func (h *harness) run(stdin string, args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code = run(append(append([]string{}, h.base...), args...), strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run("", args...)
	require.Equal(h.t, 0, code, errOut)
	return out
}

func TestLendingCycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")
	assert.Contains(t, out, `Book added: "Dune"`)
	h.mustRun("add", "-title", "Emma", "-author", "Jane Austen", "-isbn", "222")

	out = h.mustRun("borrow", "-isbn", "111", "-name", "Mona Adel", "-phone", "01012345678", "-user-id", "100200")
	assert.Contains(t, out, "Return by:")

	out = h.mustRun("list")
	assert.Contains(t, out, "borrowed by Mona Adel")
	assert.Contains(t, out, "available")

	out = h.mustRun("list", "austen")
	assert.Contains(t, out, "Emma")
	assert.NotContains(t, out, "Dune")

	out = h.mustRun("stats")
	assert.Contains(t, out, "Borrowed:  1")

	out = h.mustRun("show", "111")
	assert.Contains(t, out, "Member:  Mona Adel (id 100200, phone 01012345678)")
	assert.Contains(t, out, "7 days left")

	out = h.mustRun("loans")
	assert.Contains(t, out, "Mona Adel")

	out = h.mustRun("overdue")
	assert.Contains(t, out, "No overdue loans.")

	out = h.mustRun("return", "-yes", "111")
	assert.Contains(t, out, "on time")

	out = h.mustRun("records", "111")
	assert.Contains(t, out, "100200")
	assert.Contains(t, out, "yes")
}

func TestBorrowSuggestsUserID(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")

	out := h.mustRun("borrow", "-isbn", "111", "-name", "Mona Adel", "-phone", "01012345678")
	assert.Contains(t, out, "Using member id ")
}

func TestBorrowRejectsBadPhone(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")

	code, _, errOut := h.run("", "borrow", "-isbn", "111", "-name", "Mona Adel", "-phone", "0101", "-user-id", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "phone must be exactly 11 characters")

	out := h.mustRun("records")
	assert.Contains(t, out, "No borrow records.")
}

func TestAddRequiresFields(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.run("", "add", "-title", "Dune")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "author is required")
	assert.Contains(t, errOut, "isbn is required")
}

func TestDuplicateAddFails(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")

	code, _, errOut := h.run("", "add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Duplicate ISBN")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")

	code, out, _ := h.run("n\n", "delete", "111")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `Delete "Dune" by Frank Herbert? [y/N]`)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, h.mustRun("list"), "Dune")

	code, out, _ = h.run("yes\n", "delete", "111")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `Book deleted: "Dune"`)
	assert.Contains(t, h.mustRun("list"), "No books found.")
}

func TestDeleteBorrowedBookFails(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")
	h.mustRun("borrow", "-isbn", "111", "-name", "Mona Adel", "-phone", "01012345678", "-user-id", "1")

	code, _, errOut := h.run("", "delete", "-yes", "111")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Cannot delete")
}

func TestReturnOnShelfBookFails(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-title", "Dune", "-author", "Frank Herbert", "-isbn", "111")

	code, _, errOut := h.run("", "return", "111")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Not borrowed")
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"lend"}},
		{"delete without isbn", []string{"delete"}},
		{"stats with args", []string{"stats", "now"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := h.run("", tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, "usage: smartlib")
		})
	}
}

func TestSuggestID(t *testing.T) {
	h := newHarness(t)

	out := strings.TrimSpace(h.mustRun("suggest-id"))
	assert.Len(t, out, 6)
}
