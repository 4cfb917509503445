package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/smartlib/smartlib/internal/di"
	"github.com/smartlib/smartlib/internal/domain"
	"github.com/smartlib/smartlib/internal/service"
)

// cli holds what every command needs.
type cli struct {
	app    *di.App
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// usageError marks a failure caused by bad command-line input.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

type command struct {
	summary string
	usage   string
	run     func(c *cli, args []string) error
}

var commands = map[string]command{
	"list":       {"list books, optionally filtered by title, author or ISBN", "list [term]", runList},
	"show":       {"show one book and its open loan", "show <isbn>", runShow},
	"add":        {"add a book", "add -title T -author A -isbn I", runAdd},
	"delete":     {"delete an available book", "delete [-yes] <isbn>", runDelete},
	"borrow":     {"lend a book to a member", "borrow -isbn I -name N -phone P [-user-id U]", runBorrow},
	"return":     {"return a borrowed book and charge any fine", "return [-yes] <isbn>", runReturn},
	"records":    {"show the borrow log, optionally for one ISBN", "records [isbn]", runRecords},
	"loans":      {"show open loans with due dates and projected fines", "loans", runLoans},
	"overdue":    {"show loans past their due date", "overdue", runOverdue},
	"stats":      {"count books by availability", "stats", runStats},
	"suggest-id": {"propose an unused member id", "suggest-id", runSuggestID},
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

// report prints an operation's message, or returns its error.
func (c *cli) report(result fmt.Stringer, err error) error {
	ok, msg := service.Outcome(result, err)
	if !ok {
		return errors.New(msg)
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

// confirm asks a yes/no question on the input stream. Anything but y or yes is a no.
func (c *cli) confirm(question string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	answer, _ := c.in.ReadString('\n') //nolint:errcheck // EOF reads as "no"
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func singleISBN(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usageError{"expected exactly one ISBN"}
	}
	return args[0], nil
}

func runList(c *cli, args []string) error {
	books := c.app.Library.Search(strings.Join(args, " "))
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books found.")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ISBN\tTITLE\tAUTHOR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ISBN, b.Title, b.Author, bookStatus(b))
	}
	return tw.Flush()
}

func bookStatus(b *domain.Book) string {
	if b.IsAvailable {
		return "available"
	}
	if b.BorrowDate == nil {
		return "borrowed by " + b.Borrower()
	}
	return fmt.Sprintf("borrowed by %s, due %s", b.Borrower(), domain.DueDate(*b.BorrowDate))
}

func runShow(c *cli, args []string) error {
	isbn, err := singleISBN(args)
	if err != nil {
		return err
	}

	book, err := c.app.Library.FindBook(isbn)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Title:   %s\nAuthor:  %s\nISBN:    %s\nStatus:  %s\n", book.Title, book.Author, book.ISBN, bookStatus(book))

	if book.IsAvailable {
		return nil
	}

	if record, err := c.app.Library.ActiveRecord(isbn); err == nil {
		fmt.Fprintf(c.out, "Member:  %s (id %s, phone %s)\n", record.Name, record.UserID, record.Phone)
	}
	if status, err := c.app.Library.LoanStatus(isbn); err == nil {
		fmt.Fprintln(c.out, loanSummary(status))
	}
	return nil
}

func loanSummary(s domain.LoanStatus) string {
	if s.Late() {
		return fmt.Sprintf("Overdue: %d days late, fine so far %d", -s.DaysLeft, s.ProjectedFine)
	}
	return fmt.Sprintf("Due:     %s (%d days left)", s.DueDate, s.DaysLeft)
}

func runAdd(c *cli, args []string) error {
	fs := c.flagSet("add")
	var req service.AddBookRequest
	fs.StringVar(&req.Title, "title", "", "book title")
	fs.StringVar(&req.Author, "author", "", "book author")
	fs.StringVar(&req.ISBN, "isbn", "", "book ISBN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ISBN = strings.TrimSpace(req.ISBN)

	if err := c.app.Validator.Validate(req); err != nil {
		return err
	}

	return c.report(c.app.Library.AddBook(req.Title, req.Author, req.ISBN))
}

func runDelete(c *cli, args []string) error {
	fs := c.flagSet("delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isbn, err := singleISBN(fs.Args())
	if err != nil {
		return err
	}

	book, err := c.app.Library.FindBook(isbn)
	if err != nil {
		return err
	}
	if !*yes && !c.confirm(fmt.Sprintf("Delete %q by %s?", book.Title, book.Author)) {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}

	return c.report(c.app.Library.DeleteBook(isbn))
}

func runBorrow(c *cli, args []string) error {
	fs := c.flagSet("borrow")
	var req service.BorrowRequest
	fs.StringVar(&req.ISBN, "isbn", "", "ISBN of the book to lend")
	fs.StringVar(&req.UserID, "user-id", "", "member id (suggested when empty)")
	fs.StringVar(&req.Name, "name", "", "member name")
	fs.StringVar(&req.Phone, "phone", "", "member phone, 11 digits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.UserID == "" {
		suggested, err := c.app.Library.SuggestUserID()
		if err != nil {
			return err
		}
		req.UserID = suggested
		fmt.Fprintf(c.out, "Using member id %s\n", suggested)
	}

	if err := c.app.Validator.Validate(req); err != nil {
		return err
	}

	return c.report(c.app.Library.BorrowBook(req.ISBN, req.UserID, req.Name, req.Phone))
}

func runReturn(c *cli, args []string) error {
	fs := c.flagSet("return")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isbn, err := singleISBN(fs.Args())
	if err != nil {
		return err
	}

	book, err := c.app.Library.FindBook(isbn)
	if err != nil {
		return err
	}

	if !book.IsAvailable && !*yes {
		question := fmt.Sprintf("Return %q from %s?", book.Title, book.Borrower())
		if status, err := c.app.Library.LoanStatus(isbn); err == nil && status.Late() {
			question = fmt.Sprintf("Return %q from %s? A fine of %d applies.", book.Title, book.Borrower(), status.ProjectedFine)
		}
		if !c.confirm(question) {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}

	result, err := c.app.Library.ReturnBook(isbn)
	if err != nil {
		return err
	}
	if result.Late() {
		fmt.Fprintf(c.out, "WARNING: %s\n", result.Message)
		return nil
	}
	fmt.Fprintln(c.out, result.Message)
	return nil
}

func runRecords(c *cli, args []string) error {
	var records []domain.BorrowRecord
	switch len(args) {
	case 0:
		records = c.app.Library.BorrowRecords()
	case 1:
		records = c.app.Library.History(args[0])
	default:
		return usageError{"expected at most one ISBN"}
	}

	if len(records) == 0 {
		fmt.Fprintln(c.out, "No borrow records.")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ISBN\tUSER\tNAME\tPHONE\tBORROWED\tRETURNED\tFINE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.ISBN, r.UserID, r.Name, r.Phone, r.BorrowDate, yesNo(r.Returned), r.Fine)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runLoans(c *cli, args []string) error {
	if len(args) != 0 {
		return usageError{"takes no arguments"}
	}
	return printLoans(c, c.app.Library.Loans(), "No open loans.")
}

func runOverdue(c *cli, args []string) error {
	if len(args) != 0 {
		return usageError{"takes no arguments"}
	}
	return printLoans(c, c.app.Library.Overdue(), "No overdue loans.")
}

func printLoans(c *cli, loans []service.Loan, empty string) error {
	if len(loans) == 0 {
		fmt.Fprintln(c.out, empty)
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ISBN\tTITLE\tBORROWER\tBORROWED\tDUE\tDAYS LEFT\tFINE")
	for _, l := range loans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			l.Book.ISBN, l.Book.Title, l.Book.Borrower(),
			l.Status.BorrowDate, l.Status.DueDate, strconv.Itoa(l.Status.DaysLeft), l.Status.ProjectedFine)
	}
	return tw.Flush()
}

func runStats(c *cli, args []string) error {
	if len(args) != 0 {
		return usageError{"takes no arguments"}
	}
	st := c.app.Library.Stats()
	fmt.Fprintf(c.out, "Total:     %d\nAvailable: %d\nBorrowed:  %d\n", st.Total, st.Available, st.Borrowed)
	return nil
}

func runSuggestID(c *cli, args []string) error {
	if len(args) != 0 {
		return usageError{"takes no arguments"}
	}
	suggested, err := c.app.Library.SuggestUserID()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, suggested)
	return nil
}
