package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// MaxInstallments bounds the size of an installment series.
const MaxInstallments = 120

type (
	TransactionType string

	// Date is a calendar date pinned to midday UTC so that deriving
	// month/year never shifts across a timezone boundary.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// InstallmentInfo records the position of a transaction inside the
	// series it was generated from. Informational only; aggregation
	// never looks at it.
	InstallmentInfo struct {
		Current int
		Total   int
	}

	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
		Date        Date
		Type        TransactionType
		CardID      string           // weak reference to a CreditCard, empty when not card-linked
		Installment *InstallmentInfo // nil for single transactions
	}

	CreditCard struct {
		ID         string
		Name       string
		LastDigits string
		Limit      Money
		ClosingDay int
		DueDay     int
		Color      string
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidInstallment = errors.New("invalid installment count")
	ErrCardNotExpense     = errors.New("card transactions must be expenses")
	ErrEmptyCardName      = errors.New("empty card name")
	ErrCardNameTooLong    = errors.New("card name too long (max 40 characters)")
	ErrInvalidCardDigits  = errors.New("card digits must be exactly 4 numbers")
	ErrInvalidCardLimit   = errors.New("card limit must be positive")
	ErrInvalidCardDay     = errors.New("card closing/due day must be between 1 and 28")

	ErrNotFound = errors.New("not found")
)

// validationErrs is the closed set IsValidation classifies against.
var validationErrs = []error{
	ErrInvalidAmount,
	ErrEmptyDescription,
	ErrDescriptionTooLong,
	ErrInvalidCategory,
	ErrInvalidType,
	ErrInvalidDate,
	ErrInvalidInstallment,
	ErrCardNotExpense,
	ErrEmptyCardName,
	ErrCardNameTooLong,
	ErrInvalidCardDigits,
	ErrInvalidCardLimit,
	ErrInvalidCardDay,
}

// IsValidation reports whether err is an input validation failure, as
// opposed to a missing record or a persistence fault.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// NewDate creates a Date from year, month, day at midday UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// AddMonths advances the date by n calendar months, clamping the day to
// the length of the target month: Jan 31 + 1 month is Feb 28 (29 in a
// leap year), never a rolled-over March date.
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(n), 1, 12, 0, 0, 0, time.UTC)
	last := daysIn(first.Year(), int(first.Month()))
	if day > last {
		day = last
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

// YearMonth identifies the viewing cursor: a month of a year, no day.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// YearMonthOf returns the year/month of t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// Shift moves the cursor by step calendar months, rolling the year as
// needed. Negative steps move backward; any integer is legal.
func (ym YearMonth) Shift(step int) YearMonth {
	t := time.Date(ym.Year, time.Month(ym.Month+step), 1, 12, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// Contains reports whether d falls inside the cursor's month.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year() == ym.Year && d.Month() == ym.Month
}

func daysIn(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.CardID != "" {
		if t.Type != Expense {
			return ErrCardNotExpense
		}
		if t.Category != CategoryCard {
			return fmt.Errorf("%w: card transactions use category %q", ErrInvalidCategory, CategoryCard)
		}
	}
	if t.Installment != nil {
		if t.Installment.Total < 2 || t.Installment.Current < 1 || t.Installment.Current > t.Installment.Total {
			return ErrInvalidInstallment
		}
	}
	return nil
}

func (c CreditCard) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyCardName
	}
	if len(c.Name) > 40 {
		return ErrCardNameTooLong
	}
	if len(c.LastDigits) != 4 {
		return ErrInvalidCardDigits
	}
	for _, r := range c.LastDigits {
		if r < '0' || r > '9' {
			return ErrInvalidCardDigits
		}
	}
	if c.Limit.Cents <= 0 {
		return ErrInvalidCardLimit
	}
	if c.ClosingDay < 1 || c.ClosingDay > 28 {
		return ErrInvalidCardDay
	}
	if c.DueDay < 1 || c.DueDay > 28 {
		return ErrInvalidCardDay
	}
	return nil
}
