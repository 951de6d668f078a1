package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTicker = errors.New("ticker symbol is empty")
	ErrInvalidDate = errors.New("date must be dd/mm/yyyy")
)

// dateLayout accepts one- or two-digit day and month.
const dateLayout = "2/1/2006"

// Request is one export invocation: a ticker and the start date typed by the user.
type Request struct {
	Ticker    string
	DateLabel string // date as entered, used for the output directory name
	Start     time.Time
}

// NewRequest upper-cases the ticker and parses a dd/mm/yyyy date into a UTC midnight start.
func NewRequest(ticker, date string) (Request, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Request{}, ErrEmptyTicker
	}
	date = strings.TrimSpace(date)
	start, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return Request{Ticker: ticker, DateLabel: date, Start: start}, nil
}

// ISODate returns the start date as YYYY-MM-DD.
func (r Request) ISODate() string {
	return r.Start.Format("2006-01-02")
}
