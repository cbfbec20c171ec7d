package liquidator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/autosell/internal/api"
	"github.com/rickgao/autosell/internal/executor"
	"github.com/rickgao/autosell/internal/route"
)

// Status is the outcome of one coin's pipeline.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusPlanned   Status = "planned" // dry run
)

// Error kinds reported per coin.
const (
	KindNoRoute         = "no_route"
	KindOrderSubmission = "order_submission"
	KindFillTimeout     = "fill_timeout"
	KindPartialFill     = "partial_fill"
	KindAbandoned       = "abandoned"
	KindAuth            = "auth"
	KindTransport       = "transport"
	KindCanceled        = "canceled"
	KindUnknown         = "unknown"
)

// LegResult records one executed or estimated leg.
type LegResult struct {
	Market      string          `json:"market"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	OrderID     string          `json:"order_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Filled      decimal.Decimal `json:"filled"`
	Proceeds    decimal.Decimal `json:"proceeds"`
	Commission  decimal.Decimal `json:"commission"`
	Submissions int             `json:"submissions,omitempty"`
	Polls       int             `json:"polls,omitempty"`
	Estimated   bool            `json:"estimated,omitempty"`
}

// CoinResult records what happened to one balance.
type CoinResult struct {
	Currency  string          `json:"currency"`
	Quantity  decimal.Decimal `json:"quantity"`
	Route     string          `json:"route"`
	Status    Status          `json:"status"`
	Legs      []LegResult     `json:"legs,omitempty"`
	Received  decimal.Decimal `json:"received"`
	ErrorKind string          `json:"error_kind,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (r CoinResult) fail(err error) CoinResult {
	r.Status = StatusFailed
	r.ErrorKind = ErrorKind(err)
	r.Error = err.Error()
	return r
}

// Report summarises a run.
type Report struct {
	RunID      uuid.UUID    `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Target     string       `json:"target"`
	DryRun     bool         `json:"dry_run"`
	Relevant   int          `json:"relevant_markets"`
	Results    []CoinResult `json:"results"`
}

// Succeeded returns the number of coins that reached the target, including
// dry-run plans.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status != StatusFailed {
			n++
		}
	}
	return n
}

// Failed returns the number of coins that did not reach the target.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Total returns the amount of target currency received (or estimated).
func (r *Report) Total() decimal.Decimal {
	total := decimal.Zero
	for _, res := range r.Results {
		total = total.Add(res.Received)
	}
	return total
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a human-readable table.
func (r *Report) WriteText(w io.Writer) error {
	mode := "live"
	if r.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(w, "run %s (%s) target %s\n", r.RunID, mode, r.Target)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COIN\tQUANTITY\tROUTE\tSTATUS\tRECEIVED\tERROR")
	for _, res := range r.Results {
		errText := ""
		if res.ErrorKind != "" {
			errText = res.ErrorKind + ": " + res.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			res.Currency, res.Quantity, res.Route, res.Status, res.Received, errText)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d succeeded, %d failed, %s %s received in %s\n",
		r.Succeeded(), r.Failed(), r.Total(), r.Target, r.Duration().Round(time.Millisecond))
	return err
}

// ErrorKind classifies err for the report. Order matters: an abandoned order
// also wraps the cancellation that caused it.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		noRoute    *route.NoRouteError
		abandoned  *executor.AbandonedOrderError
		partial    *executor.PartialFillError
		timeout    *executor.FillTimeoutError
		submission *executor.OrderSubmissionError
		authErr    *api.AuthError
		transport  *api.TransportError
	)

	switch {
	case errors.As(err, &noRoute):
		return KindNoRoute
	case errors.As(err, &abandoned):
		return KindAbandoned
	case errors.As(err, &partial):
		return KindPartialFill
	case errors.As(err, &timeout):
		return KindFillTimeout
	case errors.As(err, &submission):
		return KindOrderSubmission
	case errors.As(err, &authErr):
		return KindAuth
	case errors.As(err, &transport):
		return KindTransport
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
