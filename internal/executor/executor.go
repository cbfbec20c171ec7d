package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/autosell/internal/model"
)

// QuantityPrecision is the number of decimal places the exchange accepts.
const QuantityPrecision = 8

// OrderAPI is the subset of the exchange client used to trade.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.OrderStatus, error)
	GetOrder(ctx context.Context, id string) (*model.OrderStatus, error)
}

// RetryPolicy bounds fill confirmation.
type RetryPolicy struct {
	MaxAttempts    int           // Status polls per leg, across resubmissions
	Delay          time.Duration // Wait before the first poll
	MaxDelay       time.Duration // Upper bound on the wait
	Multiplier     float64       // Growth of the wait after each poll
	ResolveTimeout time.Duration // Final lookup budget after cancellation
}

// DefaultRetryPolicy returns sensible defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    10,
		Delay:          500 * time.Millisecond,
		MaxDelay:       10 * time.Second,
		Multiplier:     2,
		ResolveTimeout: 15 * time.Second,
	}
}

// next returns the wait after d, capped at MaxDelay.
func (p RetryPolicy) next(d time.Duration) time.Duration {
	if d >= p.MaxDelay {
		return p.MaxDelay
	}
	if p.Multiplier > 1 {
		grown := float64(d) * p.Multiplier
		if grown >= float64(p.MaxDelay) {
			return p.MaxDelay
		}
		d = time.Duration(grown)
	}
	return d
}

// State is a step in a leg's order lifecycle.
type State int

const (
	StateSubmitting State = iota
	StateSubmitted
	StateConfirmedFilled
	StateRetry
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "SUBMITTING"
	case StateSubmitted:
		return "SUBMITTED"
	case StateConfirmedFilled:
		return "CONFIRMED_FILLED"
	case StateRetry:
		return "RETRY"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FillOutcome describes a confirmed leg.
type FillOutcome struct {
	Leg         model.Leg
	OrderID     string
	Quantity    decimal.Decimal // Submitted quantity after truncation
	Filled      decimal.Decimal
	Proceeds    decimal.Decimal
	Commission  decimal.Decimal
	Submissions int
	Polls       int
}

// NetProceeds returns what the leg delivered in its To currency.
func (o *FillOutcome) NetProceeds() decimal.Decimal {
	return model.OrderStatus{Proceeds: o.Proceeds, Commission: o.Commission}.NetProceeds()
}

// Executor places and confirms orders.
type Executor struct {
	api    OrderAPI
	policy RetryPolicy
	logger *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
	newID func() uuid.UUID
}

// New creates an Executor. A MaxAttempts below one is raised to one. A
// missing MaxDelay or ResolveTimeout takes the default.
func New(api OrderAPI, policy RetryPolicy, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = max(policy.Delay, DefaultRetryPolicy().MaxDelay)
	}
	if policy.ResolveTimeout <= 0 {
		policy.ResolveTimeout = DefaultRetryPolicy().ResolveTimeout
	}
	return &Executor{
		api:    api,
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
		newID:  uuid.New,
	}
}

// ExecuteRoute runs the legs in order. Each leg after the first sells the
// previous leg's net proceeds. Outcomes of completed legs are returned even
// when a later leg fails.
func (e *Executor) ExecuteRoute(ctx context.Context, route model.Route, quantity decimal.Decimal) ([]*FillOutcome, error) {
	outcomes := make([]*FillOutcome, 0, len(route.Legs))
	qty := quantity

	for i, leg := range route.Legs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		out, err := e.ExecuteLeg(ctx, leg, qty)
		if err != nil {
			return outcomes, fmt.Errorf("leg %d/%d: %w", i+1, len(route.Legs), err)
		}

		outcomes = append(outcomes, out)
		qty = out.NetProceeds()
	}

	return outcomes, nil
}

// ExecuteLeg sells quantity on the leg's market and waits for a full fill.
func (e *Executor) ExecuteLeg(ctx context.Context, leg model.Leg, quantity decimal.Decimal) (*FillOutcome, error) {
	qty := quantity.Truncate(QuantityPrecision)
	logger := e.logger.With("leg", leg.String(), "quantity", qty.String())

	if !qty.IsPositive() {
		return nil, &OrderSubmissionError{Leg: leg, Quantity: qty, Err: errors.New("quantity must be positive")}
	}
	if minSize := leg.Market.MinTradeSize; minSize.IsPositive() && qty.LessThan(minSize) {
		return nil, &OrderSubmissionError{
			Leg:      leg,
			Quantity: qty,
			Err:      fmt.Errorf("below minimum trade size %s", minSize),
		}
	}

	out := &FillOutcome{Leg: leg, Quantity: qty}

	orderID, err := e.submit(ctx, logger, leg, qty)
	if err != nil {
		return nil, err
	}
	out.OrderID = orderID
	out.Submissions++

	delay := e.policy.Delay
	for out.Polls < e.policy.MaxAttempts {
		if err := e.sleep(ctx, delay); err != nil {
			return e.resolve(ctx, logger, out, err)
		}
		delay = e.policy.next(delay)

		out.Polls++
		status, err := e.api.GetOrder(ctx, out.OrderID)
		if err != nil {
			if ctx.Err() != nil {
				return e.resolve(ctx, logger, out, ctx.Err())
			}
			logger.Warn("order status lookup failed",
				"order_id", out.OrderID,
				"poll", out.Polls,
				"err", err,
			)
			continue
		}

		if !status.IsClosed() {
			logger.Debug("order still open", "order_id", out.OrderID, "poll", out.Polls)
			continue
		}

		switch {
		case status.FillQuantity.IsZero():
			if out.Polls >= e.policy.MaxAttempts {
				break
			}
			logger.Info("order killed without fill, resubmitting",
				"state", StateRetry,
				"order_id", out.OrderID,
				"poll", out.Polls,
			)
			orderID, err := e.submit(ctx, logger, leg, qty)
			if err != nil {
				return nil, err
			}
			out.OrderID = orderID
			out.Submissions++

		case status.FillQuantity.GreaterThanOrEqual(qty):
			e.confirm(logger, out, status)
			return out, nil

		default:
			logger.Warn("order partially filled",
				"state", StateFailed,
				"order_id", out.OrderID,
				"filled", status.FillQuantity.String(),
			)
			return nil, &PartialFillError{
				Leg:       leg,
				OrderID:   out.OrderID,
				Requested: qty,
				Filled:    status.FillQuantity,
			}
		}
	}

	logger.Warn("fill not confirmed",
		"state", StateFailed,
		"order_id", out.OrderID,
		"polls", out.Polls,
	)
	return nil, &FillTimeoutError{Leg: leg, OrderID: out.OrderID, Attempts: out.Polls}
}

// submit places one fill-or-kill market SELL and returns the exchange id.
func (e *Executor) submit(ctx context.Context, logger *slog.Logger, leg model.Leg, qty decimal.Decimal) (string, error) {
	req := model.OrderRequest{
		MarketSymbol:  leg.Market.Symbol(),
		Direction:     leg.Direction,
		Type:          model.OrderTypeMarket,
		TimeInForce:   model.TimeInForceFillOrKill,
		Quantity:      qty,
		ClientOrderID: e.newID(),
	}

	logger.Debug("submitting order",
		"state", StateSubmitting,
		"symbol", req.MarketSymbol,
		"client_order_id", req.ClientOrderID.String(),
	)

	status, err := e.api.CreateOrder(ctx, req)
	if err != nil && ctx.Err() != nil {
		// The request may have reached the exchange before the run ended.
		logger.Error("order abandoned during submission",
			"client_order_id", req.ClientOrderID.String(),
			"err", err,
		)
		return "", &AbandonedOrderError{
			Leg:           leg,
			ClientOrderID: req.ClientOrderID.String(),
			Err:           ctx.Err(),
		}
	}
	if err != nil {
		logger.Warn("order submission failed", "state", StateFailed, "err", err)
		return "", &OrderSubmissionError{Leg: leg, Quantity: qty, Err: err}
	}
	if status == nil || status.ID == "" {
		logger.Warn("order submission returned no id", "state", StateFailed)
		return "", &OrderSubmissionError{Leg: leg, Quantity: qty, Err: errors.New("response has no order id")}
	}

	logger.Info("order submitted", "state", StateSubmitted, "order_id", status.ID)

	return status.ID, nil
}

func (e *Executor) confirm(logger *slog.Logger, out *FillOutcome, status *model.OrderStatus) {
	out.Filled = status.FillQuantity
	out.Proceeds = status.Proceeds
	out.Commission = status.Commission

	logger.Info("order filled",
		"state", StateConfirmedFilled,
		"order_id", out.OrderID,
		"proceeds", out.Proceeds.String(),
		"commission", out.Commission.String(),
		"polls", out.Polls,
	)
}

// resolve makes one last status lookup for an outstanding order after the
// run context ended. The lookup runs detached, bounded by ResolveTimeout.
func (e *Executor) resolve(ctx context.Context, logger *slog.Logger, out *FillOutcome, cause error) (*FillOutcome, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.policy.ResolveTimeout)
	defer cancel()

	status, err := e.api.GetOrder(rctx, out.OrderID)
	if err != nil {
		logger.Error("order abandoned", "order_id", out.OrderID, "err", err)
		return nil, &AbandonedOrderError{Leg: out.Leg, OrderID: out.OrderID, Err: cause}
	}

	switch {
	case !status.IsClosed():
		logger.Error("order abandoned while open", "order_id", out.OrderID)
		return nil, &AbandonedOrderError{Leg: out.Leg, OrderID: out.OrderID, Err: cause}
	case status.FillQuantity.IsZero():
		return nil, cause
	case status.FillQuantity.GreaterThanOrEqual(out.Quantity):
		e.confirm(logger, out, status)
		return out, nil
	default:
		return nil, &PartialFillError{
			Leg:       out.Leg,
			OrderID:   out.OrderID,
			Requested: out.Quantity,
			Filled:    status.FillQuantity,
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
