package route

import (
	"fmt"
	"strings"

	"github.com/rickgao/autosell/internal/model"
)

// DefaultBridge is the intermediate currency used when no direct market exists.
const DefaultBridge = "BTC"

// Catalog resolves markets by base and quote currency.
type Catalog interface {
	Lookup(base, quote string) (model.Market, bool)
}

// NoRouteError means neither a direct nor a bridged route exists.
type NoRouteError struct {
	Source  string
	Target  string
	Missing []string // Catalog names of the markets that were absent or inactive
}

func (e *NoRouteError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("no route from %s to %s", e.Source, e.Target)
	}
	return fmt.Sprintf("no route from %s to %s: missing market %s",
		e.Source, e.Target, strings.Join(e.Missing, ", "))
}

// Planner builds routes over a fixed catalog.
type Planner struct {
	catalog Catalog
	bridge  string
}

// NewPlanner creates a Planner. An empty bridge uses DefaultBridge.
func NewPlanner(catalog Catalog, bridge string) *Planner {
	if bridge == "" {
		bridge = DefaultBridge
	}
	return &Planner{catalog: catalog, bridge: bridge}
}

// Plan returns the route that turns source into target.
func (p *Planner) Plan(source, target string) (model.Route, error) {
	r := model.Route{Source: source, Target: target}

	if source == target {
		return r, nil
	}

	if leg, ok := p.sellLeg(source, target); ok {
		r.Legs = []model.Leg{leg}
		return r, nil
	}

	if source == p.bridge || target == p.bridge {
		return model.Route{}, &NoRouteError{
			Source:  source,
			Target:  target,
			Missing: []string{model.MarketName(source, target)},
		}
	}

	first, ok1 := p.sellLeg(source, p.bridge)
	second, ok2 := p.sellLeg(p.bridge, target)
	if !ok1 || !ok2 {
		var missing []string
		if !ok1 {
			missing = append(missing, model.MarketName(source, p.bridge))
		}
		if !ok2 {
			missing = append(missing, model.MarketName(p.bridge, target))
		}
		return model.Route{}, &NoRouteError{Source: source, Target: target, Missing: missing}
	}

	r.Legs = []model.Leg{first, second}
	return r, nil
}

// sellLeg returns a SELL leg over the active market pricing from in to.
func (p *Planner) sellLeg(from, to string) (model.Leg, bool) {
	m, ok := p.catalog.Lookup(from, to)
	if !ok || !m.Active {
		return model.Leg{}, false
	}
	return model.Leg{
		Market:    m,
		From:      from,
		To:        to,
		Direction: model.DirectionSell,
	}, true
}
