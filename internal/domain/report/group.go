package report

import "github.com/shopspring/decimal"

// GroupKey is the comparable grouping tuple. Dimensions that are not part of
// the grouping stay empty, so the same record always yields the same key.
type GroupKey struct {
	Distributor string
	SalesRep    string
	Agency      string
	Product     string
}

// AgencyKey drops the product component, giving the key of the owning agency group.
func (k GroupKey) AgencyKey() GroupKey {
	k.Product = ""
	return k
}

// AggregateGroup holds the monthly series and rollups of one group.
// It is only mutated by the aggregator; afterwards it is read-only.
type AggregateGroup struct {
	Key GroupKey

	monthlyAmounts    map[MonthKey]decimal.Decimal
	monthlyQuantities map[MonthKey]decimal.Decimal
	totalAmount       decimal.Decimal
	totalQuantity     decimal.Decimal
}

func newAggregateGroup(key GroupKey) *AggregateGroup {
	return &AggregateGroup{
		Key:               key,
		monthlyAmounts:    make(map[MonthKey]decimal.Decimal),
		monthlyQuantities: make(map[MonthKey]decimal.Decimal),
	}
}

func (g *AggregateGroup) add(mk MonthKey, amount, quantity decimal.Decimal) {
	g.monthlyAmounts[mk] = g.monthlyAmounts[mk].Add(amount)
	g.monthlyQuantities[mk] = g.monthlyQuantities[mk].Add(quantity)
}

// zeroFill makes sure every axis month has an explicit entry.
func (g *AggregateGroup) zeroFill(axis []MonthKey) {
	for _, mk := range axis {
		if _, ok := g.monthlyAmounts[mk]; !ok {
			g.monthlyAmounts[mk] = decimal.Zero
		}
		if _, ok := g.monthlyQuantities[mk]; !ok {
			g.monthlyQuantities[mk] = decimal.Zero
		}
	}
}

// recomputeTotals derives the rollups from the monthly maps.
func (g *AggregateGroup) recomputeTotals() {
	g.totalAmount = decimal.Zero
	for _, v := range g.monthlyAmounts {
		g.totalAmount = g.totalAmount.Add(v)
	}
	g.totalQuantity = decimal.Zero
	for _, v := range g.monthlyQuantities {
		g.totalQuantity = g.totalQuantity.Add(v)
	}
}

// Amount returns the net amount for mk, zero when absent.
func (g *AggregateGroup) Amount(mk MonthKey) decimal.Decimal {
	return g.monthlyAmounts[mk]
}

// Quantity returns the quantity for mk, zero when absent.
func (g *AggregateGroup) Quantity(mk MonthKey) decimal.Decimal {
	return g.monthlyQuantities[mk]
}

// HasMonth reports whether mk has an explicit (possibly zero) entry.
func (g *AggregateGroup) HasMonth(mk MonthKey) bool {
	_, ok := g.monthlyAmounts[mk]
	return ok
}

func (g *AggregateGroup) TotalAmount() decimal.Decimal {
	return g.totalAmount
}

func (g *AggregateGroup) TotalQuantity() decimal.Decimal {
	return g.totalQuantity
}

// OrderedGroups is a map from GroupKey to group that remembers first-seen order.
type OrderedGroups struct {
	index  map[GroupKey]int
	groups []*AggregateGroup
}

// NewOrderedGroups creates an empty ordered map.
func NewOrderedGroups() *OrderedGroups {
	return &OrderedGroups{index: make(map[GroupKey]int)}
}

// getOrCreate returns the group for key, appending a new one on first sight.
func (o *OrderedGroups) getOrCreate(key GroupKey) *AggregateGroup {
	if i, ok := o.index[key]; ok {
		return o.groups[i]
	}
	g := newAggregateGroup(key)
	o.index[key] = len(o.groups)
	o.groups = append(o.groups, g)
	return g
}

// Get looks a group up by key.
func (o *OrderedGroups) Get(key GroupKey) (*AggregateGroup, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.groups[i], true
}

// Groups returns the groups in insertion order.
func (o *OrderedGroups) Groups() []*AggregateGroup {
	out := make([]*AggregateGroup, len(o.groups))
	copy(out, o.groups)
	return out
}

func (o *OrderedGroups) Len() int {
	return len(o.groups)
}
