package report

import "github.com/shopspring/decimal"

// AgencyNode is one summary group together with its product detail groups.
type AgencyNode struct {
	Group    *AggregateGroup
	Products []*AggregateGroup
}

// DistributorNode is the per-distributor slice of the tree.
type DistributorNode struct {
	Name     string
	Agencies []*AgencyNode
}

// Summary returns the summary groups in first-seen order.
func (d *DistributorNode) Summary() []*AggregateGroup {
	out := make([]*AggregateGroup, len(d.Agencies))
	for i, a := range d.Agencies {
		out[i] = a.Group
	}
	return out
}

// AggregateTree is the nested result of one report request.
// It is built once and never mutated afterwards.
type AggregateTree struct {
	Axis         *ColumnModel
	Dimensions   Dimensions
	Distributors []*DistributorNode
}

// BuildTree runs the summary pass and the product pass and nests the results
// as distributor, agency group, product. It returns ErrNoData when no record
// survives validation.
func BuildTree(records []TransactionRecord, axis *ColumnModel, dims Dimensions, opts ...AggregatorOption) (*AggregateTree, error) {
	agg := NewAggregator(axis, opts...)

	summary := agg.aggregate(records, dims)
	if summary.Len() == 0 {
		return nil, ErrNoData
	}
	// The product pass sees the same malformed records; report them once.
	detail := NewAggregator(axis).aggregate(records, dims.WithProduct())

	tree := &AggregateTree{Axis: axis, Dimensions: dims}
	distributors := make(map[string]*DistributorNode)
	agencies := make(map[GroupKey]*AgencyNode, summary.Len())

	for _, g := range summary.groups {
		d, ok := distributors[g.Key.Distributor]
		if !ok {
			d = &DistributorNode{Name: g.Key.Distributor}
			distributors[g.Key.Distributor] = d
			tree.Distributors = append(tree.Distributors, d)
		}
		node := &AgencyNode{Group: g}
		agencies[g.Key] = node
		d.Agencies = append(d.Agencies, node)
	}
	for _, g := range detail.groups {
		if node, ok := agencies[g.Key.AgencyKey()]; ok {
			node.Products = append(node.Products, g)
		}
	}
	return tree, nil
}

// Totals are the column sums of a set of groups, aligned with an axis.
type Totals struct {
	Amounts       []decimal.Decimal
	Quantities    []decimal.Decimal
	TotalAmount   decimal.Decimal
	TotalQuantity decimal.Decimal
}

// SumGroups computes the totals row for groups over axis.
func SumGroups(groups []*AggregateGroup, axis *ColumnModel) Totals {
	keys := axis.Keys()
	t := Totals{
		Amounts:    make([]decimal.Decimal, len(keys)),
		Quantities: make([]decimal.Decimal, len(keys)),
	}
	for _, g := range groups {
		for i, mk := range keys {
			t.Amounts[i] = t.Amounts[i].Add(g.Amount(mk))
			t.Quantities[i] = t.Quantities[i].Add(g.Quantity(mk))
		}
		t.TotalAmount = t.TotalAmount.Add(g.TotalAmount())
		t.TotalQuantity = t.TotalQuantity.Add(g.TotalQuantity())
	}
	return t
}
