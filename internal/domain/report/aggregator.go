package report

// MalformedHandler is told about every record the aggregator skips.
type MalformedHandler func(err *MalformedRecordError)

// Aggregator groups records along a dimension tuple against a fixed month axis.
type Aggregator struct {
	axis        *ColumnModel
	onMalformed MalformedHandler
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithMalformedHandler registers a callback for skipped records.
func WithMalformedHandler(fn MalformedHandler) AggregatorOption {
	return func(a *Aggregator) {
		a.onMalformed = fn
	}
}

// NewAggregator creates an aggregator over the given axis.
func NewAggregator(axis *ColumnModel, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{axis: axis}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Axis returns the month axis the aggregator zero-fills against.
func (a *Aggregator) Axis() *ColumnModel {
	return a.axis
}

// Aggregate groups records by dims. Groups come back in first-seen order and
// every group has an entry for every axis month. Records that fail validation
// or fall outside the axis are skipped and reported to the malformed handler.
func (a *Aggregator) Aggregate(records []TransactionRecord, dims Dimensions) []*AggregateGroup {
	return a.aggregate(records, dims).Groups()
}

func (a *Aggregator) aggregate(records []TransactionRecord, dims Dimensions) *OrderedGroups {
	groups := NewOrderedGroups()
	for i, r := range records {
		if err := a.check(i, r); err != nil {
			a.malformed(err)
			continue
		}
		groups.getOrCreate(dims.Key(r)).add(r.MonthKey(), r.NetAmount, r.Qty())
	}

	axis := a.axis.Keys()
	for _, g := range groups.groups {
		g.zeroFill(axis)
		g.recomputeTotals()
	}
	return groups
}

func (a *Aggregator) check(i int, r TransactionRecord) *MalformedRecordError {
	if err := r.Validate(i); err != nil {
		return err.(*MalformedRecordError)
	}
	if !a.axis.Contains(r.MonthKey()) {
		return &MalformedRecordError{Index: i, Reason: "month " + r.MonthKey().String() + " is outside the column axis"}
	}
	return nil
}

func (a *Aggregator) malformed(err *MalformedRecordError) {
	if a.onMalformed != nil {
		a.onMalformed(err)
	}
}

// CountValid returns how many records would survive aggregation.
func (a *Aggregator) CountValid(records []TransactionRecord) int {
	n := 0
	for i, r := range records {
		if a.check(i, r) == nil {
			n++
		}
	}
	return n
}
