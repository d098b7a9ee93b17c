package report

// Dimension is one grouping axis of the aggregation.
type Dimension int

const (
	DimDistributor Dimension = iota
	DimSalesRep
	DimAgency
	DimProduct
)

func (d Dimension) String() string {
	switch d {
	case DimDistributor:
		return "distributor"
	case DimSalesRep:
		return "sales_rep"
	case DimAgency:
		return "agency"
	case DimProduct:
		return "product"
	}
	return "unknown"
}

// Dimensions is an ordered grouping tuple.
type Dimensions []Dimension

var (
	// DistributorAgency is the default summary grouping.
	DistributorAgency = Dimensions{DimDistributor, DimAgency}
	// DistributorSalesRepAgency is used when the report is filtered by sales rep.
	DistributorSalesRepAgency = Dimensions{DimDistributor, DimSalesRep, DimAgency}
)

// DimensionsFor picks the summary grouping for the given filter state.
func DimensionsFor(salesRepFilterActive bool) Dimensions {
	if salesRepFilterActive {
		return DistributorSalesRepAgency
	}
	return DistributorAgency
}

// Has reports whether d is part of the tuple.
func (ds Dimensions) Has(d Dimension) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

// WithProduct appends the product dimension for the detail pass.
func (ds Dimensions) WithProduct() Dimensions {
	if ds.Has(DimProduct) {
		return ds
	}
	out := make(Dimensions, 0, len(ds)+1)
	out = append(out, ds...)
	return append(out, DimProduct)
}

// Key projects a record onto the tuple.
func (ds Dimensions) Key(r TransactionRecord) GroupKey {
	var k GroupKey
	for _, d := range ds {
		switch d {
		case DimDistributor:
			k.Distributor = r.Distributor
		case DimSalesRep:
			k.SalesRep = r.SalesRep
		case DimAgency:
			k.Agency = r.Agency
		case DimProduct:
			k.Product = r.Product
		}
	}
	return k
}
