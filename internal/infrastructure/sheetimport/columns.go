package sheetimport

import (
	"strings"

	"github.com/salesreport/backend/internal/domain/shared"
)

// Column headers of the sales upload template
const (
	ColDate         = "Date"
	ColSBU          = "SBU"
	ColTxnID        = "Txn ID"
	ColDistributor  = "Distributor"
	ColSalesRep     = "Sales Rep"
	ColTypeTxn      = "Type Txn"
	ColType         = "Type"
	ColCustomerID   = "Customer Id"
	ColCustomer     = "Customer"
	ColOutletType   = "Outlet Type"
	ColAgency       = "Agency"
	ColBrand        = "Brand"
	ColProductID    = "Product ID"
	ColProduct      = "Product"
	ColBusinessArea = "BusinessArea"
	ColCs           = "Cs"
	ColPs           = "Ps"
	ColQtyConv      = "Qty Conv"
	ColUnitPrice    = "Unit Price"
	ColGrossValue   = "GrossValue"
	ColLineDiscount = "Line Discount"
	ColDocDiscount  = "Doc Discount"
	ColNetValue     = "Net Value"
	ColReturnReason = "Return Reason"
	ColFreeQuantity = "Free Quantity"
	ColTown         = "Town"
	ColArea         = "Area"
)

// RequiredColumns lists every header an upload must carry, in template order.
var RequiredColumns = []string{
	ColDate, ColSBU, ColTxnID, ColDistributor, ColSalesRep, ColTypeTxn, ColType,
	ColCustomerID, ColCustomer, ColOutletType, ColAgency, ColBrand, ColProductID,
	ColProduct, ColBusinessArea, ColCs, ColPs, ColQtyConv, ColUnitPrice, ColGrossValue,
	ColLineDiscount, ColDocDiscount, ColNetValue, ColReturnReason, ColFreeQuantity,
	ColTown, ColArea,
}

// MissingColumns returns the required headers absent from headers, in template order
func MissingColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateHeaders fails with ErrInvalidInput naming every missing column.
func ValidateHeaders(headers []string) error {
	missing := MissingColumns(headers)
	if len(missing) == 0 {
		return nil
	}
	return shared.ErrInvalidInput.WithMessage(
		"file is missing required columns: " + strings.Join(missing, ", "))
}
