package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesreport/backend/internal/domain/report"
)

// Line is one transaction line of an uploaded sales sheet. Numeric fields
// are null when the cell was blank.
type Line struct {
	Date         *time.Time
	SBU          string
	TxnID        string
	Distributor  string
	SalesRep     string
	TypeTxn      string
	Type         string
	CustomerID   string
	Customer     string
	OutletType   string
	Agency       string
	Brand        string
	ProductID    string
	Product      string
	BusinessArea string
	Cs           decimal.NullDecimal
	Ps           decimal.NullDecimal
	QtyConv      decimal.NullDecimal
	UnitPrice    decimal.NullDecimal
	GrossValue   decimal.NullDecimal
	LineDiscount decimal.NullDecimal
	DocDiscount  decimal.NullDecimal
	NetValue     decimal.NullDecimal
	ReturnReason string
	FreeQuantity decimal.NullDecimal
	Town         string
	Area         string
}

// ToRecord projects the line onto the report model. Undated lines cannot be
// placed on the month axis and report false.
func (l Line) ToRecord() (report.TransactionRecord, bool) {
	if l.Date == nil {
		return report.TransactionRecord{}, false
	}
	net := decimal.Zero
	if l.NetValue.Valid {
		net = l.NetValue.Decimal
	}
	return report.TransactionRecord{
		Distributor: l.Distributor,
		SalesRep:    l.SalesRep,
		Agency:      l.Agency,
		Product:     l.Product,
		Customer:    l.Customer,
		Area:        l.Area,
		Year:        l.Date.Year(),
		Month:       int(l.Date.Month()),
		NetAmount:   net,
		Quantity:    l.QtyConv,
	}, true
}

// Records projects every dated line.
func Records(lines []Line) []report.TransactionRecord {
	records := make([]report.TransactionRecord, 0, len(lines))
	for _, l := range lines {
		if rec, ok := l.ToRecord(); ok {
			records = append(records, rec)
		}
	}
	return records
}
