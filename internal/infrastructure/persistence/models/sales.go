package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesreport/backend/internal/domain/sales"
)

// UploadBatchModel is one ingested sheet
type UploadBatchModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null"`
	FileName     string `gorm:"type:varchar(255);not null;default:''"`
	RecordsCount int    `gorm:"not null;default:0"`
	UploadedBy   string `gorm:"type:varchar(100);not null;default:''"`
}

func (UploadBatchModel) TableName() string {
	return "upload_batches"
}

func (m *UploadBatchModel) ToDomain() *sales.UploadBatch {
	return &sales.UploadBatch{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		FileName:     m.FileName,
		RecordsCount: m.RecordsCount,
		UploadedBy:   m.UploadedBy,
	}
}

// UploadBatchModelFromDomain creates a new UploadBatchModel from a domain batch
func UploadBatchModelFromDomain(b *sales.UploadBatch) *UploadBatchModel {
	m := &UploadBatchModel{
		Name:         b.Name,
		FileName:     b.FileName,
		RecordsCount: b.RecordsCount,
		UploadedBy:   b.UploadedBy,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// UploadHistoryModel is an audit row; it outlives the batch it names.
type UploadHistoryModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	SheetName string    `gorm:"type:varchar(300);not null"`
	Action    string    `gorm:"type:varchar(50);not null"`
	ChangedBy string    `gorm:"type:varchar(100);not null;default:''"`
	ChangedOn time.Time `gorm:"not null;index"`
}

func (UploadHistoryModel) TableName() string {
	return "upload_histories"
}

func (m *UploadHistoryModel) ToDomain() *sales.UploadHistory {
	return &sales.UploadHistory{
		ID:        m.ID,
		SheetName: m.SheetName,
		Action:    sales.HistoryAction(m.Action),
		ChangedBy: m.ChangedBy,
		ChangedOn: m.ChangedOn,
	}
}

func UploadHistoryModelFromDomain(h *sales.UploadHistory) *UploadHistoryModel {
	return &UploadHistoryModel{
		ID:        h.ID,
		SheetName: h.SheetName,
		Action:    string(h.Action),
		ChangedBy: h.ChangedBy,
		ChangedOn: h.ChangedOn,
	}
}

// SalesRecordModel is one stored sheet line
type SalesRecordModel struct {
	ID           int64               `gorm:"primaryKey;autoIncrement"`
	BatchID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	TxnDate      *time.Time          `gorm:"index"`
	SBU          string              `gorm:"column:sbu;type:varchar(100)"`
	TxnID        string              `gorm:"type:varchar(100)"`
	Distributor  string              `gorm:"type:varchar(255);index"`
	SalesRep     string              `gorm:"type:varchar(255);index"`
	TypeTxn      string              `gorm:"type:varchar(100)"`
	Type         string              `gorm:"type:varchar(100)"`
	CustomerID   string              `gorm:"type:varchar(100)"`
	Customer     string              `gorm:"type:varchar(255)"`
	OutletType   string              `gorm:"type:varchar(100)"`
	Agency       string              `gorm:"type:varchar(255);index"`
	Brand        string              `gorm:"type:varchar(255)"`
	ProductID    string              `gorm:"type:varchar(100)"`
	Product      string              `gorm:"type:varchar(255);index"`
	BusinessArea string              `gorm:"type:varchar(255)"`
	Cs           decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Ps           decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	QtyConv      decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	UnitPrice    decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	GrossValue   decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	LineDiscount decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	DocDiscount  decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	NetValue     decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	ReturnReason string              `gorm:"type:varchar(255)"`
	FreeQuantity decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Town         string              `gorm:"type:varchar(255)"`
	Area         string              `gorm:"type:varchar(255)"`
}

func (SalesRecordModel) TableName() string {
	return "sales_records"
}

// SalesRecordModelFromLine attaches a sheet line to its batch
func SalesRecordModelFromLine(batchID uuid.UUID, l sales.Line) *SalesRecordModel {
	return &SalesRecordModel{
		BatchID:      batchID,
		TxnDate:      l.Date,
		SBU:          l.SBU,
		TxnID:        l.TxnID,
		Distributor:  l.Distributor,
		SalesRep:     l.SalesRep,
		TypeTxn:      l.TypeTxn,
		Type:         l.Type,
		CustomerID:   l.CustomerID,
		Customer:     l.Customer,
		OutletType:   l.OutletType,
		Agency:       l.Agency,
		Brand:        l.Brand,
		ProductID:    l.ProductID,
		Product:      l.Product,
		BusinessArea: l.BusinessArea,
		Cs:           l.Cs,
		Ps:           l.Ps,
		QtyConv:      l.QtyConv,
		UnitPrice:    l.UnitPrice,
		GrossValue:   l.GrossValue,
		LineDiscount: l.LineDiscount,
		DocDiscount:  l.DocDiscount,
		NetValue:     l.NetValue,
		ReturnReason: l.ReturnReason,
		FreeQuantity: l.FreeQuantity,
		Town:         l.Town,
		Area:         l.Area,
	}
}

func (m *SalesRecordModel) ToDomain() *sales.SalesRecord {
	return &sales.SalesRecord{
		ID:      m.ID,
		BatchID: m.BatchID,
		Line: sales.Line{
			Date:         m.TxnDate,
			SBU:          m.SBU,
			TxnID:        m.TxnID,
			Distributor:  m.Distributor,
			SalesRep:     m.SalesRep,
			TypeTxn:      m.TypeTxn,
			Type:         m.Type,
			CustomerID:   m.CustomerID,
			Customer:     m.Customer,
			OutletType:   m.OutletType,
			Agency:       m.Agency,
			Brand:        m.Brand,
			ProductID:    m.ProductID,
			Product:      m.Product,
			BusinessArea: m.BusinessArea,
			Cs:           m.Cs,
			Ps:           m.Ps,
			QtyConv:      m.QtyConv,
			UnitPrice:    m.UnitPrice,
			GrossValue:   m.GrossValue,
			LineDiscount: m.LineDiscount,
			DocDiscount:  m.DocDiscount,
			NetValue:     m.NetValue,
			ReturnReason: m.ReturnReason,
			FreeQuantity: m.FreeQuantity,
			Town:         m.Town,
			Area:         m.Area,
		},
	}
}

// MonthModel is the month reference table, seeded by migration
type MonthModel struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(20);not null"`
}

func (MonthModel) TableName() string {
	return "months"
}
