package models

import "gorm.io/datatypes"

type InventoryItemModel struct {
	ID               uint   `gorm:"primaryKey"`
	PartNumber       string `gorm:"uniqueIndex;size:100;not null"`
	Name             string `gorm:"size:200;not null"`
	Description      string `gorm:"type:text"`
	Manufacturer     string `gorm:"size:100"`
	Model            string `gorm:"size:100"`
	Quantity         int    `gorm:"not null;default:0"`
	MinStock         int    `gorm:"not null;default:0"`
	MaxStock         int    `gorm:"not null;default:0"`
	Condition        string `gorm:"size:20;not null"`
	UnitCost         string `gorm:"size:32;not null;default:'0'"`
	WeightGrams      int    `gorm:"not null;default:0"`
	Dimensions       string `gorm:"size:100"`
	CompatibleModels datatypes.JSON
	Active           bool   `gorm:"not null;default:true;index"`
	LastRestockedAt  *int64
	CreatedAt        int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

type StockTransactionModel struct {
	ID            uint   `gorm:"primaryKey"`
	ItemID        uint   `gorm:"not null;index"`
	Type          string `gorm:"size:20;not null;index"`
	Quantity      int    `gorm:"not null"`
	UnitCost      string `gorm:"size:32;not null;default:'0'"`
	ReferenceType string `gorm:"size:30;index:idx_stock_tx_reference"`
	ReferenceID   uint   `gorm:"index:idx_stock_tx_reference"`
	ActorID       *uint  `gorm:"index"`
	Note          string `gorm:"size:500"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (StockTransactionModel) TableName() string {
	return "stock_transactions"
}
