package models

import "gorm.io/datatypes"

type ProductModel struct {
	ID               uint   `gorm:"primaryKey"`
	Code             string `gorm:"uniqueIndex;size:50;not null"`
	Name             string `gorm:"size:200;not null"`
	SerialNumber     string `gorm:"size:40;index"`
	Description      string `gorm:"type:text"`
	Manufacturer     string `gorm:"size:200"`
	ModelYear        int
	WeightGrams      int
	MaxFlightTimeMin int
	BatteryCapacity  int
	Price            string         `gorm:"type:decimal(10,2);not null;default:0"`
	CategoryID       *uint          `gorm:"index"`
	CompanyID        uint           `gorm:"not null;index"`
	Specifications   datatypes.JSON `gorm:"type:json"`
	Availability     string         `gorm:"size:20;not null;index"`
	Active           bool           `gorm:"not null;default:true;index"`
	LastServicedAt   *int64
	NextServiceDueAt *int64 `gorm:"index"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

type CompanyModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"size:200;not null"`
	RegistrationNumber string `gorm:"size:100;index"`
	Website            string `gorm:"size:255"`
	Email              string `gorm:"size:120"`
	Phone              string `gorm:"size:20"`
	Address            string `gorm:"size:255"`
	City               string `gorm:"size:100"`
	Country            string `gorm:"size:100"`
	CreatedAt          int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CompanyModel) TableName() string {
	return "companies"
}

type ProductCategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:10;uniqueIndex"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (ProductCategoryModel) TableName() string {
	return "product_categories"
}
