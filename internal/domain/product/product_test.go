package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/shared/errors"
)

func catalogProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(NewProductParams{
		Code:             "AWX4",
		Name:             "AgriWing X4",
		Manufacturer:     "AgriWing",
		ModelYear:        2025,
		MaxFlightTimeMin: 45,
		BatteryCapacity:  6800,
		Price:            decimal.NewFromInt(4200),
		CompanyID:        3,
		Specifications: []Specification{
			{Key: "camera", Value: "4K", Unit: ""},
			{Key: "payload", Value: "1200", Unit: "g"},
		},
	})
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("defaults to an active available product", func(t *testing.T) {
		p := catalogProduct(t)
		assert.Equal(t, "AWX4", p.Code())
		assert.Equal(t, AvailabilityAvailable, p.Availability())
		assert.True(t, p.IsActive())
		assert.Len(t, p.Specifications(), 2)
		assert.Nil(t, p.NextServiceDueAt())
	})

	t.Run("rejects missing code, name and company", func(t *testing.T) {
		_, err := NewProduct(NewProductParams{Name: "AgriWing X4", CompanyID: 3})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		_, err = NewProduct(NewProductParams{Code: "AWX4", CompanyID: 3})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		_, err = NewProduct(NewProductParams{Code: "AWX4", Name: "AgriWing X4"})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("rejects negative price and bad availability", func(t *testing.T) {
		_, err := NewProduct(NewProductParams{Code: "AWX4", Name: "AgriWing X4", CompanyID: 3, Price: decimal.NewFromInt(-1)})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		_, err = NewProduct(NewProductParams{Code: "AWX4", Name: "AgriWing X4", CompanyID: 3, Availability: "SOLD_OUT"})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("rejects specifications without key or value", func(t *testing.T) {
		_, err := NewProduct(NewProductParams{
			Code: "AWX4", Name: "AgriWing X4", CompanyID: 3,
			Specifications: []Specification{{Key: "camera"}},
		})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestProduct_RecordService(t *testing.T) {
	p := catalogProduct(t)
	serviced := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, p.RecordService(serviced))

	require.NotNil(t, p.LastServicedAt())
	require.NotNil(t, p.NextServiceDueAt())
	assert.Equal(t, serviced, *p.LastServicedAt())
	assert.Equal(t, serviced.AddDate(0, 0, 90), *p.NextServiceDueAt())

	assert.Error(t, p.RecordService(time.Time{}))
}

func TestProduct_UpdateDetails(t *testing.T) {
	p := catalogProduct(t)
	catID := uint(2)

	err := p.UpdateDetails(NewProductParams{
		Name:         "AgriWing X4 Pro",
		CompanyID:    3,
		CategoryID:   &catID,
		Price:        decimal.NewFromInt(5100),
		Availability: AvailabilityPreOrder,
	})

	require.NoError(t, err)
	assert.Equal(t, "AgriWing X4 Pro", p.Name())
	assert.Equal(t, AvailabilityPreOrder, p.Availability())
	require.NotNil(t, p.CategoryID())
	assert.Equal(t, uint(2), *p.CategoryID())
	assert.Equal(t, "AWX4", p.Code(), "code is stable")

	assert.Error(t, p.UpdateDetails(NewProductParams{CompanyID: 3}))
}

func TestNewCompany(t *testing.T) {
	c, err := NewCompany(NewCompanyParams{Name: " AgriWing GmbH ", Country: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "AgriWing GmbH", c.Name())

	_, err = NewCompany(NewCompanyParams{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("agri", "Agricultural", "crop spraying and survey")
	require.NoError(t, err)
	assert.Equal(t, "AGRI", c.Code())

	_, err = NewCategory("AGRI", "", "")
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
