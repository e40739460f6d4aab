package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Availability is the commercial state of a product line.
type Availability string

const (
	AvailabilityAvailable    Availability = "AVAILABLE"
	AvailabilityDiscontinued Availability = "DISCONTINUED"
	AvailabilityPreOrder     Availability = "PRE_ORDER"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityDiscontinued, AvailabilityPreOrder:
		return true
	}
	return false
}

// serviceInterval is the fixed time between routine services of a UAV.
const serviceInterval = 90 * 24 * time.Hour

// Specification is one free-form key/value attribute of a product, for
// everything the fixed columns do not cover.
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Product is a UAV model in the service catalog. Incidents and maintenance
// schedules reference products by model name and serial.
type Product struct {
	id               uint
	code             string
	name             string
	serialNumber     string
	description      string
	manufacturer     string
	modelYear        int
	weightGrams      int
	maxFlightTimeMin int
	batteryCapacity  int
	price            decimal.Decimal
	categoryID       *uint
	companyID        uint
	specifications   []Specification
	availability     Availability
	active           bool
	lastServicedAt   *time.Time
	nextServiceDueAt *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewProductParams carries the attributes of a new catalog product.
type NewProductParams struct {
	Code             string
	Name             string
	SerialNumber     string
	Description      string
	Manufacturer     string
	ModelYear        int
	WeightGrams      int
	MaxFlightTimeMin int
	BatteryCapacity  int
	Price            decimal.Decimal
	CategoryID       *uint
	CompanyID        uint
	Specifications   []Specification
	Availability     Availability
}

func NewProduct(p NewProductParams) (*Product, error) {
	code := strings.TrimSpace(p.Code)
	name := strings.TrimSpace(p.Name)
	if code == "" {
		return nil, errors.NewValidationError("product code is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("product name is required")
	}
	if p.CompanyID == 0 {
		return nil, errors.NewValidationError("owning company is required")
	}
	if p.Price.IsNegative() {
		return nil, errors.NewValidationError("price cannot be negative")
	}
	availability := p.Availability
	if availability == "" {
		availability = AvailabilityAvailable
	}
	if !availability.IsValid() {
		return nil, errors.NewValidationError("invalid availability status")
	}
	specs, err := normalizeSpecifications(p.Specifications)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Product{
		code:             code,
		name:             name,
		serialNumber:     strings.TrimSpace(p.SerialNumber),
		description:      strings.TrimSpace(p.Description),
		manufacturer:     strings.TrimSpace(p.Manufacturer),
		modelYear:        p.ModelYear,
		weightGrams:      p.WeightGrams,
		maxFlightTimeMin: p.MaxFlightTimeMin,
		batteryCapacity:  p.BatteryCapacity,
		price:            p.Price,
		categoryID:       p.CategoryID,
		companyID:        p.CompanyID,
		specifications:   specs,
		availability:     availability,
		active:           true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func normalizeSpecifications(specs []Specification) ([]Specification, error) {
	out := make([]Specification, 0, len(specs))
	for _, s := range specs {
		key := strings.TrimSpace(s.Key)
		value := strings.TrimSpace(s.Value)
		if key == "" || value == "" {
			return nil, errors.NewValidationError("specifications need a key and a value")
		}
		out = append(out, Specification{Key: key, Value: value, Unit: strings.TrimSpace(s.Unit)})
	}
	return out, nil
}

// ReconstructedProduct carries every persisted field for rebuilding without
// validation.
type ReconstructedProduct struct {
	ID               uint
	Code             string
	Name             string
	SerialNumber     string
	Description      string
	Manufacturer     string
	ModelYear        int
	WeightGrams      int
	MaxFlightTimeMin int
	BatteryCapacity  int
	Price            decimal.Decimal
	CategoryID       *uint
	CompanyID        uint
	Specifications   []Specification
	Availability     Availability
	Active           bool
	LastServicedAt   *time.Time
	NextServiceDueAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructProduct(r ReconstructedProduct) *Product {
	return &Product{
		id:               r.ID,
		code:             r.Code,
		name:             r.Name,
		serialNumber:     r.SerialNumber,
		description:      r.Description,
		manufacturer:     r.Manufacturer,
		modelYear:        r.ModelYear,
		weightGrams:      r.WeightGrams,
		maxFlightTimeMin: r.MaxFlightTimeMin,
		batteryCapacity:  r.BatteryCapacity,
		price:            r.Price,
		categoryID:       r.CategoryID,
		companyID:        r.CompanyID,
		specifications:   r.Specifications,
		availability:     r.Availability,
		active:           r.Active,
		lastServicedAt:   r.LastServicedAt,
		nextServiceDueAt: r.NextServiceDueAt,
		createdAt:        r.CreatedAt,
		updatedAt:        r.UpdatedAt,
	}
}

func (p *Product) ID() uint                        { return p.id }
func (p *Product) Code() string                    { return p.code }
func (p *Product) Name() string                    { return p.name }
func (p *Product) SerialNumber() string            { return p.serialNumber }
func (p *Product) Description() string             { return p.description }
func (p *Product) Manufacturer() string            { return p.manufacturer }
func (p *Product) ModelYear() int                  { return p.modelYear }
func (p *Product) WeightGrams() int                { return p.weightGrams }
func (p *Product) MaxFlightTimeMin() int           { return p.maxFlightTimeMin }
func (p *Product) BatteryCapacity() int            { return p.batteryCapacity }
func (p *Product) Price() decimal.Decimal          { return p.price }
func (p *Product) CategoryID() *uint               { return p.categoryID }
func (p *Product) CompanyID() uint                 { return p.companyID }
func (p *Product) Specifications() []Specification { return p.specifications }
func (p *Product) Availability() Availability      { return p.availability }
func (p *Product) IsActive() bool                  { return p.active }
func (p *Product) LastServicedAt() *time.Time      { return p.lastServicedAt }
func (p *Product) NextServiceDueAt() *time.Time    { return p.nextServiceDueAt }
func (p *Product) CreatedAt() time.Time            { return p.createdAt }
func (p *Product) UpdatedAt() time.Time            { return p.updatedAt }

func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return errors.NewInternalError("product ID already set")
	}
	p.id = id
	return nil
}

// UpdateDetails replaces the editable attributes. The code is stable after
// creation so references keep working.
func (p *Product) UpdateDetails(u NewProductParams) error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return errors.NewValidationError("product name is required")
	}
	if u.CompanyID == 0 {
		return errors.NewValidationError("owning company is required")
	}
	if u.Price.IsNegative() {
		return errors.NewValidationError("price cannot be negative")
	}
	availability := u.Availability
	if availability == "" {
		availability = p.availability
	}
	if !availability.IsValid() {
		return errors.NewValidationError("invalid availability status")
	}
	specs, err := normalizeSpecifications(u.Specifications)
	if err != nil {
		return err
	}
	p.name = name
	p.serialNumber = strings.TrimSpace(u.SerialNumber)
	p.description = strings.TrimSpace(u.Description)
	p.manufacturer = strings.TrimSpace(u.Manufacturer)
	p.modelYear = u.ModelYear
	p.weightGrams = u.WeightGrams
	p.maxFlightTimeMin = u.MaxFlightTimeMin
	p.batteryCapacity = u.BatteryCapacity
	p.price = u.Price
	p.categoryID = u.CategoryID
	p.companyID = u.CompanyID
	p.specifications = specs
	p.availability = availability
	p.updatedAt = biztime.NowUTC()
	return nil
}

// RecordService stamps a completed routine service and rolls the next due
// date forward by the fixed interval.
func (p *Product) RecordService(at time.Time) error {
	if at.IsZero() {
		return errors.NewValidationError("service date is required")
	}
	serviced := at.UTC()
	due := serviced.Add(serviceInterval)
	p.lastServicedAt = &serviced
	p.nextServiceDueAt = &due
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Product) Activate() {
	p.active = true
	p.updatedAt = biztime.NowUTC()
}

func (p *Product) Deactivate() {
	p.active = false
	p.updatedAt = biztime.NowUTC()
}
