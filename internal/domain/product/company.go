package product

import (
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Company owns products in the catalog.
type Company struct {
	id                 uint
	name               string
	registrationNumber string
	website            string
	email              string
	phone              string
	address            string
	city               string
	country            string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewCompanyParams carries the attributes of a new company.
type NewCompanyParams struct {
	Name               string
	RegistrationNumber string
	Website            string
	Email              string
	Phone              string
	Address            string
	City               string
	Country            string
}

func NewCompany(p NewCompanyParams) (*Company, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, errors.NewValidationError("company name is required")
	}
	now := biztime.NowUTC()
	return &Company{
		name:               name,
		registrationNumber: strings.TrimSpace(p.RegistrationNumber),
		website:            strings.TrimSpace(p.Website),
		email:              strings.TrimSpace(p.Email),
		phone:              strings.TrimSpace(p.Phone),
		address:            strings.TrimSpace(p.Address),
		city:               strings.TrimSpace(p.City),
		country:            strings.TrimSpace(p.Country),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructCompany rebuilds a company from persistence.
func ReconstructCompany(id uint, name, registrationNumber, website, email, phone, address, city, country string, createdAt, updatedAt time.Time) *Company {
	return &Company{
		id:                 id,
		name:               name,
		registrationNumber: registrationNumber,
		website:            website,
		email:              email,
		phone:              phone,
		address:            address,
		city:               city,
		country:            country,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (c *Company) ID() uint                   { return c.id }
func (c *Company) Name() string               { return c.name }
func (c *Company) RegistrationNumber() string { return c.registrationNumber }
func (c *Company) Website() string            { return c.website }
func (c *Company) Email() string              { return c.email }
func (c *Company) Phone() string              { return c.phone }
func (c *Company) Address() string            { return c.address }
func (c *Company) City() string               { return c.city }
func (c *Company) Country() string            { return c.country }
func (c *Company) CreatedAt() time.Time       { return c.createdAt }
func (c *Company) UpdatedAt() time.Time       { return c.updatedAt }

func (c *Company) SetID(id uint) error {
	if c.id != 0 {
		return errors.NewInternalError("company ID already set")
	}
	c.id = id
	return nil
}

func (c *Company) UpdateDetails(u NewCompanyParams) error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return errors.NewValidationError("company name is required")
	}
	c.name = name
	c.registrationNumber = strings.TrimSpace(u.RegistrationNumber)
	c.website = strings.TrimSpace(u.Website)
	c.email = strings.TrimSpace(u.Email)
	c.phone = strings.TrimSpace(u.Phone)
	c.address = strings.TrimSpace(u.Address)
	c.city = strings.TrimSpace(u.City)
	c.country = strings.TrimSpace(u.Country)
	c.updatedAt = biztime.NowUTC()
	return nil
}
