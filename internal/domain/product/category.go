package product

import (
	"strings"

	"skywrench/internal/shared/errors"
)

// Category groups catalog products, e.g. agricultural, surveillance,
// photography.
type Category struct {
	id          uint
	code        string
	name        string
	description string
}

func NewCategory(code, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("category name is required")
	}
	return &Category{
		code:        strings.ToUpper(strings.TrimSpace(code)),
		name:        name,
		description: strings.TrimSpace(description),
	}, nil
}

// ReconstructCategory rebuilds a category from persistence.
func ReconstructCategory(id uint, code, name, description string) *Category {
	return &Category{id: id, code: code, name: name, description: description}
}

func (c *Category) ID() uint            { return c.id }
func (c *Category) Code() string        { return c.code }
func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }

func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return errors.NewInternalError("category ID already set")
	}
	c.id = id
	return nil
}

func (c *Category) UpdateDetails(code, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("category name is required")
	}
	c.code = strings.ToUpper(strings.TrimSpace(code))
	c.name = name
	c.description = strings.TrimSpace(description)
	return nil
}
