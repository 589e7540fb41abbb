package attribute

import (
	"time"

	"testkind/internal/constants"
)

// Classification is one of Unit, Integration or Other. The set is closed:
// only this package can add variants.
type Classification interface {
	// Kind is the declared kind name; "unit" and "integration" for those
	// variants.
	Kind() string
	// Category is "unit", "integration" or "other".
	Category() string
	isClassification()
}

// Unit is a unit test last touched on Updated. Updated is always within the
// accepted window when produced by Parse.
type Unit struct {
	Updated time.Time
}

func (Unit) Kind() string      { return constants.KindUnit }
func (Unit) Category() string  { return constants.KindUnit }
func (Unit) isClassification() {}

type Integration struct{}

func (Integration) Kind() string      { return constants.KindIntegration }
func (Integration) Category() string  { return constants.KindIntegration }
func (Integration) isClassification() {}

// Other is any test that depends on external resources. Resources is never
// empty and holds no duplicates, in declaration order.
type Other struct {
	Name      string
	Resources []string
}

func (o Other) Kind() string    { return o.Name }
func (Other) Category() string  { return constants.CategoryOther }
func (Other) isClassification() {}
