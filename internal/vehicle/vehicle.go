// Package vehicle builds region-specific cars and motorcycles.
package vehicle

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the vehicle variant.
type Kind int

const (
	Car Kind = iota + 1
	Motorcycle
)

func (k Kind) String() string {
	switch k {
	case Car:
		return "car"
	case Motorcycle:
		return "motorcycle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Region selects the market specification a vehicle is built to.
type Region string

const (
	US Region = "US"
	EU Region = "EU"
)

// specs is the region lookup; every region builds every kind.
var specs = map[Region]string{
	US: "US Spec",
	EU: "EU Spec",
}

// Vehicle is exactly one Kind carrying its make, model and spec.
type Vehicle struct {
	Kind   Kind
	Region Region
	Make   string
	Model  string
	Spec   string
}

// New constructs a vehicle of kind for region.
func New(region Region, kind Kind, maker, model string) (Vehicle, error) {
	spec, ok := specs[region]
	if !ok {
		return Vehicle{}, errors.Errorf("unknown region %q", region)
	}
	if kind != Car && kind != Motorcycle {
		return Vehicle{}, errors.Errorf("unknown vehicle kind %s", kind)
	}
	return Vehicle{Kind: kind, Region: region, Make: maker, Model: model, Spec: spec}, nil
}

// ParseRegion accepts a case-insensitive region tag.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := specs[r]; !ok {
		return "", errors.Errorf("unknown region %q", s)
	}
	return r, nil
}

// StartEngine returns the line the vehicle reports when started.
func (v Vehicle) StartEngine() string {
	verb := "Engine start"
	if v.Kind == Motorcycle {
		verb = "Engine running"
	}
	return fmt.Sprintf("%s %s (%s): %s", v.Make, v.Model, v.Spec, verb)
}

// Demo returns the sample fleet shown by `shelf vehicles`.
func Demo() []Vehicle {
	fleet := []struct {
		region       Region
		kind         Kind
		maker, model string
	}{
		{US, Car, "Ford", "Mustang"},
		{EU, Car, "BMW", "320i"},
		{US, Motorcycle, "Harley-Davidson", "Sportster"},
		{EU, Motorcycle, "Ducati", "Monster"},
	}

	out := make([]Vehicle, 0, len(fleet))
	for _, f := range fleet {
		v, err := New(f.region, f.kind, f.maker, f.model)
		if err != nil {
			panic(err) // static table
		}
		out = append(out, v)
	}
	return out
}

// InRegion keeps the vehicles built for region, preserving order.
func InRegion(vs []Vehicle, region Region) []Vehicle {
	out := make([]Vehicle, 0, len(vs))
	for _, v := range vs {
		if v.Region == region {
			out = append(out, v)
		}
	}
	return out
}
