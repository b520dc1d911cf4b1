package agent

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gotd/environment"
)

// Config represents a configuration for creating a controller
type Config interface {
	// CreateController creates the controller that the config
	// describes
	CreateController(env environment.Environment, seed uint64) (Controller,
		error)

	// ValidController returns whether the argument controller is valid
	// for the Config
	ValidController(Controller) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of controller the Config constructs
	Type() Type
}

// ConfigList implements functionality for storing a number of Configs
// in a simple manner. Instead of storing a slice of Configs, a
// ConfigList stores a slice of values for each field of its Config,
// and the list is constructed from every combination of field values.
//
// A field of a ConfigList is expanded if it is a slice of the type of
// the Config field with the same name. An empty expanded field leaves
// the Config field at its zero value. Any other ConfigList field which
// has the same name and type as a Config field is copied into every
// Config.
type ConfigList interface {
	// Config returns an empty Config of the type stored by the list
	Config() Config

	// Type returns the type of controller constructed by Configs in
	// the list
	Type() Type

	// NumFields returns the number of settable fields for the list
	NumFields() int

	// Len returns the number of Configs stored by the list
	Len() int
}

// NumConfigs returns the number of Configs stored in a ConfigList,
// which is the product of the lengths of its expanded fields
func NumConfigs(list ConfigList) int {
	listValue := reflect.ValueOf(list)
	configType := reflect.TypeOf(list.Config())

	n := 1
	for j := 0; j < listValue.NumField(); j++ {
		field := listValue.Type().Field(j)
		target, ok := configType.FieldByName(field.Name)
		if ok && expanded(field.Type, target.Type) {
			if l := listValue.Field(j).Len(); l > 0 {
				n *= l
			}
		}
	}
	return n
}

// ConfigAt returns the Config at index i in a ConfigList. The first
// expanded field of the list varies fastest.
func ConfigAt(i int, list ConfigList) Config {
	if n := list.Len(); i < 0 || i >= n {
		panic(fmt.Sprintf("configAt: index %d out of range [0, %d)", i, n))
	}

	listValue := reflect.ValueOf(list)
	config := reflect.New(reflect.TypeOf(list.Config())).Elem()

	index := i
	for j := 0; j < listValue.NumField(); j++ {
		name := listValue.Type().Field(j).Name
		target := config.FieldByName(name)
		if !target.IsValid() || !target.CanSet() {
			continue
		}

		field := listValue.Field(j)
		switch {
		case expanded(field.Type(), target.Type()):
			n := field.Len()
			if n == 0 {
				continue
			}
			target.Set(field.Index(index % n))
			index /= n

		case field.Type().AssignableTo(target.Type()):
			target.Set(field)
		}
	}

	return config.Interface().(Config)
}

// expanded returns whether a ConfigList field of type list is expanded
// into a Config field of type config
func expanded(list, config reflect.Type) bool {
	return list.Kind() == reflect.Slice && list.Elem().AssignableTo(config)
}
