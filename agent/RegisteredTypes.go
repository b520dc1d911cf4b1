package agent

import (
	"log/slog"
	"reflect"
	"sync"
)

// Type represents a specific type of a controller Config.
// Configs with this type can create Controllers of the corresponding
// type.
type Type string

const (
	QSigma    Type = "QSigma"
	GreedyGQ  Type = "GreedyGQ"
	QLearning Type = "QLearning"
	ESarsa    Type = "ESarsa"
	Sarsa     Type = "SarsaLambda"
	QLambda   Type = "QLambda"
	LSTDQ     Type = "LSTDQ"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config or ConfigList with that type can be created.
//
// No Types are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var (
	registeredTypes   = make(map[Type]reflect.Type)
	registeredTypesMu sync.RWMutex
)

// Register registers a controller's Type with a concrete ConfigList
// type so that upon deserialization of a TypedConfigList, ConfigLists
// of type controllerType are deserialized into the concrete type of
// configs.
func Register(controllerType Type, configs ConfigList) {
	registeredTypesMu.Lock()
	defer registeredTypesMu.Unlock()

	slog.Debug("registering controller type", "type", controllerType)
	registeredTypes[controllerType] = reflect.TypeOf(configs)
}

// Registered returns whether a Type has been registered
func Registered(controllerType Type) bool {
	_, ok := lookup(controllerType)
	return ok
}

func lookup(controllerType Type) (reflect.Type, bool) {
	registeredTypesMu.RLock()
	defer registeredTypesMu.RUnlock()

	ty, ok := registeredTypes[controllerType]
	return ty, ok
}
