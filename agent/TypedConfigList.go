package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Keys under which a TypedConfigList is serialized
const (
	typeKey       = "Type"
	configListKey = "ConfigList"
)

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
type TypedConfigList struct {
	Type
	ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

// At returns the Config at index i in the TypedConfigList
func (t TypedConfigList) At(i int) Config {
	return ConfigAt(i, t.ConfigList)
}

// MarshalJSON implements the json.Marshaler interface
func (t TypedConfigList) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		typeKey:       t.Type,
		configListKey: t.ConfigList,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfigList) UnmarshalJSON(data []byte) error {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return t.fromMap(m)
}

// MarshalYAML implements the yaml.Marshaler interface. Field names of
// the ConfigList are preserved.
func (t TypedConfigList) MarshalYAML() (interface{}, error) {
	data, err := json.Marshal(t.ConfigList)
	if err != nil {
		return nil, err
	}

	var configs map[string]interface{}
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		typeKey:       string(t.Type),
		configListKey: configs,
	}, nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (t *TypedConfigList) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	return t.fromMap(m)
}

// fromMap uses reflection to unmarshal a ConfigList stored in a
// generic map into its concrete, registered type
func (t *TypedConfigList) fromMap(m map[string]interface{}) error {
	typeName, ok := m[typeKey].(string)
	if !ok {
		return fmt.Errorf("unmarshal: no %q field", typeKey)
	}

	ty, found := lookup(Type(typeName))
	if !found {
		return fmt.Errorf("unmarshal: type %q is not registered", typeName)
	}
	value := reflect.New(ty).Interface()

	valueBytes, err := json.Marshal(m[configListKey])
	if err != nil {
		return err
	}
	if err = json.Unmarshal(valueBytes, value); err != nil {
		return err
	}

	t.Type = Type(typeName)
	t.ConfigList = reflect.ValueOf(value).Elem().Interface().(ConfigList)
	return nil
}

// LoadConfigList loads a TypedConfigList from a JSON or YAML file. The
// format is chosen by the file extension.
func LoadConfigList(path string) (TypedConfigList, error) {
	var list TypedConfigList

	data, err := os.ReadFile(path)
	if err != nil {
		return list, errors.Wrap(err, "loadConfigList")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return list, errors.Wrapf(err, "loadConfigList: could not parse %v",
			path)
	}
	return list, nil
}
