// Package cf loads flat configuration structs from untyped maps, matching
// map keys against `cf` struct tags.
package cf

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

func Load(data map[string]interface{}, cf interface{}) error {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return errors.Errorf("cf type [%s] not struct", cfV.Type())
	}
	for i := 0; i < cfV.NumField(); i++ {
		field := cfV.Field(i)
		if !field.CanInterface() || !field.CanSet() {
			continue
		}
		key := keyName(cfV.Type().Field(i))
		v, found := data[key]
		if !found {
			continue
		}
		if err := setField(field, key, v); err != nil {
			return err
		}
	}
	return nil
}

func setField(field reflect.Value, key string, v interface{}) error {
	switch field.Interface().(type) {
	case int:
		if j, ok := v.(int); ok {
			field.SetInt(int64(j))
			return nil
		}

	case float64:
		if f, ok := v.(float64); ok {
			field.SetFloat(f)
			return nil
		}

	case bool:
		if b, ok := v.(bool); ok {
			field.SetBool(b)
			return nil
		}

	case string:
		if s, ok := v.(string); ok {
			field.SetString(s)
			return nil
		}

	default:
		return errors.Errorf("unsupported field type [%s]", field.Type())
	}
	return errors.Errorf("field '%s' type mismatch, got [%s], expected [%s]", key, reflect.TypeOf(v), field.Type())
}

func Dump(label string, cf interface{}) string {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return ""
	}
	out := label + " {\n"
	format := fmt.Sprintf("\t%%-%ds %%v\n", maxKeyLength(cfV))
	for i := 0; i < cfV.NumField(); i++ {
		if cfV.Field(i).CanInterface() {
			key := keyName(cfV.Type().Field(i))
			out += fmt.Sprintf(format, key, cfV.Field(i).Interface())
		}
	}
	out += "}\n"
	return out
}

func keyName(v reflect.StructField) string {
	key := v.Name
	if tag := v.Tag.Get("cf"); tag != "" {
		key = tag
	}
	return key
}

func maxKeyLength(cfV reflect.Value) int {
	max := 0
	for i := 0; i < cfV.NumField(); i++ {
		if keyLength := len(keyName(cfV.Type().Field(i))); keyLength > max {
			max = keyLength
		}
	}
	return max
}
