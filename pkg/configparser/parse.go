package configparser

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// LoadAndParseYaml loads the YAML file into the environment and then
// fills dst from it. dst must be a pointer to a struct whose fields
// carry `env` tags; the `default` tag is used when the variable is not
// set. Nested structs are walked recursively. A missing file is not an
// error: the defaults and the ambient environment still apply.
func LoadAndParseYaml(filepath string, dst any) error {
	if filepath != "" {
		if err := LoadYamlFile(filepath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return ParseEnv(dst)
}

// ParseEnv fills dst from the process environment using the `env` and
// `default` struct tags.
func ParseEnv(dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("configparser: expected pointer to struct, got %T", dst)
	}
	return parseStruct(v.Elem())
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		structField := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && structField.Type != reflect.TypeOf(time.Duration(0)) {
			if err := parseStruct(field); err != nil {
				return err
			}
			continue
		}

		envName := structField.Tag.Get("env")
		if envName == "" {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			value = structField.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("configparser: field %s: %w", structField.Name, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	// time.Duration is an int64 underneath, so it has to be checked
	// before the generic integer case.
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}

	return nil
}
