package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// applyEnvOverrides walks the config struct recursively and overrides any
// field carrying an `env` tag with the corresponding environment variable,
// when set. Fields without a tag are left as loaded from the YAML file.
func applyEnvOverrides(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		envName := fieldType.Tag.Get("env")
		if envName == "" {
			continue
		}
		envValue, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		if err := assignFromString(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from env var %s: %w", fieldType.Name, envName, err)
		}
	}

	return nil
}

// assignFromString converts an environment variable string to the field's
// type. time.Duration fields accept Go duration syntax ("30s", "1h").
func assignFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration format: %w", err)
			}
			field.Set(reflect.ValueOf(duration))
			return nil
		}
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(intValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float format: %w", err)
		}
		field.SetFloat(floatValue)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
