package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// DecodeFields decodes a json object into the struct pointed to by dst one
// top-level field at a time. A field whose value has the wrong type is left
// zeroed and reported under its json name, so the remaining fields still reach
// validation. Keys that match no field are ignored.
func DecodeFields(fields map[string]json.RawMessage, dst any) (Errors, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("validator.DecodeFields: expected pointer to struct, got %T", dst)
	}
	v = v.Elem()
	errs := make(Errors)
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		name := jsonFieldName(field)
		if !field.IsExported() || name == "" {
			continue
		}
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, v.Field(i).Addr().Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, err
			}
			v.Field(i).SetZero()
			errs.Add(name, TypeErrorMsg(typeErr.Type, typeErr.Value))
		}
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// Merge copies other into e. Messages from other replace the ones e already
// holds for the same field.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = msgs
	}
}
