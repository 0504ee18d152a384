package validator

import (
	"fmt"
	"moviereviews/proj/internal/domain/models"
	"reflect"
	"slices"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

// Errors maps a json field name to the ordered list of messages for it.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	if !slices.Contains(e[field], msg) {
		e[field] = append(e[field], msg)
	}
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	slices.Sort(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// New returns a validator that names fields after their json tags and knows
// the custom tags used by the request payloads.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", ValidateNotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("recomendation", ValidateRecomendation); err != nil {
		panic(err)
	}
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// topLevelField turns a namespace like "createMovieRequest.genres[0].name"
// into the payload key it belongs to ("genres").
func topLevelField(namespace string) string {
	_, field, found := strings.Cut(namespace, ".")
	if !found {
		field = namespace
	}
	if i := strings.IndexAny(field, ".["); i >= 0 {
		field = field[:i]
	}
	return field
}

func ProcessValidationErrors(errs govalidator.ValidationErrors) Errors {
	processedErrors := make(Errors)
	for _, e := range errs {
		processedErrors.Add(topLevelField(e.Namespace()), GetErrorMsgForField(e))
	}
	return processedErrors
}

// ValidateStruct returns nil when obj is valid.
func ValidateStruct(validator *govalidator.Validate, obj any) Errors {
	if err := validator.Struct(obj); err != nil {
		validationErrs, ok := err.(govalidator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return ProcessValidationErrors(validationErrs)
	}
	return nil
}

func GetErrorMsgForField(err govalidator.FieldError) (errorMsg string) {
	switch err.Tag() {
	case "required":
		errorMsg = "This field is required."
	case "notblank":
		errorMsg = "This field may not be blank."
	case "max":
		if err.Kind() == reflect.String {
			errorMsg = fmt.Sprintf("Ensure this field has no more than %s characters.", err.Param())
		} else {
			errorMsg = fmt.Sprintf("Ensure this value is less than or equal to %s.", err.Param())
		}
	case "min":
		if err.Kind() == reflect.String {
			errorMsg = fmt.Sprintf("Ensure this field has at least %s characters.", err.Param())
		} else {
			errorMsg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
		}
	case "gte":
		errorMsg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
	case "lte":
		errorMsg = fmt.Sprintf("Ensure this value is less than or equal to %s.", err.Param())
	case "email":
		errorMsg = "Enter a valid email address."
	case "datetime":
		errorMsg = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "recomendation", "oneof":
		errorMsg = fmt.Sprintf("%v is not a valid choice.", reflect.Indirect(reflect.ValueOf(err.Value())))
	default:
		errorMsg = "Invalid value."
	}
	return
}

// TypeErrorMsg is the message for a json value of type got that could not be
// decoded into a field of type expected.
func TypeErrorMsg(expected reflect.Type, got string) string {
	for expected.Kind() == reflect.Pointer {
		expected = expected.Elem()
	}
	switch expected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return fmt.Sprintf("Expected a list of items but got type %q.", got)
	case reflect.Struct, reflect.Map:
		return fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", got)
	}
	return "Invalid value."
}

// CUSTOM VALIDATORS

func ValidateNotBlank(fl govalidator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func ValidateRecomendation(fl govalidator.FieldLevel) bool {
	return slices.Contains(models.Recomendations, fl.Field().String())
}
