package validator

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type genrePayload struct {
	Name *string `json:"name" validate:"required,notblank,max=10"`
}

type payload struct {
	Title         *string        `json:"title" validate:"required,notblank,max=5"`
	Email         *string        `json:"email" validate:"omitempty,email"`
	Stars         *int           `json:"stars" validate:"required,gte=1,lte=10"`
	Premiere      *string        `json:"premiere" validate:"omitempty,datetime=2006-01-02"`
	Recomendation *string        `json:"recomendation" validate:"omitempty,recomendation"`
	Spoilers      *bool          `json:"spoilers"`
	Genres        []genrePayload `json:"genres" validate:"omitempty,dive"`
}

func ptr[T any](v T) *T {
	return &v
}

func TestValidateStruct(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		errs := ValidateStruct(v, payload{
			Title:         ptr("Heat"),
			Stars:         ptr(10),
			Spoilers:      ptr(false),
			Recomendation: ptr("Must Watch"),
			Premiere:      ptr("1995-12-15"),
			Genres:        []genrePayload{{Name: ptr("Crime")}},
		})
		assert.Nil(t, errs)
	})

	t.Run("all missing reported", func(t *testing.T) {
		errs := ValidateStruct(v, payload{})
		require.NotNil(t, errs)
		assert.Equal(t, Errors{
			"title": {"This field is required."},
			"stars": {"This field is required."},
		}, errs)
	})

	t.Run("only missing reported", func(t *testing.T) {
		errs := ValidateStruct(v, payload{Stars: ptr(3)})
		assert.Equal(t, Errors{"title": {"This field is required."}}, errs)
	})

	testCases := []struct {
		name     string
		input    payload
		field    string
		expected string
	}{
		{"stars below range", payload{Title: ptr("a"), Stars: ptr(0)}, "stars", "Ensure this value is greater than or equal to 1."},
		{"stars above range", payload{Title: ptr("a"), Stars: ptr(100)}, "stars", "Ensure this value is less than or equal to 10."},
		{"blank title", payload{Title: ptr("  "), Stars: ptr(1)}, "title", "This field may not be blank."},
		{"long title", payload{Title: ptr("too long"), Stars: ptr(1)}, "title", "Ensure this field has no more than 5 characters."},
		{"bad email", payload{Title: ptr("a"), Stars: ptr(1), Email: ptr("nope")}, "email", "Enter a valid email address."},
		{"bad date", payload{Title: ptr("a"), Stars: ptr(1), Premiere: ptr("12/15/1995")}, "premiere", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		{"bad choice", payload{Title: ptr("a"), Stars: ptr(1), Recomendation: ptr("invalid recomendation")}, "recomendation", "invalid recomendation is not a valid choice."},
		{"nested genre", payload{Title: ptr("a"), Stars: ptr(1), Genres: []genrePayload{{}}}, "genres", "This field is required."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateStruct(v, tc.input)
			require.NotNil(t, errs)
			assert.Equal(t, []string{tc.expected}, errs[tc.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestTypeErrorMsg(t *testing.T) {
	assert.Equal(t, "A valid integer is required.", TypeErrorMsg(reflect.TypeOf(ptr(1)), "string"))
	assert.Equal(t, "Must be a valid boolean.", TypeErrorMsg(reflect.TypeOf(true), "string"))
	assert.Equal(t, "Not a valid string.", TypeErrorMsg(reflect.TypeOf(""), "number"))
	assert.Equal(t, `Expected a list of items but got type "string".`, TypeErrorMsg(reflect.TypeOf([]string{}), "string"))
}

func TestErrorsAdd(t *testing.T) {
	errs := make(Errors)
	errs.Add("genres", "This field is required.")
	errs.Add("genres", "This field is required.")
	assert.Equal(t, []string{"This field is required."}, errs["genres"])
	assert.Contains(t, errs.Error(), "genres")
}
