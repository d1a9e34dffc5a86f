package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// DateLayout is the wire format of every calendar date field.
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages line up with the submitted form.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("weburl", isWebURL)
	return v
}

var webSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}

// isWebURL accepts absolute http(s)/ftp(s) links with a host. Opaque URIs such as
// javascript: or mailto: are rejected.
func isWebURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Opaque != "" {
		return false
	}
	return webSchemes[strings.ToLower(u.Scheme)] && u.Hostname() != ""
}

// trimStrings strips surrounding whitespace from every submitted string value.
func trimStrings(from reflect.Type, _ reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String {
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
	return data, nil
}

// Decode copies raw submitted values into dst, a pointer to an input struct tagged with
// mapstructure names. Scalars are converted to strings as needed; unknown keys are ignored.
func Decode(fields map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       trimStrings,
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(fields)
}

// Struct validates s against its validate tags and returns one message per failing field,
// keyed by JSON name. It returns nil when s is valid.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "This field is required."
	case "url", "http_url", "weburl":
		return "Enter a valid URL."
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Enter a valid date (YYYY-MM-DD)."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "oneof":
		choices := strings.Fields(fe.Param())
		sort.Strings(choices)
		return fmt.Sprintf("Select a valid choice. One of: %s.", strings.Join(choices, ", "))
	}
	return fmt.Sprintf("Failed the %q check.", fe.Tag())
}
