// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required     field must not be zero/empty
//	nullable     if empty, skip the remaining rules for this field
//	email        valid email address
//	alpha_dash   letters, digits, hyphens, underscores
//	min=N        string: min char length | number: min value
//	max=N        string: max char length | number: max value
//	gt=N         number > N
//	gte=N        number >= N
//	in=a|b|c     value must be one of the listed items
//
// Types with rules a tag cannot express (decimals, cross-field checks)
// implement Validator; its messages are merged after the tag rules.
//
//	type Input struct {
//	    Username string `json:"username" validate:"required,alpha_dash,max=80"`
//	    Email    string `json:"email"    validate:"required,email,max=150"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Validator is implemented by payloads that need checks beyond tags.
type Validator interface {
	Validate() map[string]string
}

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of json field name → message; an empty map means valid.
func Struct(v any) map[string]string {
	errs := make(map[string]string)

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if contains(rules, "nullable") && isEmpty(value) {
			continue
		}
		for _, rule := range rules {
			if msg := apply(strings.TrimSpace(rule), name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	if custom, ok := v.(Validator); ok {
		for k, msg := range custom.Validate() {
			if _, exists := errs[k]; !exists {
				errs[k] = msg
			}
		}
	}

	return errs
}

// HasErrors returns true when errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func apply(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	v = deref(v)

	switch key {
	case "", "nullable":
		return ""
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(asString(v)) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "alpha_dash":
		for _, c := range asString(v) {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "min":
		n := parseFloat(param)
		if isNumeric(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(length(v)) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := parseFloat(param)
		if isNumeric(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(length(v)) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt":
		if toFloat(v) <= parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if toFloat(v) < parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "in":
		raw := asString(v)
		for _, allowed := range strings.Split(param, "|") {
			if raw == allowed {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		panic(fmt.Sprintf("validate: unknown rule %q on field %s", key, field))
	}
	return ""
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		return v.IsZero()
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return parseFloat(asString(v))
}

func length(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len()
	}
	return len([]rune(asString(v)))
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return ""
	}
	return fmt.Sprintf("%v", v.Interface())
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func contains(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
