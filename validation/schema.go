package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// Schema checks a single value. Validate returns nil when the value is valid, otherwise
// an error made of one or more *Violation.
type Schema interface {
	Validate(value any) error
}

var validate = validator.New()

type rule[V any] struct {
	check   func(V) bool
	message string
}

func appendRule[V any](rules []rule[V], r rule[V]) []rule[V] {
	out := make([]rule[V], len(rules), len(rules)+1)
	copy(out, rules)
	return append(out, r)
}

func checkAll[V any](rules []rule[V], v V) error {
	var merr *multierror.Error
	for _, r := range rules {
		if !r.check(v) {
			merr = multierror.Append(merr, &Violation{Reason: r.message})
		}
	}
	return merr.ErrorOrNil()
}

//
// Strings
//

// StringSchema validates strings. Every builder method returns a new schema.
type StringSchema struct {
	rules    []rule[string]
	optional bool
}

var _ Schema = StringSchema{}

func String() StringSchema {
	return StringSchema{}
}

func (s StringSchema) with(check func(string) bool, message string) StringSchema {
	s.rules = appendRule(s.rules, rule[string]{check: check, message: message})
	return s
}

// Min requires at least n characters.
func (s StringSchema) Min(n int, message string) StringSchema {
	return s.with(func(v string) bool { return utf8.RuneCountInString(v) >= n }, message)
}

// Max allows at most n characters.
func (s StringSchema) Max(n int, message string) StringSchema {
	return s.with(func(v string) bool { return utf8.RuneCountInString(v) <= n }, message)
}

func (s StringSchema) Matches(re *regexp.Regexp, message string) StringSchema {
	return s.with(re.MatchString, message)
}

func (s StringSchema) Email(message string) StringSchema {
	return s.with(func(v string) bool { return validate.Var(v, "email") == nil }, message)
}

func (s StringSchema) URL(message string) StringSchema {
	return s.with(func(v string) bool { return validate.Var(v, "url") == nil }, message)
}

// HTTPSOnly requires the value to start with "https://", in lower case as typed, and to
// parse as a URL with a host.
func (s StringSchema) HTTPSOnly(message string) StringSchema {
	return s.with(func(v string) bool {
		if !strings.HasPrefix(v, "https://") {
			return false
		}
		u, er := url.Parse(v)
		return er == nil && u.Host != ""
	}, message)
}

func (s StringSchema) OneOf(values []string, message string) StringSchema {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return s.with(func(v string) bool {
		_, ok := allowed[v]
		return ok
	}, message)
}

func (s StringSchema) Refine(check func(string) bool, message string) StringSchema {
	return s.with(check, message)
}

// Optional accepts a missing value or an empty string.
func (s StringSchema) Optional() StringSchema {
	s.optional = true
	return s
}

func (s StringSchema) Validate(value any) error {
	if value == nil {
		if s.optional {
			return nil
		}
		return &Violation{Reason: "required"}
	}
	v, ok := value.(string)
	if !ok {
		return &Violation{Reason: fmt.Sprintf("expected string, got %T", value)}
	}
	if s.optional && v == "" {
		return nil
	}
	return checkAll(s.rules, v)
}

//
// Numbers
//

type NumberSchema struct {
	rules    []rule[float64]
	optional bool
}

var _ Schema = NumberSchema{}

func Number() NumberSchema {
	return NumberSchema{}
}

func (s NumberSchema) Min(n float64, message string) NumberSchema {
	s.rules = appendRule(s.rules, rule[float64]{check: func(v float64) bool { return v >= n }, message: message})
	return s
}

func (s NumberSchema) Max(n float64, message string) NumberSchema {
	s.rules = appendRule(s.rules, rule[float64]{check: func(v float64) bool { return v <= n }, message: message})
	return s
}

func (s NumberSchema) Optional() NumberSchema {
	s.optional = true
	return s
}

func (s NumberSchema) Validate(value any) error {
	if value == nil {
		if s.optional {
			return nil
		}
		return &Violation{Reason: "required"}
	}
	v, ok := toFloat(value)
	if !ok || math.IsNaN(v) {
		return &Violation{Reason: fmt.Sprintf("expected number, got %T", value)}
	}
	return checkAll(s.rules, v)
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

//
// Objects
//

// ObjectSchema validates a record field by field. Values may be maps with string keys
// or anything that encodes to a JSON object.
type ObjectSchema struct {
	fields   map[string]Schema
	names    []string
	optional bool
}

var _ Schema = (*ObjectSchema)(nil)

// Object builds a record schema. A nil field schema is a programming error and panics.
func Object(fields map[string]Schema) *ObjectSchema {
	o := &ObjectSchema{fields: make(map[string]Schema, len(fields))}
	for name, s := range fields {
		if s == nil {
			panic(fmt.Sprintf("validation: nil schema for field %q", name))
		}
		o.fields[name] = s
		o.names = append(o.names, name)
	}
	sort.Strings(o.names)
	return o
}

func (o *ObjectSchema) Optional() *ObjectSchema {
	c := *o
	c.optional = true
	return &c
}

// Fields returns the field names in validation order.
func (o *ObjectSchema) Fields() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

func (o *ObjectSchema) Validate(value any) error {
	if value == nil {
		if o.optional {
			return nil
		}
		return &Violation{Reason: "required"}
	}
	m, ok := toRecord(value)
	if !ok {
		return &Violation{Reason: fmt.Sprintf("expected object, got %T", value)}
	}

	var merr *multierror.Error
	for _, name := range o.names {
		er := o.fields[name].Validate(m[name])
		for _, v := range violations(er) {
			merr = multierror.Append(merr, v.under(name))
		}
	}
	return merr.ErrorOrNil()
}
