package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var ErrInvalid = errors.New("invalid value")

// Violation is one failed rule. Path is the dotted field path, empty for a bare value.
type Violation struct {
	Path   string
	Reason string
}

func (v *Violation) Error() string {
	if v.Path == "" {
		return v.Reason
	}
	return v.Path + ": " + v.Reason
}

func (v *Violation) Unwrap() error {
	return ErrInvalid
}

func (v *Violation) under(field string) *Violation {
	path := field
	if v.Path != "" {
		path = field + "." + v.Path
	}
	return &Violation{Path: path, Reason: v.Reason}
}

// violations flattens er into violations. Errors that are not violations, as returned
// by custom schemas, become violations carrying their message.
func violations(er error) []*Violation {
	if er == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(er, &merr) {
		out := make([]*Violation, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, violations(e)...)
		}
		return out
	}
	var v *Violation
	if errors.As(er, &v) {
		return []*Violation{v}
	}
	return []*Violation{{Reason: er.Error()}}
}

// FieldErrors maps a field path to the reasons it failed.
type FieldErrors map[string][]string

// Collect groups the violations in er by path.
func Collect(er error) FieldErrors {
	fe := FieldErrors{}
	for _, v := range violations(er) {
		fe[v.Path] = append(fe[v.Path], v.Reason)
	}
	return fe
}

func (fe FieldErrors) Error() string {
	paths := make([]string, 0, len(fe))
	for p := range fe {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		reasons := strings.Join(fe[p], ", ")
		if p == "" {
			parts = append(parts, reasons)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p, reasons))
	}
	return strings.Join(parts, "; ")
}

func toRecord(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}

	js, er := json.Marshal(value)
	if er != nil {
		panic(fmt.Sprintf("validation: cannot encode %T: %v", value, er))
	}
	var out map[string]any
	if er = json.Unmarshal(js, &out); er != nil {
		return nil, false
	}
	return out, true
}
