package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter renders a single column comparison as a named-bind SQL fragment.
// ArgName only needs to be set when the same field appears twice in a group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq like in less_eq greater_eq"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) bindName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column := f.column()
	bind := f.bindName()

	switch f.Operator {
	case FilterOperatorEq, FilterOperatorNotEq, FilterOperatorLessEq, FilterOperatorGreaterEq:
		args[bind] = f.Value

		symbols := map[string]string{
			FilterOperatorEq:        "=",
			FilterOperatorNotEq:     "!=",
			FilterOperatorLessEq:    "<=",
			FilterOperatorGreaterEq: ">=",
		}

		return fmt.Sprintf("%s %s :%s", column, symbols[f.Operator], bind), args
	case FilterOperatorLike:
		args[bind] = fmt.Sprintf("%%%s%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, bind), args
	case FilterOperatorIn:
		return f.inClause(column, bind, args), args
	default:
		return "", args
	}
}

// inClause expands a slice value into one named bind per element. A scalar
// value is bound as a single-element list.
func (f *Filter) inClause(column, bind string, args map[string]any) string {
	val := reflect.ValueOf(f.Value)

	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[bind] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, bind)
	}

	named := make([]string, val.Len())
	for idx := range val.Len() {
		elem := fmt.Sprintf("%s_%d", bind, idx)
		args[elem] = val.Index(idx).Interface()
		named[idx] = ":" + elem
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", "))
}

// FilterGroup joins filters and nested groups with a single boolean operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, member := range f.Filters {
		var clause string

		var memberArgs map[string]any

		switch m := member.(type) {
		case Filter:
			clause, memberArgs = m.GetWhereClause()
		case FilterGroup:
			clause, memberArgs = m.GetWhereClause()
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, memberArgs)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.Operator+" ") + ")", args
}
