package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Converter turns a raw value pulled from device output into a typed value
type Converter func(raw any) (any, error)

// TypeInfo contains metadata about a supported astype name
type TypeInfo struct {
	Name    string    // Name as written in the catalog, e.g. "int"
	GoType  string    // Go type produced by Convert, e.g. "int64"
	Convert Converter // Conversion applied to raw field values
}

// Registry contains every astype name a view field may use
var Registry = map[string]TypeInfo{
	"int": {
		Name:    "int",
		GoType:  "int64",
		Convert: toInt,
	},
	"float": {
		Name:    "float",
		GoType:  "float64",
		Convert: toFloat,
	},
	"bool": {
		Name:    "bool",
		GoType:  "bool",
		Convert: toBool,
	},
	// "str" is the spelling older catalogs use
	"str": {
		Name:    "str",
		GoType:  "string",
		Convert: toString,
	},
	"string": {
		Name:    "string",
		GoType:  "string",
		Convert: toString,
	},
}

// String is the TypeInfo plain fields behave as
var String = Registry["string"]

// Lookup retrieves type info by name
func Lookup(typeName string) (TypeInfo, bool) {
	info, ok := Registry[typeName]
	return info, ok
}

// Names returns the supported type names in sorted order
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalize trims the whitespace device XML output wraps around text values
func normalize(raw any) any {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return raw
}

// toInt parses text in base 10 only, so "010" is 10 rather than octal
func toInt(raw any) (any, error) {
	if s, ok := normalize(raw).(string); ok {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int: %w", s, err)
		}
		return v, nil
	}

	v, err := cast.ToInt64E(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %v to int: %w", raw, err)
	}
	return v, nil
}

func toFloat(raw any) (any, error) {
	v, err := cast.ToFloat64E(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %v to float: %w", raw, err)
	}
	return v, nil
}

func toBool(raw any) (any, error) {
	v, err := cast.ToBoolE(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %v to bool: %w", raw, err)
	}
	return v, nil
}

func toString(raw any) (any, error) {
	v, err := cast.ToStringE(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %v to string: %w", raw, err)
	}
	return v, nil
}
