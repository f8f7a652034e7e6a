// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a [pflag.FlagSet] bound to the tagged fields
// of params, a pointer to a struct. It panics when params cannot be
// bound: a bad tag is a bug in the command, not a user error.
//
//	var params decodeParams
//	command := &cli.Command{
//		Params: func() any { return &params },
//		Run: func(args []string) error {
//			// params is populated here
//		},
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every field of *params that
// carries a flag tag. Embedded structs are walked, so shared groups
// such as [JSONOutput] contribute their flags.
//
// Tags:
//
//	flag:"name"       long name
//	flag:"name,n"     long name and one-letter shorthand
//	desc:"..."        help text
//	default:"..."     default, parsed for the field's type
//
// Field types: string, bool, int and []string (comma-separated
// default).
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

// flagSpec is the parsed tag set of one field.
type flagSpec struct {
	name, shorthand, usage, defaultText string
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for index := range value.NumField() {
		field := value.Type().Field(index)
		fieldValue := value.Field(index)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}
		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		spec := flagSpec{usage: field.Tag.Get("desc"), defaultText: field.Tag.Get("default")}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")
		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func (s flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, s.name, s.shorthand, s.defaultText, s.usage)
	case *bool:
		value := false
		if s.defaultText != "" {
			parsed, err := strconv.ParseBool(s.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", s.name, err)
			}
			value = parsed
		}
		flagSet.BoolVarP(target, s.name, s.shorthand, value, s.usage)
	case *int:
		value := 0
		if s.defaultText != "" {
			parsed, err := strconv.Atoi(s.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", s.name, err)
			}
			value = parsed
		}
		flagSet.IntVarP(target, s.name, s.shorthand, value, s.usage)
	case *[]string:
		var value []string
		if s.defaultText != "" {
			value = strings.Split(s.defaultText, ",")
		}
		flagSet.StringSliceVarP(target, s.name, s.shorthand, value, s.usage)
	default:
		return fmt.Errorf("unsupported type %T for flag --%s", target, s.name)
	}
	return nil
}
