// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by types that register their own flags,
// like [LogFlags]. [BindFlags] calls AddFlags instead of reading the
// type's struct tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set named name with flags bound to
// the tagged fields of params, a pointer to a struct. It panics if
// params cannot be bound: that is a programming error.
//
//	var params commitParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("commit", &params)
//	    },
//	    Run: func(ctx context.Context, args []string) error {
//	        // params holds the parsed flags here
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag for each tagged field of params, which
// must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n" gives the long name and an optional
//     one-letter shorthand. Fields without it are skipped.
//   - desc:"text" is the help text.
//   - default:"value" is parsed as the field's type. Without it the
//     zero value is the default.
//
// # Field types
//
// string, bool, int, int64, and [time.Duration] bind as ordinary
// flags, reset to their default each time the flag set is built.
//
// *string, *bool, *int, *int64, and *time.Duration are optional flags: the
// field is nil unless the flag appears on the command line. Commands
// use them to tell "not given" from a zero value when layering flags
// over a configuration file. An optional bool given without a value
// is true. Optional flags cannot carry a default tag.
//
// # Composition
//
// A struct field whose pointer implements [FlagBinder] binds through
// AddFlags. Other embedded structs, exported or not, are bound
// recursively.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if field.IsExported() {
				if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
					binder.AddFlags(flagSet)
					continue
				}
			}
			if field.Anonymous {
				if err := bindStruct(fieldValue, flagSet); err != nil {
					return fmt.Errorf("embedded %s: %w", field.Name, err)
				}
				continue
			}
		}

		tag := field.Tag.Get("flag")
		if tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		flag := flagSpec{
			name:         name,
			shorthand:    shorthand,
			description:  field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		}
		if err := flag.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

type flagSpec struct {
	name         string
	shorthand    string
	description  string
	defaultValue string
}

func (f flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, f.name, f.shorthand, f.defaultValue, f.description)
	case *bool:
		value, err := parseDefault(f, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, f.name, f.shorthand, value, f.description)
	case *int:
		value, err := parseDefault(f, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, f.name, f.shorthand, value, f.description)
	case *int64:
		value, err := parseDefault(f, func(text string) (int64, error) {
			return strconv.ParseInt(text, 10, 64)
		})
		if err != nil {
			return err
		}
		flagSet.Int64VarP(target, f.name, f.shorthand, value, f.description)
	case *time.Duration:
		value, err := parseDefault(f, time.ParseDuration)
		if err != nil {
			return err
		}
		flagSet.DurationVarP(target, f.name, f.shorthand, value, f.description)

	case **string:
		return bindOptional(f, flagSet, target, "string", func(text string) (string, error) { return text, nil })
	case **bool:
		return bindOptional(f, flagSet, target, "bool", strconv.ParseBool)
	case **int:
		return bindOptional(f, flagSet, target, "int", strconv.Atoi)
	case **int64:
		return bindOptional(f, flagSet, target, "int64", func(text string) (int64, error) {
			return strconv.ParseInt(text, 10, 64)
		})
	case **time.Duration:
		return bindOptional(f, flagSet, target, "duration", time.ParseDuration)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", reflect.TypeOf(target).Elem(), f.name)
	}
	return nil
}

func parseDefault[T any](f flagSpec, parse func(string) (T, error)) (T, error) {
	var zero T
	if f.defaultValue == "" {
		return zero, nil
	}
	value, err := parse(f.defaultValue)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", f.name, err)
	}
	return value, nil
}

func bindOptional[T any](f flagSpec, flagSet *pflag.FlagSet, target **T, kind string, parse func(string) (T, error)) error {
	if f.defaultValue != "" {
		return fmt.Errorf("optional flag --%s cannot have a default", f.name)
	}
	*target = nil
	flag := flagSet.VarPF(&optionalValue[T]{target: target, kind: kind, parse: parse},
		f.name, f.shorthand, f.description)
	if kind == "bool" {
		flag.NoOptDefVal = "true"
	}
	return nil
}

// optionalValue is a pflag.Value that allocates its target on Set.
type optionalValue[T any] struct {
	target **T
	kind   string
	parse  func(string) (T, error)
}

func (v *optionalValue[T]) String() string {
	if *v.target == nil {
		return ""
	}
	return fmt.Sprint(**v.target)
}

func (v *optionalValue[T]) Set(text string) error {
	value, err := v.parse(text)
	if err != nil {
		return err
	}
	*v.target = &value
	return nil
}

func (v *optionalValue[T]) Type() string { return v.kind }
