// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "ref", 3},
		{"commit", "commit", 0},
		{"commit", "commits", 1},
		{"commit", "comit", 1},
		{"verify", "verity", 1},
		{"report", "reprot", 2},
		{"search", "saerch", 2},
		{"show", "steup", 4},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		forward := levenshtein(test.a, test.b)
		reverse := levenshtein(test.b, test.a)
		if forward != test.want || reverse != test.want {
			t.Errorf("levenshtein(%q, %q) = %d (reversed %d), want %d",
				test.a, test.b, forward, reverse, test.want)
		}
	}
}

func TestClosest(t *testing.T) {
	tests := []struct {
		input      string
		candidates []string
		want       string
	}{
		{"ab", []string{"ac", "ad"}, "ac"},
		{"abc", []string{"xyz"}, "xyz"},
		{"abcd", []string{"wxyz"}, ""},
		{"commit", nil, ""},
		{"reprot", []string{"search", "report", "verify"}, "report"},
	}
	for _, test := range tests {
		if got := closest(test.input, test.candidates); got != test.want {
			t.Errorf("closest(%q, %v) = %q, want %q", test.input, test.candidates, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	var commands []*Command
	for _, name := range []string{"commit", "search", "verify", "report", "version"} {
		commands = append(commands, &Command{Name: name})
	}

	tests := map[string]string{
		"comit":     "commit",
		"saerch":    "search",
		"verfy":     "verify",
		"reportt":   "report",
		"vrsion":    "version",
		"zzzzzzzzz": "",
	}
	for input, want := range tests {
		if got := suggestCommand(input, commands); got != want {
			t.Errorf("suggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("commit", pflag.ContinueOnError)
	flagSet.IntP("workers", "j", 0, "")
	flagSet.String("timeout", "", "")
	flagSet.String("ref", "", "")
	flagSet.Bool("json", false, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"double dash", []string{"--wokers"}, "--workers"},
		{"single dash", []string{"-wokers"}, "--workers"},
		{"with value", []string{"--wokers=4"}, "--workers"},
		{"after defined flags", []string{"--ref", "main", "-j", "4", "--timout"}, "--timeout"},
		{"after positional", []string{"c0ffee", "--jsn"}, "--json"},
		{"nothing close", []string{"--zzzzzzzzz"}, ""},
		{"all defined", []string{"--ref", "main", "--json"}, ""},
		{"after terminator", []string{"--", "--wokers"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, flagSet); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
