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
		{"", "abc", 3},
		{"decode", "decode", 0},
		{"decdoe", "decode", 2},
		{"encod", "encode", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if got := levenshtein(test.b, test.a); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d (asymmetric)", test.b, test.a, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "decode"}, {Name: "encode"}, {Name: "version"}}
	tests := map[string]string{
		"decod":   "decode",
		"versoin": "version",
		"xyzzy":   "",
	}
	for input, want := range tests {
		if got := suggestCommand(input, commands); got != want {
			t.Errorf("suggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.StringP("body-id", "b", "", "")
		flagSet.String("named-systems", "", "")
		flagSet.Bool("json", false, "")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--body", "3"}, "--body-id"},
		{[]string{"Sol", "--named-system=x"}, "--named-systems"},
		{[]string{"-b", "3", "--jsn"}, "--json"},
		{[]string{"--completely-unrelated"}, ""},
		{[]string{"--", "--jsn"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, newFlagSet()); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
