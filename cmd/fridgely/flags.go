package main

import (
	"fmt"
	"strconv"
	"strings"
)

// optionalFloat is a float flag that remembers whether it was given, so an
// absent bound falls back to the configured default.
type optionalFloat struct {
	value *float64
}

func (f *optionalFloat) String() string {
	if f == nil || f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'f', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.value = &v
	return nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
