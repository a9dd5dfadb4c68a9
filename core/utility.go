package core

import (
	"fmt"
	"strings"
)

func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}

// contains compares names with their terminators stripped
func contains(names []string, name string) bool {
	name = strings.TrimRight(name, "\x00")
	for _, n := range names {
		if strings.TrimRight(n, "\x00") == name {
			return true
		}
	}
	return false
}

// appendUnique appends the names not already present in list
func appendUnique(list []string, names ...string) []string {
	for _, name := range names {
		if !contains(list, name) {
			list = append(list, name)
		}
	}
	return list
}

// splitList parses a comma separated list, dropping blank entries
func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
