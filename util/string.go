package util

import (
	"fmt"
	"strings"
)

// Check if the string is blank
func IsBlankStr(s string) bool {
	return s == "" || strings.TrimSpace(s) == ""
}

func Printlnf(pat string, args ...any) {
	fmt.Printf(pat+"\n", args...)
}
