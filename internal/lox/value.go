package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// truthy implements Lox's truthiness rule: everything is truthy except nil
// and the boolean false.
func truthy(val interface{}) bool {
	if val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's total equality: values of differing Go dynamic
// type are never equal, numbers compare by IEEE-754 (so NaN != NaN), and
// functions/classes/instances/builtins compare by identity since they are
// Go pointers.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	if aIsNum != bIsNum {
		return false
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as == bs
	}
	if aIsStr != bIsStr {
		return false
	}
	ab, aIsBool := a.(bool)
	bb, bIsBool := b.(bool)
	if aIsBool && bIsBool {
		return ab == bb
	}
	if aIsBool != bIsBool {
		return false
	}
	// Functions, classes, instances, and builtins are always backed by a
	// pointer; comparing the interface values directly compares identity.
	return a == b
}

// stringify renders a runtime value the way Lox's `print` does.
func stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case *function:
		return fmt.Sprintf("<function %s>", v.declaration.Name.Lexeme)
	case *class:
		return fmt.Sprintf("<class %s>", v.name)
	case *instance:
		return fmt.Sprintf("<instance of %s>", v.class.name)
	case callable:
		return "<native fn>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber renders a float64 the way the reference Lox implementation
// does: shortest round-trip representation, with a trailing ".0" dropped
// for integer-valued floats so that 3.0 prints as "3".
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.HasSuffix(s, ".0") {
		return strings.TrimSuffix(s, ".0")
	}
	return s
}
