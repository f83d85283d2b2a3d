package web

import "strconv"

// ContextValue returns the value stored under key, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// ParamID parses a positive integer URL parameter such as {id}.
// Zero, negative and malformed values report false.
func ParamID(c Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
