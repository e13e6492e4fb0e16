package utils

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Round2 rounds x to 2 decimal places (prices in API responses).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// NormalizeDTO trims string fields (and string-slice elements) on a
// pointer-to-struct DTO before validation, so " " never passes a required
// check.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				el := f.Index(j)
				el.SetString(strings.TrimSpace(el.String()))
			}
		}
	}
}

// ParseIntDefault parses s as a non-negative int, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
