package cookiekit

import (
	"net/textproto"
	"strings"
)

type Cookie struct {
	Name  string
	Value string
}

// GetValue returns the value of the first pair named name in a Cookie header
// line. The bool is false when no pair matches, so a cookie set to "" is
// still reported as found.
func GetValue(name, line string) (string, bool) {
	if name == "" {
		return "", false
	}
	var part string
	for len(line) > 0 {
		part, line, _ = strings.Cut(line, ";")
		part = textproto.TrimString(part)
		if part == "" {
			continue
		}
		if k, v := parsePair(part); k == name {
			return v, true
		}
	}
	return "", false
}

func Value(name, line string) string {
	v, _ := GetValue(name, line)
	return v
}

// ValueOr returns fallback when name is absent. A present empty value is returned as is.
func ValueOr(name, line, fallback string) string {
	if v, ok := GetValue(name, line); ok {
		return v
	}
	return fallback
}

func Has(name, line string) bool {
	_, ok := GetValue(name, line)
	return ok
}

// ReadCookies splits a Cookie header line into its pairs, in order.
func ReadCookies(line string) []*Cookie {
	if len(line) == 0 {
		return []*Cookie{}
	}
	cookies := make([]*Cookie, 0, strings.Count(line, ";")+1)
	line = textproto.TrimString(line)

	var part string
	for len(line) > 0 { // continue since we have rest
		part, line, _ = strings.Cut(line, ";")
		part = textproto.TrimString(part)
		if part == "" {
			continue
		}
		name, val := parsePair(part)
		cookies = append(cookies, &Cookie{Name: name, Value: val})
	}
	return cookies
}

// parsePair cuts on the first '=' only and drops one pair of surrounding quotes.
func parsePair(part string) (string, string) {
	name, val, _ := strings.Cut(part, "=")
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	return name, val
}
