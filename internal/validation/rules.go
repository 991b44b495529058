// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package validation

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Rule names understood by the engine.
const (
	RuleRequired    = "required"
	RuleNumeric     = "numeric"
	RuleValidDate   = "valid_date"
	RuleInList      = "in_list"
	RuleValidURL    = "valid_url"
	RuleValidEmail  = "valid_email"
	RuleAlphaSpace  = "alpha_space"
	RuleGreaterThan = "greater_than_equal_to"
	RuleLessThan    = "less_than_equal_to"
	RuleIfExist     = "if_exist"
)

// RuleSet maps field names to pipe-separated rule strings.
type RuleSet map[string]string

// Messages overrides the default error message for specific field/rule pairs,
// e.g. Messages{"company_name": {"required": "Company name is required"}}.
type Messages map[string]map[string]string

// Rule is one parsed check, e.g. valid_date[Y-m-d] has Name "valid_date" and
// Param "Y-m-d".
type Rule struct {
	Name  string
	Param string
}

// parseRules splits a pipe-separated rule string into individual rules and
// reports whether the if_exist marker was present.
func parseRules(spec string) ([]Rule, bool) {
	var (
		rules   []Rule
		ifExist bool
	)
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == RuleIfExist {
			ifExist = true
			continue
		}
		rule := Rule{Name: part}
		if open := strings.IndexByte(part, '['); open >= 0 && strings.HasSuffix(part, "]") {
			rule.Name = part[:open]
			rule.Param = part[open+1 : len(part)-1]
		}
		rules = append(rules, rule)
	}
	return rules, ifExist
}

// Validate checks a payload against a rule set and returns a field-to-message
// map of violations. An empty map means the payload passed. All fields are
// checked; the first failing rule per field wins.
func Validate(payload map[string]any, rules RuleSet, overrides Messages) map[string]string {
	errs := make(map[string]string)

	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		parsed, ifExist := parseRules(rules[field])
		raw, present := payload[field]
		if !present && ifExist {
			continue
		}

		value := ""
		if present {
			value = Stringify(raw)
		}

		for _, rule := range parsed {
			if rule.Name != RuleRequired && !present {
				continue
			}
			if ok := applyRule(rule, value); !ok {
				errs[field] = message(field, rule, overrides)
				break
			}
		}
	}
	return errs
}

// applyRule runs a single rule predicate against a stringified value.
func applyRule(rule Rule, value string) bool {
	switch rule.Name {
	case RuleRequired:
		return strings.TrimSpace(value) != ""
	case RuleNumeric:
		return checkVar(value, "numeric")
	case RuleValidEmail:
		return checkVar(value, "email")
	case RuleValidURL:
		return checkVar(value, "url") || checkVar(value, "http_url")
	case RuleAlphaSpace:
		return checkVar(value, "alpha_space")
	case RuleInList:
		return inList(value, rule.Param)
	case RuleValidDate:
		_, err := time.Parse(DateLayout(rule.Param), value)
		return err == nil
	case RuleGreaterThan:
		n, err := strconv.ParseFloat(value, 64)
		return err == nil && checkVar(n, "gte="+rule.Param)
	case RuleLessThan:
		n, err := strconv.ParseFloat(value, 64)
		return err == nil && checkVar(n, "lte="+rule.Param)
	default:
		// Unknown rule names are treated as passing rather than rejecting
		// requests over a descriptor typo.
		return true
	}
}

// inList reports whether value matches one of the comma-separated literals.
func inList(value, param string) bool {
	for _, item := range strings.Split(param, ",") {
		if strings.TrimSpace(item) == value {
			return true
		}
	}
	return false
}

// DateLayout converts a date format in the historical notation (Y-m-d,
// Y-m-d H:i:s) to a Go time layout.
func DateLayout(format string) string {
	var b strings.Builder
	for _, r := range format {
		switch r {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'H':
			b.WriteString("15")
		case 'i':
			b.WriteString("04")
		case 's':
			b.WriteString("05")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stringify renders a payload value the way it will be compared and stored.
// JSON numbers arrive as float64; integral values must not pick up a decimal
// point.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}
