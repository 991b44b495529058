// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package validation

import "fmt"

// errorMessageTemplates maps rule names to error message templates taking the
// field name.
var errorMessageTemplates = map[string]string{
	RuleRequired:   "The %s field is required",
	RuleNumeric:    "The %s field must contain only numbers",
	RuleValidDate:  "The %s field must contain a valid date",
	RuleValidURL:   "The %s field must contain a valid URL",
	RuleValidEmail: "The %s field must contain a valid email address",
	RuleAlphaSpace: "The %s field may only contain alphabetical characters and spaces",
}

// errorMessageWithParam maps rule names to error message templates taking the
// field name and the rule parameter.
var errorMessageWithParam = map[string]string{
	RuleInList:      "The %s field must be one of: %s",
	RuleValidDate:   "The %s field must contain a valid date in format %s",
	RuleGreaterThan: "The %s field must contain a number greater than or equal to %s",
	RuleLessThan:    "The %s field must contain a number less than or equal to %s",
}

// message resolves the error message for a failed rule, preferring a per-field
// override when the rule set declares one.
func message(field string, rule Rule, overrides Messages) string {
	if fieldMsgs, ok := overrides[field]; ok {
		if msg, ok := fieldMsgs[rule.Name]; ok {
			return msg
		}
	}
	if rule.Param != "" {
		if tmpl, ok := errorMessageWithParam[rule.Name]; ok {
			return fmt.Sprintf(tmpl, field, rule.Param)
		}
	}
	if tmpl, ok := errorMessageTemplates[rule.Name]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	return fmt.Sprintf("The %s field is invalid", field)
}
