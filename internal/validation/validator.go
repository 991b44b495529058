// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package validation implements the declarative per-field rule engine used by
// every resource handler.
//
// Rule sets are written as pipe-separated rule strings keyed by field name:
//
//	rules := map[string]string{
//	    "company_name": "required|alpha_space",
//	    "phone":        "numeric|if_exist",
//	    "website":      "valid_url|if_exist",
//	}
//
// The if_exist marker skips every check for a field that is absent from the
// payload, which lets one rule table serve both create (field mandatory) and
// update (field optional) flows.
package validation

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

var alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// GetValidator returns the shared validator instance. The instance caches
// struct metadata internally and is safe for concurrent use.
func GetValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// alpha_space: letters and whitespace only, used for name-like fields.
		//nolint:errcheck // registration only fails for empty tag names
		validatorInstance.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
			return alphaSpaceRegex.MatchString(fl.Field().String())
		})
	})
	return validatorInstance
}

// checkVar validates a single value against a validator tag and reports
// whether it passed.
func checkVar(value any, tag string) bool {
	return GetValidator().Var(value, tag) == nil
}
