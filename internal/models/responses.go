// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

// Package models defines the JSON envelope types shared by every endpoint.
//
// Mutations answer with a fixed success/failure envelope; reads answer with a
// bare array or object of records. The shapes are part of the public API
// contract and must not change between resources.
package models

// Record is a dynamically-shaped row exchanged with the persistence gateway.
// Column values are rendered as strings (NULL columns stay nil) so every
// resource serializes identically regardless of the underlying column type.
type Record map[string]any

// SuccessResponse is the envelope for successful mutations.
//
//	{"status":200,"messages":{"success":"Note add success"},"id":7}
//
// ID is only populated for create operations.
type SuccessResponse struct {
	Status   int             `json:"status"`
	Messages SuccessMessages `json:"messages"`
	ID       int64           `json:"id,omitempty"`
}

// SuccessMessages carries the human-readable success message.
type SuccessMessages struct {
	Success string `json:"success"`
}

// FailureResponse is the envelope for failed mutations and invalid requests.
//
//	{"status":false,"messages":{"error":"Client delete fail"}}
//	{"status":false,"messages":{"error":{"company_name":"Company name is required"}}}
//
// Error is either a single string or a field-to-message map produced by the
// validation layer.
type FailureResponse struct {
	Status   bool            `json:"status"`
	Messages FailureMessages `json:"messages"`
}

// FailureMessages carries the error payload of a FailureResponse.
type FailureMessages struct {
	Error any `json:"error"`
}

// AuthFailure is written by the token authenticator when a request carries a
// missing, invalid or expired token. It short-circuits the request before any
// handler runs.
//
//	{"status":false,"message":"Token not found"}
type AuthFailure struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// RouteNotFound is the body served for unmatched paths.
//
//	{"status":false,"code":404,"message":"Route not found"}
type RouteNotFound struct {
	Status  bool   `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewSuccess builds a mutation success envelope.
func NewSuccess(message string) *SuccessResponse {
	return &SuccessResponse{Status: 200, Messages: SuccessMessages{Success: message}}
}

// NewCreated builds a create success envelope carrying the new row id.
func NewCreated(message string, id int64) *SuccessResponse {
	return &SuccessResponse{Status: 200, Messages: SuccessMessages{Success: message}, ID: id}
}

// NewFailure builds a failure envelope with a single error message.
func NewFailure(message string) *FailureResponse {
	return &FailureResponse{Messages: FailureMessages{Error: message}}
}

// NewFieldFailure builds a failure envelope carrying per-field validation
// messages.
func NewFieldFailure(fields map[string]string) *FailureResponse {
	return &FailureResponse{Messages: FailureMessages{Error: fields}}
}
