// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package api

import (
	"strings"

	"github.com/crewdesk/crewdesk-api/internal/validation"
)

func field(name string, def any) Field {
	return Field{Name: name, Default: def}
}

func fieldFn(name string, fn func() any) Field {
	return Field{Name: name, DefaultFn: fn}
}

// withIfExist derives update rules from create rules: every field keeps its
// checks but only when it is present in the payload.
func withIfExist(rules validation.RuleSet) validation.RuleSet {
	out := make(validation.RuleSet, len(rules))
	for name, spec := range rules {
		if !strings.Contains(spec, validation.RuleIfExist) {
			spec += "|" + validation.RuleIfExist
		}
		out[name] = spec
	}
	return out
}

// entityRegistry returns the descriptor for every /api resource. The generic
// handler runs them all; bespoke behavior (client cascade delete, user
// password hashing, lead scoping) is plugged in through descriptor hooks.
func entityRegistry() []Entity {
	clientRules := validation.RuleSet{
		"company_name":           "required|alpha_space",
		"phone":                  "numeric|if_exist",
		"website":                "valid_url|if_exist",
		"disable_online_payment": "greater_than_equal_to[0]|less_than_equal_to[1]|if_exist",
		"owner_id":               "required|numeric",
	}
	leadRules := validation.RuleSet{
		"company_name":   "required|alpha_space",
		"phone":          "numeric|if_exist",
		"website":        "valid_url|if_exist",
		"owner_id":       "required|numeric",
		"lead_status_id": "required|numeric",
		"lead_source_id": "required|numeric",
	}
	companyMessages := validation.Messages{
		"company_name": {
			validation.RuleRequired: "Company name is required",
		},
		"phone": {
			validation.RuleNumeric: "Phone should only contains numeric value",
		},
		"website": {
			validation.RuleValidURL: "Website should contains valid url",
		},
	}
	companyFields := []Field{
		field("company_name", ""),
		field("address", ""),
		field("city", ""),
		field("state", ""),
		field("zip", ""),
		field("country", ""),
		field("phone", ""),
		field("website", ""),
		field("vat_number", ""),
		field("group_ids", ""),
		field("owner_id", 0),
	}

	userRules := validation.RuleSet{
		"first_name": "required",
		"last_name":  "required",
		"email":      "required|valid_email",
		"user_type":  "required|in_list[staff,client,lead]",
		"phone":      "numeric|if_exist",
		"gender":     "in_list[male,female,other]|if_exist",
		"status":     "in_list[active,inactive]|if_exist",
		"client_id":  "numeric|if_exist",
		"role_id":    "numeric|if_exist",
	}
	taskRules := validation.RuleSet{
		"title":        "required",
		"project_id":   "required|numeric",
		"assigned_to":  "required|numeric",
		"status_id":    "required|numeric",
		"priority_id":  "required|numeric",
		"milestone_id": "numeric|if_exist",
		"points":       "numeric|if_exist",
		"deadline":     "valid_date[Y-m-d H:i:s]|if_exist",
		"start_date":   "valid_date[Y-m-d H:i:s]|if_exist",
	}
	invoiceRules := validation.RuleSet{
		"client_id":       "required|numeric",
		"bill_date":       "required|valid_date[Y-m-d]",
		"due_date":        "required|valid_date[Y-m-d]",
		"tax_id":          "numeric|if_exist",
		"tax_id2":         "numeric|if_exist",
		"discount_amount": "numeric|if_exist",
		"recurring":       "in_list[0,1]|if_exist",
		"repeat_every":    "numeric|if_exist",
		"repeat_type":     "in_list[days,weeks,months,years]|if_exist",
	}
	expenseRules := validation.RuleSet{
		"expense_date": "required|valid_date[Y-m-d]",
		"category_id":  "required|numeric",
		"title":        "required",
		"amount":       "required|numeric",
		"project_id":   "numeric|if_exist",
		"user_id":      "numeric|if_exist",
		"client_id":    "numeric|if_exist",
		"tax_id":       "numeric|if_exist",
		"tax_id2":      "numeric|if_exist",
	}

	clientRef := validation.Reference{
		Field:   "client_id",
		Table:   "clients",
		Filters: map[string]any{"is_lead": 0},
		Message: "Invalid Client ID",
	}
	projectRef := validation.Reference{
		Field:   "project_id",
		Table:   "projects",
		Message: "Invalid Project ID",
	}
	ownerRef := validation.Reference{
		Field:   "owner_id",
		Table:   "users",
		Filters: map[string]any{"status": "active"},
		Message: "Invalid owner ID",
	}

	return []Entity{
		{
			Name:  "clients",
			Label: "Client",
			Table: "clients",
			Rules: clientRules, UpdateRules: withIfExist(clientRules),
			RuleMessages: companyMessages,
			References: []validation.Reference{
				ownerRef,
				{Field: "group_ids", Table: "client_groups", Message: "Invalid Client group id.", Each: true},
			},
			Filters:       []string{"group_id", "owner_id"},
			ListFilters:   map[string]string{"group_id": "group_ids"},
			SearchColumns: []string{"company_name", "phone", "website"},
			OrderColumn:   "created_date",
			InsertFields:  append(append([]Field{}, companyFields...), field("disable_online_payment", 0)),
			BaseFilters:   map[string]any{"is_lead": 0},
			AttributionField: "owner_id",
			CreatedDate:      true,
			DeleteFn:         deleteClientCascade,
		},
		{
			Name:  "leads",
			Label: "Lead",
			Table: "clients",
			Rules: leadRules, UpdateRules: withIfExist(leadRules),
			RuleMessages: companyMessages,
			References: []validation.Reference{
				ownerRef,
				{Field: "lead_status_id", Table: "lead_status", Message: "Invalid Lead status ID"},
				{Field: "lead_source_id", Table: "lead_source", Message: "Invalid Lead source ID"},
			},
			Filters:       []string{"owner_id", "lead_status_id"},
			SearchColumns: []string{"company_name", "phone"},
			OrderColumn:   "created_date",
			InsertFields: append(append([]Field{}, companyFields...),
				field("lead_status_id", 0),
				field("lead_source_id", 0)),
			BaseFilters:      map[string]any{"is_lead": 1},
			AttributionField: "owner_id",
			CreatedDate:      true,
		},
		{
			Name:  "projects",
			Label: "Project",
			Table: "projects",
			Rules: validation.RuleSet{
				"title":      "required",
				"client_id":  "required|numeric",
				"start_date": "valid_date[Y-m-d]|if_exist",
				"deadline":   "valid_date[Y-m-d]|if_exist",
				"price":      "numeric|if_exist",
				"status":     "in_list[open,completed,hold,canceled]|if_exist",
			},
			References:    []validation.Reference{clientRef},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "created_date",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("client_id", 0),
				field("start_date", nil),
				field("deadline", nil),
				field("price", 0),
				field("labels", ""),
				field("status", "open"),
			},
			Attribution: true,
			CreatedDate: true,
		},
		{
			Name:  "tasks",
			Label: "Task",
			Table: "tasks",
			Rules: taskRules, UpdateRules: withIfExist(taskRules),
			References: []validation.Reference{
				projectRef,
				{Field: "assigned_to", Table: "users", Message: "Invalid User ID"},
				{Field: "status_id", Table: "task_status", Message: "Invalid Status ID"},
				{Field: "priority_id", Table: "task_priority", Message: "Invalid Priority ID"},
				{Field: "milestone_id", Table: "milestones", Message: "Invalid Milestone ID", SkipZero: true},
			},
			Filters:       []string{"project_id", "status", "assigned_to"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "created_date",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("project_id", 0),
				field("assigned_to", 0),
				field("status_id", 0),
				field("priority_id", 0),
				field("milestone_id", 0),
				field("points", 1),
				field("start_date", nil),
				field("deadline", nil),
				field("collaborators", ""),
				field("status", "to_do"),
			},
			Attribution: true,
			CreatedDate: true,
		},
		{
			Name:  "invoices",
			Label: "Invoice",
			Table: "invoices",
			Rules: invoiceRules, UpdateRules: withIfExist(invoiceRules),
			References:    []validation.Reference{clientRef, {Field: "project_id", Table: "projects", Message: "Invalid Project ID", SkipZero: true}},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"note", "status"},
			OrderColumn:   "bill_date",
			InsertFields: []Field{
				field("client_id", 0),
				field("project_id", 0),
				field("bill_date", ""),
				field("due_date", ""),
				field("tax_id", 0),
				field("tax_id2", 0),
				field("discount_amount", 0),
				field("discount_amount_type", "percentage"),
				field("discount_type", "after_tax"),
				field("recurring", 0),
				field("repeat_every", 0),
				field("repeat_type", nil),
				field("note", ""),
				field("labels", ""),
				field("status", "draft"),
			},
			Attribution: true,
		},
		{
			Name:  "tickets",
			Label: "Ticket",
			Table: "tickets",
			Rules: validation.RuleSet{
				"title":          "required",
				"client_id":      "required|numeric",
				"ticket_type_id": "numeric|if_exist",
				"assigned_to":    "numeric|if_exist",
				"status":         "in_list[new,open,closed]|if_exist",
			},
			References: []validation.Reference{
				clientRef,
				{Field: "ticket_type_id", Table: "ticket_types", Message: "Invalid Ticket type ID", SkipZero: true},
			},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"title"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("title", ""),
				field("client_id", 0),
				field("project_id", 0),
				field("ticket_type_id", 0),
				field("assigned_to", 0),
				field("status", "new"),
				field("labels", ""),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "users",
			Label: "User",
			Table: "users",
			Rules: userRules,
			UpdateRules: validation.RuleSet{
				"first_name": "required|if_exist",
				"last_name":  "required|if_exist",
				"email":      "valid_email|if_exist",
				"phone":      "numeric|if_exist",
				"client_id":  "numeric|if_exist",
				"role_id":    "numeric|if_exist",
			},
			StrictUpdateRules: withIfExist(userRules),
			Filters:           []string{"user_type", "status"},
			SearchColumns:     []string{"first_name", "last_name", "email"},
			OrderColumn:       "created_at",
			InsertFields: []Field{
				field("first_name", ""),
				field("last_name", ""),
				field("email", ""),
				field("password", ""),
				field("user_type", "staff"),
				field("status", "active"),
				field("phone", ""),
				field("job_title", "Untitled"),
				field("gender", nil),
				field("client_id", 0),
				field("role_id", 0),
				field("address", nil),
				field("skype", nil),
			},
			CreatedAt: true,
			Mutate:    hashUserPassword,
		},
		{
			Name:  "expenses",
			Label: "Expense",
			Table: "expenses",
			Rules: expenseRules, UpdateRules: withIfExist(expenseRules),
			References: []validation.Reference{
				{Field: "category_id", Table: "expense_categories", Message: "Invalid Category ID"},
				{Field: "project_id", Table: "projects", Message: "Invalid Project ID", SkipZero: true},
			},
			Filters:       []string{"project_id", "category_id", "user_id"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "expense_date",
			InsertFields: []Field{
				field("expense_date", ""),
				field("category_id", 0),
				field("title", ""),
				field("description", ""),
				field("amount", 0),
				field("project_id", 0),
				field("user_id", 0),
				field("client_id", 0),
				field("tax_id", 0),
				field("tax_id2", 0),
				field("files", "[]"),
			},
			Attribution: true,
		},
		{
			Name:  "estimates",
			Label: "Estimate",
			Table: "estimates",
			Rules: validation.RuleSet{
				"client_id":     "required|numeric",
				"estimate_date": "required|valid_date[Y-m-d]",
				"valid_until":   "required|valid_date[Y-m-d]",
			},
			References:    []validation.Reference{clientRef},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"note"},
			OrderColumn:   "estimate_date",
			InsertFields: []Field{
				field("client_id", 0),
				field("estimate_date", ""),
				field("valid_until", ""),
				field("status", "draft"),
				field("note", ""),
				field("project_id", 0),
				field("tax_id", 0),
				field("tax_id2", 0),
				field("discount_amount", 0),
				field("discount_amount_type", "percentage"),
				field("discount_type", "after_tax"),
			},
			Attribution: true,
		},
		{
			Name:  "proposals",
			Label: "Proposal",
			Table: "proposals",
			Rules: validation.RuleSet{
				"client_id":     "required|numeric",
				"proposal_date": "required|valid_date[Y-m-d]",
				"valid_until":   "required|valid_date[Y-m-d]",
			},
			References:    []validation.Reference{clientRef},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"note", "content"},
			OrderColumn:   "proposal_date",
			InsertFields: []Field{
				field("client_id", 0),
				field("proposal_date", ""),
				field("valid_until", ""),
				field("status", "draft"),
				field("note", ""),
				field("content", ""),
				field("project_id", 0),
				field("tax_id", 0),
				field("tax_id2", 0),
				field("discount_amount", 0),
				field("discount_amount_type", "percentage"),
				field("discount_type", "after_tax"),
			},
			Attribution: true,
		},
		{
			Name:  "orders",
			Label: "Order",
			Table: "orders",
			Rules: validation.RuleSet{
				"client_id":  "required|numeric",
				"order_date": "required|valid_date[Y-m-d]",
				"status_id":  "required|numeric",
			},
			References:    []validation.Reference{clientRef},
			Filters:       []string{"client_id", "status_id"},
			SearchColumns: []string{"note"},
			OrderColumn:   "order_date",
			InsertFields: []Field{
				field("client_id", 0),
				field("order_date", ""),
				field("status_id", 0),
				field("note", ""),
				field("project_id", 0),
				field("discount_amount", 0),
				field("discount_amount_type", "percentage"),
				field("discount_type", "after_tax"),
				field("files", "[]"),
			},
			Attribution: true,
		},
		{
			Name:  "contracts",
			Label: "Contract",
			Table: "contracts",
			Rules: validation.RuleSet{
				"title":         "required",
				"client_id":     "required|numeric",
				"project_id":    "numeric|if_exist",
				"contract_date": "required|valid_date[Y-m-d]",
				"valid_until":   "required|valid_date[Y-m-d]",
			},
			References:    []validation.Reference{clientRef, {Field: "project_id", Table: "projects", Message: "Invalid Project ID", SkipZero: true}},
			Filters:       []string{"client_id", "status"},
			SearchColumns: []string{"title", "content"},
			OrderColumn:   "contract_date",
			InsertFields: []Field{
				field("title", ""),
				field("client_id", 0),
				field("project_id", 0),
				field("contract_date", ""),
				field("valid_until", ""),
				field("status", "draft"),
				field("note", ""),
				field("content", ""),
				field("discount_amount", 0),
				field("discount_amount_type", "percentage"),
				field("discount_type", "after_tax"),
				field("files", "[]"),
			},
		},
		{
			Name:  "milestones",
			Label: "Milestone",
			Table: "milestones",
			Rules: validation.RuleSet{
				"title":      "required",
				"project_id": "required|numeric",
				"due_date":   "required|valid_date[Y-m-d]",
			},
			References:    []validation.Reference{projectRef},
			Filters:       []string{"project_id"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "due_date",
			InsertFields: []Field{
				field("title", ""),
				field("project_id", 0),
				field("due_date", ""),
				field("description", ""),
			},
		},
		{
			Name:  "messages",
			Label: "Message",
			Table: "messages",
			Rules: validation.RuleSet{
				"subject":      "required",
				"message":      "required",
				"from_user_id": "required|numeric",
				"to_user_id":   "required|numeric",
			},
			References: []validation.Reference{
				{Field: "from_user_id", Table: "users", Message: "Invalid User ID"},
				{Field: "to_user_id", Table: "users", Message: "Invalid User ID"},
			},
			Filters:       []string{"from_user_id", "to_user_id", "status"},
			SearchColumns: []string{"subject", "message"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("subject", ""),
				field("message", ""),
				field("from_user_id", 0),
				field("to_user_id", 0),
				field("status", "unread"),
				field("files", "[]"),
				field("deleted_by_users", ""),
			},
			CreatedAt: true,
		},
		{
			Name:          "notes",
			Label:         "Note",
			Table:         "notes",
			Rules:         validation.RuleSet{"title": "required"},
			Filters:       []string{"project_id", "client_id", "is_public"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("project_id", 0),
				field("client_id", 0),
				field("is_public", 0),
				field("files", "[]"),
			},
			UpdateColumns: []string{"title", "description", "is_public"},
			Attribution:   true,
			CreatedAt:     true,
		},
		{
			Name:  "events",
			Label: "Event",
			Table: "events",
			Rules: validation.RuleSet{
				"title":      "required",
				"start_date": "required|valid_date[Y-m-d]",
			},
			Filters:       []string{"type", "project_id"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "start_date",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("start_date", ""),
				field("end_date", nil),
				field("start_time", nil),
				field("end_time", nil),
				field("location", ""),
				field("type", "event"),
				field("project_id", 0),
				field("client_id", 0),
				field("files", "[]"),
			},
			Attribution: true,
		},
		{
			Name:  "announcements",
			Label: "Announcement",
			Table: "announcements",
			Rules: validation.RuleSet{
				"title":       "required",
				"description": "required",
				"start_date":  "required|valid_date[Y-m-d]",
				"end_date":    "required|valid_date[Y-m-d]",
			},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("start_date", ""),
				field("end_date", ""),
				field("files", "[]"),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "leave-applications",
			Label: "Leave application",
			Table: "leave_applications",
			Rules: validation.RuleSet{
				"leave_type_id": "required|numeric",
				"applicant_id":  "required|numeric",
				"start_date":    "required|valid_date[Y-m-d]",
				"end_date":      "required|valid_date[Y-m-d]",
				"reason":        "required",
			},
			References: []validation.Reference{
				{Field: "applicant_id", Table: "users", Message: "Invalid Applicant ID"},
			},
			Filters:       []string{"applicant_id", "status"},
			SearchColumns: []string{"reason"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("leave_type_id", 0),
				field("applicant_id", 0),
				field("start_date", ""),
				field("end_date", ""),
				field("reason", ""),
				field("total_days", 1),
				field("total_hours", 8),
				field("status", "pending"),
				field("files", "[]"),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:          "todos",
			Label:         "Todo",
			Table:         "todo",
			Rules:         validation.RuleSet{"title": "required"},
			Filters:       []string{"status", "created_by"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("status", "to_do"),
				field("start_date", nil),
				field("files", "[]"),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "invoice-payments",
			Label: "Invoice payment",
			Table: "invoice_payments",
			Rules: validation.RuleSet{
				"invoice_id":   "required|numeric",
				"amount":       "required|numeric",
				"payment_date": "required|valid_date[Y-m-d]",
			},
			References: []validation.Reference{
				{Field: "invoice_id", Table: "invoices", Message: "Invalid Invoice ID"},
			},
			Filters:       []string{"invoice_id"},
			SearchColumns: []string{"note"},
			OrderColumn:   "payment_date",
			InsertFields: []Field{
				field("invoice_id", 0),
				field("amount", 0),
				field("payment_date", ""),
				field("payment_method_id", 0),
				field("note", ""),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "project-comments",
			Label: "Comment",
			Table: "project_comments",
			Rules: validation.RuleSet{
				"project_id":  "required|numeric",
				"description": "required",
			},
			References:    []validation.Reference{projectRef},
			Filters:       []string{"project_id"},
			SearchColumns: []string{"description"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("project_id", 0),
				field("description", ""),
				field("files", "[]"),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "ticket-comments",
			Label: "Comment",
			Table: "ticket_comments",
			Rules: validation.RuleSet{
				"ticket_id":   "required|numeric",
				"description": "required",
			},
			References: []validation.Reference{
				{Field: "ticket_id", Table: "tickets", Message: "Invalid Ticket ID"},
			},
			Filters:       []string{"ticket_id"},
			SearchColumns: []string{"description"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("ticket_id", 0),
				field("description", ""),
				field("files", "[]"),
			},
			Attribution: true,
			CreatedAt:   true,
		},
		{
			Name:  "notifications",
			Label: "Notification",
			Table: "notifications",
			Rules: validation.RuleSet{
				"user_id": "required|numeric",
				"event":   "required",
			},
			References: []validation.Reference{
				{Field: "user_id", Table: "users", Message: "Invalid User ID"},
			},
			Filters:       []string{"user_id", "status"},
			SearchColumns: []string{"title", "event"},
			OrderColumn:   "created_at",
			InsertFields: []Field{
				field("user_id", 0),
				field("event", ""),
				field("title", ""),
				field("status", "unread"),
			},
			UpdateColumns: []string{"title", "status"},
			CreatedAt:     true,
		},
		{
			Name:          "activity-logs",
			Label:         "Activity log",
			Table:         "activity_logs",
			ReadOnly:      true,
			Filters:       []string{"log_type", "action", "created_by"},
			SearchColumns: []string{"log_type", "action"},
			OrderColumn:   "created_at",
		},
		{
			Name:  "attendance",
			Label: "Attendance",
			Table: "attendance",
			Rules: validation.RuleSet{
				"user_id": "required|numeric",
				"in_time": "required",
			},
			References: []validation.Reference{
				{Field: "user_id", Table: "users", Message: "Invalid User ID"},
			},
			Filters:       []string{"user_id", "status"},
			SearchColumns: []string{"note"},
			OrderColumn:   "in_time",
			InsertFields: []Field{
				field("user_id", 0),
				field("in_time", ""),
				field("out_time", nil),
				field("note", ""),
				field("status", "pending"),
			},
			CreatedAt: true,
		},
		{
			Name:          "payment-methods",
			Label:         "Payment method",
			Table:         "payment_methods",
			Rules:         validation.RuleSet{"title": "required"},
			SearchColumns: []string{"title", "description"},
			OrderColumn:   "id",
			InsertFields: []Field{
				field("title", ""),
				field("description", ""),
				field("type", "custom"),
			},
		},
	}
}
