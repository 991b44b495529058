// Crewdesk API - REST API for the Crewdesk CRM
// Copyright 2026 Crewdesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crewdesk/crewdesk-api

package database

import "fmt"

// schemaStatements creates every entity table. Column types are deliberately
// loose (SQLite affinity); the gateway reads all values back as strings.
// Every table carries id + deleted for the soft-delete contract.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_name TEXT NOT NULL,
		address TEXT DEFAULT '',
		city TEXT DEFAULT '',
		state TEXT DEFAULT '',
		zip TEXT DEFAULT '',
		country TEXT DEFAULT '',
		phone TEXT DEFAULT '',
		website TEXT DEFAULT '',
		vat_number TEXT DEFAULT '',
		group_ids TEXT DEFAULT '',
		disable_online_payment INTEGER DEFAULT 0,
		is_lead INTEGER NOT NULL DEFAULT 0,
		lead_status_id INTEGER DEFAULT 0,
		lead_source_id INTEGER DEFAULT 0,
		owner_id INTEGER NOT NULL DEFAULT 0,
		created_date TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		password TEXT DEFAULT '',
		user_type TEXT NOT NULL DEFAULT 'staff',
		status TEXT NOT NULL DEFAULT 'active',
		phone TEXT DEFAULT '',
		job_title TEXT DEFAULT '',
		gender TEXT,
		client_id INTEGER DEFAULT 0,
		role_id INTEGER DEFAULT 0,
		address TEXT,
		skype TEXT,
		created_at TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		client_id INTEGER NOT NULL DEFAULT 0,
		start_date TEXT,
		deadline TEXT,
		price REAL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'open',
		labels TEXT DEFAULT '',
		created_date TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		project_id INTEGER NOT NULL DEFAULT 0,
		assigned_to INTEGER NOT NULL DEFAULT 0,
		status_id INTEGER NOT NULL DEFAULT 0,
		priority_id INTEGER NOT NULL DEFAULT 0,
		milestone_id INTEGER DEFAULT 0,
		points INTEGER DEFAULT 1,
		start_date TEXT,
		deadline TEXT,
		collaborators TEXT DEFAULT '',
		status TEXT DEFAULT 'to_do',
		created_date TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL DEFAULT 0,
		project_id INTEGER DEFAULT 0,
		bill_date TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		tax_id INTEGER DEFAULT 0,
		tax_id2 INTEGER DEFAULT 0,
		discount_amount REAL DEFAULT 0,
		discount_amount_type TEXT DEFAULT 'percentage',
		discount_type TEXT DEFAULT 'after_tax',
		recurring INTEGER DEFAULT 0,
		repeat_every INTEGER DEFAULT 0,
		repeat_type TEXT,
		note TEXT DEFAULT '',
		labels TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		client_id INTEGER NOT NULL DEFAULT 0,
		project_id INTEGER DEFAULT 0,
		ticket_type_id INTEGER DEFAULT 0,
		assigned_to INTEGER DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'new',
		labels TEXT DEFAULT '',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		expense_date TEXT NOT NULL DEFAULT '',
		category_id INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		amount REAL NOT NULL DEFAULT 0,
		project_id INTEGER DEFAULT 0,
		user_id INTEGER DEFAULT 0,
		client_id INTEGER DEFAULT 0,
		tax_id INTEGER DEFAULT 0,
		tax_id2 INTEGER DEFAULT 0,
		files TEXT DEFAULT '[]',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS estimates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL DEFAULT 0,
		estimate_date TEXT NOT NULL DEFAULT '',
		valid_until TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		note TEXT DEFAULT '',
		project_id INTEGER DEFAULT 0,
		tax_id INTEGER DEFAULT 0,
		tax_id2 INTEGER DEFAULT 0,
		discount_amount REAL DEFAULT 0,
		discount_amount_type TEXT DEFAULT 'percentage',
		discount_type TEXT DEFAULT 'after_tax',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL DEFAULT 0,
		proposal_date TEXT NOT NULL DEFAULT '',
		valid_until TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		note TEXT DEFAULT '',
		content TEXT DEFAULT '',
		project_id INTEGER DEFAULT 0,
		tax_id INTEGER DEFAULT 0,
		tax_id2 INTEGER DEFAULT 0,
		discount_amount REAL DEFAULT 0,
		discount_amount_type TEXT DEFAULT 'percentage',
		discount_type TEXT DEFAULT 'after_tax',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL DEFAULT 0,
		order_date TEXT NOT NULL DEFAULT '',
		status_id INTEGER NOT NULL DEFAULT 0,
		note TEXT DEFAULT '',
		project_id INTEGER DEFAULT 0,
		discount_amount REAL DEFAULT 0,
		discount_amount_type TEXT DEFAULT 'percentage',
		discount_type TEXT DEFAULT 'after_tax',
		files TEXT DEFAULT '[]',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		client_id INTEGER NOT NULL DEFAULT 0,
		project_id INTEGER DEFAULT 0,
		contract_date TEXT NOT NULL DEFAULT '',
		valid_until TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		note TEXT DEFAULT '',
		content TEXT DEFAULT '',
		discount_amount REAL DEFAULT 0,
		discount_amount_type TEXT DEFAULT 'percentage',
		discount_type TEXT DEFAULT 'after_tax',
		files TEXT DEFAULT '[]',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		project_id INTEGER NOT NULL DEFAULT 0,
		due_date TEXT NOT NULL DEFAULT '',
		description TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		from_user_id INTEGER NOT NULL DEFAULT 0,
		to_user_id INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'unread',
		files TEXT DEFAULT '[]',
		deleted_by_users TEXT DEFAULT '',
		created_at TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		project_id INTEGER DEFAULT 0,
		client_id INTEGER DEFAULT 0,
		is_public INTEGER DEFAULT 0,
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT,
		start_time TEXT,
		end_time TEXT,
		location TEXT DEFAULT '',
		type TEXT NOT NULL DEFAULT 'event',
		project_id INTEGER DEFAULT 0,
		client_id INTEGER DEFAULT 0,
		files TEXT DEFAULT '[]',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS announcements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS leave_applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		leave_type_id INTEGER NOT NULL DEFAULT 0,
		applicant_id INTEGER NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		total_days REAL DEFAULT 1,
		total_hours REAL DEFAULT 8,
		status TEXT NOT NULL DEFAULT 'pending',
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS todo (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'to_do',
		start_date TEXT,
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL DEFAULT 0,
		amount REAL NOT NULL DEFAULT 0,
		payment_date TEXT NOT NULL DEFAULT '',
		payment_method_id INTEGER DEFAULT 0,
		note TEXT DEFAULT '',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS project_comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		files TEXT DEFAULT '[]',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL DEFAULT 0,
		event TEXT NOT NULL DEFAULT '',
		title TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'unread',
		created_at TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		log_type TEXT DEFAULT '',
		log_type_id INTEGER DEFAULT 0,
		action TEXT DEFAULT '',
		log_for TEXT DEFAULT '',
		log_for_id INTEGER DEFAULT 0,
		changes TEXT DEFAULT '',
		created_at TEXT DEFAULT '',
		created_by INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL DEFAULT 0,
		in_time TEXT NOT NULL DEFAULT '',
		out_time TEXT,
		note TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		type TEXT NOT NULL DEFAULT 'custom',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS client_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS project_labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		color TEXT DEFAULT '',
		context TEXT DEFAULT 'project',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS task_status (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		sort INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS task_priority (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		icon TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lead_status (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		color TEXT DEFAULT '',
		sort INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lead_source (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		sort INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS expense_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS leave_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		color TEXT DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS taxes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		percentage REAL NOT NULL DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS project_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL DEFAULT 0,
		user_id INTEGER NOT NULL DEFAULT 0,
		is_leader INTEGER DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		token TEXT NOT NULL,
		expires_at TEXT,
		created_at TEXT NOT NULL DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_is_lead ON clients(is_lead, deleted)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id, deleted)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_id, deleted)`,
	`CREATE INDEX IF NOT EXISTS idx_api_keys_token ON api_keys(token)`,
}

// migrate applies the schema. Statements are idempotent.
func (db *DB) migrate() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
