package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it is missing and applies column additions for older databases.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	// 1. Create tables if they don't exist
	tables := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS workers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			worker_code VARCHAR(30) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			nationality VARCHAR(100),
			position VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'Active',
			salary NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (salary >= 0),
			phone VARCHAR(50),
			visa_expiry DATE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			worker_id UUID NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
			att_date DATE NOT NULL,
			status VARCHAR(10) NOT NULL,
			in_time TIME,
			out_time TIME,
			hours_worked NUMERIC(6,2) NOT NULL DEFAULT 0,
			overtime_hours NUMERIC(6,2) NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (worker_id, att_date)
		)`,
		`CREATE TABLE IF NOT EXISTS buildings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			zone VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS wc_groups (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			location VARCHAR(255),
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS work_orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			wo_number VARCHAR(30) UNIQUE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'Open',
			priority VARCHAR(20) DEFAULT 'Medium',
			category VARCHAR(100),
			location_type VARCHAR(20),
			building_id UUID REFERENCES buildings(id) ON DELETE SET NULL,
			wc_group_id UUID REFERENCES wc_groups(id) ON DELETE SET NULL,
			assigned_worker_id UUID REFERENCES workers(id) ON DELETE SET NULL,
			requested_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			sla_hours INTEGER NOT NULL DEFAULT 0,
			target_date DATE,
			closed_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS fleet_vehicles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			plate_no VARCHAR(50),
			hourly_rate NUMERIC(14,2) NOT NULL DEFAULT 0,
			daily_rate NUMERIC(14,2) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'Available',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS fleet_timesheet (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			vehicle_id UUID NOT NULL REFERENCES fleet_vehicles(id) ON DELETE CASCADE,
			worker_id UUID REFERENCES workers(id) ON DELETE SET NULL,
			used_date DATE NOT NULL,
			hours_used NUMERIC(6,2) NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_reports (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			report_date DATE NOT NULL,
			report_type VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Normal',
			wc_group_id UUID REFERENCES wc_groups(id) ON DELETE SET NULL,
			building_id UUID REFERENCES buildings(id) ON DELETE SET NULL,
			work_order_id UUID REFERENCES work_orders(id) ON DELETE SET NULL,
			summary TEXT NOT NULL,
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS building_inspections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			building_id UUID NOT NULL REFERENCES buildings(id) ON DELETE CASCADE,
			inspected_at TIMESTAMP WITH TIME ZONE NOT NULL,
			inspector_name VARCHAR(255),
			cleanliness_rating INTEGER CHECK (cleanliness_rating BETWEEN 1 AND 5),
			safety_rating INTEGER CHECK (safety_rating BETWEEN 1 AND 5),
			maintenance_rating INTEGER CHECK (maintenance_rating BETWEEN 1 AND 5),
			comments TEXT,
			photo_path TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			invoice_no VARCHAR(30) UNIQUE NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			labour_total NUMERIC(16,2) NOT NULL DEFAULT 0,
			fleet_total NUMERIC(16,2) NOT NULL DEFAULT 0,
			other_total NUMERIC(16,2) NOT NULL DEFAULT 0,
			overhead_pct NUMERIC(5,2) NOT NULL DEFAULT 15,
			overhead_amount NUMERIC(16,2) NOT NULL DEFAULT 0,
			grand_total NUMERIC(16,2) NOT NULL DEFAULT 0,
			client_name VARCHAR(255),
			contract_ref VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating tables: %v", err)
			return err
		}
	}

	// 2. Ensure columns and indexes exist on databases created by older versions
	migrations := []string{
		`ALTER TABLE workers ADD COLUMN IF NOT EXISTS phone VARCHAR(50)`,
		`ALTER TABLE workers ADD COLUMN IF NOT EXISTS visa_expiry DATE`,
		`ALTER TABLE work_orders ADD COLUMN IF NOT EXISTS location_type VARCHAR(20)`,
		`ALTER TABLE work_orders ADD COLUMN IF NOT EXISTS category VARCHAR(100)`,
		`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS contract_ref VARCHAR(100)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(att_date)`,
		`CREATE INDEX IF NOT EXISTS idx_work_orders_requested_at ON work_orders(requested_at)`,
		`CREATE INDEX IF NOT EXISTS idx_work_orders_assigned ON work_orders(assigned_worker_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fleet_timesheet_date ON fleet_timesheet(used_date)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_period ON invoices(year, month)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_reports_date ON daily_reports(report_date)`,
		`CREATE INDEX IF NOT EXISTS idx_inspections_at ON building_inspections(inspected_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running migration: %v", err)
			return err
		}
	}

	// 3. Seed default data
	seeds := []string{
		`INSERT INTO roles (name) VALUES ('admin') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name) VALUES ('supervisor') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name) VALUES ('accountant') ON CONFLICT (name) DO NOTHING`,
	}

	for _, s := range seeds {
		if _, err := db.Exec(s); err != nil {
			log.Printf("Error seeding roles: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
