// schema.go creates the inventory tables at startup when they do not exist
// yet.  The statements are ordered so referenced tables exist before the
// tables that point at them.  Only the comments table carries a database
// cascade; every other dependent row is cleaned up by the repositories inside
// their own transactions.  Email columns use the binary collation so equality
// and the UNIQUE index are case sensitive; MySQL's default *_ci collation
// would treat Jane@x.com and jane@x.com as the same address.
package database

import (
	"context"
	"database/sql"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		firstname VARCHAR(255) NOT NULL,
		lastname VARCHAR(255) NOT NULL,
		email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role_id BIGINT UNSIGNED NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		date_created DATE NULL,
		last_updated DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cpu_types (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS connection_types (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS printer_features (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS location_types (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parishes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location_type_id BIGINT UNSIGNED NULL,
		parish_id BIGINT UNSIGNED NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS divisions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location_id BIGINT UNSIGNED NULL,
		added_by VARCHAR(255) NULL,
		date_added DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		firstname VARCHAR(255) NOT NULL,
		lastname VARCHAR(255) NOT NULL,
		email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL UNIQUE,
		phone_number VARCHAR(255) NULL,
		position VARCHAR(255) NULL,
		division_id BIGINT UNSIGNED NULL,
		date_created DATE NULL,
		added_by VARCHAR(255) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS devices (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		category VARCHAR(255) NOT NULL,
		brand VARCHAR(255) NOT NULL,
		model VARCHAR(255) NOT NULL,
		serial_number VARCHAR(255) NOT NULL,
		inventory_number BIGINT NULL,
		delivery_date DATE NULL,
		deployment_date DATE NULL,
		status_id BIGINT UNSIGNED NULL,
		division_id BIGINT UNSIGNED NULL,
		client_id BIGINT UNSIGNED NULL,
		added_by VARCHAR(255) NULL,
		last_updated_by VARCHAR(255) NULL,
		repaired_date DATE NULL,
		repaired_by VARCHAR(255) NULL,
		bos_date DATE NULL,
		bos_by VARCHAR(255) NULL,
		deployed_by VARCHAR(255) NULL,
		assigned_on DATE NULL,
		unassigned_on DATE NULL,
		UNIQUE KEY idx_devices_serial (serial_number),
		KEY idx_devices_client (client_id)
	)`,
	`CREATE TABLE IF NOT EXISTS laptops (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		cpu_type_id BIGINT UNSIGNED NULL,
		hard_disk_capacity VARCHAR(255) NULL,
		memory_capacity VARCHAR(255) NULL,
		processor_speed VARCHAR(255) NULL,
		processor_type VARCHAR(255) NULL,
		computer_name VARCHAR(255) NULL,
		mac_address VARCHAR(255) NULL,
		operating_system VARCHAR(255) NULL,
		microsoft_office_version VARCHAR(255) NULL,
		antivirus VARCHAR(255) NULL,
		pdf_reader VARCHAR(255) NULL,
		warranty_start_date DATE NULL,
		warranty_end_date DATE NULL,
		return_date DATE NULL,
		KEY idx_laptops_device (devices_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tablets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		imei_number VARCHAR(255) NULL,
		operating_system VARCHAR(255) NULL,
		version VARCHAR(255) NULL,
		hard_disk_capacity VARCHAR(255) NULL,
		memory_capacity VARCHAR(255) NULL,
		warranty_start_date DATE NULL,
		warranty_end_date DATE NULL,
		return_date DATE NULL,
		KEY idx_tablets_device (devices_id)
	)`,
	`CREATE TABLE IF NOT EXISTS mouse_keyboards (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		connection_type_id BIGINT UNSIGNED NULL,
		KEY idx_mouse_keyboards_device (devices_id)
	)`,
	`CREATE TABLE IF NOT EXISTS printers (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		ip_address VARCHAR(255) NULL,
		feature_id BIGINT UNSIGNED NULL,
		connection_type_id BIGINT UNSIGNED NULL,
		KEY idx_printers_device (devices_id)
	)`,
	`CREATE TABLE IF NOT EXISTS crav_equipment (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NULL,
		ip_address VARCHAR(255) NULL,
		mac_address VARCHAR(255) NULL,
		KEY idx_crav_equipment_device (devices_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		devices_id BIGINT UNSIGNED NOT NULL,
		comment_value TEXT NOT NULL,
		CONSTRAINT fk_comments_device FOREIGN KEY (devices_id)
			REFERENCES devices (id) ON DELETE CASCADE
	)`,
}

// Migrate runs every schema statement in order.  Statements are idempotent so
// repeated startups are harmless.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
