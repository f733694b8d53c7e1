package database

import (
	"strings"
	"testing"
)

func statementFor(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			return stmt
		}
	}
	t.Fatalf("no CREATE TABLE statement for %s", table)
	return ""
}

// Email equality has to be case sensitive, which on MySQL means the column
// itself must collate binary; the server default *_ci collation would fold
// Jane@x.com and jane@x.com into one address.
func TestEmailColumnsCollateBinary(t *testing.T) {
	for _, table := range []string{"users", "clients"} {
		stmt := statementFor(t, table)
		if !strings.Contains(stmt, "email VARCHAR(255) COLLATE utf8mb4_bin") {
			t.Errorf("%s: email column is not binary collated:\n%s", table, stmt)
		}
	}
}

// Serial numbers identify devices in delete, assign and status updates, so
// the schema must refuse a second row with the same serial.
func TestSerialNumberIsUnique(t *testing.T) {
	stmt := statementFor(t, "devices")
	if !strings.Contains(stmt, "UNIQUE KEY idx_devices_serial (serial_number)") {
		t.Errorf("devices: serial_number lacks a unique index:\n%s", stmt)
	}
}
