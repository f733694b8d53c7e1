package repository

// device_detail.go models the category-specific half of a device record as a
// tagged union: exactly one variant may be set, and that variant must agree
// with the parent device's category.  The write path enforces both rules
// before any row is inserted, replacing the old always-possibly-null parallel
// joins with a single DeviceDetail value.

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Device category values stored in devices.category.  Mouse and Keyboard are
// distinct categories that share the mouse_keyboards extension table.
const (
	CategoryLaptop   = "Laptop"
	CategoryTablet   = "Tablet"
	CategoryMouse    = "Mouse"
	CategoryKeyboard = "Keyboard"
	CategoryPrinter  = "Printer"
	CategoryCRAV     = "CRAV"
)

// LaptopDetail holds the laptop extension attributes.
type LaptopDetail struct {
	CPUTypeID              *uint64 `json:"cpu_type_id"`
	HardDiskCapacity       *string `json:"hard_disk_capacity"`
	MemoryCapacity         *string `json:"memory_capacity"`
	ProcessorSpeed         *string `json:"processor_speed"`
	ProcessorType          *string `json:"processor_type"`
	ComputerName           *string `json:"computer_name"`
	MacAddress             *string `json:"mac_address"`
	OperatingSystem        *string `json:"operating_system"`
	MicrosoftOfficeVersion *string `json:"microsoft_office_version"`
	Antivirus              *string `json:"antivirus"`
	PDFReader              *string `json:"pdf_reader"`
	WarrantyStartDate      *string `json:"warranty_start_date"`
	WarrantyEndDate        *string `json:"warranty_end_date"`
	ReturnDate             *string `json:"return_date"`
}

// TabletDetail holds the tablet extension attributes.
type TabletDetail struct {
	IMEINumber        *string `json:"imei_number"`
	OperatingSystem   *string `json:"operating_system"`
	Version           *string `json:"version"`
	HardDiskCapacity  *string `json:"hard_disk_capacity"`
	MemoryCapacity    *string `json:"memory_capacity"`
	WarrantyStartDate *string `json:"warranty_start_date"`
	WarrantyEndDate   *string `json:"warranty_end_date"`
	ReturnDate        *string `json:"return_date"`
}

// PeripheralDetail holds the mouse/keyboard extension attributes.
type PeripheralDetail struct {
	ConnectionTypeID *uint64 `json:"connection_type_id"`
}

// PrinterDetail holds the printer extension attributes.
type PrinterDetail struct {
	IPAddress        *string `json:"ip_address"`
	FeatureID        *uint64 `json:"feature_id"`
	ConnectionTypeID *uint64 `json:"connection_type_id"`
}

// CRAVDetail holds the conference-room AV equipment extension attributes.
type CRAVDetail struct {
	Name       *string `json:"name"`
	IPAddress  *string `json:"ip_address"`
	MacAddress *string `json:"mac_address"`
}

// DeviceDetail is the tagged union over the five category extensions.  A zero
// DeviceDetail means the device has no extension record (categories outside
// the known set).
type DeviceDetail struct {
	Laptop     *LaptopDetail     `json:"laptop,omitempty"`
	Tablet     *TabletDetail     `json:"tablet,omitempty"`
	Peripheral *PeripheralDetail `json:"peripheral,omitempty"`
	Printer    *PrinterDetail    `json:"printer,omitempty"`
	CRAV       *CRAVDetail       `json:"crav_equipment,omitempty"`
}

var ErrDetailVariants = errors.New("device detail must carry exactly one variant")
var ErrDetailMismatch = errors.New("device detail does not match device category")

// Variants counts how many union members are populated.
func (d DeviceDetail) Variants() int {
	n := 0
	if d.Laptop != nil {
		n++
	}
	if d.Tablet != nil {
		n++
	}
	if d.Peripheral != nil {
		n++
	}
	if d.Printer != nil {
		n++
	}
	if d.CRAV != nil {
		n++
	}
	return n
}

// Matches reports whether the populated variant agrees with the given device
// category.  A Peripheral variant matches either Mouse or Keyboard since both
// categories share one extension table.
func (d DeviceDetail) Matches(category string) bool {
	table := detailTableFor(category)
	switch {
	case d.Laptop != nil:
		return table == "laptops"
	case d.Tablet != nil:
		return table == "tablets"
	case d.Peripheral != nil:
		return table == "mouse_keyboards"
	case d.Printer != nil:
		return table == "printers"
	case d.CRAV != nil:
		return table == "crav_equipment"
	}
	return false
}

// detailTableFor maps a category to its extension table, or "" for categories
// with no extension.
func detailTableFor(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "laptop":
		return "laptops"
	case "tablet":
		return "tablets"
	case "mouse", "keyboard", "mouse/keyboard", "mouse_keyboard":
		return "mouse_keyboards"
	case "printer":
		return "printers"
	case "crav", "crav equipment", "crav_equipment":
		return "crav_equipment"
	}
	return ""
}

// insertDetail writes the populated variant's extension row inside the given
// transaction.  Callers have already validated the union shape.
func insertDetail(ctx context.Context, tx *sql.Tx, devicesID uint64, d DeviceDetail) error {
	switch {
	case d.Laptop != nil:
		l := d.Laptop
		_, err := tx.ExecContext(ctx,
			`INSERT INTO laptops (devices_id, cpu_type_id, hard_disk_capacity, memory_capacity,
				processor_speed, processor_type, computer_name, mac_address, operating_system,
				microsoft_office_version, antivirus, pdf_reader, warranty_start_date,
				warranty_end_date, return_date)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			devicesID, l.CPUTypeID, l.HardDiskCapacity, l.MemoryCapacity, l.ProcessorSpeed,
			l.ProcessorType, l.ComputerName, l.MacAddress, l.OperatingSystem,
			l.MicrosoftOfficeVersion, l.Antivirus, l.PDFReader, l.WarrantyStartDate,
			l.WarrantyEndDate, l.ReturnDate)
		return err
	case d.Tablet != nil:
		t := d.Tablet
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tablets (devices_id, imei_number, operating_system, version,
				hard_disk_capacity, memory_capacity, warranty_start_date, warranty_end_date, return_date)
			 VALUES (?,?,?,?,?,?,?,?,?)`,
			devicesID, t.IMEINumber, t.OperatingSystem, t.Version, t.HardDiskCapacity,
			t.MemoryCapacity, t.WarrantyStartDate, t.WarrantyEndDate, t.ReturnDate)
		return err
	case d.Peripheral != nil:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO mouse_keyboards (devices_id, connection_type_id) VALUES (?,?)`,
			devicesID, d.Peripheral.ConnectionTypeID)
		return err
	case d.Printer != nil:
		p := d.Printer
		_, err := tx.ExecContext(ctx,
			`INSERT INTO printers (devices_id, ip_address, feature_id, connection_type_id)
			 VALUES (?,?,?,?)`,
			devicesID, p.IPAddress, p.FeatureID, p.ConnectionTypeID)
		return err
	case d.CRAV != nil:
		e := d.CRAV
		_, err := tx.ExecContext(ctx,
			`INSERT INTO crav_equipment (devices_id, name, ip_address, mac_address)
			 VALUES (?,?,?,?)`,
			devicesID, e.Name, e.IPAddress, e.MacAddress)
		return err
	}
	return ErrDetailVariants
}
