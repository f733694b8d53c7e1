package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Device is the root equipment record shared by every category.  Category
// extension attributes live in DeviceDetail; lifecycle attribution fields
// record who touched the record and when.
type Device struct {
	ID              uint64  `json:"id"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	SerialNumber    string  `json:"serial_number"`
	InventoryNumber *int64  `json:"inventory_number"`
	DeliveryDate    *string `json:"delivery_date"`
	DeploymentDate  *string `json:"deployment_date"`
	StatusID        *uint64 `json:"status_id"`
	DivisionID      *uint64 `json:"division_id"`
	ClientID        *uint64 `json:"client_id"`
	AddedBy         *string `json:"added_by"`
	LastUpdatedBy   *string `json:"last_updated_by"`
	RepairedDate    *string `json:"repaired_date"`
	RepairedBy      *string `json:"repaired_by"`
	BosDate         *string `json:"bos_date"`
	BosBy           *string `json:"bos_by"`
	DeployedBy      *string `json:"deployed_by"`
	AssignedOn      *string `json:"assigned_on"`
	UnassignedOn    *string `json:"unassigned_on"`
}

// DeviceRecord is a device joined with its lookup names, assigned client and
// category extension; it is the shape returned by the serial-number fetch.
type DeviceRecord struct {
	Device
	Status          *string       `json:"status"`
	Division        *string       `json:"division"`
	ClientFirstname *string       `json:"client_firstname"`
	ClientLastname  *string       `json:"client_lastname"`
	Detail          *DeviceDetail `json:"detail,omitempty"`
}

type DeviceRepo struct{ DB *sql.DB }

func NewDeviceRepo(db *sql.DB) *DeviceRepo { return &DeviceRepo{DB: db} }

var ErrDeviceNotFound = errors.New("device not found")
var ErrStatusNotFound = errors.New("status not found")
var ErrSerialExists = errors.New("serial number already exists")

const deviceInsert = `INSERT INTO devices (category, brand, model, serial_number,
	inventory_number, delivery_date, deployment_date, status_id, division_id, added_by)
	VALUES (?,?,?,?,?,?,?,?,?,?)`

// Create inserts a root device row with no extension.  Used for categories
// outside the five known extension kinds.  Serial numbers are unique; a
// duplicate surfaces as ErrSerialExists, which also settles races between
// concurrent adds of the same serial.
func (r *DeviceRepo) Create(ctx context.Context, d *Device, addedBy string) error {
	res, err := r.DB.ExecContext(ctx, deviceInsert,
		d.Category, d.Brand, d.Model, d.SerialNumber, d.InventoryNumber,
		d.DeliveryDate, d.DeploymentDate, d.StatusID, d.DivisionID, addedBy)
	if err != nil {
		if dupKey(err) {
			return ErrSerialExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.AddedBy = &addedBy
	return nil
}

// CreateWithDetail inserts the device row and its category extension as one
// transaction.  The device insert runs first so its generated id can seed the
// extension's devices_id; any failure rolls both inserts back, so either both
// rows exist afterwards or neither does.  The detail union must carry exactly
// one variant and that variant must match the device category.
func (r *DeviceRepo) CreateWithDetail(ctx context.Context, d *Device, detail DeviceDetail, addedBy string) error {
	if detail.Variants() != 1 {
		return ErrDetailVariants
	}
	if !detail.Matches(d.Category) {
		return ErrDetailMismatch
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, deviceInsert,
		d.Category, d.Brand, d.Model, d.SerialNumber, d.InventoryNumber,
		d.DeliveryDate, d.DeploymentDate, d.StatusID, d.DivisionID, addedBy)
	if err != nil {
		if dupKey(err) {
			err = ErrSerialExists
		}
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.AddedBy = &addedBy

	err = insertDetail(ctx, tx, d.ID, detail)
	return err
}

const deviceSelect = `SELECT d.id, d.category, d.brand, d.model, d.serial_number,
	d.inventory_number,
	DATE_FORMAT(d.delivery_date,'%Y-%m-%d'), DATE_FORMAT(d.deployment_date,'%Y-%m-%d'),
	d.status_id, d.division_id, d.client_id, d.added_by, d.last_updated_by,
	DATE_FORMAT(d.repaired_date,'%Y-%m-%d'), d.repaired_by,
	DATE_FORMAT(d.bos_date,'%Y-%m-%d'), d.bos_by, d.deployed_by,
	DATE_FORMAT(d.assigned_on,'%Y-%m-%d'), DATE_FORMAT(d.unassigned_on,'%Y-%m-%d'),
	s.description, v.name, c.firstname, c.lastname
	FROM devices d
	LEFT JOIN statuses s ON s.id = d.status_id
	LEFT JOIN divisions v ON v.id = d.division_id
	LEFT JOIN clients c ON c.id = d.client_id`

func scanDeviceRecord(row *sql.Row) (*DeviceRecord, error) {
	var rec DeviceRecord
	err := row.Scan(&rec.ID, &rec.Category, &rec.Brand, &rec.Model, &rec.SerialNumber,
		&rec.InventoryNumber, &rec.DeliveryDate, &rec.DeploymentDate,
		&rec.StatusID, &rec.DivisionID, &rec.ClientID, &rec.AddedBy, &rec.LastUpdatedBy,
		&rec.RepairedDate, &rec.RepairedBy, &rec.BosDate, &rec.BosBy, &rec.DeployedBy,
		&rec.AssignedOn, &rec.UnassignedOn,
		&rec.Status, &rec.Division, &rec.ClientFirstname, &rec.ClientLastname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetBySerial fetches a device with its lookup names and, when the requested
// category maps to a known extension table, its category extension merged in.
// Categories outside the known set fall back to the device-plus-lookups
// projection instead of an error.
func (r *DeviceRepo) GetBySerial(ctx context.Context, serial, category string) (*DeviceRecord, error) {
	rec, err := scanDeviceRecord(r.DB.QueryRowContext(ctx,
		deviceSelect+` WHERE d.serial_number=? LIMIT 1`, serial))
	if err != nil {
		return nil, err
	}

	detail := DeviceDetail{}
	switch detailTableFor(category) {
	case "laptops":
		var l LaptopDetail
		err = r.DB.QueryRowContext(ctx,
			`SELECT cpu_type_id, hard_disk_capacity, memory_capacity, processor_speed,
				processor_type, computer_name, mac_address, operating_system,
				microsoft_office_version, antivirus, pdf_reader,
				DATE_FORMAT(warranty_start_date,'%Y-%m-%d'),
				DATE_FORMAT(warranty_end_date,'%Y-%m-%d'),
				DATE_FORMAT(return_date,'%Y-%m-%d')
			 FROM laptops WHERE devices_id=? LIMIT 1`, rec.ID).
			Scan(&l.CPUTypeID, &l.HardDiskCapacity, &l.MemoryCapacity, &l.ProcessorSpeed,
				&l.ProcessorType, &l.ComputerName, &l.MacAddress, &l.OperatingSystem,
				&l.MicrosoftOfficeVersion, &l.Antivirus, &l.PDFReader,
				&l.WarrantyStartDate, &l.WarrantyEndDate, &l.ReturnDate)
		if err == nil {
			detail.Laptop = &l
		}
	case "tablets":
		var t TabletDetail
		err = r.DB.QueryRowContext(ctx,
			`SELECT imei_number, operating_system, version, hard_disk_capacity, memory_capacity,
				DATE_FORMAT(warranty_start_date,'%Y-%m-%d'),
				DATE_FORMAT(warranty_end_date,'%Y-%m-%d'),
				DATE_FORMAT(return_date,'%Y-%m-%d')
			 FROM tablets WHERE devices_id=? LIMIT 1`, rec.ID).
			Scan(&t.IMEINumber, &t.OperatingSystem, &t.Version, &t.HardDiskCapacity,
				&t.MemoryCapacity, &t.WarrantyStartDate, &t.WarrantyEndDate, &t.ReturnDate)
		if err == nil {
			detail.Tablet = &t
		}
	case "mouse_keyboards":
		var p PeripheralDetail
		err = r.DB.QueryRowContext(ctx,
			`SELECT connection_type_id FROM mouse_keyboards WHERE devices_id=? LIMIT 1`, rec.ID).
			Scan(&p.ConnectionTypeID)
		if err == nil {
			detail.Peripheral = &p
		}
	case "printers":
		var p PrinterDetail
		err = r.DB.QueryRowContext(ctx,
			`SELECT ip_address, feature_id, connection_type_id FROM printers WHERE devices_id=? LIMIT 1`, rec.ID).
			Scan(&p.IPAddress, &p.FeatureID, &p.ConnectionTypeID)
		if err == nil {
			detail.Printer = &p
		}
	case "crav_equipment":
		var e CRAVDetail
		err = r.DB.QueryRowContext(ctx,
			`SELECT name, ip_address, mac_address FROM crav_equipment WHERE devices_id=? LIMIT 1`, rec.ID).
			Scan(&e.Name, &e.IPAddress, &e.MacAddress)
		if err == nil {
			detail.CRAV = &e
		}
	default:
		return rec, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if detail.Variants() == 1 {
		rec.Detail = &detail
	}
	return rec, nil
}

// Delete removes a device together with its category extension rows and
// comments in one transaction.  Comments also cascade at the database level;
// the explicit delete keeps the policy uniform regardless of schema vintage.
func (r *DeviceRepo) Delete(ctx context.Context, serial string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM devices WHERE serial_number=? LIMIT 1`, serial).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrDeviceNotFound
		return err
	}
	if err != nil {
		return err
	}

	for _, table := range []string{"laptops", "tablets", "mouse_keyboards", "printers", "crav_equipment"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE devices_id=?`, id); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE devices_id=?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM devices WHERE id=?`, id)
	return err
}

// Assign sets a device's client reference after verifying the client exists,
// stamping assigned_on and the acting user.  An unknown client id is rejected
// instead of writing a dangling reference.
func (r *DeviceRepo) Assign(ctx context.Context, serial string, clientID uint64, actor string) error {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM clients WHERE id=? LIMIT 1`, clientID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrClientNotFound
	}
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE devices SET client_id=?, assigned_on=CURDATE(), last_updated_by=?
		 WHERE serial_number=?`, clientID, actor, serial)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// Unassign clears the client reference and stamps unassigned_on.  Every other
// device field is left untouched.
func (r *DeviceRepo) Unassign(ctx context.Context, serial, actor string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE devices SET client_id=NULL, unassigned_on=CURDATE(), last_updated_by=?
		 WHERE serial_number=?`, actor, serial)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// UpdateStatus moves the device to an existing status, rejecting unknown
// status ids before the write.
func (r *DeviceRepo) UpdateStatus(ctx context.Context, serial string, statusID uint64, actor string) error {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM statuses WHERE id=? LIMIT 1`, statusID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusNotFound
	}
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE devices SET status_id=?, last_updated_by=? WHERE serial_number=?`,
		statusID, actor, serial)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
