package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*DeviceRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDeviceRepo(db), mock
}

func strPtr(s string) *string { return &s }

func TestCreateWithDetailCommitsBothRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO devices").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO laptops").
		WithArgs(42, nil, nil, nil, nil, nil, nil, "AA:BB:CC", nil, nil, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	d := Device{Category: CategoryLaptop, Brand: "Dell", Model: "Latitude", SerialNumber: "SN-100"}
	detail := DeviceDetail{Laptop: &LaptopDetail{MacAddress: strPtr("AA:BB:CC")}}
	if err := repo.CreateWithDetail(context.Background(), &d, detail, "Pat Rivers"); err != nil {
		t.Fatalf("CreateWithDetail: %v", err)
	}
	if d.ID != 42 {
		t.Errorf("device id = %d, want 42", d.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWithDetailRollsBackWhenExtensionInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO devices").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO laptops").
		WillReturnError(errors.New("extension insert refused"))
	mock.ExpectRollback()

	d := Device{Category: CategoryLaptop, Brand: "Dell", Model: "Latitude", SerialNumber: "SN-100"}
	detail := DeviceDetail{Laptop: &LaptopDetail{}}
	if err := repo.CreateWithDetail(context.Background(), &d, detail, "Pat Rivers"); err == nil {
		t.Fatal("expected error from failed extension insert")
	}
	// Rollback must have been issued: no device row survives without its
	// extension.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWithDetailRejectsBadUnionsBeforeSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	d := Device{Category: CategoryLaptop, Brand: "Dell", Model: "Latitude", SerialNumber: "SN-100"}
	err := repo.CreateWithDetail(context.Background(), &d, DeviceDetail{}, "Pat Rivers")
	if !errors.Is(err, ErrDetailVariants) {
		t.Errorf("empty union: err = %v, want ErrDetailVariants", err)
	}

	err = repo.CreateWithDetail(context.Background(), &d,
		DeviceDetail{Tablet: &TabletDetail{}}, "Pat Rivers")
	if !errors.Is(err, ErrDetailMismatch) {
		t.Errorf("wrong variant: err = %v, want ErrDetailMismatch", err)
	}
	// Neither call may have touched the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestCreateMapsDuplicateSerial(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO devices").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'SN-100' for key 'idx_devices_serial'"))

	d := Device{Category: "Monitor", Brand: "Dell", Model: "U2419", SerialNumber: "SN-100"}
	if err := repo.Create(context.Background(), &d, "Pat Rivers"); !errors.Is(err, ErrSerialExists) {
		t.Errorf("err = %v, want ErrSerialExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
