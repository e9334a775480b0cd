package auditlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
	"github.com/jiaotianpharma/warehouse-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.SecurityLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedEntries(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < n; i++ {
		entry := models.SecurityLog{
			ID:               fmt.Sprintf("L%d-%02d", base.UnixMilli(), i),
			Timestamp:        base.Add(time.Duration(i) * time.Minute),
			Actor:            SystemActor,
			Action:           "DATA_UPDATE",
			Module:           "Inventory Management",
			IPAddress:        "192.168.1.10",
			Status:           enums.LogStatusSuccess,
			Description:      fmt.Sprintf("entry %d", i),
			TechnicalDetails: "{}",
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed entry %d: %v", i, err)
		}
	}
}

func TestRepositoryListReturnsMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntries(t, db, 5)

	entries, err := repo.List(ctx, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Fatalf("entries out of order at %d: %v before %v", i, entries[i-1].CreatedAt, entries[i].CreatedAt)
		}
	}
	if entries[0].Description != "entry 4" {
		t.Fatalf("most recent entry should sort first, got %q", entries[0].Description)
	}
}

func TestRepositoryListAppliesPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntries(t, db, 10)

	page, err := repo.List(ctx, pagination.Params{Limit: 3, Offset: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(page))
	}
	if page[0].Description != "entry 6" {
		t.Fatalf("unexpected first entry on page: %q", page[0].Description)
	}
}

func TestRepositoryCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntries(t, db, 4)

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 entries, got %d", count)
	}
}

func TestRecordThenListYieldsNewEntryFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, config.AuditConfig{})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	ctx := context.Background()

	seedEntries(t, db, 3)

	created, err := svc.Record(ctx, RecordEntryInput{
		Actor:       "li.na",
		Action:      "DATA_INSERT",
		Module:      "Inventory Management",
		Description: "new inventory entry",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := svc.List(ctx, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].ID != created.ID {
		t.Fatalf("newly appended entry should be first, got %q", entries[0].ID)
	}
}
