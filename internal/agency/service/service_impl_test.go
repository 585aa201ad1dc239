package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abdouni493/auto-rental-application/internal/agency/domain"
)

var dbSeq int

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:agency_service_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Agency{}); err != nil {
		t.Fatalf("migrate agencies: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), domain.Agency{Wilaya: "Alger"}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("error = %v, want ErrInvalidName", err)
	}

	created, err := svc.Create(context.Background(), domain.Agency{Name: "DriveFlow Oran", Wilaya: "Oran"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("missing id")
	}
}

func TestUpdatePersistsClearedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Agency{
		Name:   "DriveFlow Management",
		Wilaya: "Alger",
		Phone:  "021 55 66 77",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amended := *created
	amended.Phone = ""
	updated, err := svc.Update(ctx, amended)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "" {
		t.Fatalf("cleared phone kept stale value %q", updated.Phone)
	}
	if updated.Wilaya != "Alger" {
		t.Fatalf("untouched field lost: %q", updated.Wilaya)
	}

	stored, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Phone != "" {
		t.Fatalf("cleared phone not persisted: %+v", stored)
	}
}

func TestUpdateUnknownAgency(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), domain.Agency{ID: "agc-ghost", Name: "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
