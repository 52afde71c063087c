package db

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.KVEntry{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestKVStore_GetSetUpsert(t *testing.T) {
	store := NewKVStore(newTestDB(t))
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "@jewellery_items"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "@jewellery_items", "[]"); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := store.Set(ctx, "@jewellery_items", `[{"id":"a"}]`); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	v, ok, err := store.Get(ctx, "@jewellery_items")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || v != `[{"id":"a"}]` {
		t.Fatalf("expected upserted value, got %q ok=%v", v, ok)
	}

	var count int64
	if err := store.db.Model(&models.KVEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per key, got %d", count)
	}
}

func TestKVStore_KeysAreIndependent(t *testing.T) {
	store := NewKVStore(newTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "@img_counter", "7"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "@wishlists"); ok {
		t.Fatalf("unrelated key should be absent")
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestKVStore_ClosedConnection(t *testing.T) {
	conn := newTestDB(t)
	store := NewKVStore(conn)
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	_ = sqlDB.Close()

	if _, _, err := store.Get(context.Background(), "@img_counter"); err == nil {
		t.Fatalf("expected error from closed connection")
	}
	if err := store.Set(context.Background(), "@img_counter", "1"); err == nil {
		t.Fatalf("expected error from closed connection")
	}
}

func TestClient_PingAndDialect(t *testing.T) {
	client := NewFromGorm(newTestDB(t), config.StoreDriverSQLite)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Dialect() != "sqlite3" {
		t.Fatalf("unexpected dialect %q", client.Dialect())
	}
	if Dialect(config.StoreDriverPostgres) != "postgres" {
		t.Fatalf("postgres driver should map to postgres dialect")
	}
}

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, config.StoreDriverSQLite, config.DBConfig{}, nil); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
	if _, err := New(ctx, "mysql", config.DBConfig{DSN: "x"}, nil); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestNew_SQLiteMemory(t *testing.T) {
	client, err := New(context.Background(), config.StoreDriverSQLite, config.DBConfig{
		DSN:          "file:newclient?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
