package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedis_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:bn:en:abc").SetVal("the translation")

	val, ok := c.Get(context.Background(), "bn:en:abc")
	if !ok {
		t.Error("expected cache hit")
	}
	if val != "the translation" {
		t.Errorf("got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedis_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:bn:en:abc").RedisNil()

	val, ok := c.Get(context.Background(), "bn:en:abc")
	if ok {
		t.Error("expected cache miss")
	}
	if val != "" {
		t.Errorf("expected empty value, got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedis_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisFromClient(db, time.Hour, "test:")

	mock.ExpectSet("test:bn:en:abc", "অনুবাদ", time.Hour).SetVal("OK")

	if err := c.Set(context.Background(), "bn:en:abc", "অনুবাদ"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedis_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisFromClient(db, 0, "")

	mock.ExpectGet("anubad:k").SetVal("v")

	if _, ok := c.Get(context.Background(), "k"); !ok {
		t.Error("expected hit with default prefix")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
