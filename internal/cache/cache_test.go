package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-schedule/pkg/loans"
)

func TestKey(t *testing.T) {
	base := loans.LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30}

	tests := []struct {
		name  string
		a, b  loans.LoanParameters
		equal bool
	}{
		{name: "Identical", a: base, b: base, equal: true},
		{
			name:  "Negative overpayment equals none",
			a:     base,
			b:     loans.LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30, MonthlyOverpayment: -50},
			equal: true,
		},
		{name: "Different principal", a: base, b: loans.LoanParameters{Principal: 580001, AnnualInterestRate: 6, Years: 30}},
		{name: "Different rate", a: base, b: loans.LoanParameters{Principal: 580000, AnnualInterestRate: 6.01, Years: 30}},
		{name: "Different mode", a: base, b: loans.LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30, Mode: loans.ModeFalling}},
		{name: "Different overpayment", a: base, b: loans.LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30, MonthlyOverpayment: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.a) == Key(tt.b); got != tt.equal {
				t.Errorf("Key(%+v) == Key(%+v) is %v, expected %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}

	if key := Key(base); key != "mortgage-schedule:annuity:580000:6:30:0" {
		t.Errorf("unexpected key %s", key)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 0)

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	value := []byte(`{"payoffMonths":360}`)
	if err := m.Set(ctx, "key", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, ok, err := m.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != `{"payoffMonths":360}` {
		t.Errorf("Get() = %s, stored value was modified through the caller's slice", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 0)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "key", []byte("v"))

	now = now.Add(59 * time.Second)
	if _, ok, _ := m.Get(ctx, "key"); !ok {
		t.Error("expected entry to be alive before the TTL")
	}

	now = now.Add(time.Second)
	if _, ok, _ := m.Get(ctx, "key"); ok {
		t.Error("expected entry to expire at the TTL")
	}
	if m.Len() != 0 {
		t.Errorf("expected expired entry to be removed, %d left", m.Len())
	}
}

func TestMemorySweepsExpiredEntriesOnSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 0)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for _, key := range []string{"a", "b", "c"} {
		_ = m.Set(ctx, key, []byte(key))
	}

	now = now.Add(time.Minute)
	_ = m.Set(ctx, "d", []byte("d"))

	if m.Len() != 1 {
		t.Fatalf("expected expired entries under other keys to be swept, %d left", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "d"); !ok {
		t.Error("expected fresh entry to survive the sweep")
	}
}

func TestMemoryEvictsAtCapacity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour, 2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", []byte("a"))
	now = now.Add(time.Second)
	_ = m.Set(ctx, "b", []byte("b"))
	now = now.Add(time.Second)

	// Overwriting an existing key never evicts.
	_ = m.Set(ctx, "b", []byte("b2"))
	if m.Len() != 2 {
		t.Fatalf("expected 2 entries after overwrite, got %d", m.Len())
	}

	_ = m.Set(ctx, "c", []byte("c"))
	if m.Len() != 2 {
		t.Fatalf("expected cache to stay at 2 entries, got %d", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "a"); ok {
		t.Error("expected the entry closest to expiry to be evicted")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok, _ := m.Get(ctx, key); !ok {
			t.Errorf("expected %s to remain cached", key)
		}
	}
}

func TestMemoryStaysBoundedUnderManyKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour, 100)

	for i := 0; i < 1000; i++ {
		_ = m.Set(ctx, Key(loans.LoanParameters{Principal: float64(1000 + i), Years: 1}), []byte("v"))
	}
	if m.Len() != 100 {
		t.Errorf("expected 100 entries, got %d", m.Len())
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	if err := c.Set(ctx, "key", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Noop cache returned a hit")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantType  string
		wantError string
	}{
		{name: "Default is memory", opts: Options{}, wantType: "*cache.Memory"},
		{name: "Bounded memory", opts: Options{Backend: "memory", MaxEntries: 10}, wantType: "*cache.Memory"},
		{name: "None", opts: Options{Backend: "none"}, wantType: "cache.Noop"},
		{name: "Redis", opts: Options{Backend: "redis", RedisAddress: "localhost:6379", TTL: time.Second}, wantType: "*cache.Redis"},
		{name: "Redis without address", opts: Options{Backend: "redis"}, wantError: "requires redisAddress"},
		{name: "Unknown backend", opts: Options{Backend: "memcached"}, wantError: "expected cache backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts, nil)
			if tt.wantError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantError) {
					t.Fatalf("expected error containing %q, got %v", tt.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := typeName(c); got != tt.wantType {
				t.Errorf("New() returned %s, expected %s", got, tt.wantType)
			}
			if r, ok := c.(*Redis); ok {
				_ = r.Close()
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *Memory:
		return "*cache.Memory"
	case *Redis:
		return "*cache.Redis"
	case Noop:
		return "cache.Noop"
	}
	return "unknown"
}
