package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

func sampleResponse(mpn string) *domain.SearchResponse {
	return &domain.SearchResponse{
		Query:     domain.Query{MPN: mpn},
		Timestamp: time.Now().UTC(),
		Exact: []domain.ProviderResult{
			{
				Supplier:   "DigiKey",
				PartNumber: mpn,
				Stock:      domain.Int(42),
				Price:      domain.Float(9.99),
				URL:        "https://www.digikey.com/en/products/detail/1",
				ExactMatch: true,
			},
		},
	}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := ResponseKey(domain.Query{MPN: "ST201M-C5"}, []string{"DigiKey"})
	if err := cache.Set(ctx, key, sampleResponse("ST201M-C5"), 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Query.MPN != "ST201M-C5" {
		t.Errorf("Get() query MPN = %q, want %q", got.Query.MPN, "ST201M-C5")
	}
	if len(got.Exact) != 1 {
		t.Fatalf("Get() exact rows = %d, want 1", len(got.Exact))
	}
	if got.Exact[0].Stock == nil || *got.Exact[0].Stock != 42 {
		t.Errorf("Get() stock = %v, want 42", got.Exact[0].Stock)
	}
}

func TestMemoryCache_SetCopiesResponse(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	response := sampleResponse("ST201M-C5")
	key := ResponseKey(response.Query, []string{"DigiKey"})
	if err := cache.Set(ctx, key, response, 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Mutating the caller's copy must not reach the cached one
	response.Exact[0].URL = "mutated"

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Exact[0].URL == "mutated" {
		t.Error("cached response aliases the caller's slice")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := ResponseKey(domain.Query{MPN: "EXPIRES"}, nil)
	if err := cache.Set(ctx, key, sampleResponse("EXPIRES"), 1*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := cache.Get(ctx, key); err != domain.ErrCacheMiss {
		t.Errorf("Get() after expiry error = %v, want %v", err, domain.ErrCacheMiss)
	}
	exists, err := cache.Exists(ctx, key)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true, want false after expiration")
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := ResponseKey(domain.Query{MPN: "DELETE-ME"}, []string{"Galco"})
	if err := cache.Set(ctx, key, sampleResponse("DELETE-ME"), 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); err != nil {
		t.Fatalf("Get() before delete error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestResponseKey_Normalization(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "MPN case folds",
			a:    ResponseKey(domain.Query{MPN: "abc123"}, []string{"DigiKey"}),
			b:    ResponseKey(domain.Query{MPN: "ABC123"}, []string{"DigiKey"}),
		},
		{
			name: "provider order is irrelevant",
			a:    ResponseKey(domain.Query{MPN: "X"}, []string{"eBay", "DigiKey"}),
			b:    ResponseKey(domain.Query{MPN: "X"}, []string{"DigiKey", "eBay"}),
		},
		{
			name: "surrounding whitespace is trimmed",
			a:    ResponseKey(domain.Query{MPN: "  X ", Manufacturer: " Hoffman "}, nil),
			b:    ResponseKey(domain.Query{MPN: "X", Manufacturer: "HOFFMAN"}, nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a != tt.b {
				t.Errorf("keys differ: %q vs %q", tt.a, tt.b)
			}
		})
	}
}

func TestResponseKey_DistinctQueries(t *testing.T) {
	a := ResponseKey(domain.Query{MPN: "X"}, []string{"DigiKey"})
	b := ResponseKey(domain.Query{MPN: "X"}, []string{"DigiKey", "eBay"})
	if a == b {
		t.Error("different provider sets must not collide")
	}

	c := ResponseKey(domain.Query{MPN: "X", Manufacturer: "Hoffman"}, []string{"DigiKey"})
	if a == c {
		t.Error("manufacturer must be part of the key")
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := ResponseKey(domain.Query{MPN: fmt.Sprintf("PART-%d", i)}, nil)
		if err := cache.Set(ctx, key, sampleResponse("PART"), 1*time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := ResponseKey(domain.Query{MPN: fmt.Sprintf("PART-%d", id)}, nil)
			if err := cache.Set(ctx, key, sampleResponse("PART"), 1*time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
