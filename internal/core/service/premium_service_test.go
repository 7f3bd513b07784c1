package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
	"github.com/tunedeck/music-system/internal/infrastructure/db/memory"
)

func newPremiumFixture() (*PremiumService, *memory.UserRepository) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	svc := NewPremiumService(users, memory.NewSubscriptionRepository(store), zerolog.Nop())
	return svc, users
}

func seedUser(t *testing.T, users *memory.UserRepository, userType string, expiry *time.Time) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), &domain.User{
		Username: userType + "-user", Email: userType + "@example.com", UserType: userType,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if expiry != nil {
		if _, err := users.Update(context.Background(), u.ID, ports.UserUpdate{PremiumExpiry: &expiry}); err != nil {
			t.Fatalf("seed expiry: %v", err)
		}
	}
	return u
}

func TestPremiumService_AdminAlwaysPremium(t *testing.T) {
	svc, users := newPremiumFixture()
	admin := seedUser(t, users, domain.TypeAdmin, nil)

	premium, err := svc.IsPremium(context.Background(), admin.ID)
	if err != nil || !premium {
		t.Fatalf("expected admin premium, got (%v, %v)", premium, err)
	}
}

func TestPremiumService_ExpiredPremiumDowngradesOnRead(t *testing.T) {
	svc, users := newPremiumFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	u := seedUser(t, users, domain.TypePremium, &past)

	premium, err := svc.IsPremium(ctx, u.ID)
	if err != nil {
		t.Fatalf("IsPremium: %v", err)
	}
	if premium {
		t.Fatal("expected expired premium to report false")
	}

	// The downgrade is an observable side effect of the read.
	stored, _ := users.FindByID(ctx, u.ID)
	if stored.UserType != domain.TypeFree {
		t.Fatalf("expected stored tier free after read, got %q", stored.UserType)
	}
	if stored.PremiumExpiry != nil {
		t.Fatal("expected expiry cleared after downgrade")
	}
}

func TestPremiumService_ValidPremiumStaysPremium(t *testing.T) {
	svc, users := newPremiumFixture()
	ctx := context.Background()

	future := time.Now().Add(24 * time.Hour)
	u := seedUser(t, users, domain.TypePremium, &future)

	premium, err := svc.IsPremium(ctx, u.ID)
	if err != nil || !premium {
		t.Fatalf("expected premium, got (%v, %v)", premium, err)
	}
	stored, _ := users.FindByID(ctx, u.ID)
	if stored.UserType != domain.TypePremium {
		t.Fatalf("tier must not change on a valid read, got %q", stored.UserType)
	}
}

func TestPremiumService_UserTypeAppliesLazyExpiry(t *testing.T) {
	svc, users := newPremiumFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	u := seedUser(t, users, domain.TypePremium, &past)

	got, err := svc.UserType(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserType: %v", err)
	}
	if got != domain.TypeFree {
		t.Fatalf("expected free, got %q", got)
	}

	if got, _ := svc.UserType(ctx, 999); got != "unknown" {
		t.Fatalf("expected unknown for missing user, got %q", got)
	}
}

func TestPremiumService_SubscribePromotesUser(t *testing.T) {
	svc, users := newPremiumFixture()
	ctx := context.Background()

	u := seedUser(t, users, domain.TypeFree, nil)

	sub, err := svc.Subscribe(ctx, ports.SubscribeInput{
		UserID:   u.ID,
		Duration: 30 * 24 * time.Hour,
		Amount:   "9.99",
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Fatalf("expected active subscription, got %q", sub.Status)
	}

	stored, _ := users.FindByID(ctx, u.ID)
	if stored.UserType != domain.TypePremium {
		t.Fatalf("expected promotion to premium, got %q", stored.UserType)
	}
	if stored.PremiumExpiry == nil || !stored.PremiumExpiry.Equal(sub.EndDate) {
		t.Fatalf("expected expiry %v, got %v", sub.EndDate, stored.PremiumExpiry)
	}

	premium, _ := svc.IsPremium(ctx, u.ID)
	if !premium {
		t.Fatal("expected subscriber to be premium")
	}
}

func TestPremiumService_IsAdmin(t *testing.T) {
	svc, users := newPremiumFixture()
	ctx := context.Background()

	admin := seedUser(t, users, domain.TypeAdmin, nil)
	free := seedUser(t, users, domain.TypeFree, nil)

	if ok, _ := svc.IsAdmin(ctx, admin.ID); !ok {
		t.Fatal("expected admin")
	}
	if ok, _ := svc.IsAdmin(ctx, free.ID); ok {
		t.Fatal("expected non-admin")
	}
	if ok, _ := svc.IsAdmin(ctx, 404); ok {
		t.Fatal("expected missing user to be non-admin")
	}
}
