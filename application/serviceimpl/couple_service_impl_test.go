package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"couplesync/domain/apperrors"
	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/pkg/utils"
)

func TestCreateCouple(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()

	t.Run("creates with unique invite code", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		pub := &fakeChangePublisher{}
		svc := NewCoupleService(repo, pub)

		couple, err := svc.CreateCouple(ctx, alice)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if couple.Partner1ID != alice {
			t.Errorf("Partner1ID = %v, want %v", couple.Partner1ID, alice)
		}
		if couple.Partner2ID != nil {
			t.Error("Partner2ID set on fresh couple")
		}
		if len(couple.InviteCode) != utils.InviteCodeLength {
			t.Errorf("invite code %q length = %d, want %d", couple.InviteCode, len(couple.InviteCode), utils.InviteCodeLength)
		}

		events := pub.published()
		if len(events) != 1 || events[0].Table != ports.TableCouples || events[0].Action != ports.ActionInsert {
			t.Errorf("published events = %+v", events)
		}
	})

	t.Run("idempotent for already-paired user", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		first, err := svc.CreateCouple(ctx, alice)
		if err != nil {
			t.Fatalf("first create: %v", err)
		}
		second, err := svc.CreateCouple(ctx, alice)
		if err != nil {
			t.Fatalf("second create: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("second create made new couple %v, want %v", second.ID, first.ID)
		}
		if len(repo.couples) != 1 {
			t.Errorf("repo has %d couples, want 1", len(repo.couples))
		}
	})
}

func TestJoinCouple(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	seed := func(repo *fakeCoupleRepo) *models.Couple {
		couple := &models.Couple{
			ID:         uuid.New(),
			InviteCode: "abc123",
			Partner1ID: alice,
			CreatedAt:  time.Now(),
		}
		repo.couples[couple.ID] = couple
		return couple
	}

	t.Run("empty code", func(t *testing.T) {
		svc := NewCoupleService(newFakeCoupleRepo(), &fakeChangePublisher{})
		_, err := svc.JoinCouple(ctx, bob, "   ")
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		seed(repo)
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		_, err := svc.JoinCouple(ctx, bob, "nosuch")
		if apperrors.KindOf(err) != apperrors.KindLookup {
			t.Errorf("kind = %v, want KindLookup", apperrors.KindOf(err))
		}
		if err.Error() != "Invalid invite code" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("already paired", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		couple := seed(repo)
		carol := uuid.New()
		repo.couples[couple.ID].Partner2ID = &carol
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		_, err := svc.JoinCouple(ctx, bob, "abc123")
		if apperrors.KindOf(err) != apperrors.KindConflict {
			t.Errorf("kind = %v, want KindConflict", apperrors.KindOf(err))
		}
		if err.Error() != "This couple is already paired" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("self join", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		seed(repo)
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		_, err := svc.JoinCouple(ctx, alice, "abc123")
		if err == nil || err.Error() != "You can't join your own couple" {
			t.Errorf("error = %v, want self-join message", err)
		}
	})

	t.Run("success publishes change for both members", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		seed(repo)
		pub := &fakeChangePublisher{}
		svc := NewCoupleService(repo, pub)

		couple, err := svc.JoinCouple(ctx, bob, "abc123")
		if err != nil {
			t.Fatalf("join: %v", err)
		}
		if couple.Partner2ID == nil || *couple.Partner2ID != bob {
			t.Errorf("Partner2ID = %v, want %v", couple.Partner2ID, bob)
		}

		events := pub.published()
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
		if events[0].Action != ports.ActionUpdate || len(events[0].UserIDs) != 2 {
			t.Errorf("event = %+v", events[0])
		}
	})

	t.Run("join race loser gets conflict", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		seed(repo)
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		if _, err := svc.JoinCouple(ctx, bob, "abc123"); err != nil {
			t.Fatalf("first join: %v", err)
		}

		carol := uuid.New()
		_, err := svc.JoinCouple(ctx, carol, "abc123")
		if apperrors.KindOf(err) != apperrors.KindConflict {
			t.Errorf("kind = %v, want KindConflict", apperrors.KindOf(err))
		}
	})
}

func TestGetMyCouple(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()

	t.Run("none", func(t *testing.T) {
		svc := NewCoupleService(newFakeCoupleRepo(), &fakeChangePublisher{})
		couple, err := svc.GetMyCouple(ctx, alice)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if couple != nil {
			t.Errorf("couple = %+v, want nil", couple)
		}
	})

	t.Run("found as partner2", func(t *testing.T) {
		repo := newFakeCoupleRepo()
		id := uuid.New()
		repo.couples[id] = &models.Couple{
			ID:         id,
			InviteCode: "abc123",
			Partner1ID: uuid.New(),
			Partner2ID: &alice,
			CreatedAt:  time.Now(),
		}
		svc := NewCoupleService(repo, &fakeChangePublisher{})

		couple, err := svc.GetMyCouple(ctx, alice)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if couple == nil || couple.ID != id {
			t.Errorf("couple = %+v, want %v", couple, id)
		}
	})
}
