package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/data/repos/testutil"
	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
)

func newSession(userID uuid.UUID, access, refresh string, expires time.Time) *types.UserToken {
	return &types.UserToken{UserID: userID, AccessToken: access, RefreshToken: refresh, ExpiresAt: expires}
}

func TestUserTokenRepoLookupAndRevoke(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTokenRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "usertokenrepo@example.com")

	sess := newSession(u.ID, "access-1", "refresh-1", time.Now().Add(time.Hour))
	if err := repo.Create(dbc, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == uuid.Nil {
		t.Fatalf("expected id assigned on create")
	}

	byAccess, err := repo.FindByAccessToken(dbc, "access-1")
	if err != nil || byAccess == nil || byAccess.ID != sess.ID {
		t.Fatalf("FindByAccessToken: row=%+v err=%v", byAccess, err)
	}
	byRefresh, err := repo.FindByRefreshToken(dbc, "refresh-1")
	if err != nil || byRefresh == nil || byRefresh.ID != sess.ID {
		t.Fatalf("FindByRefreshToken: row=%+v err=%v", byRefresh, err)
	}
	if miss, err := repo.FindByAccessToken(dbc, "nope"); err != nil || miss != nil {
		t.Fatalf("expected miss, got row=%+v err=%v", miss, err)
	}
	if blank, err := repo.FindByRefreshToken(dbc, "  "); err != nil || blank != nil {
		t.Fatalf("blank lookup: row=%+v err=%v", blank, err)
	}

	if err := repo.Revoke(dbc, uuid.Nil, sess.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if gone, _ := repo.FindByAccessToken(dbc, "access-1"); gone != nil {
		t.Fatalf("session still present after revoke")
	}
	if err := repo.Revoke(dbc); err != nil {
		t.Fatalf("empty Revoke: %v", err)
	}
}

func TestUserTokenRepoPurgeExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTokenRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "purge@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")

	for _, s := range []*types.UserToken{
		newSession(u.ID, "a-stale", "r-stale", time.Now().Add(-time.Hour)),
		newSession(u.ID, "a-fresh", "r-fresh", time.Now().Add(time.Hour)),
		newSession(u.ID, "a-fresh-2", "r-fresh-2", time.Now().Add(time.Hour)),
		newSession(other.ID, "a-other", "r-other", time.Now().Add(time.Hour)),
	} {
		if err := repo.Create(dbc, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := repo.PurgeExpired(dbc, time.Now())
	if err != nil || n != 1 {
		t.Fatalf("PurgeExpired: n=%d err=%v", n, err)
	}
	if gone, _ := repo.FindByAccessToken(dbc, "a-stale"); gone != nil {
		t.Fatalf("expired session survived purge")
	}
	for _, access := range []string{"a-fresh", "a-fresh-2", "a-other"} {
		if kept, _ := repo.FindByAccessToken(dbc, access); kept == nil {
			t.Fatalf("live session %s was purged", access)
		}
	}
}
