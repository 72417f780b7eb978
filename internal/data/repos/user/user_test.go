package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	created, err := repo.Create(dbc, []*types.User{
		{
			ID:        uuid.New(),
			Email:     "UserRepo@example.com",
			FirstName: "A",
			LastName:  "B",
			Role:      types.RoleStudent,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	byEmail, err := repo.GetByEmail(dbc, "userrepo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: unexpected result: %+v", byEmail)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil, got %+v", missing)
	}

	if err := repo.UpdateRole(dbc, created[0].ID, types.RoleMentor); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, err = repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID(after role): %v", err)
	}
	if got.Role != types.RoleMentor {
		t.Fatalf("UpdateRole: want=%s got=%s", types.RoleMentor, got.Role)
	}
}

func TestMentorProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewMentorProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "mentor@example.com", types.RoleMentor)

	created, err := repo.Create(dbc, []*types.MentorProfile{{UserID: u.ID, Headline: "Go", Status: types.MentorStatusPending}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByUserID: unexpected result: %+v", got)
	}
	if got.User == nil || got.User.Email != u.Email {
		t.Fatalf("GetByUserID: expected preloaded user, got %+v", got.User)
	}
	if got.IsApproved() {
		t.Fatalf("expected pending profile")
	}

	now := time.Now().UTC()
	if err := repo.UpdateStatus(dbc, got.ID, types.MentorStatusApproved, &now); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err = repo.GetByID(dbc, got.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsApproved() || got.ApprovedAt == nil {
		t.Fatalf("UpdateStatus: expected approved with timestamp, got %+v", got)
	}

	if _, err := repo.Create(dbc, []*types.MentorProfile{{UserID: u.ID}}); err == nil {
		t.Fatalf("Create: expected unique violation for second profile")
	}
}
