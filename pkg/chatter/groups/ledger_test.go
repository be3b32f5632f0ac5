package groups

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/database"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/store/gormstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	user := models.User{Username: username, Token: username + "-token"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestCreateGroupAddsCreator(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")

	group, err := ledger.CreateGroup(context.Background(), "Book Club", alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)
	assert.Equal(t, "Book Club", group.Name)
	assert.Equal(t, alice.ID, group.CreatedBy)
	require.Len(t, group.Members, 1)
	assert.Equal(t, alice.ID, group.Members[0].ID)
	assert.Equal(t, "alice", group.Members[0].Username)
}

func TestCreateGroupEmptyName(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")

	_, err := ledger.CreateGroup(context.Background(), "", alice.ID)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	db.Model(&models.Group{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateGroupNamesNeedNotBeUnique(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")

	first, err := ledger.CreateGroup(context.Background(), "Book Club", alice.ID)
	require.NoError(t, err)
	second, err := ledger.CreateGroup(context.Background(), "Book Club", alice.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateGroupUnknownCreator(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())

	_, err := ledger.CreateGroup(context.Background(), "Book Club", 404)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var count int64
	db.Model(&models.Group{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateGroupRollsBackWhenMembershipFails(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")

	// Fail every membership insert so only the group insert can succeed
	injected := errors.New("injected membership failure")
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_membership", func(tx *gorm.DB) {
		if tx.Statement.Table == "group_members" {
			_ = tx.AddError(injected)
		}
	})
	require.NoError(t, err)

	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	_, err = ledger.CreateGroup(context.Background(), "Book Club", alice.ID)
	require.ErrorIs(t, err, injected)

	var groups, memberships int64
	db.Model(&models.Group{}).Count(&groups)
	db.Model(&models.GroupMembership{}).Count(&memberships)
	assert.Zero(t, groups, "group insert must be rolled back")
	assert.Zero(t, memberships)
}

func TestGetGroup(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := ledger.CreateGroup(ctx, "Book Club", alice.ID)
	require.NoError(t, err)

	group, err := ledger.GetGroup(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "Book Club", group.Name)
	assert.Len(t, group.Members, 1)

	missing, err := ledger.GetGroup(ctx, created.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListGroupsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	for _, name := range []string{"Group 1", "Group 2"} {
		_, err := ledger.CreateGroup(ctx, name, alice.ID)
		require.NoError(t, err)
	}

	groups, err := ledger.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Group 2", groups[0].Name)
	assert.Equal(t, "Group 1", groups[1].Name)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	group, err := ledger.CreateGroup(ctx, "Book Club", alice.ID)
	require.NoError(t, err)

	added, err := ledger.AddMember(ctx, group.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = ledger.AddMember(ctx, group.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, added)

	// The creator is already a member
	added, err = ledger.AddMember(ctx, group.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, added)

	isMember, err := ledger.IsMember(ctx, group.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	members, err := ledger.Members(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "bob", members[1].Username)
}

func TestAddMemberConcurrentJoins(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	group, err := ledger.CreateGroup(ctx, "Book Club", alice.ID)
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]bool, attempts)
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = ledger.AddMember(ctx, group.ID, bob.ID)
		}(i)
	}
	wg.Wait()

	added := 0
	for i := range results {
		require.NoError(t, errs[i])
		if results[i] {
			added++
		}
	}
	assert.Equal(t, 1, added)
}

func TestAddMemberUnknownGroup(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	bob := createTestUser(t, db, "bob")

	_, err := ledger.AddMember(context.Background(), 99, bob.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Group not found", apperr.Message(err))
}

func TestAddMemberUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	group, err := ledger.CreateGroup(ctx, "Book Club", alice.ID)
	require.NoError(t, err)

	_, err = ledger.AddMember(ctx, group.ID, 12345)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIsMemberNeverFailsForMissingRows(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(gormstore.New(db), zap.NewNop())
	alice := createTestUser(t, db, "alice")
	carol := createTestUser(t, db, "carol")
	ctx := context.Background()

	group, err := ledger.CreateGroup(ctx, "Book Club", alice.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		groupID uint
		userID  uint
	}{
		{"non-member", group.ID, carol.ID},
		{"unknown group", group.ID + 10, alice.ID},
		{"unknown user", group.ID, 999},
		{"zero ids", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := ledger.IsMember(ctx, tt.groupID, tt.userID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	exists, err := ledger.GroupExists(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ledger.GroupExists(ctx, group.ID+10)
	require.NoError(t, err)
	assert.False(t, exists)
}
