package models

import (
	"testing"

	"github.com/mikepea/chatter/pkg/chatter/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	tables := []string{"users", "groups", "group_members", "messages"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}

	// Running twice must be a no-op
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Second AutoMigrate failed: %v", err)
	}
}

func TestUserModel(t *testing.T) {
	db := setupTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	user := User{Username: "alice", Token: "token-1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set after create")
	}

	// Test unique username constraint
	dup := User{Username: "alice", Token: "token-2"}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected error when creating user with duplicate username")
	}

	// Test unique token constraint
	sameToken := User{Username: "bob", Token: "token-1"}
	if err := db.Create(&sameToken).Error; err == nil {
		t.Error("Expected error when creating user with duplicate token")
	}

	// Usernames are case-sensitive
	upper := User{Username: "Alice", Token: "token-3"}
	if err := db.Create(&upper).Error; err != nil {
		t.Errorf("Expected case-distinct username to be accepted: %v", err)
	}
}

func TestGroupAndMembership(t *testing.T) {
	db := setupTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	user := User{Username: "alice", Token: "token-1"}
	db.Create(&user)

	group := Group{Name: "Book Club", CreatedBy: user.ID}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	membership := GroupMembership{GroupID: group.ID, UserID: user.ID}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("Failed to create membership: %v", err)
	}
	if membership.JoinedAt.IsZero() {
		t.Error("Expected JoinedAt to be set after create")
	}

	// Test composite key uniqueness
	again := GroupMembership{GroupID: group.ID, UserID: user.ID}
	if err := db.Create(&again).Error; err == nil {
		t.Error("Expected error when adding the same user to a group twice")
	}

	// Test loading the membership with its relationships
	var loaded GroupMembership
	if err := db.Preload("Group").Preload("User").First(&loaded, "group_id = ? AND user_id = ?", group.ID, user.ID).Error; err != nil {
		t.Fatalf("Failed to load membership: %v", err)
	}
	if loaded.Group == nil || loaded.Group.Name != "Book Club" {
		t.Error("Expected membership to preload its group")
	}
	if loaded.User == nil || loaded.User.Username != "alice" {
		t.Error("Expected membership to preload its user")
	}
}

func TestForeignKeys(t *testing.T) {
	db := setupTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := db.Create(&Group{Name: "Orphan", CreatedBy: 42}).Error; err == nil {
		t.Error("Expected error when creating a group for a missing user")
	}

	user := User{Username: "alice", Token: "token-1"}
	db.Create(&user)

	if err := db.Create(&GroupMembership{GroupID: 99, UserID: user.ID}).Error; err == nil {
		t.Error("Expected error when joining a missing group")
	}
	if err := db.Create(&Message{GroupID: 99, UserID: user.ID, Content: "hello"}).Error; err == nil {
		t.Error("Expected error when posting to a missing group")
	}
}
