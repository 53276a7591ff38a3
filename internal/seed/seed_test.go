package seed

import (
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	// ShouldClean is off: TRUNCATE is postgres-only.
	require.NoError(t, s.Seed(Options{NumUsers: 5, NumPosts: 10}))

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 10, posts)
}

func TestCreateUsersHaveUniqueEmails(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	users, err := s.CreateUsers(20)
	require.NoError(t, err)
	require.Len(t, users, 20)

	seen := make(map[string]bool)
	for _, u := range users {
		assert.False(t, seen[u.Email], "duplicate email %s", u.Email)
		seen[u.Email] = true
		assert.NotEmpty(t, u.Avatar)
	}
}

func TestLikesRespectUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	users, err := s.CreateUsers(6)
	require.NoError(t, err)
	posts, err := s.CreatePosts(users, 8)
	require.NoError(t, err)
	require.NoError(t, s.CreateEngagement(users, posts))

	// No post may carry two likes from the same user.
	var dupes int64
	require.NoError(t, db.Raw(
		`SELECT count(*) FROM (SELECT post_id, user_id FROM likes GROUP BY post_id, user_id HAVING count(*) > 1)`,
	).Scan(&dupes).Error)
	assert.Zero(t, dupes)
}
