package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vnkhanh/sesh-server/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite in-memory: mỗi connection là một DB riêng nên giới hạn pool về 1
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.NguoiDung{}, &models.Sesh{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.NguoiDung {
	t.Helper()
	u := &models.NguoiDung{
		Ten:     fmt.Sprintf("user-%s", email),
		Email:   email,
		MatKhau: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.NguoiDung {
	t.Helper()
	var u models.NguoiDung
	require.NoError(t, db.First(&u, id).Error)
	return &u
}

func reloadSesh(t *testing.T, db *gorm.DB, id uint) *models.Sesh {
	t.Helper()
	var s models.Sesh
	require.NoError(t, db.First(&s, id).Error)
	return &s
}

// assertPartition: ba pool của sesh là phân hoạch đúng của recipients + owner
func assertPartition(t *testing.T, sesh *models.Sesh) {
	t.Helper()

	expected := map[uint]bool{sesh.SentFrom: true}
	for _, id := range sesh.Recipients {
		expected[id] = true
	}

	seen := map[uint]int{}
	for _, id := range sesh.UsersConfirmed {
		seen[id]++
	}
	for _, id := range sesh.UsersUnconfirmed {
		seen[id]++
	}
	for _, id := range sesh.UsersDeclined {
		seen[id]++
	}

	require.Len(t, seen, len(expected), "union của ba pool phải đúng bằng recipients + owner")
	for id := range expected {
		require.Equal(t, 1, seen[id], "user %d phải nằm ở đúng một pool", id)
	}
}
