package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnkhanh/sesh-server/models"
)

// Ghi với snapshot cũ phải trượt guard chứ không được revert transition
// của participant khác đã ghi trước đó.
func TestStaleSeshWriteDoesNotClobber(t *testing.T) {
	db := newTestDB(t)
	svc := NewSeshService(db)
	owner := seedUser(t, db, "owner@pfg.gg")
	r1 := seedUser(t, db, "r1@pfg.gg")
	r2 := seedUser(t, db, "r2@pfg.gg")

	sesh, err := svc.CreateSesh(owner, CreateSeshInput{
		Game:         "Valorant",
		ProposedDay:  "tomorrow",
		ProposedTime: "7:30 pm",
		Recipients:   []string{"r1@pfg.gg", "r2@pfg.gg"},
	})
	require.NoError(t, err)

	// snapshot đọc trước khi r2 accept — giả lập hai request đọc cùng một row
	stale := reloadSesh(t, db, sesh.ID)

	_, err = svc.Accept(r2.ID, sesh.ID)
	require.NoError(t, err)

	// ghi bằng snapshot cũ: guard trượt, không ăn
	ok, err := casSeshPartition(db, stale, r1.ID, true)
	require.NoError(t, err)
	assert.False(t, ok)

	// transition của r2 còn nguyên, r1 vẫn chờ ở unconfirmed
	after := reloadSesh(t, db, sesh.ID)
	assert.Contains(t, after.UsersConfirmed, r2.ID)
	assert.Contains(t, after.UsersUnconfirmed, r1.ID)
	assertPartition(t, after)

	// đi qua service thì retry đọc lại snapshot mới và thành công
	updated, err := svc.Accept(r1.ID, sesh.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.UsersConfirmed, r1.ID)
	assert.Contains(t, updated.UsersConfirmed, r2.ID)
	assertPartition(t, updated)
}

// Guard cũng chặn ghi khi sesh đã finished
func TestStaleSeshWriteSkipsFinishedSesh(t *testing.T) {
	db := newTestDB(t)
	svc := NewSeshService(db)
	owner := seedUser(t, db, "owner@pfg.gg")
	r1 := seedUser(t, db, "r1@pfg.gg")

	sesh, err := svc.CreateSesh(owner, CreateSeshInput{
		Game:         "Catan",
		ProposedDay:  "today",
		ProposedTime: "8:00 pm",
		Recipients:   []string{"r1@pfg.gg"},
	})
	require.NoError(t, err)

	stale := reloadSesh(t, db, sesh.ID)
	require.NoError(t, db.Model(&models.Sesh{}).Where("id = ?", sesh.ID).
		Update("status", models.SeshFinished).Error)

	ok, err := casSeshPartition(db, stale, r1.ID, true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, reloadSesh(t, db, sesh.ID).UsersUnconfirmed, r1.ID)
}

// Hai participant khác nhau accept/decline song song: không ai bị mất transition
func TestConcurrentDistinctRSVPsPreserveBoth(t *testing.T) {
	db := newTestDB(t)
	svc := NewSeshService(db)
	owner := seedUser(t, db, "owner@pfg.gg")
	r1 := seedUser(t, db, "r1@pfg.gg")
	r2 := seedUser(t, db, "r2@pfg.gg")

	sesh, err := svc.CreateSesh(owner, CreateSeshInput{
		Game:         "Dota 2",
		ProposedDay:  "tomorrow",
		ProposedTime: "6:00 pm",
		Recipients:   []string{"r1@pfg.gg", "r2@pfg.gg"},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Accept(r1.ID, sesh.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Decline(r2.ID, sesh.ID)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	after := reloadSesh(t, db, sesh.ID)
	assert.Contains(t, after.UsersConfirmed, r1.ID)
	assert.Contains(t, after.UsersDeclined, r2.ID)
	assert.Empty(t, after.UsersUnconfirmed)
	assertPartition(t, after)

	assert.Contains(t, reloadUser(t, db, r1.ID).UpcomingAcceptedSeshes, sesh.ID)
	assert.Contains(t, reloadUser(t, db, r2.ID).UpcomingDeclinedSeshes, sesh.ID)
}
