package services

import (
	"encoding/json"
	"time"

	"github.com/vnkhanh/sesh-server/models"
	"gorm.io/gorm"
)

func containsID(list []uint, id uint) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []uint, id uint) []uint {
	out := make([]uint, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendIfMissing(list []uint, id uint) []uint {
	if containsID(list, id) {
		return list
	}
	return append(list, id)
}

// casSeshPartition chuyển userID từ unconfirmed sang confirmed/declined bằng một
// UPDATE duy nhất, guard trên snapshot users_unconfirmed đã đọc. Hai participant
// khác nhau accept song song thì UPDATE đến sau trượt guard (trả false) thay vì
// ghi đè transition của người đến trước; caller đọc lại và thử tiếp.
func casSeshPartition(db *gorm.DB, sesh *models.Sesh, userID uint, accepted bool) (bool, error) {
	guard, err := json.Marshal(sesh.UsersUnconfirmed)
	if err != nil {
		return false, err
	}
	newUnconfirmed, err := json.Marshal(removeID(sesh.UsersUnconfirmed, userID))
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{
		"users_unconfirmed": string(newUnconfirmed),
		"updated_at":        time.Now(),
	}
	if accepted {
		confirmed, err := json.Marshal(appendIfMissing(sesh.UsersConfirmed, userID))
		if err != nil {
			return false, err
		}
		updates["users_confirmed"] = string(confirmed)
	} else {
		declined, err := json.Marshal(appendIfMissing(sesh.UsersDeclined, userID))
		if err != nil {
			return false, err
		}
		updates["users_declined"] = string(declined)
	}

	res := db.Model(&models.Sesh{}).
		Where("id = ? AND status = ? AND users_unconfirmed = ?",
			sesh.ID, models.SeshNotStarted, string(guard)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// updateUserPools: đọc user, sửa pool trong mutate, ghi lại bằng một UPDATE duy nhất.
// Mỗi thao tác remove+add trên cùng một user vì vậy là nguyên tử trong một row.
func updateUserPools(db *gorm.DB, userID uint, mutate func(*models.NguoiDung)) error {
	var u models.NguoiDung
	if err := db.First(&u, userID).Error; err != nil {
		return err
	}
	mutate(&u)
	return db.Save(&u).Error
}
