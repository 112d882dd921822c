package models

import "time"

type NguoiDung struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Ten           string   `gorm:"size:100;not null" json:"ten"`
	Email         string   `gorm:"size:100;unique;not null" json:"email"`
	MatKhau       string   `gorm:"size:255" json:"-"` // ẩn khi trả JSON, rỗng với tài khoản Google
	Image         *string  `gorm:"size:255" json:"image"`
	FavoriteGames []string `gorm:"column:favorite_games;serializer:json;type:text" json:"favorite_games"`
	Supporter     bool     `gorm:"not null;default:false" json:"supporter"`
	VaiTro        bool     `gorm:"not null;default:false" json:"vai_tro"`

	// bốn pool tham chiếu tới Sesh, đồng bộ với ba pool trên bảng sesh
	UpcomingUndecidedSeshes []uint `gorm:"column:upcoming_undecided_seshes;serializer:json;type:text" json:"upcoming_undecided_seshes"`
	UpcomingAcceptedSeshes  []uint `gorm:"column:upcoming_accepted_seshes;serializer:json;type:text" json:"upcoming_accepted_seshes"`
	UpcomingDeclinedSeshes  []uint `gorm:"column:upcoming_declined_seshes;serializer:json;type:text" json:"upcoming_declined_seshes"`
	SeshHistory             []uint `gorm:"column:sesh_history;serializer:json;type:text" json:"sesh_history"`

	NgayTao time.Time `gorm:"autoCreateTime" json:"ngay_tao"`
}
