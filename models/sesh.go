package models

import "time"

const (
	SeshNotStarted = "notStarted"
	SeshFinished   = "finished"
)

type Sesh struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Game         string `gorm:"column:game;size:100;not null" json:"game"`
	ProposedDay  string `gorm:"column:proposed_day;size:50;not null" json:"proposed_day"`
	ProposedTime string `gorm:"column:proposed_time;size:20;not null" json:"proposed_time"`
	SentFrom     uint   `gorm:"column:sent_from;not null" json:"sent_from"`

	// recipients cố định sau khi tạo; ba pool bên dưới luôn là phân hoạch
	// của recipients + người tạo
	Recipients       []uint `gorm:"column:recipients;serializer:json;type:text" json:"recipients"`
	UsersConfirmed   []uint `gorm:"column:users_confirmed;serializer:json;type:text" json:"users_confirmed"`
	UsersUnconfirmed []uint `gorm:"column:users_unconfirmed;serializer:json;type:text" json:"users_unconfirmed"`
	UsersDeclined    []uint `gorm:"column:users_declined;serializer:json;type:text" json:"users_declined"`

	Status    string    `gorm:"column:status;size:20;default:'notStarted'" json:"status"` // notStarted | finished
	ShareURL  string    `gorm:"column:share_url;size:255" json:"share_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sesh) TableName() string {
	return "sesh"
}
