package model

// User 仅在本地认证模式下使用，托管认证模式下账号由第三方保存
// swagger:model User
type User struct {
	BaseModel
	UID          string `gorm:"size:36;uniqueIndex;not null" json:"uid"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	DisplayName  string `gorm:"size:100" json:"displayName"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
