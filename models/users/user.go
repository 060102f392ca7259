package users

import (
	"time"

	"gorm.io/gorm"

	"coursehub-backend/config"
)

type User struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-" gorm:"not null"`
	Role        string `json:"role" gorm:"not null;default:user"` // user или instructor
	Provider    string `json:"provider"`                          // local или google
	AccessToken string `json:"token"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func GetUserByID(userID interface{}) (*User, error) {
	var user User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
