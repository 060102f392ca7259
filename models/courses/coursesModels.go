package courses

import (
	"time"

	"gorm.io/gorm"

	"coursehub-backend/models/users"
)

type Course struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CoverImage   string         `json:"coverImage"`
	InstructorID uint           `gorm:"not null" json:"instructorId"`
	Instructor   users.User     `gorm:"foreignKey:InstructorID" json:"-"`
	Published    bool           `gorm:"default:false" json:"published"`
	Lessons      []Lesson       `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	CreatedAt    time.Time      `gorm:"default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
