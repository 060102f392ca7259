package courses

import "time"

// Enrollment - запись пользователя на курс
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}
