package courses

import "time"

// CourseRating - оценка курса по четырём составляющим, каждая от 1 до 5
type CourseRating struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_rating_user_course" json:"userId"`
	CourseID         uint      `gorm:"not null;uniqueIndex:idx_rating_user_course" json:"courseId"`
	ContentRating    int       `gorm:"not null" json:"contentRating"`
	InstructorRating int       `gorm:"not null" json:"instructorRating"`
	ExperienceRating int       `gorm:"not null" json:"experienceRating"`
	KnowledgeRating  int       `gorm:"not null" json:"knowledgeRating"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
