package recommender

import (
	"time"

	"gorm.io/gorm"

	"coursehub-backend/models/courses"
)

// GormStore реализует Store поверх Postgres через GORM
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func excludeCourses(q *gorm.DB, column string, excluding []uint) *gorm.DB {
	if len(excluding) == 0 {
		return q
	}
	return q.Where(column+" NOT IN ?", excluding)
}

type ratingRow struct {
	CourseID         uint
	UserID           uint
	ContentRating    float64
	InstructorRating float64
	ExperienceRating float64
	KnowledgeRating  float64
	RatingCount      int64
}

func (r ratingRow) subScores() SubScores {
	return SubScores{
		Content:    r.ContentRating,
		Instructor: r.InstructorRating,
		Experience: r.ExperienceRating,
		Knowledge:  r.KnowledgeRating,
	}
}

type courseRow struct {
	ID              uint
	Title           string
	Description     string
	CoverImage      string
	InstructorName  string
	CreatedAt       time.Time
	EnrollmentCount int64
}

func (r courseRow) courseInfo() CourseInfo {
	return CourseInfo{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		CoverImage:     r.CoverImage,
		InstructorName: r.InstructorName,
		CreatedAt:      r.CreatedAt,
	}
}

func (s *GormStore) FindEnrolledCourseIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&courses.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (s *GormStore) FindUserRatings(userID uint, excluding []uint) ([]UserRating, error) {
	q := s.db.Model(&courses.CourseRating{}).
		Select("course_id, content_rating, instructor_rating, experience_rating, knowledge_rating").
		Where("user_id = ?", userID)
	q = excludeCourses(q, "course_id", excluding)

	var rows []ratingRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	ratings := make([]UserRating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, UserRating{CourseID: row.CourseID, Scores: row.subScores()})
	}
	return ratings, nil
}

func (s *GormStore) FindSimilarUsersAggregate(ratedCourseIDs []uint, excludingUserID uint) ([]SimilarUser, error) {
	if len(ratedCourseIDs) == 0 {
		return nil, nil
	}

	var rows []ratingRow
	err := s.db.Model(&courses.CourseRating{}).
		Select("user_id, AVG(content_rating) AS content_rating, AVG(instructor_rating) AS instructor_rating, AVG(experience_rating) AS experience_rating, AVG(knowledge_rating) AS knowledge_rating").
		Where("user_id <> ?", excludingUserID).
		Where("course_id IN ?", ratedCourseIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	similar := make([]SimilarUser, 0, len(rows))
	for _, row := range rows {
		similar = append(similar, SimilarUser{UserID: row.UserID, Avg: row.subScores()})
	}
	return similar, nil
}

func (s *GormStore) AggregateCourseRatings(excluding []uint) ([]CourseRatingAggregate, error) {
	q := s.db.Model(&courses.CourseRating{}).
		Select("course_id, AVG(content_rating) AS content_rating, AVG(instructor_rating) AS instructor_rating, AVG(experience_rating) AS experience_rating, AVG(knowledge_rating) AS knowledge_rating, COUNT(*) AS rating_count").
		Group("course_id")
	q = excludeCourses(q, "course_id", excluding)

	var rows []ratingRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	aggregates := make([]CourseRatingAggregate, 0, len(rows))
	for _, row := range rows {
		aggregates = append(aggregates, CourseRatingAggregate{
			CourseID:    row.CourseID,
			Avg:         row.subScores(),
			RatingCount: row.RatingCount,
		})
	}
	return aggregates, nil
}

func (s *GormStore) AggregateEnrollmentCounts(excluding []uint) ([]EnrollmentCount, error) {
	q := s.db.Model(&courses.Enrollment{}).
		Select("course_id, COUNT(*) AS rating_count").
		Group("course_id")
	q = excludeCourses(q, "course_id", excluding)

	var rows []ratingRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]EnrollmentCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, EnrollmentCount{CourseID: row.CourseID, Count: row.RatingCount})
	}
	return counts, nil
}

func (s *GormStore) ListEligibleCourses(excluding []uint) ([]CourseInfo, error) {
	q := s.db.Model(&courses.Course{}).
		Select("courses.id, courses.title, courses.description, courses.cover_image, courses.created_at, users.name AS instructor_name").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Where("courses.published = ?", true)
	q = excludeCourses(q, "courses.id", excluding)

	var rows []courseRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	infos := make([]CourseInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, row.courseInfo())
	}
	return infos, nil
}

func (s *GormStore) ListPopularPublishedCourses(limit int) ([]PopularCourse, error) {
	var rows []courseRow
	err := s.db.Model(&courses.Course{}).
		Select("courses.id, courses.title, courses.description, courses.cover_image, courses.created_at, users.name AS instructor_name, COUNT(enrollments.id) AS enrollment_count").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Where("courses.published = ?", true).
		Group("courses.id, users.name").
		Order("enrollment_count DESC, courses.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	popular := make([]PopularCourse, 0, len(rows))
	for _, row := range rows {
		popular = append(popular, PopularCourse{CourseInfo: row.courseInfo(), EnrollmentCount: row.EnrollmentCount})
	}
	return popular, nil
}
