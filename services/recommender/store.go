package recommender

import "time"

// SubScores - четыре составляющие оценки курса по шкале 1-5
type SubScores struct {
	Content    float64 `json:"content"`
	Instructor float64 `json:"instructor"`
	Experience float64 `json:"experience"`
	Knowledge  float64 `json:"knowledge"`
}

// Mean возвращает среднее четырёх составляющих
func (s SubScores) Mean() float64 {
	return (s.Content + s.Instructor + s.Experience + s.Knowledge) / 4
}

// UserRating - оценка одного курса запрашивающим пользователем
type UserRating struct {
	CourseID uint
	Scores   SubScores
}

// SimilarUser - средние оценки пользователя, чья история пересекается
// с историей запрашивающего
type SimilarUser struct {
	UserID uint
	Avg    SubScores
}

// CourseRatingAggregate - средние оценки курса по всем пользователям
type CourseRatingAggregate struct {
	CourseID    uint
	Avg         SubScores
	RatingCount int64
}

// EnrollmentCount - число записей на курс
type EnrollmentCount struct {
	CourseID uint
	Count    int64
}

// CourseInfo - данные курса-кандидата для выдачи
type CourseInfo struct {
	ID             uint
	Title          string
	Description    string
	CoverImage     string
	InstructorName string
	CreatedAt      time.Time
}

// PopularCourse - курс из популярной выборки с числом записей
type PopularCourse struct {
	CourseInfo
	EnrollmentCount int64
}

// Store - читающий доступ к данным платформы, нужным движку рекомендаций.
// Движок ничего не пишет и не кэширует: каждый вызов работает со срезом
// данных на момент запроса.
type Store interface {
	FindEnrolledCourseIDs(userID uint) ([]uint, error)
	FindUserRatings(userID uint, excluding []uint) ([]UserRating, error)
	FindSimilarUsersAggregate(ratedCourseIDs []uint, excludingUserID uint) ([]SimilarUser, error)
	AggregateCourseRatings(excluding []uint) ([]CourseRatingAggregate, error)
	AggregateEnrollmentCounts(excluding []uint) ([]EnrollmentCount, error)
	ListEligibleCourses(excluding []uint) ([]CourseInfo, error)
	ListPopularPublishedCourses(limit int) ([]PopularCourse, error)
}
