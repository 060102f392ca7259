package recommender

import (
	"errors"
	"fmt"
	"time"
)

const (
	TypePersonalized = "personalized"
	TypePopular      = "popular"
)

// popularScore - балл курсов из популярной выборки. Персональные баллы
// лежат ниже, так что по значению видно, какой путь сработал.
const popularScore = 1.0

// DefaultLimit - размер выдачи, если вызывающая сторона не задала свой
const DefaultLimit = 5

// ErrInvalidLimit возвращается до единого обращения к хранилищу
var ErrInvalidLimit = errors.New("recommender: limit must be positive")

// Recommendation - одна позиция выдачи
type Recommendation struct {
	CourseID       uint    `json:"courseId"`
	Score          float64 `json:"score"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	CoverImage     string  `json:"coverImage"`
	InstructorName string  `json:"instructorName"`
}

// Result - выдача с пометкой, каким путём она построена
type Result struct {
	Type  string           `json:"type"`
	Items []Recommendation `json:"items"`
}

// Recommender строит выдачу как чистую функцию от текущего содержимого
// хранилища: без внутреннего состояния между вызовами, без кэшей и без
// повторов при ошибках чтения.
type Recommender struct {
	store   Store
	weights Weights
	now     func() time.Time
}

func New(store Store, weights Weights) *Recommender {
	return &Recommender{store: store, weights: weights, now: time.Now}
}

// RecommendForUser строит персональную выдачу для пользователя. Если
// персональных кандидатов не нашлось, прозрачно откатывается к популярным
// курсам и помечает результат как popular.
func (r *Recommender) RecommendForUser(userID uint, limit int) (*Result, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	enrolled, err := r.store.FindEnrolledCourseIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("recommender: enrolled courses: %w", err)
	}

	userRatings, err := r.store.FindUserRatings(userID, enrolled)
	if err != nil {
		return nil, fmt.Errorf("recommender: user ratings: %w", err)
	}

	// Без единой записи и оценки персональных сигналов нет, выдача строится
	// только по общим данным. Честнее сразу отдать популярные курсы с
	// пометкой popular, чем выдавать то же самое под видом персонального.
	if len(enrolled) == 0 && len(userRatings) == 0 {
		items, err := r.popular(limit, nil)
		if err != nil {
			return nil, err
		}
		return &Result{Type: TypePopular, Items: items}, nil
	}

	// Кандидатами не бывают курсы, на которые пользователь записан или
	// которые он уже оценил; исключение происходит до подсчёта баллов
	excluded := make([]uint, 0, len(enrolled)+len(userRatings))
	excluded = append(excluded, enrolled...)
	for _, rating := range userRatings {
		excluded = append(excluded, rating.CourseID)
	}

	candidates, signals, err := aggregator{store: r.store, now: r.now}.collect(userID, userRatings, excluded)
	if err != nil {
		return nil, err
	}

	items := ranker{weights: r.weights}.rank(candidates, signals, limit)
	if len(items) == 0 {
		items, err = r.popular(limit, excluded)
		if err != nil {
			return nil, err
		}
		return &Result{Type: TypePopular, Items: items}, nil
	}

	return &Result{Type: TypePersonalized, Items: items}, nil
}

// GetPopularCourses строит выдачу без персональных данных
func (r *Recommender) GetPopularCourses(limit int) ([]Recommendation, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return r.popular(limit, nil)
}

func (r *Recommender) popular(limit int, excluded []uint) ([]Recommendation, error) {
	// Запрашиваем с запасом: курсы пользователя вычёркиваются уже из выборки
	rows, err := r.store.ListPopularPublishedCourses(limit + len(excluded))
	if err != nil {
		return nil, fmt.Errorf("recommender: popular courses: %w", err)
	}

	skip := make(map[uint]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	items := make([]Recommendation, 0, limit)
	for _, row := range rows {
		if skip[row.ID] {
			continue
		}
		items = append(items, Recommendation{
			CourseID:       row.ID,
			Score:          popularScore,
			Title:          row.Title,
			Description:    row.Description,
			CoverImage:     row.CoverImage,
			InstructorName: row.InstructorName,
		})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}
