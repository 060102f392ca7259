package recommender

import (
	"fmt"
	"math"
	"time"
)

// Signal - числовой сигнал, которого может не быть. Отсутствующий сигнал
// даёт вклад 0 в итоговый балл, а не ошибку и не пропуск кандидата.
type Signal struct {
	value   float64
	present bool
}

func signalOf(v float64) Signal {
	return Signal{value: v, present: true}
}

// OrZero возвращает значение сигнала либо 0, если сигнала нет
func (s Signal) OrZero() float64 {
	if !s.present {
		return 0
	}
	return s.value
}

// signalSet - четыре сигнала одного курса-кандидата
type signalSet struct {
	Quality    Signal
	Similarity Signal
	Popularity Signal
	Recency    Signal
}

const recencyWindowMonths = 6.0

// recencyScore линейно убывает от 1.0 для нового курса до 0 на отметке
// в 6 месяцев; отрицательным не бывает. Месяц считается как 30 дней.
func recencyScore(createdAt, now time.Time) float64 {
	ageMonths := now.Sub(createdAt).Hours() / (24 * 30)
	return math.Max(0, (recencyWindowMonths-ageMonths)/recencyWindowMonths)
}

// aggregator собирает сигналы по всем кандидатам одного запроса.
// Курсы, на которые пользователь записан или которые он уже оценил,
// исключаются ещё в запросах к хранилищу, до подсчёта баллов.
type aggregator struct {
	store Store
	now   func() time.Time
}

func (a aggregator) collect(userID uint, userRatings []UserRating, excluded []uint) ([]CourseInfo, map[uint]signalSet, error) {
	ratings, err := a.store.AggregateCourseRatings(excluded)
	if err != nil {
		return nil, nil, fmt.Errorf("recommender: aggregate course ratings: %w", err)
	}

	enrollments, err := a.store.AggregateEnrollmentCounts(excluded)
	if err != nil {
		return nil, nil, fmt.Errorf("recommender: aggregate enrollment counts: %w", err)
	}

	similarity, err := a.similaritySignal(userID, userRatings)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := a.store.ListEligibleCourses(excluded)
	if err != nil {
		return nil, nil, fmt.Errorf("recommender: list eligible courses: %w", err)
	}

	qualityByCourse := make(map[uint]SubScores, len(ratings))
	for _, agg := range ratings {
		qualityByCourse[agg.CourseID] = agg.Avg
	}
	countByCourse := make(map[uint]int64, len(enrollments))
	for _, e := range enrollments {
		countByCourse[e.CourseID] = e.Count
	}

	now := a.now()
	signals := make(map[uint]signalSet, len(candidates))
	for _, c := range candidates {
		var set signalSet
		if avg, ok := qualityByCourse[c.ID]; ok {
			set.Quality = signalOf(avg.Mean())
		}
		if n, ok := countByCourse[c.ID]; ok {
			set.Popularity = signalOf(math.Log(float64(n) + 1))
		}
		set.Recency = signalOf(recencyScore(c.CreatedAt, now))
		set.Similarity = similarity
		signals[c.ID] = set
	}
	return candidates, signals, nil
}

// similaritySignal усредняет оценки пользователей, оценивавших те же
// курсы, что и запрашивающий. Это грубый агрегат: без веса по размеру
// пересечения и без расстояния между профилями оценок. У пользователя
// без истории оценок сигнала нет, как и при отсутствии пересекающихся
// пользователей.
func (a aggregator) similaritySignal(userID uint, userRatings []UserRating) (Signal, error) {
	if len(userRatings) == 0 {
		return Signal{}, nil
	}

	ratedIDs := make([]uint, 0, len(userRatings))
	for _, r := range userRatings {
		ratedIDs = append(ratedIDs, r.CourseID)
	}

	similar, err := a.store.FindSimilarUsersAggregate(ratedIDs, userID)
	if err != nil {
		return Signal{}, fmt.Errorf("recommender: similar users: %w", err)
	}
	if len(similar) == 0 {
		return Signal{}, nil
	}

	sum := 0.0
	for _, u := range similar {
		sum += u.Avg.Mean()
	}
	return signalOf(sum / float64(len(similar))), nil
}
