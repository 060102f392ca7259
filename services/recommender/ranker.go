package recommender

import "sort"

// Weights - веса сигналов в итоговом балле. Значение неизменяемое и
// передаётся при создании движка, чтобы тесты могли подставлять свои
// наборы весов без глобального состояния.
type Weights struct {
	Rating     float64
	Similarity float64
	Enrollment float64
	Recency    float64
}

// DefaultWeights - штатные веса, в сумме дают 1.0
var DefaultWeights = Weights{
	Rating:     0.4,
	Similarity: 0.3,
	Enrollment: 0.2,
	Recency:    0.1,
}

type ranker struct {
	weights Weights
}

// rank считает балл каждого кандидата, сортирует по убыванию и обрезает
// до limit. При равных баллах сохраняется порядок кандидатов. Решение об
// откате к популярной выборке принимает вызывающая сторона, не ranker.
func (rk ranker) rank(candidates []CourseInfo, signals map[uint]signalSet, limit int) []Recommendation {
	items := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		set := signals[c.ID]
		score := set.Quality.OrZero()*rk.weights.Rating +
			set.Similarity.OrZero()*rk.weights.Similarity +
			set.Popularity.OrZero()*rk.weights.Enrollment +
			set.Recency.OrZero()*rk.weights.Recency

		items = append(items, Recommendation{
			CourseID:       c.ID,
			Score:          score,
			Title:          c.Title,
			Description:    c.Description,
			CoverImage:     c.CoverImage,
			InstructorName: c.InstructorName,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
