package recommender

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// fakeStore реализует Store в памяти и честно применяет исключения,
// как это делает SQL-реализация
type fakeStore struct {
	enrolled     []uint
	userRatings  []UserRating
	similar      []SimilarUser
	ratingAggs   []CourseRatingAggregate
	enrollCounts []EnrollmentCount
	eligible     []CourseInfo
	popular      []PopularCourse

	failWith error
	calls    int
}

func excludedSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (f *fakeStore) FindEnrolledCourseIDs(userID uint) ([]uint, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.enrolled, nil
}

func (f *fakeStore) FindUserRatings(userID uint, excluding []uint) ([]UserRating, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	skip := excludedSet(excluding)
	var out []UserRating
	for _, r := range f.userRatings {
		if !skip[r.CourseID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) FindSimilarUsersAggregate(ratedCourseIDs []uint, excludingUserID uint) ([]SimilarUser, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if len(ratedCourseIDs) == 0 {
		return nil, nil
	}
	return f.similar, nil
}

func (f *fakeStore) AggregateCourseRatings(excluding []uint) ([]CourseRatingAggregate, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	skip := excludedSet(excluding)
	var out []CourseRatingAggregate
	for _, a := range f.ratingAggs {
		if !skip[a.CourseID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) AggregateEnrollmentCounts(excluding []uint) ([]EnrollmentCount, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	skip := excludedSet(excluding)
	var out []EnrollmentCount
	for _, c := range f.enrollCounts {
		if !skip[c.CourseID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListEligibleCourses(excluding []uint) ([]CourseInfo, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	skip := excludedSet(excluding)
	var out []CourseInfo
	for _, c := range f.eligible {
		if !skip[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPopularPublishedCourses(limit int) ([]PopularCourse, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if len(f.popular) > limit {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}

func newTestRecommender(store Store, weights Weights) *Recommender {
	r := New(store, weights)
	r.now = func() time.Time { return testNow }
	return r
}

func courseInfo(id uint, title string, createdAt time.Time) CourseInfo {
	return CourseInfo{ID: id, Title: title, InstructorName: "Ivan Petrov", CreatedAt: createdAt}
}

func popularCourse(id uint, title string, count int64) PopularCourse {
	return PopularCourse{CourseInfo: courseInfo(id, title, testNow.AddDate(-1, 0, 0)), EnrollmentCount: count}
}

func TestRecommendForUser_RejectsInvalidLimit(t *testing.T) {
	store := &fakeStore{}
	engine := newTestRecommender(store, DefaultWeights)

	for _, limit := range []int{0, -1, -100} {
		result, err := engine.RecommendForUser(1, limit)
		require.ErrorIs(t, err, ErrInvalidLimit)
		assert.Nil(t, result)
	}
	assert.Zero(t, store.calls, "limit must be rejected before any query")
}

func TestGetPopularCourses_RejectsInvalidLimit(t *testing.T) {
	store := &fakeStore{}
	engine := newTestRecommender(store, DefaultWeights)

	for _, limit := range []int{0, -5} {
		items, err := engine.GetPopularCourses(limit)
		require.ErrorIs(t, err, ErrInvalidLimit)
		assert.Nil(t, items)
	}
	assert.Zero(t, store.calls)
}

func TestRecommendForUser_NoHistoryFallsBackToPopular(t *testing.T) {
	// Каталог из трёх опубликованных курсов, у пользователя ни записей,
	// ни оценок, ни похожих пользователей
	store := &fakeStore{
		popular: []PopularCourse{
			popularCourse(3, "Go for Backend", 40),
			popularCourse(1, "SQL Basics", 25),
			popularCourse(2, "Docker Intro", 7),
		},
		eligible: []CourseInfo{
			courseInfo(1, "SQL Basics", testNow.AddDate(-1, 0, 0)),
			courseInfo(2, "Docker Intro", testNow.AddDate(-1, 0, 0)),
			courseInfo(3, "Go for Backend", testNow.AddDate(-1, 0, 0)),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, TypePopular, result.Type)

	ids := make([]uint, 0, len(result.Items))
	for _, item := range result.Items {
		ids = append(ids, item.CourseID)
		assert.Equal(t, 1.0, item.Score, "popular items carry the constant score")
	}
	assert.Equal(t, []uint{3, 1, 2}, ids, "ordered by enrollment count descending")
}

func TestRecommendForUser_ExcludesEnrolledCourses(t *testing.T) {
	createdAt := testNow.AddDate(0, -2, 0)
	store := &fakeStore{
		enrolled: []uint{10},
		userRatings: []UserRating{
			{CourseID: 11, Scores: SubScores{Content: 4, Instructor: 4, Experience: 4, Knowledge: 4}},
		},
		eligible: []CourseInfo{
			courseInfo(10, "Enrolled Course", createdAt),
			courseInfo(11, "Rated Course", createdAt),
			courseInfo(12, "Fresh Course", createdAt),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	assert.Equal(t, TypePersonalized, result.Type)

	require.Len(t, result.Items, 1)
	assert.Equal(t, uint(12), result.Items[0].CourseID,
		"enrolled and already-rated courses must not be recommended")
}

func TestRecommendForUser_FallbackAlsoExcludesEnrolled(t *testing.T) {
	// Все кандидаты уже закрыты записями пользователя, срабатывает откат
	// к популярным, и записанный курс вычёркивается и там
	store := &fakeStore{
		enrolled: []uint{1},
		eligible: []CourseInfo{
			courseInfo(1, "Only Course", testNow.AddDate(-1, 0, 0)),
		},
		popular: []PopularCourse{
			popularCourse(1, "Only Course", 50),
			popularCourse(2, "Second Course", 30),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	assert.Equal(t, TypePopular, result.Type)

	require.Len(t, result.Items, 1)
	assert.Equal(t, uint(2), result.Items[0].CourseID)
	assert.Equal(t, 1.0, result.Items[0].Score)
}

func TestRecommendForUser_PersonalizedOrderingAndLimit(t *testing.T) {
	oldDate := testNow.AddDate(-1, 0, 0)
	store := &fakeStore{
		enrolled: []uint{99},
		ratingAggs: []CourseRatingAggregate{
			{CourseID: 1, Avg: SubScores{Content: 5, Instructor: 5, Experience: 5, Knowledge: 5}, RatingCount: 10},
			{CourseID: 2, Avg: SubScores{Content: 3, Instructor: 3, Experience: 3, Knowledge: 3}, RatingCount: 4},
		},
		enrollCounts: []EnrollmentCount{
			{CourseID: 1, Count: 100},
			{CourseID: 2, Count: 10},
			{CourseID: 3, Count: 1},
		},
		eligible: []CourseInfo{
			courseInfo(1, "Top Rated", oldDate),
			courseInfo(2, "Middle", oldDate),
			courseInfo(3, "Tail", oldDate),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 2)
	require.NoError(t, err)
	assert.Equal(t, TypePersonalized, result.Type)
	require.Len(t, result.Items, 2, "truncated to limit")

	assert.Equal(t, uint(1), result.Items[0].CourseID)
	assert.Equal(t, uint(2), result.Items[1].CourseID)
	for i := 1; i < len(result.Items); i++ {
		assert.GreaterOrEqual(t, result.Items[i-1].Score, result.Items[i].Score,
			"scores must be monotonically non-increasing")
	}
	for _, item := range result.Items {
		assert.GreaterOrEqual(t, item.Score, 0.0)
	}
}

func TestRecommendForUser_TiedCandidatesBothReturned(t *testing.T) {
	// Два курса с одинаковыми сигналами получают одинаковый балл и оба
	// попадают в выдачу; порядок внутри группы не фиксируется
	createdAt := testNow.AddDate(0, -2, 0)
	store := &fakeStore{
		enrolled: []uint{99},
		eligible: []CourseInfo{
			courseInfo(1, "Twin A", createdAt),
			courseInfo(2, "Twin B", createdAt),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	assert.Equal(t, result.Items[0].Score, result.Items[1].Score)
	ids := []uint{result.Items[0].CourseID, result.Items[1].CourseID}
	assert.ElementsMatch(t, []uint{1, 2}, ids)
}

func TestRecommendForUser_BrandNewCourseScoresRecencyOnly(t *testing.T) {
	// Курс без оценок и записей, созданный сегодня: recency = 1.0,
	// остальные сигналы отсутствуют, итог ровно 0.1
	store := &fakeStore{
		enrolled: []uint{99},
		eligible: []CourseInfo{
			courseInfo(7, "Created Today", testNow),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	assert.Equal(t, TypePersonalized, result.Type)
	require.Len(t, result.Items, 1)
	assert.InDelta(t, 0.1, result.Items[0].Score, 1e-9)
}

func TestRecommendForUser_Idempotent(t *testing.T) {
	oldDate := testNow.AddDate(0, -3, 0)
	store := &fakeStore{
		enrolled: []uint{99},
		ratingAggs: []CourseRatingAggregate{
			{CourseID: 1, Avg: SubScores{Content: 4, Instructor: 5, Experience: 4, Knowledge: 5}, RatingCount: 3},
		},
		enrollCounts: []EnrollmentCount{
			{CourseID: 1, Count: 12},
			{CourseID: 2, Count: 3},
		},
		eligible: []CourseInfo{
			courseInfo(1, "First", oldDate),
			courseInfo(2, "Second", oldDate),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	first, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)
	second, err := engine.RecommendForUser(42, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged data must produce an identical ordered list")
}

func TestRecommendForUser_PopularityMonotonicity(t *testing.T) {
	oldDate := testNow.AddDate(-1, 0, 0)
	scoreWithCount := func(count int64) float64 {
		store := &fakeStore{
			enrolled:     []uint{99},
			enrollCounts: []EnrollmentCount{{CourseID: 1, Count: count}},
			eligible:     []CourseInfo{courseInfo(1, "Course", oldDate)},
		}
		engine := newTestRecommender(store, DefaultWeights)
		result, err := engine.RecommendForUser(42, 1)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		return result.Items[0].Score
	}

	prev := scoreWithCount(0)
	for _, count := range []int64{1, 5, 50, 500} {
		next := scoreWithCount(count)
		assert.GreaterOrEqual(t, next, prev,
			"more enrollments must never lower the score")
		prev = next
	}
}

func TestRecommendForUser_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeStore{failWith: storeErr}
	engine := newTestRecommender(store, DefaultWeights)

	result, err := engine.RecommendForUser(42, 5)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, result)
}

func TestGetPopularCourses_EmptyCatalog(t *testing.T) {
	store := &fakeStore{}
	engine := newTestRecommender(store, DefaultWeights)

	items, err := engine.GetPopularCourses(5)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetPopularCourses_LimitAndConstantScore(t *testing.T) {
	store := &fakeStore{
		popular: []PopularCourse{
			popularCourse(1, "A", 30),
			popularCourse(2, "B", 20),
			popularCourse(3, "C", 10),
		},
	}
	engine := newTestRecommender(store, DefaultWeights)

	items, err := engine.GetPopularCourses(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 1.0, item.Score)
	}
}

func TestRecommendForUser_CustomWeights(t *testing.T) {
	// Тесты могут подставлять свои веса без глобального состояния:
	// при весе только на новизну свежий курс обгоняет популярный
	recencyOnly := Weights{Recency: 1.0}
	store := &fakeStore{
		enrolled:     []uint{99},
		enrollCounts: []EnrollmentCount{{CourseID: 1, Count: 1000}},
		eligible: []CourseInfo{
			courseInfo(1, "Old but Popular", testNow.AddDate(-1, 0, 0)),
			courseInfo(2, "Fresh", testNow),
		},
	}
	engine := newTestRecommender(store, recencyOnly)

	result, err := engine.RecommendForUser(42, 2)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, uint(2), result.Items[0].CourseID)
}
