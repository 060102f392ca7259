package recommendations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/services/recommender"
)

func newEngine() *recommender.Recommender {
	return recommender.New(recommender.NewGormStore(config.DB), recommender.DefaultWeights)
}

// parseLimit читает limit из query. Без параметра действует размер по
// умолчанию; явный некорректный limit не подменяется, его отклонит движок.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return recommender.DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}

// GetRecommendations - персональная выдача для авторизованного
// пользователя, для анонимного запроса только популярные курсы
func GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engine := newEngine()
	limit := parseLimit(r)

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		// Аноним - только популярные
		items, err := engine.GetPopularCourses(limit)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recommender.Result{Type: recommender.TypePopular, Items: items})
		return
	}

	result, err := engine.RecommendForUser(claims.UserID, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetPopularCourses - популярные курсы без персонализации
func GetPopularCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := newEngine().GetPopularCourses(parseLimit(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recommender.Result{Type: recommender.TypePopular, Items: items})
}

func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, recommender.ErrInvalidLimit) {
		http.Error(w, "Limit must be a positive number", http.StatusBadRequest)
		return
	}
	http.Error(w, "Failed to build recommendations", http.StatusInternalServerError)
}
