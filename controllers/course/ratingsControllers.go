package course

import (
	"encoding/json"
	"net/http"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/models/courses"
)

func validSubScore(v int) bool {
	return v >= 1 && v <= 5
}

// Оценка курса по четырём составляющим. Повторная оценка того же курса
// тем же пользователем перезаписывает прежнюю.
func RateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	var input courses.CourseRating
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if input.CourseID == 0 {
		http.Error(w, "Missing course id", http.StatusBadRequest)
		return
	}
	if !validSubScore(input.ContentRating) || !validSubScore(input.InstructorRating) ||
		!validSubScore(input.ExperienceRating) || !validSubScore(input.KnowledgeRating) {
		http.Error(w, "Ratings must be between 1 and 5", http.StatusBadRequest)
		return
	}

	var course courses.Course
	if err := config.DB.Where("published = ?", true).First(&course, input.CourseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	var rating courses.CourseRating
	err = config.DB.Where("user_id = ? AND course_id = ?", claims.UserID, input.CourseID).First(&rating).Error
	if err != nil {
		rating = courses.CourseRating{
			UserID:   claims.UserID,
			CourseID: input.CourseID,
		}
	}

	rating.ContentRating = input.ContentRating
	rating.InstructorRating = input.InstructorRating
	rating.ExperienceRating = input.ExperienceRating
	rating.KnowledgeRating = input.KnowledgeRating

	if err := config.DB.Save(&rating).Error; err != nil {
		http.Error(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rating)
}
