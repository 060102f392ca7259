package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/models/courses"
)

// Запись пользователя на курс
func EnrollCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil || courseID <= 0 {
		http.Error(w, "Invalid course_id", http.StatusBadRequest)
		return
	}

	var course courses.Course
	if err := config.DB.Where("published = ?", true).First(&course, courseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	var existing courses.Enrollment
	if err := config.DB.Where("user_id = ? AND course_id = ?", claims.UserID, courseID).First(&existing).Error; err == nil {
		http.Error(w, "Already enrolled", http.StatusConflict)
		return
	}

	enrollment := courses.Enrollment{
		UserID:   claims.UserID,
		CourseID: uint(courseID),
	}
	if err := config.DB.Create(&enrollment).Error; err != nil {
		http.Error(w, "Failed to enroll", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(enrollment)
}

// Листинг курсов пользователя
func ListEnrollments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	var enrollments []courses.Enrollment
	if err := config.DB.Where("user_id = ?", claims.UserID).Find(&enrollments).Error; err != nil {
		http.Error(w, "Failed to list enrollments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollments)
}
