package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/models/courses"
)

// Листинг опубликованных курсов
func ListCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var courseList []courses.Course
	if err := config.DB.Where("published = ?", true).Find(&courseList).Error; err != nil {
		http.Error(w, "Failed to list courses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courseList)
}

// Создание курса, доступно только инструктору
func CreateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}
	if claims.Role != "instructor" {
		http.Error(w, "Only instructors can create courses", http.StatusForbidden)
		return
	}

	var course courses.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if course.Title == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	course.InstructorID = claims.UserID

	if err := config.DB.Create(&course).Error; err != nil {
		http.Error(w, "Failed to create course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(course)
}

// Публикация курса, после неё курс попадает в каталог и в рекомендации
func PublishCourse(w http.ResponseWriter, r *http.Request) {
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
	if err := config.DB.First(&course, courseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}
	if course.InstructorID != claims.UserID {
		http.Error(w, "Only the course instructor can publish it", http.StatusForbidden)
		return
	}

	course.Published = true
	if err := config.DB.Save(&course).Error; err != nil {
		http.Error(w, "Failed to publish course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}
