package course

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/models/courses"
)

// Листинг уроков курса
func ListLessons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil || courseID <= 0 {
		http.Error(w, "Invalid course_id", http.StatusBadRequest)
		return
	}

	var lessons []courses.Lesson
	if err := config.DB.Where("course_id = ?", courseID).Order("position").Find(&lessons).Error; err != nil {
		http.Error(w, "Failed to list lessons", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lessons)
}

// Создание урока, доступно только автору курса
func CreateLesson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	var lesson courses.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if lesson.Title == "" || lesson.CourseID == 0 {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	var course courses.Course
	if err := config.DB.First(&course, lesson.CourseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}
	if course.InstructorID != claims.UserID {
		http.Error(w, "Only the course instructor can add lessons", http.StatusForbidden)
		return
	}

	if err := config.DB.Create(&lesson).Error; err != nil {
		http.Error(w, "Failed to create lesson", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lesson)
}

// Отметка прохождения урока
func MarkProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	lessonID, err := strconv.Atoi(r.URL.Query().Get("lesson_id"))
	if err != nil || lessonID <= 0 {
		http.Error(w, "Invalid lesson_id", http.StatusBadRequest)
		return
	}

	var lesson courses.Lesson
	if err := config.DB.First(&lesson, lessonID).Error; err != nil {
		http.Error(w, "Lesson not found", http.StatusNotFound)
		return
	}

	var progress courses.Progress
	err = config.DB.Where("user_id = ? AND lesson_id = ?", claims.UserID, lessonID).First(&progress).Error
	if err != nil {
		progress = courses.Progress{
			UserID:   claims.UserID,
			LessonID: uint(lessonID),
		}
	}

	now := time.Now().UTC()
	progress.Completed = true
	progress.CompletedAt = &now

	if err := config.DB.Save(&progress).Error; err != nil {
		http.Error(w, "Failed to save progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}
