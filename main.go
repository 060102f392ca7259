package main

import (
	"log"
	"net/http"
	"os"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/controllers/course"
	"coursehub-backend/controllers/httpCors"
	"coursehub-backend/controllers/recommendations"
	"coursehub-backend/models/courses"
	"coursehub-backend/models/users"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Устанавливаем порт по умолчанию
	}

	// Инициализируем базу данных
	err := config.InitDB()
	if err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err = config.DB.AutoMigrate(
		&users.User{},
		&users.GoogleUser{},
		&courses.Course{},
		&courses.Lesson{},
		&courses.Enrollment{},
		&courses.CourseRating{},
		&courses.Progress{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Ошибка получения подключения к базе данных: %v", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	} else {
		log.Println("Подключение к базе данных успешно")
	}

	http.HandleFunc("/login/google", authentication.HandleGoogleLogin)
	http.HandleFunc("/callback/google", authentication.HandleGoogleCallback)

	http.HandleFunc("/register", authentication.Register)
	http.HandleFunc("/login", authentication.Login)
	http.HandleFunc("/profile", authentication.GetProfile)
	http.HandleFunc("/logout", authentication.Logout)

	http.HandleFunc("/list/courses", course.ListCourses)
	http.HandleFunc("/create/courses", course.CreateCourse)
	http.HandleFunc("/publish/courses", course.PublishCourse)
	http.HandleFunc("/upload/cover", course.UploadCover)
	http.HandleFunc("/list/lessons", course.ListLessons)
	http.HandleFunc("/create/lessons", course.CreateLesson)
	http.HandleFunc("/lessons/progress", course.MarkProgress)

	http.HandleFunc("/courses/enroll", course.EnrollCourse)
	http.HandleFunc("/courses/enrollments", course.ListEnrollments)
	http.HandleFunc("/courses/rate", course.RateCourse)

	http.HandleFunc("/recommendations", recommendations.GetRecommendations)
	http.HandleFunc("/courses/popular", recommendations.GetPopularCourses)

	handler := httpCors.CorsSettings().Handler(http.DefaultServeMux)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", port)
	err = http.ListenAndServe(":"+port, handler)
	if err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
