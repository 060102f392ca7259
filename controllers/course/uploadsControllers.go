package course

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"coursehub-backend/config"
	"coursehub-backend/controllers/authentication"
	"coursehub-backend/models/courses"
	"coursehub-backend/models/users"
)

// UploadCover - загружает обложку курса в Google Drive и сохраняет ссылку
func UploadCover(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "Only the course instructor can upload a cover", http.StatusForbidden)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Для загрузки нужен привязанный Google-аккаунт с OAuth токеном
	var googleUser users.GoogleUser
	if err := config.DB.Where("user_id = ?", claims.UserID).First(&googleUser).Error; err != nil {
		http.Error(w, "Google account not linked or user not found", http.StatusForbidden)
		return
	}
	if googleUser.AccessToken == "" {
		http.Error(w, "No Google OAuth token found for the user", http.StatusForbidden)
		return
	}

	folderID := os.Getenv("GOOGLE_DRIVE_FOLDER_ID")

	_, webViewLink, err := uploadFileToGoogleDrive(file, header.Filename, googleUser.AccessToken, folderID)
	if err != nil {
		http.Error(w, "Failed to upload file to Google Drive: "+err.Error(), http.StatusInternalServerError)
		return
	}

	course.CoverImage = webViewLink
	if err := config.DB.Save(&course).Error; err != nil {
		http.Error(w, "Failed to save course cover", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Cover uploaded successfully",
		"cover_image": webViewLink,
		"course_id":   course.ID,
	})
}

// uploadFileToGoogleDrive - загружает файл в Google Drive
func uploadFileToGoogleDrive(file multipart.File, fileName string, accessToken string, folderID string) (string, string, error) {
	ctx := context.Background()

	token := &oauth2.Token{
		AccessToken: accessToken,
	}
	tokenSource := authentication.GoogleOauthConfig.TokenSource(ctx, token)

	service, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return "", "", fmt.Errorf("failed to create Drive service: %v", err)
	}

	driveFile := &drive.File{
		Name:    fileName,
		Parents: []string{folderID},
	}

	uploadedFile, err := service.Files.Create(driveFile).Media(file).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %v", err)
	}

	return uploadedFile.Id, uploadedFile.WebViewLink, nil
}
