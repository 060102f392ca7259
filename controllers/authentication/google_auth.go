package authentication

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"coursehub-backend/config"
	"coursehub-backend/models/users"
)

var GoogleOauthConfig = &oauth2.Config{
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	Scopes: []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
		"https://www.googleapis.com/auth/drive.file",
	},
	Endpoint: google.Endpoint,
}

// HandleGoogleLogin initiates Google OAuth login
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := "google"
	url := GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback processes the OAuth callback and retrieves user info from Google
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := "google"
	if r.FormValue("state") != state {
		log.Println("Invalid OAuth state")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	token, err := GoogleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Error while exchanging code for token: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		log.Printf("Error while fetching user info: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	var userInfo map[string]interface{}
	if err := json.Unmarshal(content, &userInfo); err != nil {
		log.Printf("Error parsing user info: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	googleID, _ := userInfo["id"].(string)
	email, ok := userInfo["email"].(string)
	if !ok {
		log.Println("Error extracting email")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	firstName, _ := userInfo["given_name"].(string)
	lastName, _ := userInfo["family_name"].(string)

	// Проверка, существует ли пользователь с таким email
	var user users.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			user = users.User{
				Email:       email,
				Name:        firstName + " " + lastName,
				Provider:    "google",
				Password:    "-",
				AccessToken: token.AccessToken,
			}
			if err := config.DB.Create(&user).Error; err != nil {
				log.Printf("Ошибка при создании пользователя: %v", err)
				http.Error(w, "Error creating user", http.StatusInternalServerError)
				return
			}
		} else {
			http.Error(w, "Error looking up user", http.StatusInternalServerError)
			return
		}
	}

	// Сохраняем или обновляем связанный Google-аккаунт вместе с токеном,
	// токен нужен для загрузки файлов в Drive
	var googleUser users.GoogleUser
	if err := config.DB.Where("user_id = ?", user.ID).First(&googleUser).Error; err != nil {
		googleUser = users.GoogleUser{
			UserID:      user.ID,
			GoogleID:    googleID,
			Email:       email,
			FirstName:   firstName,
			LastName:    lastName,
			AccessToken: token.AccessToken,
		}
		if err := config.DB.Create(&googleUser).Error; err != nil {
			http.Error(w, "Error linking Google account", http.StatusInternalServerError)
			return
		}
	} else {
		googleUser.AccessToken = token.AccessToken
		if err := config.DB.Save(&googleUser).Error; err != nil {
			http.Error(w, "Error updating Google account", http.StatusInternalServerError)
			return
		}
	}

	session, _ := config.Store.Get(r, "session-name")
	session.Values["user_id"] = user.ID
	session.Save(r, w)

	tokenString, err := generateToken(user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": tokenString})
}
