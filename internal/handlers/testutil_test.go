package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jeanfrancodev/API-movies/internal/config"
	"github.com/jeanfrancodev/API-movies/internal/database"
	"github.com/jeanfrancodev/API-movies/internal/handlers"
	"github.com/jeanfrancodev/API-movies/internal/models"
	"github.com/jeanfrancodev/API-movies/internal/repository"
	"github.com/jeanfrancodev/API-movies/internal/routes"
	"github.com/jeanfrancodev/API-movies/internal/services"
	"github.com/jeanfrancodev/API-movies/internal/validation"
)

type testApp struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.RegisterRules()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Discard,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	uploadDir := t.TempDir()
	files, err := services.NewFileService(uploadDir)
	if err != nil {
		t.Fatalf("file service: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: uploadDir,
	}

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	rateRepo := repository.NewRateRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	movieHandler := handlers.NewMovieHandler(movieRepo, userRepo, rateRepo, files)

	router := routes.Setup(cfg, authHandler, movieHandler)
	return &testApp{router: router, db: db, uploadDir: uploadDir}
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerUser(t *testing.T, name, email, password, role string) {
	t.Helper()
	w := a.doJSON(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	w := a.doJSON(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	a.registerUser(t, "Admin", "admin@example.com", "Password1!", "ADMIN")
	return a.login(t, "admin@example.com", "Password1!")
}

func (a *testApp) userToken(t *testing.T) string {
	t.Helper()
	a.registerUser(t, "Ann", "ann@x.com", "Abcdef1!", "USER")
	return a.login(t, "ann@x.com", "Abcdef1!")
}

func baseMovieFields(title string) map[string]string {
	return map[string]string{
		"title":             title,
		"synopsis":          "Synopsis of " + title,
		"trailer":           "https://youtu.be/" + title,
		"studios":           "A24",
		"year":              "2017",
		"duration":          "2h 15min",
		"ageClassification": "16",
	}
}

func movieForm(t *testing.T, fields map[string]string, genres []string, image []byte, imageType string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, genre := range genres {
		if err := w.WriteField("genre", genre); err != nil {
			t.Fatalf("write genre: %v", err)
		}
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="poster.png"`)
		header.Set("Content-Type", imageType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return buf, w.FormDataContentType()
}

func (a *testApp) doForm(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) createMovie(t *testing.T, token, title string, image []byte) models.Movie {
	t.Helper()
	body, contentType := movieForm(t, baseMovieFields(title), []string{"Drama", "Sci-Fi"}, image, "image/png")
	w := a.doForm(t, http.MethodPost, "/api/movies", token, body, contentType)
	if w.Code != http.StatusCreated {
		t.Fatalf("create movie %q: status %d body %s", title, w.Code, w.Body.String())
	}
	var movie models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movie); err != nil {
		t.Fatalf("decode movie: %v", err)
	}
	return movie
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (a *testApp) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(a.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
