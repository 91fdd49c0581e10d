package handler

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
	"CloudVault/model"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMain loads config and silences gin for the package.
func TestMain(m *testing.M) {
	config.InitConfig()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupPublicRouter wires the token-authorized routes over a fresh
// in-memory database.
func setupPublicRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	repo.AutoMigrateAll(db)
	repo.Db = db
	repo.Tickets = repo.NewMemoryTicketStore()

	r := gin.New()
	r.GET("/api/share/:token", ResolveShareLink)
	r.GET("/api/files/download/:ticket", DownloadWithTicket)
	return r
}

func seedLinkedFile(t *testing.T, expireAt *time.Time) (*model.File, *model.ShareLink) {
	t.Helper()
	user := model.User{Name: "owner", Email: "owner@test.com", Password: "x"}
	if err := repo.Db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	file := model.File{
		OwnerID:      user.ID,
		Filename:     "a.txt",
		MimeType:     "text/plain",
		Size:         3,
		ObjectKey:    "drive/a",
		ResourceKind: model.ResourceRaw,
		UploadedAt:   time.Now(),
	}
	if err := repo.Db.Create(&file).Error; err != nil {
		t.Fatal(err)
	}
	link := model.ShareLink{
		Token:     "testtoken-0123456789-0123456789-01",
		FileID:    file.ID,
		CreatedBy: user.ID,
		ExpireAt:  expireAt,
	}
	if err := repo.Db.Create(&link).Error; err != nil {
		t.Fatal(err)
	}
	return &file, &link
}

// TestResolveShareLinkPublic serves link metadata without identity.
func TestResolveShareLinkPublic(t *testing.T) {
	r := setupPublicRouter(t)
	file, link := seedLinkedFile(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/share/"+link.Token, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		File struct {
			ID       uint64 `json:"id"`
			Filename string `json:"filename"`
		} `json:"file"`
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.File.ID != file.ID || body.File.Filename != "a.txt" {
		t.Fatalf("body file = %+v", body.File)
	}
	if body.DownloadURL != "/api/share/"+link.Token+"/download" {
		t.Fatalf("download_url = %q", body.DownloadURL)
	}
}

// TestResolveShareLinkStatusCodes maps misses and expiry to 404/410.
func TestResolveShareLinkStatusCodes(t *testing.T) {
	r := setupPublicRouter(t)
	past := time.Now().Add(-time.Minute)
	_, link := seedLinkedFile(t, &past)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/share/"+link.Token, nil))
	if w.Code != http.StatusGone {
		t.Fatalf("expired link status = %d, want 410", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/share/unknown-token", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown link status = %d, want 404", w.Code)
	}
}

// TestDownloadWithTicketMiss maps an unknown or spent ticket to 404.
func TestDownloadWithTicketMiss(t *testing.T) {
	r := setupPublicRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files/download/no-such-ticket", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

// TestShareScenario walks the owner-share-resolve flow end to end at
// the service level.
func TestShareScenario(t *testing.T) {
	setupPublicRouter(t)

	owner := model.User{Name: "o", Email: "o@test.com", Password: "x"}
	u2 := model.User{Name: "u2", Email: "u2@test.com", Password: "x"}
	if err := repo.Db.Create(&owner).Error; err != nil {
		t.Fatal(err)
	}
	if err := repo.Db.Create(&u2).Error; err != nil {
		t.Fatal(err)
	}
	file := model.File{
		OwnerID: owner.ID, Filename: "f", MimeType: "text/plain",
		ObjectKey: "drive/f", ResourceKind: model.ResourceRaw, UploadedAt: time.Now(),
	}
	if err := repo.Db.Create(&file).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := service.GrantAccess(file.ID, owner.ID, []string{"u2@test.com"}); err != nil {
		t.Fatal(err)
	}
	loaded, err := service.GetFileById(file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !service.CanAccess(loaded, u2.ID) {
		t.Error("granted user must have access")
	}
	if service.CanAccess(loaded, u2.ID+999) {
		t.Error("unrelated user must not have access")
	}
}
