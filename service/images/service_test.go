package images

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostImage{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(db, dir, "/uploads"), dir
}

func createPost(t *testing.T, db *gorm.DB, userID uint) *models.Post {
	t.Helper()
	post := models.Post{UserID: userID, Title: "t", Content: "c"}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

type testFile struct {
	name        string
	contentType string
	data        []byte
}

// fileHeaders builds real multipart.FileHeader values by round-tripping a
// multipart body, the same way the handler receives them.
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["files"]
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	apiErr, ok := err.(*utils.APIError)
	require.True(t, ok, "expected *utils.APIError, got %T: %v", err, err)
	return apiErr.Status
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestUploadAppendsAfterExistingImages(t *testing.T) {
	db := newTestDB(t)
	service, dir := newTestService(t, db)
	post := createPost(t, db, 1)

	existing := "/uploads/existing-0.png"
	require.NoError(t, db.Model(post).UpdateColumn("image_url", existing).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.PostImage{
			PostID:    post.ID,
			URL:       fmt.Sprintf("/uploads/existing-%d.png", i),
			SortOrder: i,
		}).Error)
	}

	headers := fileHeaders(t,
		testFile{name: "one.png", contentType: "image/png", data: []byte("png-one")},
		testFile{name: "two.jpg", contentType: "image/jpeg", data: []byte("jpg-two")},
		testFile{name: "three.gif", contentType: "image/gif", data: []byte("gif-three")},
	)

	created, err := service.UploadPostImages(post.ID, 1, headers)
	require.NoError(t, err)
	require.Len(t, created, 3)

	// Sort order continues from the existing image count, in submission order.
	for i, image := range created {
		assert.Equal(t, 2+i, image.SortOrder)
		assert.True(t, strings.HasPrefix(image.URL, "/uploads/"))
	}
	assert.True(t, strings.HasSuffix(created[0].URL, ".png"))
	assert.True(t, strings.HasSuffix(created[1].URL, ".jpg"))

	// Files landed on disk and are non-empty.
	assert.Equal(t, 3, countFiles(t, dir))
	for _, image := range created {
		info, err := os.Stat(filepath.Join(dir, filepath.Base(image.URL)))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	// The post already had a primary image; it is not overwritten.
	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	require.NotNil(t, refreshed.ImageURL)
	assert.Equal(t, existing, *refreshed.ImageURL)
}

func TestUploadBackfillsPrimaryImage(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	post := createPost(t, db, 1)

	headers := fileHeaders(t, testFile{name: "cover.png", contentType: "image/png", data: []byte("data")})
	created, err := service.UploadPostImages(post.ID, 1, headers)
	require.NoError(t, err)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	require.NotNil(t, refreshed.ImageURL)
	assert.Equal(t, created[0].URL, *refreshed.ImageURL)
}

func TestUploadRejectsNonImageInBatch(t *testing.T) {
	db := newTestDB(t)
	service, dir := newTestService(t, db)
	post := createPost(t, db, 1)

	headers := fileHeaders(t,
		testFile{name: "one.png", contentType: "image/png", data: []byte("fine")},
		testFile{name: "evil.txt", contentType: "text/plain", data: []byte("nope")},
		testFile{name: "two.png", contentType: "image/png", data: []byte("fine")},
	)

	_, err := service.UploadPostImages(post.ID, 1, headers)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))

	// The whole batch aborts: nothing on disk, nothing in the database.
	assert.Zero(t, countFiles(t, dir))
	var count int64
	require.NoError(t, db.Model(&models.PostImage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	post := createPost(t, db, 1)

	_, err := service.UploadPostImages(post.ID, 1, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))
}

func TestUploadMissingPost(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)

	headers := fileHeaders(t, testFile{name: "a.png", contentType: "image/png", data: []byte("x")})
	_, err := service.UploadPostImages(9999, 1, headers)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apiStatus(t, err))
}

func TestUploadNonOwnerForbidden(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	post := createPost(t, db, 1)

	headers := fileHeaders(t, testFile{name: "a.png", contentType: "image/png", data: []byte("x")})
	_, err := service.UploadPostImages(post.ID, 2, headers)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiStatus(t, err))
}

func TestUploadGuessesExtensionFromContentType(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	post := createPost(t, db, 1)

	headers := fileHeaders(t, testFile{name: "noextension", contentType: "image/png", data: []byte("x")})
	created, err := service.UploadPostImages(post.ID, 1, headers)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.True(t, strings.HasSuffix(created[0].URL, ".png"), "got %s", created[0].URL)
}
