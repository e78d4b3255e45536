package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/tejas-exe/droply/internal/config"
	"github.com/tejas-exe/droply/internal/handlers"
	"github.com/tejas-exe/droply/internal/imagekit"
	"github.com/tejas-exe/droply/internal/models"
	"github.com/tejas-exe/droply/internal/repositories"
	"github.com/tejas-exe/droply/internal/router"
	"github.com/tejas-exe/droply/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-access-secret"

// fakeFileRepository counts every store access so gate tests can assert zero
// invocations.
type fakeFileRepository struct {
	files map[uuid.UUID]*models.File
	calls int
}

func newFakeFileRepository() *fakeFileRepository {
	return &fakeFileRepository{files: make(map[uuid.UUID]*models.File)}
}

func (r *fakeFileRepository) ListByParent(_ context.Context, userID string, parentID *uuid.UUID) ([]models.File, error) {
	r.calls++
	out := []models.File{}
	for _, f := range r.files {
		if f.UserID != userID {
			continue
		}
		if parentID == nil && f.ParentID == nil {
			out = append(out, *f)
		} else if parentID != nil && f.ParentID != nil && *f.ParentID == *parentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFileRepository) FindOwned(_ context.Context, id uuid.UUID, userID string) (*models.File, error) {
	r.calls++
	f, ok := r.files[id]
	if !ok || f.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFileRepository) CreateWithParentCheck(_ context.Context, file *models.File) error {
	r.calls++
	if file.ParentID != nil {
		parent, ok := r.files[*file.ParentID]
		if !ok || parent.UserID != file.UserID || !parent.IsFolder {
			return repositories.ErrParentNotFound
		}
	}
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepository) ToggleStar(_ context.Context, id uuid.UUID, userID string) (*models.File, error) {
	r.calls++
	f, ok := r.files[id]
	if !ok || f.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	f.IsStarred = !f.IsStarred
	copied := *f
	return &copied, nil
}

type fakeUploader struct {
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, data []byte, fileName, folder string) (*services.UploadResult, error) {
	u.calls++
	path := folder + "/" + fileName
	return &services.UploadResult{
		URL:      "https://ik.example.com" + path,
		FilePath: path,
	}, nil
}

func setupTestAPI(t *testing.T) (*gin.Engine, *fakeFileRepository, *fakeUploader) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	repo := newFakeFileRepository()
	uploader := &fakeUploader{}
	svc := services.NewFileService(repo, uploader, nil, []string{"application/pdf", "image/*"})

	imageKitClient := imagekit.NewClient(config.ImageKit{
		PublicKey:   "public_test",
		PrivateKey:  "private_test",
		URLEndpoint: "https://ik.imagekit.io/test",
	})

	r := gin.New()
	router.SetupRouter(r, handlers.NewFileHandler(svc, nil, nil), handlers.NewFolderHandler(svc, nil, nil), handlers.NewImageKitHandler(imageKitClient))
	return r, repo, uploader
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, method, target, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedFolder(repo *fakeFileRepository, userID, name string) *models.File {
	folder := &models.File{
		ID:       uuid.New(),
		Name:     name,
		Path:     fmt.Sprintf("/folders/%s/%s", userID, uuid.New()),
		Type:     models.TypeFolder,
		UserID:   userID,
		IsFolder: true,
	}
	repo.files[folder.ID] = folder
	return folder
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestUnauthenticatedRequestsTouchNoStore(t *testing.T) {
	r, repo, uploader := setupTestAPI(t)

	requests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/files?userId=user_1"},
		{http.MethodPost, "/api/v1/folders"},
		{http.MethodPost, "/api/v1/files/upload"},
		{http.MethodPatch, "/api/v1/files/" + uuid.NewString() + "/star"},
	}

	for _, req := range requests {
		w := doRequest(r, req.method, req.target, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.target)
		assert.NotEmpty(t, errorBody(t, w))
	}

	assert.Zero(t, repo.calls, "unauthenticated requests must not reach the store")
	assert.Zero(t, uploader.calls)
}

func TestListFilesUserIDMismatch(t *testing.T) {
	r, repo, _ := setupTestAPI(t)
	token := signToken(t, "user_1")

	w := doRequest(r, http.MethodGet, "/api/v1/files?userId=user_2", token, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, repo.calls, "mismatched userId must be rejected before any store access")
}

func TestListFilesRootAndFolderScope(t *testing.T) {
	r, repo, _ := setupTestAPI(t)
	token := signToken(t, "user_1")

	docs := seedFolder(repo, "user_1", "Docs")
	file := &models.File{ID: uuid.New(), Name: "a.pdf", Type: "application/pdf", UserID: "user_1", ParentID: &docs.ID}
	repo.files[file.ID] = file
	seedFolder(repo, "user_2", "NotMine")

	w := doRequest(r, http.MethodGet, "/api/v1/files?userId=user_1", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var root []models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	require.Len(t, root, 1)
	assert.Equal(t, docs.ID, root[0].ID)

	w = doRequest(r, http.MethodGet, "/api/v1/files?userId=user_1&parentId="+docs.ID.String(), token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inDocs []models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inDocs))
	require.Len(t, inDocs, 1)
	assert.Equal(t, file.ID, inDocs[0].ID)
}

func TestToggleStarEndpoint(t *testing.T) {
	r, repo, _ := setupTestAPI(t)
	token := signToken(t, "user_1")
	docs := seedFolder(repo, "user_1", "Docs")

	w := doRequest(r, http.MethodPatch, "/api/v1/files/"+docs.ID.String()+"/star", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var starred models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &starred))
	assert.True(t, starred.IsStarred)

	w = doRequest(r, http.MethodPatch, "/api/v1/files/"+docs.ID.String()+"/star", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var unstarred models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unstarred))
	assert.False(t, unstarred.IsStarred)
}

func TestToggleStarOnForeignRecord(t *testing.T) {
	r, repo, _ := setupTestAPI(t)
	theirs := seedFolder(repo, "user_1", "Docs")
	token := signToken(t, "user_2")

	w := doRequest(r, http.MethodPatch, "/api/v1/files/"+theirs.ID.String()+"/star", token, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, repo.files[theirs.ID].IsStarred, "foreign record must remain unchanged")
}

func TestToggleStarMalformedID(t *testing.T) {
	r, _, _ := setupTestAPI(t)
	token := signToken(t, "user_1")

	w := doRequest(r, http.MethodPatch, "/api/v1/files/not-a-uuid/star", token, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, userID, parentID, fileName, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("userId", userID))
	if parentID != "" {
		require.NoError(t, writer.WriteField("parentId", parentID))
	}
	if fileName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadFileIntoFolder(t *testing.T) {
	r, repo, uploader := setupTestAPI(t)
	token := signToken(t, "user_1")
	docs := seedFolder(repo, "user_1", "Docs")

	payload := []byte("%PDF-1.7 test")
	body, contentType := multipartUpload(t, "user_1", docs.ID.String(), "report.pdf", "application/pdf", payload)

	w := doRequest(r, http.MethodPost, "/api/v1/files/upload", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.IsFolder)
	require.NotNil(t, created.ParentID)
	assert.Equal(t, docs.ID, *created.ParentID)
	assert.Equal(t, int64(len(payload)), created.Size)
	assert.Equal(t, "report.pdf", created.Name)
	assert.True(t, strings.Contains(created.Path, "/droply/user_1/folders/"+docs.ID.String()))
	assert.Equal(t, 1, uploader.calls)
}

func TestUploadFileNoPayload(t *testing.T) {
	r, repo, uploader := setupTestAPI(t)
	token := signToken(t, "user_1")

	body, contentType := multipartUpload(t, "user_1", "", "", "", nil)
	w := doRequest(r, http.MethodPost, "/api/v1/files/upload", token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, uploader.calls, "sink must not be called without a payload")
	assert.Empty(t, repo.files)
}

func TestUploadFileUserIDMismatch(t *testing.T) {
	r, repo, uploader := setupTestAPI(t)
	token := signToken(t, "user_1")

	body, contentType := multipartUpload(t, "user_2", "", "report.pdf", "application/pdf", []byte("data"))
	w := doRequest(r, http.MethodPost, "/api/v1/files/upload", token, body, contentType)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, repo.calls)
	assert.Zero(t, uploader.calls)
}

func TestUploadFileParentNotFound(t *testing.T) {
	r, _, uploader := setupTestAPI(t)
	token := signToken(t, "user_1")

	body, contentType := multipartUpload(t, "user_1", uuid.NewString(), "report.pdf", "application/pdf", []byte("data"))
	w := doRequest(r, http.MethodPost, "/api/v1/files/upload", token, body, contentType)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, uploader.calls)
}

func TestUploadFileDisallowedType(t *testing.T) {
	r, _, uploader := setupTestAPI(t)
	token := signToken(t, "user_1")

	body, contentType := multipartUpload(t, "user_1", "", "movie.mp4", "video/mp4", []byte("data"))
	w := doRequest(r, http.MethodPost, "/api/v1/files/upload", token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, uploader.calls)
}
