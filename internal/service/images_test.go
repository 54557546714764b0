package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satishydv/gharwa-backend/internal/filestore"
	"github.com/satishydv/gharwa-backend/internal/models"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// mockImageRepository implements repository.ImageRepository with injectable funcs.
type mockImageRepository struct {
	listActiveFunc               func(ctx context.Context) ([]models.Image, error)
	listAllFunc                  func(ctx context.Context) ([]models.Image, error)
	getByIDFunc                  func(ctx context.Context, id int64) (*models.Image, error)
	getByFilenameFunc            func(ctx context.Context, filename string) (*models.Image, error)
	createFunc                   func(ctx context.Context, image *models.Image) error
	updateByIDFunc               func(ctx context.Context, id int64, fields repository.ImageUpdate) (bool, error)
	updateByFilenameFunc         func(ctx context.Context, filename string, fields repository.ImageUpdate) (bool, error)
	updateMetadataByFilenameFunc func(ctx context.Context, filename, name, altText string) (bool, error)
	deleteFunc                   func(ctx context.Context, id int64) (bool, error)
	resequenceFunc               func(ctx context.Context, ids []int64) error
	cleanupDuplicatesFunc        func(ctx context.Context) (int64, error)
}

func (m *mockImageRepository) ListActive(ctx context.Context) ([]models.Image, error) {
	return m.listActiveFunc(ctx)
}

func (m *mockImageRepository) ListAll(ctx context.Context) ([]models.Image, error) {
	return m.listAllFunc(ctx)
}

func (m *mockImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockImageRepository) GetByFilename(ctx context.Context, filename string) (*models.Image, error) {
	return m.getByFilenameFunc(ctx, filename)
}

func (m *mockImageRepository) Create(ctx context.Context, image *models.Image) error {
	return m.createFunc(ctx, image)
}

func (m *mockImageRepository) UpdateByID(ctx context.Context, id int64, fields repository.ImageUpdate) (bool, error) {
	return m.updateByIDFunc(ctx, id, fields)
}

func (m *mockImageRepository) UpdateByFilename(ctx context.Context, filename string, fields repository.ImageUpdate) (bool, error) {
	return m.updateByFilenameFunc(ctx, filename, fields)
}

func (m *mockImageRepository) UpdateMetadataByFilename(ctx context.Context, filename, name, altText string) (bool, error) {
	return m.updateMetadataByFilenameFunc(ctx, filename, name, altText)
}

func (m *mockImageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFunc(ctx, id)
}

func (m *mockImageRepository) Resequence(ctx context.Context, ids []int64) error {
	return m.resequenceFunc(ctx, ids)
}

func (m *mockImageRepository) CleanupDuplicates(ctx context.Context) (int64, error) {
	return m.cleanupDuplicatesFunc(ctx)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestImageService(t *testing.T, repo repository.ImageRepository) (ImageService, string) {
	t.Helper()
	dir := t.TempDir()
	store := filestore.NewLocal(dir)
	return NewImageService(repo, store, GalleryCollection, testLogger()), dir
}

func uploadInput(content string) UploadInput {
	return UploadInput{
		File:         strings.NewReader(content),
		OriginalName: "Site Photo.JPG",
		ContentType:  "image/jpeg",
		Size:         int64(len(content)),
		Name:         "Site Photo",
		Alt:          "Construction site",
	}
}

// =============================================================================
// SanitizeFilename Tests
// =============================================================================

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{name: "clean name", original: "photo.jpg", want: "photo.jpg"},
		{name: "spaces become dashes", original: "my site photo.jpg", want: "my-site-photo.jpg"},
		{name: "uppercase extension lowered", original: "Photo.JPG", want: "Photo.jpg"},
		{name: "special characters", original: "café&co (1).png", want: "caf--co--1-.png"},
		{name: "underscores and dashes kept", original: "hero_slide-2.webp", want: "hero_slide-2.webp"},
		{name: "no extension", original: "snapshot", want: "snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.original); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.original, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Upload Tests
// =============================================================================

func TestUpload_Validation(t *testing.T) {
	service, _ := newTestImageService(t, &mockImageRepository{})

	tests := []struct {
		name    string
		mutate  func(in *UploadInput)
		wantMsg string
	}{
		{
			name:    "missing file",
			mutate:  func(in *UploadInput) { in.File = nil },
			wantMsg: "Missing required fields",
		},
		{
			name:    "missing name",
			mutate:  func(in *UploadInput) { in.Name = "" },
			wantMsg: "Missing required fields",
		},
		{
			name:    "missing alt",
			mutate:  func(in *UploadInput) { in.Alt = "" },
			wantMsg: "Missing required fields",
		},
		{
			name:    "not an image",
			mutate:  func(in *UploadInput) { in.ContentType = "application/pdf" },
			wantMsg: "File must be an image",
		},
		{
			name:    "too large",
			mutate:  func(in *UploadInput) { in.Size = MaxUploadSize + 1 },
			wantMsg: "File size must be less than 10MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := uploadInput("data")
			tt.mutate(&in)

			_, err := service.Upload(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Upload() error = %v, want ValidationError", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestUpload_CreatesNewImage(t *testing.T) {
	repo := &mockImageRepository{
		getByFilenameFunc: func(context.Context, string) (*models.Image, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(_ context.Context, image *models.Image) error {
			image.ID = 5
			return nil
		},
	}
	service, dir := newTestImageService(t, repo)

	result, err := service.Upload(context.Background(), uploadInput("jpeg bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if result.ImageID != 5 {
		t.Errorf("ImageID = %d, want 5", result.ImageID)
	}
	if result.Filename != "Site-Photo.jpg" {
		t.Errorf("Filename = %q, want %q", result.Filename, "Site-Photo.jpg")
	}
	if result.URL != "/Gallery/Site-Photo.jpg" {
		t.Errorf("URL = %q", result.URL)
	}
	if result.IsUpdate {
		t.Error("IsUpdate = true, want false for new image")
	}

	data, err := os.ReadFile(filepath.Join(dir, "Site-Photo.jpg"))
	if err != nil {
		t.Fatalf("committed file missing: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("file content = %q", data)
	}
}

func TestUpload_UpsertCarriesDisplayOrder(t *testing.T) {
	var upsertFields, replaceFields repository.ImageUpdate
	repo := &mockImageRepository{
		getByFilenameFunc: func(_ context.Context, filename string) (*models.Image, error) {
			return &models.Image{ID: 3, Filename: filename}, nil
		},
		updateByFilenameFunc: func(_ context.Context, _ string, fields repository.ImageUpdate) (bool, error) {
			upsertFields = fields
			return true, nil
		},
		updateByIDFunc: func(_ context.Context, _ int64, fields repository.ImageUpdate) (bool, error) {
			replaceFields = fields
			return true, nil
		},
	}
	service, _ := newTestImageService(t, repo)

	order := 5
	in := uploadInput("bytes")
	in.DisplayOrder = &order
	if _, err := service.Upload(context.Background(), in); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if upsertFields.DisplayOrder == nil || *upsertFields.DisplayOrder != 5 {
		t.Errorf("upsert DisplayOrder = %v, want 5", upsertFields.DisplayOrder)
	}

	in = uploadInput("bytes")
	in.DisplayOrder = &order
	in.ReplaceID = 3
	in.ReplaceFilename = "existing.jpg"
	if _, err := service.Upload(context.Background(), in); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if replaceFields.DisplayOrder == nil || *replaceFields.DisplayOrder != 5 {
		t.Errorf("replace DisplayOrder = %v, want 5", replaceFields.DisplayOrder)
	}
}

func TestUpload_UpsertWithoutOrderLeavesItUntouched(t *testing.T) {
	var got repository.ImageUpdate
	repo := &mockImageRepository{
		getByFilenameFunc: func(_ context.Context, filename string) (*models.Image, error) {
			return &models.Image{ID: 3, Filename: filename}, nil
		},
		updateByFilenameFunc: func(_ context.Context, _ string, fields repository.ImageUpdate) (bool, error) {
			got = fields
			return true, nil
		},
	}
	service, _ := newTestImageService(t, repo)

	if _, err := service.Upload(context.Background(), uploadInput("bytes")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got.DisplayOrder != nil {
		t.Errorf("DisplayOrder = %v, want nil when no order was requested", *got.DisplayOrder)
	}
}

func TestUpload_SameFilenameUpdatesRow(t *testing.T) {
	var updatedFilename string
	repo := &mockImageRepository{
		getByFilenameFunc: func(_ context.Context, filename string) (*models.Image, error) {
			return &models.Image{ID: 3, Filename: filename}, nil
		},
		updateByFilenameFunc: func(_ context.Context, filename string, _ repository.ImageUpdate) (bool, error) {
			updatedFilename = filename
			return true, nil
		},
	}
	service, _ := newTestImageService(t, repo)

	result, err := service.Upload(context.Background(), uploadInput("new bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if !result.IsUpdate {
		t.Error("IsUpdate = false, want true for re-uploaded filename")
	}
	if result.ImageID != 3 {
		t.Errorf("ImageID = %d, want 3", result.ImageID)
	}
	if updatedFilename != "Site-Photo.jpg" {
		t.Errorf("updated filename = %q", updatedFilename)
	}
}

func TestUpload_ReplaceKeepsFilename(t *testing.T) {
	repo := &mockImageRepository{
		updateByIDFunc: func(_ context.Context, id int64, _ repository.ImageUpdate) (bool, error) {
			if id != 9 {
				t.Errorf("UpdateByID id = %d, want 9", id)
			}
			return true, nil
		},
	}
	service, dir := newTestImageService(t, repo)

	in := uploadInput("replacement bytes")
	in.ReplaceID = 9
	in.ReplaceFilename = "existing-slide.jpg"

	result, err := service.Upload(context.Background(), in)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if result.Filename != "existing-slide.jpg" {
		t.Errorf("Filename = %q, want the replaced filename", result.Filename)
	}
	if !result.IsUpdate {
		t.Error("IsUpdate = false, want true for replacement")
	}
	if _, err := os.Stat(filepath.Join(dir, "existing-slide.jpg")); err != nil {
		t.Errorf("replacement file missing: %v", err)
	}
}

func TestUpload_ReplaceMissingRow(t *testing.T) {
	repo := &mockImageRepository{
		updateByIDFunc: func(context.Context, int64, repository.ImageUpdate) (bool, error) {
			return false, nil
		},
	}
	service, dir := newTestImageService(t, repo)

	in := uploadInput("bytes")
	in.ReplaceID = 404
	in.ReplaceFilename = "gone.jpg"

	if _, err := service.Upload(context.Background(), in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Upload() error = %v, want ErrNotFound", err)
	}

	// The staged file must be discarded, leaving the directory empty.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("store not cleaned up: %d entries left", len(entries))
	}
}

func TestUpload_DatabaseFailureDiscardsFile(t *testing.T) {
	repo := &mockImageRepository{
		getByFilenameFunc: func(context.Context, string) (*models.Image, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(context.Context, *models.Image) error {
			return errors.New("insert failed")
		},
	}
	service, dir := newTestImageService(t, repo)

	if _, err := service.Upload(context.Background(), uploadInput("bytes")); err == nil {
		t.Fatal("Upload() should fail when the insert fails")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("store not cleaned up: %d entries left", len(entries))
	}
}

// failingCommitStore fails every Commit so the cleanup path can be observed.
type failingCommitStore struct {
	*filestore.Local
}

func (s *failingCommitStore) Commit(staged, filename string) error {
	return errors.New("rename failed")
}

func TestUpload_CommitFailureDiscardsStagedFile(t *testing.T) {
	repo := &mockImageRepository{
		getByFilenameFunc: func(context.Context, string) (*models.Image, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(_ context.Context, image *models.Image) error {
			image.ID = 1
			return nil
		},
	}
	dir := t.TempDir()
	store := &failingCommitStore{Local: filestore.NewLocal(dir)}
	service := NewImageService(repo, store, GalleryCollection, testLogger())

	if _, err := service.Upload(context.Background(), uploadInput("bytes")); err == nil {
		t.Fatal("Upload() should fail when the commit fails")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("staged file left behind: %d entries", len(entries))
	}
}

// =============================================================================
// List Tests
// =============================================================================

func TestListActive_AltFallback(t *testing.T) {
	repo := &mockImageRepository{
		listActiveFunc: func(context.Context) ([]models.Image, error) {
			return []models.Image{
				{ID: 1, Filename: "a.jpg", AltText: "Excavator at work", Name: "Excavator"},
				{ID: 2, Filename: "b.jpg", Name: "Foundation"},
				{ID: 3, Filename: "c.jpg"},
			}, nil
		},
	}
	service, _ := newTestImageService(t, repo)

	views, err := service.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("len(views) = %d, want 3", len(views))
	}

	wantAlts := []string{"Excavator at work", "Foundation", "Gallery image"}
	for i, want := range wantAlts {
		if views[i].Alt != want {
			t.Errorf("views[%d].Alt = %q, want %q", i, views[i].Alt, want)
		}
	}
	if views[0].URL != "/Gallery/a.jpg" {
		t.Errorf("views[0].URL = %q", views[0].URL)
	}
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestDelete_RemovesRowAndFile(t *testing.T) {
	repo := &mockImageRepository{
		getByIDFunc: func(_ context.Context, id int64) (*models.Image, error) {
			return &models.Image{ID: id, Filename: "doomed.jpg"}, nil
		},
		deleteFunc: func(context.Context, int64) (bool, error) { return true, nil },
	}
	service, dir := newTestImageService(t, repo)

	path := filepath.Join(dir, "doomed.jpg")
	if err := os.WriteFile(path, []byte("bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := service.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file was not removed")
	}
}

func TestDelete_MissingFileIsNotFatal(t *testing.T) {
	repo := &mockImageRepository{
		getByIDFunc: func(_ context.Context, id int64) (*models.Image, error) {
			return &models.Image{ID: id, Filename: "never-existed.jpg"}, nil
		},
		deleteFunc: func(context.Context, int64) (bool, error) { return true, nil },
	}
	service, _ := newTestImageService(t, repo)

	if err := service.Delete(context.Background(), 1); err != nil {
		t.Errorf("Delete() error = %v, want nil when only the file is missing", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockImageRepository{
		getByIDFunc: func(context.Context, int64) (*models.Image, error) {
			return nil, repository.ErrNotFound
		},
	}
	service, _ := newTestImageService(t, repo)

	if err := service.Delete(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// DeleteFile / Reorder Tests
// =============================================================================

func TestDeleteFile(t *testing.T) {
	service, dir := newTestImageService(t, &mockImageRepository{})

	path := filepath.Join(dir, "stray.jpg")
	if err := os.WriteFile(path, []byte("bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := service.DeleteFile(context.Background(), "stray.jpg"); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file was not removed")
	}

	if err := service.DeleteFile(context.Background(), "stray.jpg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteFile() error = %v, want ErrNotFound for missing file", err)
	}
}

func TestReorder(t *testing.T) {
	var got []int64
	repo := &mockImageRepository{
		resequenceFunc: func(_ context.Context, ids []int64) error {
			got = ids
			return nil
		},
	}
	service, _ := newTestImageService(t, repo)

	if err := service.Reorder(context.Background(), []int64{3, 1, 2}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Resequence received %v", got)
	}

	var verr *ValidationError
	if err := service.Reorder(context.Background(), nil); !errors.As(err, &verr) {
		t.Errorf("Reorder(nil) error = %v, want ValidationError", err)
	}
}

func TestReorder_UnknownID(t *testing.T) {
	repo := &mockImageRepository{
		resequenceFunc: func(context.Context, []int64) error {
			return repository.ErrNotFound
		},
	}
	service, _ := newTestImageService(t, repo)

	if err := service.Reorder(context.Background(), []int64{99}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reorder() error = %v, want ErrNotFound", err)
	}
}
