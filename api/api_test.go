package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/resumeparse"
	"github.com/rpupo63/portfolio-site-backend/uploads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type testEnv struct {
	router       http.Handler
	projects     *fakeProjects
	blogPosts    *fakeBlogPosts
	testimonials *fakeTestimonials
	contacts     *fakeContacts
	resumes      *fakeResumes
	notifier     *fakeNotifier
	files        *uploads.LocalStore
}

type envOption func(*Dependencies, map[string]string)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	clk := newClock()
	files, err := uploads.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	env := &testEnv{
		projects:     &fakeProjects{clock: clk, rows: map[uuid.UUID]models.Project{}},
		blogPosts:    &fakeBlogPosts{clock: clk, rows: map[uuid.UUID]models.BlogPost{}},
		testimonials: &fakeTestimonials{rows: map[uuid.UUID]models.Testimonial{}},
		contacts:     &fakeContacts{clock: clk, rows: map[uuid.UUID]models.ContactSubmission{}},
		resumes:      &fakeResumes{clock: clk, rows: map[uuid.UUID]models.Resume{}},
		notifier:     &fakeNotifier{sent: make(chan models.ContactSubmission, 16)},
		files:        files,
	}

	deps := Dependencies{
		Projects:     env.projects,
		BlogPosts:    env.blogPosts,
		Testimonials: env.testimonials,
		Contacts:     env.contacts,
		Resumes:      env.resumes,
		Uploader:     uploads.NewUploader(files, 1<<20),
		Files:        files,
		Notifier:     env.notifier,
	}
	c := map[string]string{"LOG_REQUESTS": "false"}
	for _, opt := range opts {
		opt(&deps, c)
	}

	env.router = newRouter(deps, withConfig(c))
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(t *testing.T, path, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func fieldNames(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	resp := decode[ErrorResponse](t, rec)
	names := make([]string, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestProjectLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/projects",
		`{"title":"LMS Rollout","description":"Moodle migration","category":"elearning","tools":["Articulate","SCORM"],"demoUrl":"https://demo.example.com","id":"00000000-0000-0000-0000-000000000001"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	created := decode[models.Project](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", created.ID.String(), "client ids are ignored")
	assert.Equal(t, "LMS Rollout", created.Title)
	assert.Equal(t, []string{"Articulate", "SCORM"}, []string(created.Tools))
	assert.False(t, created.Featured)
	assert.Nil(t, created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())

	path := "/api/projects/" + created.ID.String()

	rec = env.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Title, decode[models.Project](t, rec).Title)

	rec = env.do(t, http.MethodPatch, path, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	unchanged := decode[models.Project](t, rec)
	assert.Equal(t, created.Title, unchanged.Title)
	assert.Equal(t, created.Tools, unchanged.Tools)
	assert.True(t, created.CreatedAt.Equal(unchanged.CreatedAt))

	rec = env.do(t, http.MethodPut, path, `{"featured":true,"demoUrl":"","id":"`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Project](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Featured)
	assert.Nil(t, updated.DemoURL)
	assert.Equal(t, created.Description, updated.Description)

	rec = env.do(t, http.MethodPatch, path, `{"title":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"title"}, fieldNames(t, rec))

	rec = env.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, "").Code)
}

func TestNeverIssuedIDsAreNotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.NewString()

	testCases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/projects/" + id, ""},
		{http.MethodGet, "/api/projects/not-a-uuid", ""},
		{http.MethodPatch, "/api/projects/" + id, `{"title":"x"}`},
		{http.MethodPut, "/api/projects/not-a-uuid", `{"title":"x"}`},
		{http.MethodDelete, "/api/projects/" + id, ""},
		{http.MethodGet, "/api/blog/" + id, ""},
		{http.MethodPatch, "/api/blog/" + id, `{}`},
		{http.MethodDelete, "/api/blog/42", ""},
		{http.MethodGet, "/api/testimonials/" + id, ""},
		{http.MethodDelete, "/api/testimonials/" + id, ""},
		{http.MethodGet, "/api/contact/" + id, ""},
		{http.MethodGet, "/api/resumes/" + id, ""},
		{http.MethodPut, "/api/resumes/" + id + "/activate", ""},
		{http.MethodDelete, "/api/resumes/" + id, ""},
		{http.MethodGet, "/api/resumes/active", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
			assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)
		})
	}
}

func TestCreateValidationLeavesStoreUntouched(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name       string
		path       string
		body       string
		wantFields []string
	}{
		{"project without title", "/api/projects", `{"description":"d","category":"mobile"}`, []string{"title"}},
		{"project wrong type", "/api/projects", `{"title":"t","description":"d","category":"mobile","tools":"Go"}`, []string{"tools"}},
		{"blog post empty", "/api/blog", `{}`, []string{"title", "excerpt", "content", "category"}},
		{"testimonial", "/api/testimonials", `{"name":"Ann","role":"CTO","company":"Acme"}`, []string{"content"}},
		{"contact bad email", "/api/contact", `{"firstName":"Jane","lastName":"Doe","email":"jane","message":"Hi"}`, []string{"email"}},
		{"resume record", "/api/resumes", `{"filename":"a.pdf"}`, []string{"originalName", "fileUrl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tc.wantFields, fieldNames(t, rec))
		})
	}

	rec := env.do(t, http.MethodPost, "/api/projects", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, path := range []string{"/api/projects", "/api/blog", "/api/testimonials", "/api/contact", "/api/resumes"} {
		rec := env.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
	assert.Empty(t, env.notifier.sent)
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"title":"A","description":"d","category":"mobile","featured":true}`,
		`{"title":"B","description":"d","category":"corporate"}`,
		`{"title":"C","description":"d","category":"mobile"}`,
	} {
		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/projects", body).Code)
	}

	titles := func(path string) []string {
		rec := env.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out []string
		for _, p := range decode[[]models.Project](t, rec) {
			out = append(out, p.Title)
		}
		return out
	}

	assert.Equal(t, []string{"C", "B", "A"}, titles("/api/projects"))
	assert.Equal(t, []string{"C", "A"}, titles("/api/projects?category=mobile"))
	assert.Equal(t, []string{"A"}, titles("/api/projects?featured=true"))
	assert.Equal(t, []string{"C", "B"}, titles("/api/projects?featured=false"))
	assert.Equal(t, []string{"C", "B", "A"}, titles("/api/projects?featured=maybe"))
	assert.Equal(t, []string{"A"}, titles("/api/projects?category=mobile&featured=1"))
	assert.Nil(t, titles("/api/projects?category=assessment"))

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/blog",
		`{"title":"Draft","excerpt":"e","content":"c","category":"news"}`).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/blog",
		`{"title":"Live","excerpt":"e","content":"c","category":"design","published":true}`).Code)

	rec := env.do(t, http.MethodGet, "/api/blog?published=true", "")
	posts := decode[[]models.BlogPost](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live", posts[0].Title)

	rec = env.do(t, http.MethodGet, "/api/blog?category=news", "")
	posts = decode[[]models.BlogPost](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, "Draft", posts[0].Title)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/testimonials",
		`{"name":"Ann","role":"CTO","company":"Acme","content":"Great","featured":true}`).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/testimonials",
		`{"name":"Bob","role":"PM","company":"Beta","content":"Good"}`).Code)

	rec = env.do(t, http.MethodGet, "/api/testimonials?featured=true", "")
	testimonials := decode[[]models.Testimonial](t, rec)
	require.Len(t, testimonials, 1)
	assert.Equal(t, "Ann", testimonials[0].Name)
	assert.Equal(t, models.DefaultRating, testimonials[0].Rating)
}

func TestBlogPostEmptyPatchRefreshesUpdatedAt(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/blog", `{"title":"Hello","excerpt":"e","content":"<p>body</p>","category":"news","readTime":"3 min"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.BlogPost](t, rec)
	assert.False(t, created.Published)
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	rec = env.do(t, http.MethodPatch, "/api/blog/"+created.ID.String(), ``)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[models.BlogPost](t, rec)
	assert.Equal(t, created.Title, patched.Title)
	assert.Equal(t, created.Content, patched.Content)
	assert.Equal(t, created.ReadTime, patched.ReadTime)
	assert.True(t, patched.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, patched.UpdatedAt.After(created.UpdatedAt))

	rec = env.do(t, http.MethodPut, "/api/blog/"+created.ID.String(), `{"published":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.BlogPost](t, rec).Published)

	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/blog/"+created.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/blog/"+created.ID.String(), "").Code)
}

func TestStorageFailureIsGeneric(t *testing.T) {
	causes := []struct {
		name string
		err  error
	}{
		{"query error", errors.New("pq: relation \"projects\" does not exist password=hunter2")},
		{"unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{
			Code:           "23505",
			Message:        "duplicate key value violates unique constraint \"projects_pkey\"",
			ConstraintName: "projects_pkey",
		})},
		{"deadline", context.DeadlineExceeded},
	}

	for _, cause := range causes {
		t.Run(cause.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.projects.err = cause.err

			for _, req := range []struct{ method, path, body string }{
				{http.MethodGet, "/api/projects", ""},
				{http.MethodGet, "/api/projects/" + uuid.NewString(), ""},
				{http.MethodPost, "/api/projects", `{"title":"t","description":"d","category":"c"}`},
			} {
				rec := env.do(t, req.method, req.path, req.body)
				assert.Equal(t, http.StatusInternalServerError, rec.Code, req.method+" "+req.path)
				assert.JSONEq(t, `{"error":"Internal Server Error","status":"error"}`, rec.Body.String())
				assert.NotContains(t, rec.Body.String(), "hunter2")
				assert.NotContains(t, rec.Body.String(), "projects_pkey")
			}
		})
	}
}

func TestTestimonialLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/testimonials", `{"name":"Ann","role":"CTO","company":"Acme","content":"Great","avatarUrl":"/uploads/a.png","rating":"4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Testimonial](t, rec)
	assert.Equal(t, "4", created.Rating)

	path := "/api/testimonials/" + created.ID.String()
	rec = env.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", decode[models.Testimonial](t, rec).Company)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, "").Code)
}

func TestContactSubmission(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/contact", `{"firstName":"Jane","lastName":"Doe","email":"Jane@X.com","projectType":"eLearning","message":"Hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[models.ContactSubmission](t, rec)
	assert.Equal(t, "Jane@X.com", first.Email)
	assert.Nil(t, first.Company)
	assert.False(t, first.CreatedAt.IsZero())

	select {
	case sent := <-env.notifier.sent:
		assert.Equal(t, first.ID, sent.ID)
	case <-time.After(time.Second):
		t.Fatal("notification was not triggered")
	}

	rec = env.do(t, http.MethodPost, "/api/contact", `{"firstName":"Bob","lastName":"Roe","email":"bob@y.com","message":"Hello again"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[models.ContactSubmission](t, rec)

	rec = env.do(t, http.MethodGet, "/api/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.ContactSubmission](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	rec = env.do(t, http.MethodGet, "/api/contact/"+first.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hi", decode[models.ContactSubmission](t, rec).Message)
}

func TestContactWithoutNotifier(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies, _ map[string]string) { d.Notifier = nil })

	rec := env.do(t, http.MethodPost, "/api/contact", `{"firstName":"Jane","lastName":"Doe","email":"jane@x.com","message":"Hi"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func createResume(t *testing.T, env *testEnv, name string) models.Resume {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/resumes",
		fmt.Sprintf(`{"filename":"%s.pdf","originalName":"%s.pdf","fileUrl":"/uploads/%s.pdf","isActive":true}`, name, name, name))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resume := decode[models.Resume](t, rec)
	require.False(t, resume.IsActive, "new resumes start inactive")
	return resume
}

func TestResumeActivation(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/resumes/active", "").Code)

	a := createResume(t, env, "a")
	b := createResume(t, env, "b")
	c := createResume(t, env, "c")

	rec := env.do(t, http.MethodPut, "/api/resumes/"+a.ID.String()+"/activate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Resume](t, rec).IsActive)

	rec = env.do(t, http.MethodPut, "/api/resumes/"+b.ID.String()+"/activate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/resumes/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, b.ID, decode[models.Resume](t, rec).ID)
	assert.Equal(t, 1, env.resumes.activeCount())

	rec = env.do(t, http.MethodGet, "/api/resumes", "")
	list := decode[[]models.Resume](t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, c.ID, list[0].ID, "most recent upload first")

	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/resumes/"+a.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/api/resumes/"+a.ID.String()+"/activate", "").Code)
}

// Concurrent activation requests must all succeed and leave the handler
// state consistent. The fake store serializes SetActive under one mutex, so
// this does not exercise the database race; the single-statement UPDATE is
// covered by TestResumeRepo_SetActive and the deferred exclusion constraint
// by TestSingleActiveResumeConstraint.
func TestConcurrentActivationRequests(t *testing.T) {
	env := newTestEnv(t)
	ids := []uuid.UUID{createResume(t, env, "a").ID, createResume(t, env, "b").ID, createResume(t, env, "c").ID}

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			rec := env.do(t, http.MethodPut, "/api/resumes/"+id.String()+"/activate", "")
			assert.Equal(t, http.StatusOK, rec.Code)
		}(ids[i%len(ids)])
	}
	wg.Wait()

	assert.Equal(t, 1, env.resumes.activeCount())
	rec := env.do(t, http.MethodGet, "/api/resumes/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, ids, decode[models.Resume](t, rec).ID)
}

func TestUploadFile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "/api/upload", "file", "hero.png", pngBytes)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decode[uploads.File](t, rec)
	assert.Equal(t, "hero.png", file.OriginalName)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, int64(len(pngBytes)), file.Size)
	assert.Equal(t, "/uploads/"+file.Filename, file.URL)

	served := env.do(t, http.MethodGet, file.URL, "")
	require.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, pngBytes, served.Body.Bytes())
	assert.Equal(t, "nosniff", served.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/uploads/", "").Code)

	elf := append([]byte("\x7fELF\x02\x01\x01\x00"), make([]byte, 64)...)
	rec = env.upload(t, "/api/upload", "file", "tool.png", elf)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = env.upload(t, "/api/upload", "attachment", "hero.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file", decode[ErrorResponse](t, rec).Field)

	rec = env.do(t, http.MethodPost, "/api/upload", `{"file":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies, _ map[string]string) {
		d.Uploader = uploads.NewUploader(d.Files, 16)
	})

	rec := env.upload(t, "/api/upload", "file", "hero.png", pngBytes)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = env.upload(t, "/api/upload", "file", "huge.png", bytes.Repeat(pngBytes, 1<<15))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestParseResume(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "/api/parse-resume", "resume", "cv.txt", []byte("Jane Doe\njane@x.com\n555-123-4567\n"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, resumeparse.Result{Parsed: true, Name: "Jane Doe", Email: "jane@x.com", Phone: "555-123-4567"},
		decode[resumeparse.Result](t, rec))

	rec = env.upload(t, "/api/parse-resume", "resume", "cv.pdf", []byte("%PDF-1.4\nJane Doe jane@x.com\n"))
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[resumeparse.Result](t, rec)
	assert.False(t, result.Parsed)
	assert.Empty(t, result.Email)
}

func TestUploadResume(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "/api/resumes/upload", "resume", "jane.txt", []byte("Jane Doe\njane@x.com\n"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resume := decode[models.Resume](t, rec)
	assert.Equal(t, "jane.txt", resume.OriginalName)
	assert.Equal(t, "/uploads/"+resume.Filename, resume.FileURL)
	assert.False(t, resume.IsActive)
	require.NotNil(t, resume.ParsedContent)

	var parsed resumeparse.Result
	require.NoError(t, json.Unmarshal([]byte(*resume.ParsedContent), &parsed))
	assert.Equal(t, "jane@x.com", parsed.Email)

	rec = env.upload(t, "/api/resumes/upload", "resume", "cv.pdf", []byte("%PDF-1.4\n"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, decode[models.Resume](t, rec).ParsedContent)
}

func TestUploadResumeInsertFailureRemovesFile(t *testing.T) {
	env := newTestEnv(t)
	env.resumes.err = errors.New("connection reset by peer")

	rec := env.upload(t, "/api/resumes/upload", "resume", "jane.txt", []byte("Jane Doe\njane@x.com\n"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")

	entries, err := os.ReadDir(env.files.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may outlive its failed insert")
	assert.Empty(t, env.resumes.rows)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unknown", decode[healthResponse](t, rec).Database)

	down := newTestEnv(t, func(d *Dependencies, _ map[string]string) {
		d.Ping = func(context.Context) error { return errors.New("dial tcp: connection refused") }
	})
	rec = down.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode[healthResponse](t, rec).Status)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, func(_ *Dependencies, c map[string]string) {
		c["ACCEPTED_ORIGINS"] = "https://portfolio.example.com"
	})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://portfolio.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://portfolio.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/projects", "").Code)

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_request_duration_seconds_count{method="GET",route="/api/projects/",status="200"}`)

	separate := newTestEnv(t, func(_ *Dependencies, c map[string]string) {
		c["METRICS_PORT"] = "9100"
	})
	assert.Equal(t, http.StatusNotFound, separate.do(t, http.MethodGet, "/metrics", "").Code)
}

func TestPanicIsRecovered(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error","status":"error"}`, rec.Body.String())
}
