package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
)

// clock hands out strictly increasing timestamps so ordering assertions
// never depend on timer resolution.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeProjects struct {
	mu    sync.Mutex
	clock *clock
	rows  map[uuid.UUID]models.Project
	err   error
}

func (f *fakeProjects) FindAll(_ context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Project{}
	for _, p := range f.rows {
		if filter.Matches(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProjects) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProjects) Add(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := project.BeforeCreate(nil); err != nil {
		return err
	}
	project.CreatedAt = f.clock.Now()
	f.rows[project.ID] = *project
	return nil
}

func (f *fakeProjects) Update(_ context.Context, id uuid.UUID, patch schema.ProjectPatch) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&p)
	p.ID = id
	f.rows[id] = p
	return &p, nil
}

func (f *fakeProjects) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeBlogPosts struct {
	mu    sync.Mutex
	clock *clock
	rows  map[uuid.UUID]models.BlogPost
}

func (f *fakeBlogPosts) FindAll(_ context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.BlogPost{}
	for _, b := range f.rows {
		if filter.Matches(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBlogPosts) FindByID(_ context.Context, id uuid.UUID) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBlogPosts) Add(_ context.Context, post *models.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.CreatedAt = f.clock.Now()
	if err := post.BeforeCreate(nil); err != nil {
		return err
	}
	f.rows[post.ID] = *post
	return nil
}

func (f *fakeBlogPosts) Update(_ context.Context, id uuid.UUID, patch schema.BlogPostPatch) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&b)
	b.ID = id
	b.UpdatedAt = f.clock.Now()
	if err := b.BeforeSave(nil); err != nil {
		return nil, err
	}
	f.rows[id] = b
	return &b, nil
}

func (f *fakeBlogPosts) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeTestimonials struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Testimonial
}

func (f *fakeTestimonials) FindAll(_ context.Context, filter models.TestimonialFilter) ([]*models.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Testimonial{}
	for _, t := range f.rows {
		if filter.Matches(t) {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (f *fakeTestimonials) FindByID(_ context.Context, id uuid.UUID) (*models.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTestimonials) Add(_ context.Context, testimonial *models.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := testimonial.BeforeCreate(nil); err != nil {
		return err
	}
	f.rows[testimonial.ID] = *testimonial
	return nil
}

func (f *fakeTestimonials) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeContacts struct {
	mu    sync.Mutex
	clock *clock
	rows  map[uuid.UUID]models.ContactSubmission
}

func (f *fakeContacts) FindAll(_ context.Context) ([]*models.ContactSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.ContactSubmission{}
	for _, c := range f.rows {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeContacts) FindByID(_ context.Context, id uuid.UUID) (*models.ContactSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeContacts) Add(_ context.Context, submission *models.ContactSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := submission.BeforeCreate(nil); err != nil {
		return err
	}
	submission.CreatedAt = f.clock.Now()
	f.rows[submission.ID] = *submission
	return nil
}

// fakeResumes mirrors the single statement activation: the whole flip
// happens under one lock, like the row locks of the real UPDATE.
type fakeResumes struct {
	mu    sync.Mutex
	clock *clock
	rows  map[uuid.UUID]models.Resume
	err   error
}

func (f *fakeResumes) FindAll(_ context.Context) ([]*models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Resume{}
	for _, r := range f.rows {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeResumes) FindByID(_ context.Context, id uuid.UUID) (*models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeResumes) FindActive(_ context.Context) (*models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.IsActive {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeResumes) Add(_ context.Context, resume *models.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := resume.BeforeCreate(nil); err != nil {
		return err
	}
	resume.UploadedAt = f.clock.Now()
	f.rows[resume.ID] = *resume
	return nil
}

func (f *fakeResumes) SetActive(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	for rid, r := range f.rows {
		r.IsActive = rid == id
		f.rows[rid] = r
	}
	return true, nil
}

func (f *fakeResumes) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

func (f *fakeResumes) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.IsActive {
			n++
		}
	}
	return n
}

type fakeNotifier struct {
	sent chan models.ContactSubmission
}

func (f *fakeNotifier) NotifyAsync(submission *models.ContactSubmission) <-chan struct{} {
	f.sent <- *submission
	done := make(chan struct{})
	close(done)
	return done
}
