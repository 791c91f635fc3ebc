package posts_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"postsync/core/content"
	"postsync/core/lockfile"
	lockmocks "postsync/core/lockfile/mocks"
	"postsync/core/reconcile"
	"postsync/feature/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePublisher answers publish calls from canned failures, assigning
// deterministic ids otherwise.
type fakePublisher struct {
	mu      sync.Mutex
	fail    map[string]error
	creates int
	updates int
}

func (p *fakePublisher) Create(_ context.Context, doc content.Document) (reconcile.Remote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.fail[doc.Path]; ok {
		return reconcile.Remote{}, err
	}
	p.creates++
	return reconcile.Remote{ID: "id-" + doc.Path, Slug: doc.Slug, URL: "https://b.example/" + doc.Slug}, nil
}

func (p *fakePublisher) Update(_ context.Context, doc content.Document, id string) (reconcile.Remote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.fail[doc.Path]; ok {
		return reconcile.Remote{}, err
	}
	p.updates++
	return reconcile.Remote{ID: id, Slug: doc.Slug, URL: "https://b.example/" + doc.Slug}, nil
}

func newService(t *testing.T, dir string, store lockfile.Client, pub reconcile.Publisher) *posts.Service {
	t.Helper()
	scanner, err := posts.NewScanner(posts.Config{Directory: dir, Formats: "md,html", HTMLAsDraft: true, FallbackTag: "hashnode"})
	require.NoError(t, err)
	return posts.NewService(scanner, nil, store, pub, "repo-1", "owner/repo", zap.NewNop())
}

func TestService_FirstRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Alpha\n---\nbody a\n")
	writeFile(t, dir, "b.md", "---\ntitle: Beta\n---\nbody b\n")

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, nil)

	var persisted lockfile.Lockfile
	store.On("Persist", mock.Anything, mock.MatchedBy(func(lock lockfile.Lockfile) bool {
		persisted = lock
		return true
	})).Return(nil)

	pub := &fakePublisher{}
	svc := newService(t, dir, store, pub)

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, prepared.Plan.Summary.Creates)

	report, err := svc.Apply(context.Background(), prepared)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Failed)

	// First run synthesized an empty lockfile and persisted M entries.
	store.AssertExpectations(t)
	assert.Equal(t, "repo-1", persisted.RepositoryID)
	assert.Equal(t, "owner/repo", persisted.RepositoryName)
	assert.Len(t, persisted.Content, 2)
	assert.False(t, persisted.CreatedAt.IsZero())
}

func TestService_SecondRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := "---\ntitle: Alpha\n---\nbody a\n"
	writeFile(t, dir, "a.md", source)

	prior := &lockfile.Lockfile{
		RepositoryID: "repo-1",
		Content: []lockfile.Entry{
			{ID: "1", Path: "a.md", Hash: content.Fingerprint([]byte(source)), URL: "u1"},
		},
	}

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(prior, nil)
	store.On("Persist", mock.Anything, mock.Anything).Return(nil)

	pub := &fakePublisher{}
	svc := newService(t, dir, store, pub)

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)
	assert.Zero(t, prepared.Plan.Pending())

	report, err := svc.Apply(context.Background(), prepared)
	require.NoError(t, err)

	assert.Zero(t, pub.creates+pub.updates)
	assert.Equal(t, 1, report.Unchanged)
}

func TestService_PartialFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.md", "---\ntitle: OK\n---\nbody\n")
	writeFile(t, dir, "boom.md", "---\ntitle: Boom\n---\nbody\n")

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, nil)

	var persisted lockfile.Lockfile
	store.On("Persist", mock.Anything, mock.MatchedBy(func(lock lockfile.Lockfile) bool {
		persisted = lock
		return true
	})).Return(nil)

	pub := &fakePublisher{fail: map[string]error{"boom.md": errors.New("quota exceeded")}}
	svc := newService(t, dir, store, pub)

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)

	report, err := svc.Apply(context.Background(), prepared)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "boom.md", report.Failures[0].Path)

	// The failed create never entered the lockfile.
	require.Len(t, persisted.Content, 1)
	assert.Equal(t, "ok.md", persisted.Content[0].Path)
}

func TestService_RetrieveFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Alpha\n---\nbody\n")

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, errors.New("store unreachable"))

	svc := newService(t, dir, store, &fakePublisher{})

	_, err := svc.Prepare(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unreachable")

	// No publish and no persist may happen after a retrieval failure.
	store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
}

func TestService_PersistFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Alpha\n---\nbody\n")

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, nil)
	store.On("Persist", mock.Anything, mock.Anything).Return(errors.New("write denied"))

	svc := newService(t, dir, store, &fakePublisher{})

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), prepared)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write denied")
}

func TestService_EmptyDirectorySkipsPersist(t *testing.T) {
	dir := t.TempDir()

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, nil)

	svc := newService(t, dir, store, &fakePublisher{})

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)

	report, err := svc.Apply(context.Background(), prepared)
	require.NoError(t, err)
	assert.Zero(t, report.Found)

	store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
}

func TestService_DraftsNeverDispatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "draft.md", "---\ntitle: Draft\ndraft: true\n---\nbody\n")

	store := new(lockmocks.Client)
	store.On("Retrieve", mock.Anything).Return(nil, nil)
	store.On("Persist", mock.Anything, mock.Anything).Return(nil)

	pub := &fakePublisher{}
	svc := newService(t, dir, store, pub)

	prepared, err := svc.Prepare(context.Background())
	require.NoError(t, err)

	report, err := svc.Apply(context.Background(), prepared)
	require.NoError(t, err)

	assert.Zero(t, pub.creates+pub.updates)
	assert.Equal(t, 1, report.Drafts)
}
