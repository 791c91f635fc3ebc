package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"postsync/core/content"
	"postsync/core/lockfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPublisher records calls and answers from canned responses.
// All fields guarded by mu because Execute fans out concurrently.
type stubPublisher struct {
	mu        sync.Mutex
	created   []string
	updated   map[string]string // path -> remote id the update carried
	failPaths map[string]error
	nextID    int
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{
		updated:   make(map[string]string),
		failPaths: make(map[string]error),
	}
}

func (p *stubPublisher) Create(_ context.Context, doc content.Document) (Remote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.failPaths[doc.Path]; ok {
		return Remote{}, err
	}
	p.created = append(p.created, doc.Path)
	p.nextID++
	return Remote{ID: "id-" + doc.Path, Slug: doc.Slug, URL: "https://blog.example.com/" + doc.Slug}, nil
}

func (p *stubPublisher) Update(_ context.Context, doc content.Document, id string) (Remote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.failPaths[doc.Path]; ok {
		return Remote{}, err
	}
	p.updated[doc.Path] = id
	return Remote{ID: id, Slug: doc.Slug, URL: "https://blog.example.com/" + doc.Slug}, nil
}

func TestExecute_DispatchesOnlyPendingActions(t *testing.T) {
	lock := lockfile.Lockfile{
		Content: []lockfile.Entry{
			{ID: "1", Path: "unchanged.md", Hash: "h1"},
			{ID: "2", Path: "changed.md", Hash: "h2"},
		},
	}
	docs := []content.Document{
		doc("unchanged.md", "h1"),
		doc("changed.md", "h2x"),
		doc("new.md", "h3"),
		draft("draft.md", "h4"),
	}

	pub := newStubPublisher()
	outcomes := Execute(context.Background(), BuildPlan(docs, lock), pub)

	require.Len(t, outcomes, 2)
	assert.Equal(t, []string{"new.md"}, pub.created)
	assert.Equal(t, map[string]string{"changed.md": "2"}, pub.updated)
}

func TestExecute_UpdateCarriesExistingID(t *testing.T) {
	lock := lockfile.Lockfile{
		Content: []lockfile.Entry{{ID: "remote-42", Path: "a.md", Hash: "old"}},
	}

	pub := newStubPublisher()
	outcomes := Execute(context.Background(), BuildPlan([]content.Document{doc("a.md", "new")}, lock), pub)

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeUpdated, outcomes[0].Kind)
	assert.Equal(t, "remote-42", outcomes[0].Remote.ID)
	assert.Equal(t, "remote-42", pub.updated["a.md"])
}

func TestExecute_FailureDoesNotShortCircuit(t *testing.T) {
	lock := lockfile.Empty("repo", "owner/repo")
	docs := []content.Document{
		doc("ok1.md", "h1"),
		doc("boom.md", "h2"),
		doc("ok2.md", "h3"),
	}

	pub := newStubPublisher()
	pub.failPaths["boom.md"] = errors.New("platform rejected content")

	outcomes := Execute(context.Background(), BuildPlan(docs, lock), pub)
	require.Len(t, outcomes, 3)

	succeeded, failed := Partition(outcomes)
	assert.Len(t, succeeded, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, "boom.md", failed[0].Doc.Path)
	assert.ErrorContains(t, failed[0].Err, "platform rejected content")

	// The siblings still reached the platform.
	assert.ElementsMatch(t, []string{"ok1.md", "ok2.md"}, pub.created)
}

func TestExecute_OutcomeCarriesOriginatingDocument(t *testing.T) {
	lock := lockfile.Empty("repo", "owner/repo")
	d := doc("a.md", "h1")

	pub := newStubPublisher()
	outcomes := Execute(context.Background(), BuildPlan([]content.Document{d}, lock), pub)

	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeCreated, outcomes[0].Kind)
	assert.Equal(t, "a.md", outcomes[0].Doc.Path)
	assert.Equal(t, "h1", outcomes[0].Doc.Hash)
}

func TestExecute_EmptyPlan(t *testing.T) {
	pub := newStubPublisher()
	outcomes := Execute(context.Background(), Plan{}, pub)
	assert.Empty(t, outcomes)
	assert.Empty(t, pub.created)
}

func TestIdempotence_SecondRunPublishesNothing(t *testing.T) {
	docs := []content.Document{doc("a.md", "h1"), doc("b.md", "h2")}

	// First run against an empty lockfile.
	pub := newStubPublisher()
	first := BuildPlan(docs, lockfile.Empty("repo", "owner/repo"))
	outcomes := Execute(context.Background(), first, pub)
	succeeded, failed := Partition(outcomes)
	require.Empty(t, failed)

	merged := Merge(lockfile.Empty("repo", "owner/repo"), succeeded, now())

	// Second run with identical documents: everything resolves to skip.
	second := BuildPlan(docs, merged)
	assert.Zero(t, second.Pending())

	pub2 := newStubPublisher()
	assert.Empty(t, Execute(context.Background(), second, pub2))
	assert.Empty(t, pub2.created)
	assert.Empty(t, pub2.updated)
}
