// Package dbtest provides an in-memory database.Client for repository tests.
// Document references come from a real firestore client pointed at an
// emulator address that is never dialed.
package dbtest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go-feedback-triage/internal/database"

	"cloud.google.com/go/firestore"
)

type Fake struct {
	*firestore.Client

	// Err is returned by every read and write when set.
	Err error

	mu      sync.Mutex
	writes  map[string]interface{}
	updates map[string][]firestore.Update
}

var _ database.Client = (*Fake)(nil)

func New(t testing.TB) *Fake {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")

	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return &Fake{
		Client:  client,
		writes:  make(map[string]interface{}),
		updates: make(map[string][]firestore.Update),
	}
}

// Written returns the last data set on the document at the relative path, e.g. "reviews/abc".
func (f *Fake) Written(path string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.writes[path]
	return v, ok
}

func (f *Fake) Updated(path string) []firestore.Update {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[path]
}

func (f *Fake) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *Fake) NotifyOnChanges(ctx context.Context, it *firestore.QuerySnapshotIterator, kind firestore.DocumentChangeKind) <-chan database.ChangeEvent {
	ch := make(chan database.ChangeEvent)
	close(ch)
	return ch
}

// GetDoc never finds anything, stored data is not readable back as snapshots.
func (f *Fake) GetDoc(ctx context.Context, docRef *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, database.ErrDocNotExist
}

func (f *Fake) IterDocs(ctx context.Context, query firestore.Query, fn func(*firestore.DocumentSnapshot) error) error {
	return f.Err
}

func (f *Fake) UpdateDoc(ctx context.Context, docRef *firestore.DocumentRef, updates []firestore.Update, preconds ...firestore.Precondition) (*firestore.WriteResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := relative(docRef)
	f.updates[key] = append(f.updates[key], updates...)
	return &firestore.WriteResult{}, nil
}

func (f *Fake) SetDoc(ctx context.Context, docRef *firestore.DocumentRef, data interface{}, opts ...firestore.SetOption) (*firestore.WriteResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes[relative(docRef)] = data
	return &firestore.WriteResult{}, nil
}

func (f *Fake) SetDocs(ctx context.Context, data []database.DataBatch) ([]*firestore.WriteResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make([]*firestore.WriteResult, 0, len(data))
	for _, item := range data {
		f.writes[relative(item.DocRef)] = item.Data
		results = append(results, &firestore.WriteResult{})
	}
	return results, nil
}

func relative(docRef *firestore.DocumentRef) string {
	if _, after, ok := strings.Cut(docRef.Path, "/documents/"); ok {
		return after
	}
	return docRef.Path
}
