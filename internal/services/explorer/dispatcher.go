package explorer

import (
	"context"
	"log"

	"github.com/louisbranch/explorer/internal/explorer/query"
)

// Dispatcher hands validated queries to the analytics backend.
type Dispatcher interface {
	Run(ctx context.Context, m query.Model) error
	Save(ctx context.Context, m query.Model) error
	Delete(ctx context.Context, m query.Model) error
}

// logDispatcher accepts every request and records it. It stands in when no
// backend is configured.
type logDispatcher struct {
	logger *log.Logger
}

func (d logDispatcher) Run(_ context.Context, m query.Model) error {
	d.logger.Printf("accepted run: collection=%q analysis=%q", collectionOf(m), m.AnalysisType())
	return nil
}

func (d logDispatcher) Save(_ context.Context, m query.Model) error {
	d.logger.Printf("accepted save: id=%q name=%q", m.ID, m.QueryName)
	return nil
}

func (d logDispatcher) Delete(_ context.Context, m query.Model) error {
	d.logger.Printf("accepted delete: id=%q", m.ID)
	return nil
}

func collectionOf(m query.Model) string {
	if m.Query == nil {
		return ""
	}
	return m.Query.EventCollection
}
