package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
	"github.com/amemlabs/amem/internal/embedding"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

var (
	ErrContentEmpty     = errors.New("content is required")
	ErrInvalidEventType = errors.New("invalid event type")
)

const defaultQueryLimit = 10

// EventStore is the append-only Postgres memory graph. Rows are never
// updated or deleted through this type; corrections append a new row plus a
// supersedes edge.
type EventStore struct {
	db       *pgxpool.Pool
	embedder domain.EmbeddingClient
	dim      int
	logger   *zap.Logger
}

func NewEventStore(db *pgxpool.Pool, logger *zap.Logger) *EventStore {
	return &EventStore{db: db, logger: logger}
}

// SetEmbedder enables vector storage on append. Embeddings are resized and
// normalized to dim before writing.
func (s *EventStore) SetEmbedder(ec domain.EmbeddingClient, dim int) {
	s.embedder = ec
	s.dim = dim
}

func (s *EventStore) Append(ctx context.Context, eventType domain.EventType, content string, sessionID int64, confidence float64) (int64, error) {
	if content == "" {
		return 0, ErrContentEmpty
	}
	if !domain.ValidEventType(string(eventType)) {
		return 0, ErrInvalidEventType
	}

	vec := s.embed(ctx, content)

	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO events (type, content, session_id, confidence, embedding)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		string(eventType), content, sessionID, confidence, vec,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	return id, nil
}

func (s *EventStore) AppendCorrection(ctx context.Context, content string, sessionID int64, supersedes int64) (int64, error) {
	if content == "" {
		return 0, ErrContentEmpty
	}

	vec := s.embed(ctx, content)

	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO events (type, content, session_id, confidence, supersedes, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		string(domain.EventTypeCorrection), content, sessionID, 1.0, supersedes, vec,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append correction: %w", err)
	}

	if err := s.AppendEdge(ctx, id, supersedes, domain.EdgeTypeSupersedes, 1.0); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *EventStore) AppendEdge(ctx context.Context, source, target int64, edgeType string, weight float64) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO edges (source_id, target_id, type, weight)
		 VALUES ($1, $2, $3, $4)`,
		source, target, edgeType, weight,
	)
	if err != nil {
		return fmt.Errorf("append edge: %w", err)
	}
	return nil
}

func (s *EventStore) Query(ctx context.Context, opts domain.QueryOpts) ([]domain.Node, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultQueryLimit
	}

	var conditions []string
	var args []any

	if len(opts.Types) > 0 {
		types := make([]string, 0, len(opts.Types))
		for _, t := range opts.Types {
			types = append(types, string(t))
		}
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", len(args)+1))
		args = append(args, types)
	}

	if len(opts.Sessions) > 0 {
		conditions = append(conditions, fmt.Sprintf("session_id = ANY($%d)", len(args)+1))
		args = append(args, opts.Sessions)
	}

	if opts.MinConfidence > 0 {
		conditions = append(conditions, fmt.Sprintf("confidence >= $%d", len(args)+1))
		args = append(args, opts.MinConfidence)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at DESC, id DESC"
	if opts.Sort == domain.SortConfidence {
		orderBy = "confidence DESC, created_at DESC"
	}

	args = append(args, opts.Limit)
	query := fmt.Sprintf(
		`SELECT id, type, content, session_id, confidence, supersedes, created_at
		 FROM events %s ORDER BY %s LIMIT $%d`,
		where, orderBy, len(args),
	)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.ID, &n.Type, &n.Content, &n.SessionID, &n.Confidence, &n.Supersedes, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// embed computes a normalized vector for content, or nil when no embedder
// is configured or the call fails. Storage works without embeddings.
func (s *EventStore) embed(ctx context.Context, content string) *pgvector.Vector {
	if s.embedder == nil || s.dim <= 0 {
		return nil
	}
	raw, err := s.embedder.Embed(ctx, content)
	if err != nil {
		s.logger.Warn("embedding generation failed", zap.Error(err))
		return nil
	}
	v := pgvector.NewVector(embedding.Normalize(raw, s.dim))
	return &v
}
