package vectordb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"docqa/common/logger"
	"docqa/config"
	"docqa/schema"
)

const (
	milvusFieldID          = "id"
	milvusFieldContent     = "content"
	milvusFieldSource      = "source"
	milvusFieldChunkIndex  = "chunk_index"
	milvusFieldTotalChunks = "total_chunks"
	milvusFieldVector      = "vector"
	milvusFieldCreatedAt   = "created_at"

	milvusMaxIDLen      = 64
	milvusMaxContentLen = 65535
	milvusMaxSourceLen  = 1024
)

type milvusStore struct {
	cli        client.Client
	collection string
	dim        int
}

func newMilvusStore(cfg *config.VectorDBConfig, dim int) (*milvusStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cli, err := client.NewClient(ctx, client.Config{
		Address:  fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to milvus: %w", err)
	}

	s := &milvusStore{cli: cli, collection: cfg.Collection, dim: dim}
	if err := s.ensureCollection(ctx); err != nil {
		cli.Close()
		return nil, err
	}
	return s, nil
}

func (s *milvusStore) ensureCollection(ctx context.Context) error {
	exists, err := s.cli.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", s.collection, err)
	}
	if !exists {
		if err := s.createCollection(ctx); err != nil {
			return err
		}
	}
	if err := s.cli.LoadCollection(ctx, s.collection, false); err != nil {
		return fmt.Errorf("load collection %s: %w", s.collection, err)
	}
	if !exists {
		if err := s.seedBootstrap(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *milvusStore) createCollection(ctx context.Context) error {
	sch := entity.NewSchema().
		WithName(s.collection).
		WithField(entity.NewField().WithName(milvusFieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(milvusMaxIDLen).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(milvusFieldContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(milvusMaxContentLen)).
		WithField(entity.NewField().WithName(milvusFieldSource).WithDataType(entity.FieldTypeVarChar).WithMaxLength(milvusMaxSourceLen)).
		WithField(entity.NewField().WithName(milvusFieldChunkIndex).WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().WithName(milvusFieldTotalChunks).WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().WithName(milvusFieldCreatedAt).WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().WithName(milvusFieldVector).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(s.dim)))

	if err := s.cli.CreateCollection(ctx, sch, 1); err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}

	idx, err := entity.NewIndexHNSW(entity.IP, 8, 64)
	if err != nil {
		return fmt.Errorf("build index config: %w", err)
	}
	if err := s.cli.CreateIndex(ctx, s.collection, milvusFieldVector, idx, false); err != nil {
		return fmt.Errorf("create index on %s: %w", s.collection, err)
	}
	logger.Infof("created milvus collection %s (dim=%d)", s.collection, s.dim)
	return nil
}

func (s *milvusStore) seedBootstrap(ctx context.Context) error {
	return s.AddDocs(ctx, []schema.Document{BootstrapDoc(s.dim)})
}

func (s *milvusStore) AddDocs(ctx context.Context, docs []schema.Document) error {
	if len(docs) == 0 {
		return nil
	}
	n := len(docs)
	ids := make([]string, 0, n)
	contents := make([]string, 0, n)
	sources := make([]string, 0, n)
	chunkIdx := make([]int64, 0, n)
	totals := make([]int64, 0, n)
	created := make([]int64, 0, n)
	vectors := make([][]float32, 0, n)
	for _, doc := range docs {
		if len(doc.Vector) != s.dim {
			return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(doc.Vector), s.dim)
		}
		ids = append(ids, doc.ID)
		contents = append(contents, doc.Content)
		sources = append(sources, doc.Source())
		chunkIdx = append(chunkIdx, int64(doc.ChunkIndex()))
		totals = append(totals, int64(doc.TotalChunks()))
		ts := doc.CreatedAt
		if ts.IsZero() {
			ts = time.Now()
		}
		created = append(created, ts.Unix())
		vectors = append(vectors, doc.Vector)
	}

	_, err := s.cli.Insert(ctx, s.collection, "",
		entity.NewColumnVarChar(milvusFieldID, ids),
		entity.NewColumnVarChar(milvusFieldContent, contents),
		entity.NewColumnVarChar(milvusFieldSource, sources),
		entity.NewColumnInt64(milvusFieldChunkIndex, chunkIdx),
		entity.NewColumnInt64(milvusFieldTotalChunks, totals),
		entity.NewColumnInt64(milvusFieldCreatedAt, created),
		entity.NewColumnFloatVector(milvusFieldVector, s.dim, vectors),
	)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", s.collection, err)
	}
	if err := s.cli.Flush(ctx, s.collection, false); err != nil {
		return fmt.Errorf("flush %s: %w", s.collection, err)
	}
	return nil
}

func (s *milvusStore) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	topK := 4
	threshold := 0.0
	if opts != nil {
		if opts.TopK > 0 {
			topK = opts.TopK
		}
		threshold = opts.Threshold
	}

	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, fmt.Errorf("build search param: %w", err)
	}
	res, err := s.cli.Search(ctx, s.collection, nil, "",
		[]string{milvusFieldID, milvusFieldContent, milvusFieldSource, milvusFieldChunkIndex, milvusFieldTotalChunks, milvusFieldCreatedAt},
		[]entity.Vector{entity.FloatVector(vector)},
		milvusFieldVector, entity.IP, topK, sp)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.collection, err)
	}

	var results []schema.SearchResult
	for _, rs := range res {
		for i := 0; i < rs.ResultCount; i++ {
			score := float64(rs.Scores[i])
			if score < threshold {
				continue
			}
			doc, err := documentFromResult(rs.Fields, i)
			if err != nil {
				return nil, err
			}
			results = append(results, schema.SearchResult{Document: doc, Score: score})
		}
	}
	return results, nil
}

func (s *milvusStore) ListDocs(ctx context.Context, limit int) ([]schema.Document, error) {
	opts := []client.SearchQueryOptionFunc{}
	if limit > 0 {
		opts = append(opts, client.WithLimit(int64(limit)))
	}
	rs, err := s.cli.Query(ctx, s.collection, nil, fmt.Sprintf("%s != ''", milvusFieldID),
		[]string{milvusFieldID, milvusFieldContent, milvusFieldSource, milvusFieldChunkIndex, milvusFieldTotalChunks, milvusFieldCreatedAt},
		opts...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.collection, err)
	}

	count := 0
	if len(rs) > 0 {
		count = rs[0].Len()
	}
	docs := make([]schema.Document, 0, count)
	for i := 0; i < count; i++ {
		doc, err := documentFromResult(rs, i)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *milvusStore) DeleteDocs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, fmt.Sprintf("'%s'", strings.ReplaceAll(id, "'", "")))
	}
	expr := fmt.Sprintf("%s in [%s]", milvusFieldID, strings.Join(quoted, ", "))
	if err := s.cli.Delete(ctx, s.collection, "", expr); err != nil {
		return fmt.Errorf("delete from %s: %w", s.collection, err)
	}
	return nil
}

// Clear drops the collection and rebuilds it with the bootstrap placeholder.
func (s *milvusStore) Clear(ctx context.Context) error {
	if err := s.cli.DropCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("drop collection %s: %w", s.collection, err)
	}
	return s.ensureCollection(ctx)
}

func (s *milvusStore) Close() error {
	return s.cli.Close()
}

func documentFromResult(cols []entity.Column, row int) (schema.Document, error) {
	var doc schema.Document
	meta := map[string]any{}
	for _, col := range cols {
		switch col.Name() {
		case milvusFieldID:
			v, err := col.GetAsString(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			doc.ID = v
		case milvusFieldContent:
			v, err := col.GetAsString(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			doc.Content = v
		case milvusFieldSource:
			v, err := col.GetAsString(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			meta[schema.MetaSource] = v
		case milvusFieldChunkIndex:
			v, err := col.GetAsInt64(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			meta[schema.MetaChunkIndex] = int(v)
		case milvusFieldTotalChunks:
			v, err := col.GetAsInt64(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			meta[schema.MetaTotalChunks] = int(v)
		case milvusFieldCreatedAt:
			v, err := col.GetAsInt64(row)
			if err != nil {
				return doc, fmt.Errorf("read %s: %w", col.Name(), err)
			}
			doc.CreatedAt = time.Unix(v, 0)
		}
	}
	doc.Metadata = meta
	return doc, nil
}
