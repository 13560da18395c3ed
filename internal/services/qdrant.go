package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// ReferenceIndex stores chunks of role descriptions used as reference
// material when rewriting a resume.
type ReferenceIndex interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, chunks []ReferenceChunk) error
	Search(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteSource(ctx context.Context, source string) error
	Close() error
}

type ReferenceChunk struct {
	Source    string
	Role      string
	Index     int
	Text      string
	Embedding []float32
}

type SearchResult struct {
	ID     string
	Score  float32
	Text   string
	Source string
	Role   string
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewReferenceIndex(urlStr, apiKey, collectionName string, vectorSize int) (ReferenceIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection creates the collection when it does not exist yet.
func (q *qdrantIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully", q.collectionName)
	return nil
}

// Upsert writes chunks in one request. Point IDs derive from source and chunk
// index, so re-ingesting a file overwrites its previous chunks.
func (q *qdrantIndex) Upsert(ctx context.Context, chunks []ReferenceChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(chunkPointID(chunk.Source, chunk.Index)),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"source":      chunk.Source,
				"role":        chunk.Role,
				"chunk_index": chunk.Index,
				"text":        chunk.Text,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Search returns the closest chunks to queryEmbedding.
func (q *qdrantIndex) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, SearchResult{
			ID:     point.GetId().GetUuid(),
			Score:  point.GetScore(),
			Text:   payloadString(point.GetPayload(), "text"),
			Source: payloadString(point.GetPayload(), "source"),
			Role:   payloadString(point.GetPayload(), "role"),
		})
	}

	return results, nil
}

// DeleteSource removes every chunk ingested from source.
func (q *qdrantIndex) DeleteSource(ctx context.Context, source string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("source", source),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to delete source %s: %w", source, err)
	}

	return nil
}

func (q *qdrantIndex) Close() error {
	return q.client.Close()
}

func chunkPointID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, index))).String()
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		return value.GetStringValue()
	}
	return ""
}
