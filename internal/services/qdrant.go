package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/embedding"
)

const (
	payloadJobID = "job_description_id"
	payloadTitle = "title"
)

// VectorIndex stores one embedding per catalog job description.
type VectorIndex interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, jobID, title string, vector embedding.Vector) error
	Search(ctx context.Context, query embedding.Vector, limit int) ([]VectorMatch, error)
	Delete(ctx context.Context, jobID string) error
}

type VectorMatch struct {
	JobID string
	Title string
	Score float32
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

// NewQdrantIndex connects over gRPC. The collection's vector size must match
// the embedding provider's dimensions.
func NewQdrantIndex(urlStr, apiKey, collectionName string, vectorSize int, log *zap.Logger) (VectorIndex, error) {
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
		log:            log,
	}, nil
}

// InitCollection implements VectorIndex.
func (q *qdrantIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Info("qdrant collection already exists", zap.String("collection", q.collectionName))
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

	q.log.Info("qdrant collection created", zap.String("collection", q.collectionName), zap.Uint64("size", q.vectorSize))
	return nil
}

// Upsert implements VectorIndex. The point id is the job description id, so
// re-indexing replaces the previous vector.
func (q *qdrantIndex) Upsert(ctx context.Context, jobID, title string, vector embedding.Vector) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(jobID),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			payloadJobID: jobID,
			payloadTitle: title,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Search implements VectorIndex.
func (q *qdrantIndex) Search(ctx context.Context, query embedding.Vector, limit int) ([]VectorMatch, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(query...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]VectorMatch, 0, len(points))
	for _, point := range points {
		match := VectorMatch{Score: point.Score}

		if v, ok := point.Payload[payloadJobID]; ok {
			match.JobID = v.GetStringValue()
		}
		if v, ok := point.Payload[payloadTitle]; ok {
			match.Title = v.GetStringValue()
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// Delete implements VectorIndex.
func (q *qdrantIndex) Delete(ctx context.Context, jobID string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch(payloadJobID, jobID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}

	return nil
}
