package provider

import (
	"context"
	"fmt"
	"log"
	"os"

	"conviction-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// PositionFileProvider serves a static dataset from local disk, mostly
// for development and offline runs.
type PositionFileProvider struct {
	path   string
	tracer trace.Tracer
}

func NewPositionFileProvider(tracer trace.Tracer, path string) *PositionFileProvider {
	return &PositionFileProvider{path: path, tracer: tracer}
}

// FetchPositions reads and decodes the dataset file. A missing file is an
// empty dataset, mirroring the HTTP provider's 404 handling.
func (p *PositionFileProvider) FetchPositions(ctx context.Context) ([]domain.RawTradeRecord, error) {
	_, span := p.tracer.Start(ctx, "position-file.read")
	defer span.End()

	body, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		log.Printf("position file %s does not exist", p.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse positions: %w", err)
	}
	return records, nil
}
