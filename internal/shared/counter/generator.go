package counter

import (
	"context"
	"fmt"
)

// Document types with a dedicated reference sequence.
const (
	DocTypeAttestation = "ATT"
	DocTypeMission     = "OM"
)

// Generator issues document reference strings such as "ATT-2024-00017".
// Sequences are independent per document type and per year.
type Generator interface {
	Next(ctx context.Context, docType string, year int) (string, error)
}

type generator struct {
	repo Repository
}

func NewGenerator(repo Repository) Generator {
	return &generator{repo: repo}
}

func (g *generator) Next(ctx context.Context, docType string, year int) (string, error) {
	next, err := g.repo.GetNextValue(ctx, docType, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%05d", docType, year, next), nil
}
