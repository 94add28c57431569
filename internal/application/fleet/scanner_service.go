package fleet

import (
	"context"
	"strings"

	"github.com/courierlog/backend/internal/domain/fleet"
)

// SearchLimit caps the number of scanner codes returned by a search.
const SearchLimit = 10

// ScannerService handles scanner lookups for the submission form's
// autocomplete.
type ScannerService struct {
	scannerRepo fleet.ScannerRepository
}

// NewScannerService creates a new ScannerService
func NewScannerService(scannerRepo fleet.ScannerRepository) *ScannerService {
	return &ScannerService{scannerRepo: scannerRepo}
}

// Search returns up to SearchLimit active scanner codes containing the query
// case-insensitively. A blank query returns an empty list without querying
// the store.
func (s *ScannerService) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	codes, err := s.scannerRepo.SearchActiveCodes(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}
