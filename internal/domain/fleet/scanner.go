package fleet

import (
	"strings"

	"github.com/courierlog/backend/internal/domain/shared"
)

// Scanner is a pre-provisioned device code lookup entity. Scanners are not
// created by the delivery flow; every scan insert resolves one by exact code
// with the active flag set.
type Scanner struct {
	shared.BaseEntity
	Code   string `gorm:"column:scanner_code;type:varchar(100);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Scanner) TableName() string {
	return "scanners"
}

// NewScanner provisions an active scanner with the given code.
func NewScanner(code string) (*Scanner, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Scanner code cannot be empty")
	}
	return &Scanner{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Active:     true,
	}, nil
}

// Deactivate retires the scanner; inactive scanners no longer resolve.
func (s *Scanner) Deactivate() {
	s.Active = false
}
