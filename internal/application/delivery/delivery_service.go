package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/courierlog/backend/internal/domain/delivery"
	"github.com/courierlog/backend/internal/domain/fleet"
	"github.com/courierlog/backend/internal/domain/report"
	"github.com/courierlog/backend/internal/domain/shared"
)

// ScanInput is one scanner's contribution to a submitted group.
type ScanInput struct {
	ScannerCode    string
	DeliveredCount int
}

// GroupInput is one batch of a day's submission.
type GroupInput struct {
	GroupCode     string
	ExpectedCount int
	Scans         []ScanInput
}

// SubmitRequest carries one driver-day's authoritative batch state.
type SubmitRequest struct {
	ClerkAuthID  string
	DeliveryDate string
	Groups       []GroupInput
}

// TodaySummaryResponse is the today view shaped for the client.
type TodaySummaryResponse struct {
	Submitted      bool                `json:"submitted"`
	DeliveryDate   string              `json:"delivery_date"`
	TotalDelivered int                 `json:"total_delivered"`
	Groups         []string            `json:"groups"`
	Scanners       []string            `json:"scanners"`
	Batches        []delivery.BatchRow `json:"batches"`
}

// MarshalJSON keeps the not-submitted response to its two fields. A
// submitted day always carries the aggregate fields, zero-valued or not.
func (r TodaySummaryResponse) MarshalJSON() ([]byte, error) {
	if !r.Submitted {
		return json.Marshal(struct {
			Submitted    bool   `json:"submitted"`
			DeliveryDate string `json:"delivery_date"`
		}{r.Submitted, r.DeliveryDate})
	}
	type submittedSummary TodaySummaryResponse
	return json.Marshal(submittedSummary(r))
}

// WeeklyDriver is the driver header of the weekly deliveries view.
type WeeklyDriver struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

// WeeklyDelivery is one delivery row of the weekly deliveries view.
type WeeklyDelivery struct {
	ID             uuid.UUID `json:"id"`
	DeliveryDate   string    `json:"delivery_date"`
	TotalDelivered int       `json:"total_delivered"`
}

// WeeklyDeliveriesResponse lists one driver's deliveries in the current week.
type WeeklyDeliveriesResponse struct {
	Driver     WeeklyDriver     `json:"driver"`
	Deliveries []WeeklyDelivery `json:"deliveries"`
	WeekStart  string           `json:"week_start"`
	WeekEnd    string           `json:"week_end"`
}

// DeliveryService handles the daily delivery aggregation and re-submission
// flow: create-or-replace of a driver-day's groups and the projections read
// back from the stored state.
type DeliveryService struct {
	driverRepo   fleet.DriverRepository
	scannerRepo  fleet.ScannerRepository
	deliveryRepo delivery.DeliveryRepository
	now          func() time.Time
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	driverRepo fleet.DriverRepository,
	scannerRepo fleet.ScannerRepository,
	deliveryRepo delivery.DeliveryRepository,
) *DeliveryService {
	return &DeliveryService{
		driverRepo:   driverRepo,
		scannerRepo:  scannerRepo,
		deliveryRepo: deliveryRepo,
		now:          time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *DeliveryService) WithClock(now func() time.Time) *DeliveryService {
	s.now = now
	return s
}

// Submit persists the given groups as the authoritative state for the
// driver-day, discarding any prior state for that day.
//
// Every scanner code is resolved before a single row is written, so a bad
// code fails the whole submission with the prior day state intact; the
// delete-and-reinsert itself runs inside one transaction in the repository.
func (s *DeliveryService) Submit(ctx context.Context, req SubmitRequest) error {
	if req.ClerkAuthID == "" || req.DeliveryDate == "" || len(req.Groups) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Missing required fields")
	}
	for _, in := range req.Groups {
		if len(in.Scans) == 0 {
			return shared.NewDomainError("INVALID_INPUT", "Missing required fields")
		}
	}

	date, err := shared.ParseDate(req.DeliveryDate)
	if err != nil {
		return err
	}

	driver, err := s.resolveDriver(ctx, req.ClerkAuthID)
	if err != nil {
		return err
	}

	groups := make([]delivery.Group, 0, len(req.Groups))
	for _, in := range req.Groups {
		group, err := delivery.NewGroup(uuid.Nil, in.GroupCode, in.ExpectedCount)
		if err != nil {
			return err
		}
		for _, scan := range in.Scans {
			scanner, err := s.scannerRepo.FindActiveByCode(ctx, scan.ScannerCode)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("NOT_FOUND", "Scanner not found: "+scan.ScannerCode)
				}
				return err
			}
			if err := group.AddScan(scanner.ID, scan.DeliveredCount); err != nil {
				return err
			}
		}
		groups = append(groups, *group)
	}

	return s.deliveryRepo.SubmitDay(ctx, driver.ID, date, groups)
}

// TodaySummary reports whether a delivery exists for the current calendar
// date and, if so, the aggregate plus the flat batch rows for the edit form.
func (s *DeliveryService) TodaySummary(ctx context.Context, clerkAuthID string) (*TodaySummaryResponse, error) {
	if clerkAuthID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing clerk_auth_id")
	}

	driver, err := s.resolveDriver(ctx, clerkAuthID)
	if err != nil {
		return nil, err
	}

	today := shared.TruncateToDay(s.now().UTC())

	d, err := s.deliveryRepo.FindByDriverAndDate(ctx, driver.ID, today)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	summary := delivery.Summarize(d, today)
	resp := &TodaySummaryResponse{
		Submitted:    summary.Submitted,
		DeliveryDate: shared.FormatDate(summary.DeliveryDate),
	}
	if summary.Submitted {
		resp.TotalDelivered = summary.TotalDelivered
		resp.Groups = summary.GroupCodes
		resp.Scanners = summary.ScannerCodes
		resp.Batches = summary.Batches
	}
	return resp, nil
}

// WeeklyDeliveries lists the driver's deliveries in the current Monday-start
// week, each with its delivered total.
func (s *DeliveryService) WeeklyDeliveries(ctx context.Context, clerkUserID string) (*WeeklyDeliveriesResponse, error) {
	if clerkUserID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing clerk_user_id")
	}

	driver, err := s.resolveDriver(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	week := report.WeekOf(s.now().UTC())

	rows, err := s.deliveryRepo.FindByDriverInRange(ctx, driver.ID, week.Start, week.End)
	if err != nil {
		return nil, err
	}

	deliveries := make([]WeeklyDelivery, 0, len(rows))
	for i := range rows {
		deliveries = append(deliveries, WeeklyDelivery{
			ID:             rows[i].ID,
			DeliveryDate:   shared.FormatDate(rows[i].DeliveryDate),
			TotalDelivered: rows[i].TotalDelivered(),
		})
	}

	return &WeeklyDeliveriesResponse{
		Driver: WeeklyDriver{
			ID:       driver.ID,
			FullName: driver.FullName,
			Email:    driver.Email,
		},
		Deliveries: deliveries,
		WeekStart:  shared.FormatDate(week.Start),
		WeekEnd:    shared.FormatDate(week.End),
	}, nil
}

func (s *DeliveryService) resolveDriver(ctx context.Context, clerkAuthID string) (*fleet.Driver, error) {
	driver, err := s.driverRepo.FindByClerkAuthID(ctx, clerkAuthID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Driver not found")
		}
		return nil, err
	}
	return driver, nil
}
