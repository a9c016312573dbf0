package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/domain/relay"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/erp"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ERPClient is the slice of the HR bridge the relay run needs.
type ERPClient interface {
	Login(ctx context.Context, username, password string) (erp.Credential, error)
	ListEmployeeProfiles(ctx context.Context, cred erp.Credential) ([]erp.EmployeeProfile, error)
	PostCheckin(ctx context.Context, cred erp.Credential, checkin erp.CheckinRequest) error
}

// SnapshotSource provides the local punches to reconcile.
type SnapshotSource interface {
	DaySnapshot(ctx context.Context, day time.Time) ([]attendance.TodayPunch, error)
}

type RelayServiceImpl struct {
	erp       ERPClient
	snapshots SnapshotSource
}

func NewRelayService(erpClient ERPClient, snapshots SnapshotSource) *RelayServiceImpl {
	return &RelayServiceImpl{
		erp:       erpClient,
		snapshots: snapshots,
	}
}

// Run implements relay.Service.
func (s *RelayServiceImpl) Run(ctx context.Context, req relay.RunRequest) (relay.RunResult, error) {
	if err := req.Validate(); err != nil {
		return relay.RunResult{}, err
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			return relay.RunResult{}, attendance.ErrInvalidRange
		}
		day = parsed
	}

	// The credential lives in this stack frame for the duration of the run
	// and nowhere else.
	cred, err := s.erp.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, erp.ErrInvalidCredentials) {
			return relay.RunResult{}, err
		}
		return relay.RunResult{}, fmt.Errorf("%w: login: %w", relay.ErrUpstreamUnavailable, err)
	}

	profiles, err := s.erp.ListEmployeeProfiles(ctx, cred)
	if err != nil {
		return relay.RunResult{}, fmt.Errorf("%w: employee directory: %w", relay.ErrUpstreamUnavailable, err)
	}

	punches, err := s.snapshots.DaySnapshot(ctx, day)
	if err != nil {
		return relay.RunResult{}, fmt.Errorf("%w: punch store: %w", relay.ErrUpstreamUnavailable, err)
	}

	result := relay.RunResult{Date: day.Format(dateLayout)}
	for _, punch := range punches {
		// An OUT with no IN is never relayed, and an absent employee has
		// nothing to relay at all.
		if punch.InTime == nil {
			continue
		}

		matched := relay.MatchProfile(strconv.Itoa(punch.EmployeeID), profiles)
		if matched == nil {
			slog.Warn("No matching HR profile for punch, skipping",
				"employee_id", punch.EmployeeID, "employee_name", punch.EmployeeName)
			result.Skipped++
			continue
		}

		s.postEvent(ctx, cred, req, matched.DocName, "IN", *punch.InTime, &result)

		if punch.OutTime != nil {
			s.postEvent(ctx, cred, req, matched.DocName, "OUT", *punch.OutTime, &result)
		}
	}

	return result, nil
}

// postEvent posts a single IN/OUT event; a rejection is logged and counted
// but never aborts the remaining punches.
func (s *RelayServiceImpl) postEvent(ctx context.Context, cred erp.Credential, req relay.RunRequest, docName, logType string, at time.Time, result *relay.RunResult) {
	err := s.erp.PostCheckin(ctx, cred, erp.CheckinRequest{
		Employee:  docName,
		LogType:   logType,
		Time:      at.Format(dateTimeLayout),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		slog.Error("Failed to post checkin event",
			"employee", docName, "log_type", logType, "error", err)
		result.Failed++
		return
	}
	result.Posted++
}
