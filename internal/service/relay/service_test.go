package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/checkinhq/checkin-backend-go/internal/domain/attendance"
	"github.com/checkinhq/checkin-backend-go/internal/domain/relay"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/erp"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeERPClient struct {
	loginErr    error
	profiles    []erp.EmployeeProfile
	profilesErr error

	postErrFor map[string]error // keyed by employee doc name
	posted     []erp.CheckinRequest
}

func (f *fakeERPClient) Login(_ context.Context, username, password string) (erp.Credential, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return erp.Credential("token k:s"), nil
}

func (f *fakeERPClient) ListEmployeeProfiles(_ context.Context, _ erp.Credential) ([]erp.EmployeeProfile, error) {
	if f.profilesErr != nil {
		return nil, f.profilesErr
	}
	return f.profiles, nil
}

func (f *fakeERPClient) PostCheckin(_ context.Context, _ erp.Credential, checkin erp.CheckinRequest) error {
	if err, ok := f.postErrFor[checkin.Employee]; ok {
		return err
	}
	f.posted = append(f.posted, checkin)
	return nil
}

type fakeSnapshotSource struct {
	punches []attendance.TodayPunch
	err     error
}

func (f *fakeSnapshotSource) DaySnapshot(_ context.Context, _ time.Time) ([]attendance.TodayPunch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.punches, nil
}

func ts(value string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return &t
}

func validRequest() relay.RunRequest {
	return relay.RunRequest{
		Username:  "ops@example.com",
		Password:  "secret",
		Latitude:  24.71,
		Longitude: 46.67,
		Date:      "2025-01-06",
	}
}

func TestRun_PostsInAndOutForMatchedPunch(t *testing.T) {
	erpClient := &fakeERPClient{profiles: []erp.EmployeeProfile{
		{DocName: "HR-EMP-00007", UserID: "7"},
	}}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{
			EmployeeID:   7,
			EmployeeName: "Omar Haddad",
			InTime:       ts("2025-01-06 08:00:00"),
			OutTime:      ts("2025-01-06 17:00:00"),
		},
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", result.Date)
	assert.Equal(t, 2, result.Posted)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, erpClient.posted, 2)
	in, out := erpClient.posted[0], erpClient.posted[1]
	assert.Equal(t, "HR-EMP-00007", in.Employee)
	assert.Equal(t, "IN", in.LogType)
	assert.Equal(t, "2025-01-06 08:00:00", in.Time)
	assert.Equal(t, 24.71, in.Latitude)
	assert.Equal(t, 46.67, in.Longitude)
	assert.Equal(t, "OUT", out.LogType)
	assert.Equal(t, "2025-01-06 17:00:00", out.Time)
}

func TestRun_SinglePunchPostsOnlyIn(t *testing.T) {
	erpClient := &fakeERPClient{profiles: []erp.EmployeeProfile{
		{DocName: "HR-EMP-00007", UserID: "7"},
	}}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{EmployeeID: 7, InTime: ts("2025-01-06 08:00:00")},
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Posted)
	require.Len(t, erpClient.posted, 1)
	assert.Equal(t, "IN", erpClient.posted[0].LogType)
}

func TestRun_AbsentPunchRelaysNothing(t *testing.T) {
	erpClient := &fakeERPClient{profiles: []erp.EmployeeProfile{
		{DocName: "HR-EMP-00007", UserID: "7"},
	}}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{EmployeeID: 7}, // no punches today
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, relay.RunResult{Date: "2025-01-06"}, result)
	assert.Empty(t, erpClient.posted)
}

func TestRun_OutWithoutInRelaysNothing(t *testing.T) {
	erpClient := &fakeERPClient{profiles: []erp.EmployeeProfile{
		{DocName: "HR-EMP-00007", UserID: "7"},
	}}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{EmployeeID: 7, OutTime: ts("2025-01-06 17:00:00")}, // no IN on record
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, relay.RunResult{Date: "2025-01-06"}, result)
	assert.Empty(t, erpClient.posted)
}

func TestRun_UnmatchedPunchCountedAsSkipped(t *testing.T) {
	erpClient := &fakeERPClient{profiles: []erp.EmployeeProfile{
		{DocName: "HR-EMP-00001", UserID: "1"},
	}}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{EmployeeID: 7, InTime: ts("2025-01-06 08:00:00")},
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Posted)
	assert.Empty(t, erpClient.posted)
}

func TestRun_RejectedEventDoesNotAbortRun(t *testing.T) {
	erpClient := &fakeERPClient{
		profiles: []erp.EmployeeProfile{
			{DocName: "HR-EMP-00005", UserID: "5"},
			{DocName: "HR-EMP-00007", UserID: "7"},
		},
		postErrFor: map[string]error{
			"HR-EMP-00005": errors.New("duplicate checkin"),
		},
	}
	snapshots := &fakeSnapshotSource{punches: []attendance.TodayPunch{
		{EmployeeID: 5, InTime: ts("2025-01-06 08:00:00")},
		{EmployeeID: 7, InTime: ts("2025-01-06 09:00:00")},
	}}
	svc := NewRelayService(erpClient, snapshots)

	result, err := svc.Run(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Posted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, erpClient.posted, 1)
	assert.Equal(t, "HR-EMP-00007", erpClient.posted[0].Employee)
}

func TestRun_InvalidCredentialsPassThrough(t *testing.T) {
	erpClient := &fakeERPClient{loginErr: erp.ErrInvalidCredentials}
	svc := NewRelayService(erpClient, &fakeSnapshotSource{})

	_, err := svc.Run(context.Background(), validRequest())

	assert.ErrorIs(t, err, erp.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, relay.ErrUpstreamUnavailable)
}

func TestRun_LoginOutageIsUpstreamUnavailable(t *testing.T) {
	erpClient := &fakeERPClient{loginErr: errors.New("connection refused")}
	svc := NewRelayService(erpClient, &fakeSnapshotSource{})

	_, err := svc.Run(context.Background(), validRequest())

	assert.ErrorIs(t, err, relay.ErrUpstreamUnavailable)
}

func TestRun_DirectoryFailureIsUpstreamUnavailable(t *testing.T) {
	erpClient := &fakeERPClient{profilesErr: errors.New("bad gateway")}
	svc := NewRelayService(erpClient, &fakeSnapshotSource{})

	_, err := svc.Run(context.Background(), validRequest())

	assert.ErrorIs(t, err, relay.ErrUpstreamUnavailable)
}

func TestRun_SnapshotFailureIsUpstreamUnavailable(t *testing.T) {
	erpClient := &fakeERPClient{}
	snapshots := &fakeSnapshotSource{err: errors.New("db down")}
	svc := NewRelayService(erpClient, snapshots)

	_, err := svc.Run(context.Background(), validRequest())

	assert.ErrorIs(t, err, relay.ErrUpstreamUnavailable)
}

func TestRun_ValidationFailureShortCircuits(t *testing.T) {
	erpClient := &fakeERPClient{}
	svc := NewRelayService(erpClient, &fakeSnapshotSource{})

	req := validRequest()
	req.Latitude = 123.4

	_, err := svc.Run(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, erpClient.posted)
}

func TestRun_MalformedDateRejected(t *testing.T) {
	svc := NewRelayService(&fakeERPClient{}, &fakeSnapshotSource{})

	req := validRequest()
	req.Date = "06/01/2025"

	_, err := svc.Run(context.Background(), req)

	assert.Error(t, err)
}
