package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talentindo/hrms-backend-go/internal/config"
	"github.com/talentindo/hrms-backend-go/internal/domain/attendance"
	"github.com/talentindo/hrms-backend-go/internal/pkg/zkteco"
)

type Service interface {
	List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error)
	Create(ctx context.Context, req attendance.CreatePunchRequest) (attendance.Attendance, error)
	Import(ctx context.Context, filename string, contentType string, content []byte) (attendance.ImportReport, error)
	PullFromDevice(ctx context.Context, req attendance.DevicePullRequest) ([]attendance.DevicePunch, error)
}

type serviceImpl struct {
	attendanceRepo attendance.Repository
	deviceConfig   config.DeviceConfig
}

func NewService(attendanceRepo attendance.Repository, deviceConfig config.DeviceConfig) Service {
	return &serviceImpl{
		attendanceRepo: attendanceRepo,
		deviceConfig:   deviceConfig,
	}
}

func (s *serviceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	return s.attendanceRepo.List(ctx, filter)
}

// Create records one punch by hand. A punch already known for the same badge
// and moment is refused rather than silently dropped, unlike imports.
func (s *serviceImpl) Create(ctx context.Context, req attendance.CreatePunchRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	punchTime, _ := time.Parse(time.RFC3339, req.PunchTime)
	return s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeCode: req.EmployeeCode,
		PunchTime:    punchTime,
		Source:       attendance.SourceManual,
	})
}

// PullFromDevice reads a clock's attendance log over TCP. The device is
// quiesced for the read and always re-enabled before disconnect, even when
// the read fails.
func (s *serviceImpl) PullFromDevice(ctx context.Context, req attendance.DevicePullRequest) ([]attendance.DevicePunch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	port := req.Port
	if port == 0 {
		port = s.deviceConfig.DefaultPort
	}
	timeout := time.Duration(s.deviceConfig.TimeoutSec) * time.Second

	client, err := zkteco.Dial(ctx, req.IP, port, timeout)
	if err != nil {
		return nil, attendance.ErrDeviceUnreachable
	}
	defer func() {
		if err := client.Disconnect(); err != nil {
			slog.Error("failed to disconnect from device", "ip", req.IP, "error", err)
		}
	}()

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("device handshake failed: %w", err)
	}
	if err := client.DisableDevice(); err != nil {
		return nil, fmt.Errorf("failed to quiesce device: %w", err)
	}
	defer func() {
		if err := client.EnableDevice(); err != nil {
			slog.Error("failed to re-enable device", "ip", req.IP, "error", err)
		}
	}()

	log, err := client.AttendanceLog()
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance log: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	punches := filterPunches(log, start, end)

	if req.Persist {
		rows := make([]attendance.Attendance, 0, len(punches))
		for _, p := range punches {
			rows = append(rows, attendance.Attendance{
				EmployeeCode: p.IDNo,
				PunchTime:    p.PunchTime,
				Source:       attendance.SourceDevice,
			})
		}
		inserted, err := s.attendanceRepo.CreateBatch(ctx, rows)
		if err != nil {
			return nil, err
		}
		slog.Info("persisted device punches", "ip", req.IP, "pulled", len(punches), "inserted", inserted)
	}

	return punches, nil
}

// filterPunches keeps punches within [start, end], end inclusive for the
// whole day.
func filterPunches(log []zkteco.Punch, start, end time.Time) []attendance.DevicePunch {
	endExclusive := end.AddDate(0, 0, 1)

	punches := make([]attendance.DevicePunch, 0, len(log))
	for _, p := range log {
		if p.Timestamp.Before(start) || !p.Timestamp.Before(endExclusive) {
			continue
		}
		punches = append(punches, attendance.DevicePunch{
			IDNo:      p.UserID,
			PunchTime: p.Timestamp,
		})
	}
	return punches
}
