package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/department"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// EventScanRecorded names the stream event published after every scan.
const EventScanRecorded = "scan"

const unknownName = "Unknown"

// Options tunes reporting and development behavior.
type Options struct {
	DefaultHourlyRate decimal.Decimal
	ReportLocation    *time.Location
	SampleEnabled     bool
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	wallets     wallet.WalletRepository
	employees   employee.EmployeeRepository
	departments department.DepartmentRepository
	users       user.UserRepository
	hub         *sse.Hub
	opts        Options
}

func NewAttendanceService(
	walletRepository wallet.WalletRepository,
	employeeRepository employee.EmployeeRepository,
	departmentRepository department.DepartmentRepository,
	userRepository user.UserRepository,
	hub *sse.Hub,
	opts Options,
) wallet.AttendanceService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReportLocation == nil {
		opts.ReportLocation = time.UTC
	}
	if !opts.DefaultHourlyRate.IsPositive() {
		opts.DefaultHourlyRate = employee.DefaultHourlyRate
	}
	return &AttendanceServiceImpl{
		wallets:     walletRepository,
		employees:   employeeRepository,
		departments: departmentRepository,
		users:       userRepository,
		hub:         hub,
		opts:        opts,
	}
}

// RecordScan implements wallet.AttendanceService.
func (s *AttendanceServiceImpl) RecordScan(ctx context.Context, req wallet.ScanRequest) (wallet.ScanResponse, error) {
	op, err := scanOperatorFromContext(ctx)
	if err != nil {
		return wallet.ScanResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return wallet.ScanResponse{}, err
	}

	emp, err := s.employees.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		return wallet.ScanResponse{}, err
	}

	w, err := s.wallets.FindByEmployee(ctx, emp.ID)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		w = wallet.NewWallet(emp.ID)
	} else if err != nil {
		return wallet.ScanResponse{}, fmt.Errorf("load wallet: %w", err)
	}

	plan := planScan(w, op, s.opts.Now().UTC())
	w.Append(plan.Entries()...)

	if err := s.wallets.Save(ctx, w); err != nil {
		if errors.Is(err, wallet.ErrConcurrentScan) {
			return wallet.ScanResponse{}, err
		}
		return wallet.ScanResponse{}, fmt.Errorf("save wallet: %w", err)
	}

	event := wallet.ScanEvent{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		DepartmentID: op.DepartmentID,
		ScanType:     plan.ScanType,
		Timestamp:    plan.Entry.Timestamp,
	}
	if plan.AutoClosed != nil {
		event.AutoClosedDepartmentID = &plan.AutoClosed.DepartmentID
		slog.Info("auto-closed open session",
			"employee_id", emp.ID,
			"department_id", plan.AutoClosed.DepartmentID,
			"operator_id", op.UserID,
		)
	}
	if s.hub != nil {
		s.hub.Publish(sse.Event{Topic: op.UserID, Name: EventScanRecorded, Data: event})
	}

	return wallet.ScanResponse{EmployeeID: emp.ID, LastScanType: plan.ScanType}, nil
}

// GetWallet implements wallet.AttendanceService.
func (s *AttendanceServiceImpl) GetWallet(ctx context.Context, employeeID string) (wallet.WalletResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return wallet.WalletResponse{}, wallet.ErrWalletNotFound
	}

	w, err := s.wallets.FindByEmployee(ctx, employeeID)
	if err != nil {
		return wallet.WalletResponse{}, err
	}

	return wallet.NewWalletResponse(w), nil
}

// GetWorkLogs implements wallet.AttendanceService. The rate falls back to the
// employee's own rate, then to the configured default.
func (s *AttendanceServiceImpl) GetWorkLogs(ctx context.Context, req wallet.WorkLogRequest) ([]wallet.WorkLogRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	w, err := s.wallets.FindByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	rate := s.opts.DefaultHourlyRate
	switch {
	case req.HourlyRate != nil:
		rate = *req.HourlyRate
	case emp.HourlyRate.IsPositive():
		rate = emp.HourlyRate
	}

	return ComputeWorkLogs(w.Entries, rate, s.opts.ReportLocation), nil
}

// GetMyScans implements wallet.AttendanceService.
func (s *AttendanceServiceImpl) GetMyScans(ctx context.Context) ([]wallet.SupervisorScanLog, error) {
	op, err := operatorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	wallets, err := s.wallets.ListScannedBy(ctx, op.UserID)
	if err != nil {
		return nil, fmt.Errorf("list scanned wallets: %w", err)
	}

	employeeIDs := make([]string, 0, len(wallets))
	departmentIDs := []string{}
	seenDepartment := map[string]bool{}
	for _, w := range wallets {
		employeeIDs = append(employeeIDs, w.EmployeeID)
		for _, e := range w.Entries {
			if e.ScannedBy == op.UserID && !seenDepartment[e.DepartmentID] && validator.IsValidUUID(e.DepartmentID) {
				seenDepartment[e.DepartmentID] = true
				departmentIDs = append(departmentIDs, e.DepartmentID)
			}
		}
	}

	employeesByID, err := s.employees.GetByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}
	departmentsByID, err := s.departments.GetByIDs(ctx, departmentIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve departments: %w", err)
	}

	logs := []wallet.SupervisorScanLog{}
	for _, w := range wallets {
		employeeName := unknownName
		if emp, ok := employeesByID[w.EmployeeID]; ok {
			employeeName = emp.Name
		}
		for _, e := range w.Entries {
			if e.ScannedBy != op.UserID {
				continue
			}
			departmentName := unknownName
			if dept, ok := departmentsByID[e.DepartmentID]; ok {
				departmentName = dept.Name
			}
			logs = append(logs, wallet.SupervisorScanLog{
				EmployeeID:     w.EmployeeID,
				EmployeeName:   employeeName,
				DepartmentID:   e.DepartmentID,
				DepartmentName: departmentName,
				ScanType:       e.ScanType,
				Timestamp:      e.Timestamp,
				AutoClosed:     e.AutoClosed,
			})
		}
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})

	return logs, nil
}

// AddSampleEntries implements wallet.AttendanceService.
func (s *AttendanceServiceImpl) AddSampleEntries(ctx context.Context, employeeID string) (wallet.WalletResponse, error) {
	if !s.opts.SampleEnabled {
		return wallet.WalletResponse{}, wallet.ErrSampleDisabled
	}
	if !validator.IsValidUUID(employeeID) {
		return wallet.WalletResponse{}, wallet.ErrWalletNotFound
	}

	w, err := s.wallets.FindByEmployee(ctx, employeeID)
	if err != nil {
		return wallet.WalletResponse{}, err
	}

	w.Append(sampleEntries(w)...)
	if err := s.wallets.Save(ctx, w); err != nil {
		if errors.Is(err, wallet.ErrConcurrentScan) {
			return wallet.WalletResponse{}, err
		}
		return wallet.WalletResponse{}, fmt.Errorf("save wallet: %w", err)
	}

	return wallet.NewWalletResponse(w), nil
}

// Subscribe implements wallet.AttendanceService.
func (s *AttendanceServiceImpl) Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func(), error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.HasPermission(u.Role, user.PermissionAttendanceScan) {
		return nil, nil, user.ErrInsufficientPermissions
	}

	topic := u.ID
	if u.IsAdmin() {
		topic = sse.TopicAll
	}

	ch, cleanup := s.hub.Subscribe(topic)
	return ch, cleanup, nil
}
