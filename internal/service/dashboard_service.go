package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// PlatformDashboard is the super admin landing page.
type PlatformDashboard struct {
	Stats   models.PlatformStats `json:"stats"`
	Schools []models.School      `json:"schools"`
}

// SchoolDashboard is the school admin landing page.
type SchoolDashboard struct {
	Stats           models.SchoolStats `json:"stats"`
	Leave           models.LeaveStats  `json:"leave"`
	PendingRequests int                `json:"pendingRequests"`
}

// MemberDashboard is the teacher and student landing page.
type MemberDashboard struct {
	Role     models.UserRole       `json:"role"`
	Mode     models.AttendanceMode `json:"attendanceMode"`
	Requests []models.Request      `json:"requests"`
	Leave    *models.LeaveList     `json:"leave,omitempty"`
	Teacher  *models.TeacherStatus `json:"teacherStatus,omitempty"`
}

// DashboardService reads dashboard statistics and composes the role
// dashboards from several reads issued in parallel.
type DashboardService struct {
	gateway
	schools    *SchoolService
	requests   *RequestService
	leave      *LeaveService
	attendance *AttendanceService
}

// DashboardDeps are the services role dashboards are composed from.
type DashboardDeps struct {
	Schools    *SchoolService
	Requests   *RequestService
	Leave      *LeaveService
	Attendance *AttendanceService
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(client backend.Doer, cache *querycache.Cache, deps DashboardDeps, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		gateway:    newGateway(client, cache, logger),
		schools:    deps.Schools,
		requests:   deps.Requests,
		leave:      deps.Leave,
		attendance: deps.Attendance,
	}
}

// PlatformStats returns platform wide counts.
func (s *DashboardService) PlatformStats(ctx context.Context, sess *models.Session) (Result[models.PlatformStats], error) {
	key := querycache.Key{Entity: querycache.EntityPlatformDashboard, Tenant: querycache.PlatformTenant}
	return read[models.PlatformStats](ctx, s.gateway, sess, key, "/api/admin/dashboard/stats", nil)
}

// SchoolStats returns the counts of the session's school.
func (s *DashboardService) SchoolStats(ctx context.Context, sess *models.Session) (Result[models.SchoolStats], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[models.SchoolStats]{}, err
	}
	key := querycache.Key{Entity: querycache.EntitySchoolDashboard, Tenant: tenant}
	return read[models.SchoolStats](ctx, s.gateway, sess, key, schoolPath(tenant, "dashboard", "stats"), nil)
}

// Platform composes the super admin dashboard.
func (s *DashboardService) Platform(ctx context.Context, sess *models.Session) (*PlatformDashboard, error) {
	out := &PlatformDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.PlatformStats(gctx, sess)
		out.Stats = res.Data
		return err
	})
	g.Go(func() error {
		res, err := s.schools.List(gctx, sess)
		out.Schools = res.Data
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.Schools == nil {
		out.Schools = []models.School{}
	}
	return out, nil
}

// School composes the school admin dashboard.
func (s *DashboardService) School(ctx context.Context, sess *models.Session) (*SchoolDashboard, error) {
	out := &SchoolDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.SchoolStats(gctx, sess)
		out.Stats = res.Data
		return err
	})
	g.Go(func() error {
		res, err := s.leave.Stats(gctx, sess)
		out.Leave = res.Data
		return err
	})
	g.Go(func() error {
		res, err := s.requests.List(gctx, sess, models.RequestFilter{Status: models.RequestPending})
		out.PendingRequests = len(res.Data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Member composes the teacher or student dashboard.
func (s *DashboardService) Member(ctx context.Context, sess *models.Session) (*MemberDashboard, error) {
	if sess == nil {
		return nil, appErrors.ErrUnauthorized
	}
	out := &MemberDashboard{Role: sess.Role, Mode: models.ModeSimple}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		settings, err := s.schools.AttendanceSettings(gctx, sess)
		if err != nil {
			// A student may not be allowed to read school settings.
			if appErrors.FromError(err).HTTPStatus() == http.StatusForbidden {
				return nil
			}
			return err
		}
		out.Mode = settings.Mode
		return nil
	})
	g.Go(func() error {
		res, err := s.requests.Mine(gctx, sess)
		out.Requests = res.Data
		return err
	})
	if sess.Role == models.RoleTeacher {
		g.Go(func() error {
			res, err := s.leave.Mine(gctx, sess, models.LeaveFilter{})
			if err == nil {
				out.Leave = &res.Data
			}
			return err
		})
		g.Go(func() error {
			res, err := s.attendance.TeacherStatus(gctx, sess)
			if err == nil {
				out.Teacher = &res.Data
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.Requests == nil {
		out.Requests = []models.Request{}
	}
	return out, nil
}
