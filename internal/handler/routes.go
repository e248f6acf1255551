package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
)

// Handlers groups every view handler registered by Register.
type Handlers struct {
	Auth       *AuthHandler
	Metrics    *MetricsHandler
	Dashboard  *DashboardHandler
	Schools    *SchoolHandler
	People     *PeopleHandler
	Classes    *ClassHandler
	Requests   *RequestHandler
	Attendance *AttendanceHandler
	Profile    *ProfileHandler
}

// RouteOptions toggles optional endpoints.
type RouteOptions struct {
	EnableMetrics bool
}

// Register mounts the console routes. Role groups mirror the navigation
// tree and are guarded with middleware.RequireRoles.
func Register(r gin.IRouter, h Handlers, opts RouteOptions) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.EnableMetrics {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/session", h.Auth.Session)
	r.GET("/verify", h.Auth.Verify)
	r.GET("/unauthorized", h.Auth.Unauthorized)

	registerSuperAdmin(r.Group("/super-admin", middleware.RequireRoles(models.RoleSuperAdmin)), h)
	registerSchoolAdmin(r.Group("/school-admin", middleware.RequireRoles(models.RoleSchoolAdmin)), h)
	registerTeacher(r.Group("/teacher", middleware.RequireRoles(models.RoleTeacher)), h)
	registerStudent(r.Group("/student", middleware.RequireRoles(models.RoleStudent)), h)
}

func registerSuperAdmin(g *gin.RouterGroup, h Handlers) {
	g.GET("/dashboard", h.Dashboard.Platform)
	g.GET("/metrics", h.Metrics.Snapshot)

	schools := g.Group("/schools")
	schools.GET("", h.Schools.List)
	schools.POST("", h.Schools.Create)
	schools.GET("/:id", h.Schools.Get)
	schools.PUT("/:id", h.Schools.Update)
	schools.PATCH("/:id/toggle-status", h.Schools.ToggleStatus)

	users := g.Group("/users")
	users.GET("", h.Schools.ListAdmins)
	users.POST("", h.Schools.CreateAdmin)
	users.GET("/:id", h.Schools.GetAdmin)
	users.PUT("/:id", h.Schools.UpdateAdmin)
	users.PATCH("/:id/toggle-status", h.Schools.ToggleAdmin)
}

func registerSchoolAdmin(g *gin.RouterGroup, h Handlers) {
	g.GET("/dashboard", h.Dashboard.School)
	g.GET("/profile", h.Profile.Show)
	g.GET("/school", h.Schools.OwnSchool)
	g.GET("/school/attendance-settings", h.Schools.AttendanceSettings)

	classes := g.Group("/classes")
	classes.GET("", h.Classes.List)
	classes.POST("", h.Classes.Create)
	classes.GET("/:id", h.Classes.Get)
	classes.PUT("/:id", h.Classes.Update)
	classes.DELETE("/:id", h.Classes.Delete)
	classes.PATCH("/:id/toggle-status", h.Classes.ToggleStatus)
	classes.POST("/:id/sections", h.Classes.AddSection)
	classes.DELETE("/:id/sections/:sectionId", h.Classes.RemoveSection)
	classes.PUT("/:id/sections/:sectionId/class-teacher", h.Classes.AssignClassTeacher)

	subjects := g.Group("/subjects")
	subjects.GET("", h.Classes.ListSubjects)
	subjects.POST("", h.Classes.CreateSubject)
	subjects.GET("/:id", h.Classes.GetSubject)
	subjects.PUT("/:id", h.Classes.UpdateSubject)
	subjects.DELETE("/:id", h.Classes.DeleteSubject)
	subjects.PATCH("/:id/toggle-status", h.Classes.ToggleSubject)

	teachers := g.Group("/teachers")
	teachers.GET("", h.People.ListTeachers)
	teachers.POST("", h.People.CreateTeacher)
	teachers.GET("/:id", h.People.GetTeacher)
	teachers.PUT("/:id", h.People.UpdateTeacher)
	teachers.DELETE("/:id", h.People.DeleteTeacher)
	teachers.PATCH("/:id/toggle-status", h.People.ToggleTeacher)

	students := g.Group("/students")
	students.GET("", h.People.ListStudents)
	students.GET("/search", h.People.SearchStudents)
	students.POST("", h.People.CreateStudent)
	students.GET("/:id", h.People.GetStudent)
	students.GET("/:id/parents", h.People.StudentParents)
	students.PUT("/:id", h.People.UpdateStudent)
	students.DELETE("/:id", h.People.DeleteStudent)
	students.PATCH("/:id/toggle-status", h.People.ToggleStudent)

	parents := g.Group("/parents")
	parents.GET("", h.People.ListParents)
	parents.GET("/search", h.People.SearchParents)
	parents.POST("", h.People.CreateParent)
	parents.GET("/:id", h.People.GetParent)
	parents.PUT("/:id", h.People.UpdateParent)
	parents.DELETE("/:id", h.People.DeleteParent)
	parents.PATCH("/:id/toggle-status", h.People.ToggleParent)

	requests := g.Group("/requests")
	requests.GET("", h.Requests.List)
	requests.PUT("/:id", h.Requests.UpdateStatus)

	leave := g.Group("/leave")
	leave.GET("", h.Requests.AllLeave)
	leave.GET("/stats", h.Requests.LeaveStats)
	leave.GET("/:id", h.Requests.GetLeave)
	leave.PUT("/:id/process", h.Requests.ProcessLeave)

	att := g.Group("/attendance")
	att.GET("/mode", h.Attendance.Mode)
	att.GET("/simple/class/:classId", h.Attendance.SimpleClass)
	att.POST("/simple/mark", h.Attendance.MarkSimple)
	att.PUT("/simple/:id", h.Attendance.UpdateSimple)
	att.GET("/sheet", h.Attendance.SimpleSheet)
	att.POST("/sheet", h.Attendance.SaveSheet)
	att.GET("/period/class/:classId", h.Attendance.PeriodClass)
	att.POST("/period/mark", h.Attendance.MarkPeriod)
	att.GET("/period-sheet", h.Attendance.PeriodSheet)
	att.POST("/period-sheet", h.Attendance.SavePeriodSheet)
	att.GET("/students/:studentId", h.Attendance.StudentHistory)
	att.GET("/checkin", h.Attendance.CheckinBoard)
	att.GET("/checkin/status/:userId", h.Attendance.CheckinStatus)
	att.POST("/checkin/in", h.Attendance.CheckIn)
	att.POST("/checkin/out", h.Attendance.CheckOut)
	att.GET("/teachers", h.Attendance.TeacherDaily)
	att.POST("/teachers", h.Attendance.MarkTeachers)
	att.GET("/teachers/:teacherId/history", h.Attendance.TeacherHistory)
	att.GET("/reports/daily", h.Attendance.DailyReport)
	att.GET("/reports/monthly", h.Attendance.MonthlyReport)
	att.GET("/reports/range", h.Attendance.RangeReport)
	att.GET("/reports/class-wise", h.Attendance.ClassWiseReport)
}

func registerTeacher(g *gin.RouterGroup, h Handlers) {
	g.GET("/dashboard", h.Dashboard.Member)
	g.GET("/profile", h.Profile.Show)
	g.GET("/classes", h.Classes.List)
	g.GET("/classes/:id", h.Classes.Get)
	g.GET("/students", h.People.ListStudents)
	g.GET("/students/search", h.People.SearchStudents)
	g.GET("/students/:id", h.People.GetStudent)
	g.GET("/students/:id/parents", h.People.StudentParents)
	g.GET("/parents", h.People.ListParents)
	g.GET("/parents/search", h.People.SearchParents)

	g.GET("/my-requests", h.Requests.Mine)
	g.POST("/my-requests", h.Requests.Create)

	leave := g.Group("/leave")
	leave.GET("", h.Requests.MyLeave)
	leave.POST("", h.Requests.ApplyLeave)
	leave.GET("/class", h.Requests.ClassLeave)
	leave.PUT("/:id/process", h.Requests.ProcessLeave)
	leave.DELETE("/:id", h.Requests.CancelLeave)

	att := g.Group("/attendance")
	att.GET("/mode", h.Attendance.Mode)
	att.GET("/sheet", h.Attendance.SimpleSheet)
	att.POST("/sheet", h.Attendance.SaveSheet)
	att.GET("/period-sheet", h.Attendance.PeriodSheet)
	att.POST("/period-sheet", h.Attendance.SavePeriodSheet)
	att.GET("/students/:studentId", h.Attendance.StudentHistory)
	att.GET("/checkin", h.Attendance.CheckinBoard)
	att.POST("/checkin/in", h.Attendance.CheckIn)
	att.POST("/checkin/out", h.Attendance.CheckOut)
	att.GET("/me", h.Attendance.TeacherStatus)
	att.POST("/me/check-in", h.Attendance.TeacherCheckIn)
	att.POST("/me/check-out", h.Attendance.TeacherCheckOut)
	att.GET("/me/history", h.Attendance.MyTeacherHistory)
}

func registerStudent(g *gin.RouterGroup, h Handlers) {
	g.GET("/dashboard", h.Dashboard.Member)
	g.GET("/profile", h.Profile.Show)
	g.GET("/classes", h.Classes.List)
	g.GET("/attendance", h.Attendance.MyHistory)

	g.GET("/my-requests", h.Requests.Mine)
	g.POST("/my-requests", h.Requests.Create)

	leave := g.Group("/leave")
	leave.GET("", h.Requests.MyLeave)
	leave.POST("", h.Requests.ApplyLeave)
	leave.DELETE("/:id", h.Requests.CancelLeave)
}
