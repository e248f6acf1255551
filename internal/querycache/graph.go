package querycache

// Entity names used in cache keys.
const (
	EntitySchools           = "schools"
	EntitySchoolAdmins      = "school_admins"
	EntityTeachers          = "teachers"
	EntityStudents          = "students"
	EntityParents           = "parents"
	EntityClasses           = "classes"
	EntitySubjects          = "subjects"
	EntityRequests          = "requests"
	EntityLeave             = "leave"
	EntityAttendanceSimple  = "attendance.simple"
	EntityAttendancePeriod  = "attendance.period"
	EntityAttendanceCheckin = "attendance.checkin"
	EntityAttendanceTeacher = "attendance.teacher"
	EntityAttendanceReports = "attendance.reports"
	EntityPlatformDashboard = "dashboard.platform"
	EntitySchoolDashboard   = "dashboard.school"
)

// Graph maps an entity to the other entities whose cached reads a mutation
// of it makes stale. An entity always invalidates itself.
type Graph map[string][]string

// DefaultGraph is the dependency graph of the console's resources.
func DefaultGraph() Graph {
	return Graph{
		EntitySchools:      {EntityPlatformDashboard},
		EntitySchoolAdmins: {EntityPlatformDashboard},
		EntityTeachers:     {EntitySchoolDashboard},
		// Parents carry studentIds and students carry parentId.
		EntityStudents:          {EntityParents, EntitySchoolDashboard},
		EntityParents:           {EntityStudents, EntitySchoolDashboard},
		EntityLeave:             {EntitySchoolDashboard},
		EntityAttendanceSimple:  {EntityAttendanceReports},
		EntityAttendancePeriod:  {EntityAttendanceReports},
		EntityAttendanceCheckin: {EntityAttendanceReports},
		EntityAttendanceTeacher: {EntityAttendanceReports},
	}
}

// Dependents returns entity followed by the entities it invalidates, without
// duplicates.
func (g Graph) Dependents(entity string) []string {
	out := []string{entity}
	seen := map[string]struct{}{entity: {}}
	for _, dep := range g[entity] {
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		out = append(out, dep)
	}
	return out
}
