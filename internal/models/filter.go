package models

import "net/url"

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	Department string       `form:"department"`
	Status     EntityStatus `form:"status"`
}

// Values renders the filter as backend query parameters.
func (f TeacherFilter) Values() url.Values {
	v := url.Values{}
	put(v, "department", f.Department)
	put(v, "status", string(f.Status))
	return v
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	Class    string       `form:"class"`
	Section  string       `form:"section"`
	Status   EntityStatus `form:"status"`
	ParentID string       `form:"parentId"`
}

// Values renders the filter as backend query parameters.
func (f StudentFilter) Values() url.Values {
	v := url.Values{}
	put(v, "class", f.Class)
	put(v, "section", f.Section)
	put(v, "status", string(f.Status))
	put(v, "parentId", f.ParentID)
	return v
}

// ParentFilter narrows parent listings.
type ParentFilter struct {
	Status       EntityStatus `form:"status"`
	Relationship string       `form:"relationship"`
}

// Values renders the filter as backend query parameters.
func (f ParentFilter) Values() url.Values {
	v := url.Values{}
	put(v, "status", string(f.Status))
	put(v, "relationship", f.Relationship)
	return v
}

// StatusFilter is used by classes and subjects.
type StatusFilter struct {
	Status EntityStatus `form:"status"`
}

// Values renders the filter as backend query parameters.
func (f StatusFilter) Values() url.Values {
	v := url.Values{}
	put(v, "status", string(f.Status))
	return v
}

// RequestFilter narrows change request listings.
type RequestFilter struct {
	Status   RequestStatus `form:"status"`
	UserType string        `form:"userType"`
}

// Values renders the filter as backend query parameters.
func (f RequestFilter) Values() url.Values {
	v := url.Values{}
	put(v, "status", string(f.Status))
	put(v, "userType", f.UserType)
	return v
}

// LeaveFilter narrows leave listings. Not every listing honours every field.
type LeaveFilter struct {
	Status        RequestStatus `form:"status"`
	ApplicantType string        `form:"applicantType"`
	ClassID       string        `form:"classId"`
	StartDate     string        `form:"startDate"`
	EndDate       string        `form:"endDate"`
}

// Values renders the filter as backend query parameters.
func (f LeaveFilter) Values() url.Values {
	v := url.Values{}
	put(v, "status", string(f.Status))
	put(v, "applicantType", f.ApplicantType)
	put(v, "classId", f.ClassID)
	put(v, "startDate", f.StartDate)
	put(v, "endDate", f.EndDate)
	return v
}

func put(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
