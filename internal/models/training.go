// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package models

// Offering is one scheduled session of a course as shown on the
// offerings dashboard.
type Offering struct {
	OfferingID       int64      `json:"offering_id"`
	CourseTitle      string     `json:"course_title"`
	CourseCode       string     `json:"course_code"`
	InstructorNames  string     `json:"instructor_names"`
	ConfirmedCount   int64      `json:"confirmed_count"`
	CancelledCount   int64      `json:"cancelled_count"`
	WaitlistedCount  int64      `json:"waitlisted_count"`
	NoShowCount      int64      `json:"no_show_count"`
	BusinessType     string     `json:"business_type"`
	EventDescription string     `json:"event_description"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	BusinessLine     string     `json:"business_line"`
	ClientDeptCode   string     `json:"client_dept_code"`
	ClientDeptName   string     `json:"client_dept_name"`
	OfferingStatus   string     `json:"offering_status"`
	OfferingLanguage string     `json:"offering_language"`
	OfferingRegion   string     `json:"offering_region"`
	OfferingProvince string     `json:"offering_province"`
	OfferingCity     string     `json:"offering_city"`
	OfferingLat      Coordinate `json:"offering_lat"`
	OfferingLng      Coordinate `json:"offering_lng"`
	BackgroundColor  string     `json:"background_color"`
}

// Offering statuses as stored.
const (
	OfferingCancelled = "Cancelled - Normal"
	OfferingDelivered = "Delivered - Normal"
	OfferingOpen      = "Open - Normal"
)

// CourseCode pairs a course code with its cleaned title.
type CourseCode struct {
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
}

// DepartmentCode pairs a department code with its cleaned name.
type DepartmentCode struct {
	DepartmentCode string `json:"department_code"`
	DepartmentName string `json:"department_name"`
}

// MandatoryCourse is an active course flagged with whether a department
// requires it of its employees.
type MandatoryCourse struct {
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	Mandatory   bool   `json:"mandatory"`
}

// MandatoryCourseRequest is the body of POST and DELETE on
// /departments/mandatory-courses.
type MandatoryCourseRequest struct {
	DepartmentCode string `json:"department_code"`
	CourseCode     string `json:"course_code"`
}

// CourseTombstone is the catalogue entry ("tombstone") for a course.
type CourseTombstone struct {
	CourseCode          string `json:"course_code"`
	CourseTitleEN       string `json:"course_title_en"`
	CourseTitleFR       string `json:"course_title_fr"`
	CourseDescriptionEN string `json:"course_description_en"`
	CourseDescriptionFR string `json:"course_description_fr"`
	BusinessType        string `json:"business_type"`
	Provider            string `json:"provider"`
	BusinessLineEN      string `json:"business_line_en"`
	BusinessLineFR      string `json:"business_line_fr"`
	MainTopic           string `json:"main_topic"`
	Duration            string `json:"duration"`
	RequiredTraining    string `json:"required_training"`
	DisplayedOnGCCampus string `json:"displayed_on_gccampus"`
	PointOfContact      string `json:"point_of_contact"`
	DirectorGeneral     string `json:"director_general"`
	ProgramManager      string `json:"program_manager"`
	ProjectLead         string `json:"project_lead"`
}

// Comment is one free-text survey answer.
type Comment struct {
	CommentText           string  `json:"comment_text"`
	CourseCode            string  `json:"course_code"`
	LearnerClassification string  `json:"learner_classification"`
	OfferingCity          string  `json:"offering_city"`
	OfferingFiscalYear    string  `json:"offering_fiscal_year"`
	OfferingQuarter       string  `json:"offering_quarter"`
	OverallSatisfaction   int64   `json:"overall_satisfaction"`
	Stars                 int64   `json:"stars"`
	Magnitude             float64 `json:"magnitude"`
	Nanos                 int64   `json:"nanos"`
}

// StarCounts maps "1" through "5" to the number of comments with that
// rating.
type StarCounts map[string]int64
