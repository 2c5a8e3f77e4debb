package dto

// ViewEventRequest is one UI event posted by the program details page
type ViewEventRequest struct {
	Type   string `json:"type" binding:"required,oneof=enable_edit input blur add_course select_course remove_course remove_run_mode"`
	Field  string `json:"field" example:"name"`
	Value  string `json:"value"`
	Target string `json:"target" example:"course-2"`
}
