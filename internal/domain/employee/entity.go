package employee

// Employee is the directory view of a staff member used to label aggregated output.
type Employee struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}
