package models

// Reference is an active lookup row: a foreman, laborer, project or piece of equipment.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProjectItem is a billable item configured for a project.
type ProjectItem struct {
	ItemName string  `json:"item_name"`
	Unit     *string `json:"unit"`
}

// DailyWorkReport is the submitted header plus its child collections.
type DailyWorkReport struct {
	WorkDate         *string  `json:"work_date"`
	ForemanID        Number   `json:"foreman_id"`
	ProjectID        Number   `json:"project_id"`
	ArrivalTime      *string  `json:"arrival_time"`
	DepartureTime    *string  `json:"departure_time"`
	TruckID          Number   `json:"truck_id"`
	TrailerID        Number   `json:"trailer_id"`
	BillableWork     *bool    `json:"billable_work"`
	MaybeExplanation *string  `json:"maybe_explanation"`
	PerDiem          *bool    `json:"per_diem"`
	Laborers         []Number `json:"laborers"`
	Machines         []Number `json:"machines"`
	Items            []Item   `json:"items"`
}

// Item is one line of work on a report.
type Item struct {
	ItemName            *string `json:"item_name"`
	Quantity            Number  `json:"quantity"`
	Unit                *string `json:"unit"`
	LocationDescription *string `json:"location_description"`
	Latitude            Number  `json:"latitude"`
	Longitude           Number  `json:"longitude"`
	DurationHours       Number  `json:"duration_hours"`
	Notes               *string `json:"notes"`
}

// SubmitResult is returned after a report is stored.
type SubmitResult struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
