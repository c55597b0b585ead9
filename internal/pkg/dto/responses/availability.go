package responses

type Slot struct {
	Time    string `json:"time"`
	EndTime string `json:"end_time"`
	Display string `json:"display"`
	Status  string `json:"status"`
}

type Availability struct {
	ProfessionalID     string `json:"professional_id"`
	Date               string `json:"date"`
	DurationMinutes    int    `json:"duration_minutes"`
	GranularityMinutes int    `json:"granularity_minutes"`
	Slots              []Slot `json:"slots"`
}

type DayAvailability struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	Working        bool   `json:"working"`
	WindowStart    string `json:"window_start,omitempty"`
	WindowEnd      string `json:"window_end,omitempty"`
	Available      int    `json:"available"`
	Blocked        int    `json:"blocked"`
	Booked         int    `json:"booked"`
	FirstAvailable string `json:"first_available,omitempty"`
}

type AvailabilityCalendar struct {
	ProfessionalID  string            `json:"professional_id"`
	From            string            `json:"from"`
	Days            int               `json:"days"`
	DurationMinutes int               `json:"duration_minutes"`
	Calendar        []DayAvailability `json:"calendar"`
}

type SlotCheck struct {
	Available bool   `json:"available"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}
