package requests

const (
	CalendarSyncModeReplace = "replace"
	CalendarSyncModeRemove  = "remove"
)

// CalendarSyncMessage is fed by the external calendar sync job. When
// SnapshotObject is set, Periods are read from that object instead.
type CalendarSyncMessage struct {
	ProfessionalID string       `json:"professional_id" validate:"required"`
	CalendarID     string       `json:"calendar_id" validate:"required"`
	Mode           string       `json:"mode" validate:"required,oneof=replace remove"`
	Periods        []BusyPeriod `json:"periods" validate:"dive"`
	SnapshotObject string       `json:"snapshot_object"`
}

// BusyPeriod is zone-naive local time. Timed periods use YYYY-MM-DDTHH:MM;
// all-day periods use YYYY-MM-DD with an exclusive End, as calendar
// providers report them.
type BusyPeriod struct {
	ExternalID string `json:"external_id" validate:"required"`
	Start      string `json:"start" validate:"required"`
	End        string `json:"end" validate:"required"`
	AllDay     bool   `json:"all_day"`
	Summary    string `json:"summary"`
}
