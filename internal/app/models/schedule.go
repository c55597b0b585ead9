package models

import "wellness-availability-service/internal/pkg/dto/responses"

// WorkingSchedule is a professional's recurring weekly working hours. Each
// active weekday uses its override window when one is set, otherwise Default.
type WorkingSchedule struct {
	ProfessionalID string         `bson:"_id"`
	ActiveDays     []Weekday      `bson:"active_days"`
	Default        TimeWindow     `bson:"default_window"`
	Overrides      [7]*TimeWindow `bson:"overrides"`
	TimeModel      `bson:",inline"`
}

func (s *WorkingSchedule) IsActive(w Weekday) bool {
	for _, d := range s.ActiveDays {
		if d == w {
			return true
		}
	}
	return false
}

func (s *WorkingSchedule) ConvertIntoResponse() responses.WorkingSchedule {
	resp := responses.WorkingSchedule{
		ProfessionalID: s.ProfessionalID,
		ActiveDays:     make([]string, 0, len(s.ActiveDays)),
		DefaultWindow: responses.TimeWindow{
			Start: s.Default.Start.String(),
			End:   s.Default.End.String(),
		},
		Overrides: make(map[string]responses.TimeWindow),
		UpdatedAt: s.UpdatedAt,
	}
	for _, d := range s.ActiveDays {
		resp.ActiveDays = append(resp.ActiveDays, d.String())
	}
	for i, o := range s.Overrides {
		if o == nil {
			continue
		}
		resp.Overrides[Weekday(i).String()] = responses.TimeWindow{Start: o.Start.String(), End: o.End.String()}
	}
	return resp
}
