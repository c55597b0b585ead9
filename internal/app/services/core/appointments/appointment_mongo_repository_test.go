package appointments

import (
	"testing"
	"time"
	"wellness-availability-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestVersionedUpdate(t *testing.T) {
	a := occupying("a-1", "2024-03-05", "14:00", 45, models.AppointmentStatusPaid)
	a.PatientID = "pat-7"
	a.Notes = "bring referral"
	a.Version = 3
	a.SetCreatedAtUpdatedAt(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))

	filter, update := versionedUpdate(&a)

	assert.Equal(t, bson.M{"_id": "a-1", "version": 3}, filter)
	assert.Equal(t, bson.M{"version": 1}, update["$inc"])

	set, ok := update["$set"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, models.Date("2024-03-05"), set["date"])
	assert.Equal(t, a.StartTime, set["start_time"])
	assert.Equal(t, 45, set["duration_minutes"])
	assert.Equal(t, models.AppointmentStatusPaid, set["status"])
	assert.Equal(t, true, set["occupying"])

	t.Run("fields owned by other writers are left alone", func(t *testing.T) {
		for _, field := range []string{"_id", "patient_id", "professional_id", "notes", "created_at", "version"} {
			assert.NotContains(t, set, field)
		}
	})
}
