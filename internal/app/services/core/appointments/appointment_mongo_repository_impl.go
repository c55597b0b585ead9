package appointments

import (
	"context"
	"errors"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment := new(models.Appointment)
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return appointment, nil
}

func (repo *AppointmentMongoRepository) FindOccupyingByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.Appointment, error) {
	filter := bson.M{
		"professional_id": professionalID,
		"occupying":       true,
		"date":            bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	if _, err := repo.Collection.InsertOne(ctx, appointment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrPersistenceConflictOnWrite(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// Update sets the mutable fields of an appointment only if the stored
// version still equals appointment.Version, then bumps the version.
func (repo *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	filter, update := versionedUpdate(appointment)
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrPersistenceConflictOnWrite(err)
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrAppointmentChanged(appointment.ID, appointment.Version)
	}
	appointment.Version++
	return nil
}

func versionedUpdate(appointment *models.Appointment) (bson.M, bson.M) {
	filter := bson.M{
		"_id":     appointment.ID,
		"version": appointment.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"date":             appointment.Date,
			"start_time":       appointment.StartTime,
			"duration_minutes": appointment.DurationMinutes,
			"status":           appointment.Status,
			"occupying":        appointment.Occupying,
			"updated_at":       appointment.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	return filter, update
}

// EnsureIndexes creates the partial unique index that backs the booking
// guard: two occupying appointments can never share a start time.
func (repo *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "professional_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().
				SetName("unique_occupying_start_idx").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"occupying": true}),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("patient_date_idx"),
		},
	}
	if _, err := repo.Collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}
