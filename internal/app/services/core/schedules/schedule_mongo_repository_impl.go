package schedules

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

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleRepository {
	return &ScheduleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionWorkingSchedules),
	}
}

func (repo *ScheduleMongoRepository) FindByProfessionalID(ctx context.Context, professionalID string) (*models.WorkingSchedule, error) {
	schedule := new(models.WorkingSchedule)
	err := repo.Collection.FindOne(ctx, bson.M{"_id": professionalID}).Decode(schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return schedule, nil
}

func (repo *ScheduleMongoRepository) Upsert(ctx context.Context, schedule *models.WorkingSchedule) error {
	_, err := repo.Collection.ReplaceOne(
		ctx,
		bson.M{"_id": schedule.ProfessionalID},
		schedule,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
