package blocks

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

type BlockMongoRepository struct {
	Collection *mongo.Collection
}

func NewBlockMongoRepository(db *mongo.Client, dbName string) contracts.BlockRepository {
	return &BlockMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAvailabilityBlocks),
	}
}

func (repo *BlockMongoRepository) FindByID(ctx context.Context, blockID string) (*models.AvailabilityBlock, error) {
	block := new(models.AvailabilityBlock)
	err := repo.Collection.FindOne(ctx, bson.M{"_id": blockID}).Decode(block)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return block, nil
}

func (repo *BlockMongoRepository) FindByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.AvailabilityBlock, error) {
	cursor, err := repo.Collection.Find(ctx, blocksBetweenFilter(professionalID, from, to))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var blocks []models.AvailabilityBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return blocks, nil
}

func (repo *BlockMongoRepository) Insert(ctx context.Context, block *models.AvailabilityBlock) error {
	if _, err := repo.Collection.InsertOne(ctx, block); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *BlockMongoRepository) DeleteByID(ctx context.Context, blockID string) error {
	if _, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": blockID}); err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

// UpsertMany replaces each block by ID in one unordered bulk write.
func (repo *BlockMongoRepository) UpsertMany(ctx context.Context, blocks []models.AvailabilityBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(blocks))
	for i := range blocks {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": blocks[i].ID}).
			SetReplacement(&blocks[i]).
			SetUpsert(true))
	}
	if _, err := repo.Collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *BlockMongoRepository) DeleteExternalExcept(ctx context.Context, professionalID, calendarID string, keepIDs []string) (int64, error) {
	if keepIDs == nil {
		keepIDs = []string{}
	}
	result, err := repo.Collection.DeleteMany(ctx, bson.M{
		"professional_id": professionalID,
		"calendar_id":     calendarID,
		"source":          models.BlockSourceExternal,
		"_id":             bson.M{"$nin": keepIDs},
	})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

// DeleteExpired removes blocks whose last effective date is before cutoff.
// Open-ended recurring blocks never expire.
func (repo *BlockMongoRepository) DeleteExpired(ctx context.Context, cutoff models.Date) (int64, error) {
	result, err := repo.Collection.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"kind": models.BlockKindTimeRange, "date": bson.M{"$lt": cutoff}},
		bson.M{"kind": models.BlockKindFullDay, "end_date": bson.M{"$lt": cutoff}},
		bson.M{"kind": models.BlockKindFullDay, "end_date": bson.M{"$exists": false}, "start_date": bson.M{"$lt": cutoff}},
		bson.M{"kind": models.BlockKindRecurringWeekly, "end_date": bson.M{"$exists": true, "$lt": cutoff}},
	}})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

// blocksBetweenFilter selects every block whose effective dates intersect
// [from, to]. Dates are stored as YYYY-MM-DD so string comparison is
// chronological.
func blocksBetweenFilter(professionalID string, from, to models.Date) bson.M {
	return bson.M{
		"professional_id": professionalID,
		"$or": bson.A{
			bson.M{
				"kind": models.BlockKindTimeRange,
				"date": bson.M{"$gte": from, "$lte": to},
			},
			bson.M{
				"kind":       models.BlockKindFullDay,
				"start_date": bson.M{"$lte": to},
				"$or": bson.A{
					bson.M{"end_date": bson.M{"$gte": from}},
					bson.M{"end_date": bson.M{"$exists": false}, "start_date": bson.M{"$gte": from}},
				},
			},
			bson.M{
				"kind": models.BlockKindRecurringWeekly,
				"$and": bson.A{
					bson.M{"$or": bson.A{
						bson.M{"start_date": bson.M{"$exists": false}},
						bson.M{"start_date": bson.M{"$lte": to}},
					}},
					bson.M{"$or": bson.A{
						bson.M{"end_date": bson.M{"$exists": false}},
						bson.M{"end_date": bson.M{"$gte": from}},
					}},
				},
			},
		},
	}
}

// EnsureIndexes creates the indexes used by range reads and sync
// reconciliation.
func (repo *BlockMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("professional_kind_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("professional_kind_start_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "calendar_id", Value: 1}, {Key: "source", Value: 1}},
			Options: options.Index().SetName("professional_calendar_source_idx"),
		},
	}
	if _, err := repo.Collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}
