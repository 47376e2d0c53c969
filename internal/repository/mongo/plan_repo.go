package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/repository"
)

const planCollectionName = "user_selected_health_plans"

// planDocument is the stored shape of a domain.PlanRecord. The plan body is
// kept as a native BSON document so it can be inspected in the shell.
type planDocument struct {
	ID          string            `bson:"_id"`
	UserID      string            `bson:"userId"`
	PlanName    string            `bson:"planName"`
	PlanType    string            `bson:"planType"`
	PrimaryGoal string            `bson:"primaryGoal"`
	PlanData    bson.Raw          `bson:"planData"`
	Status      domain.PlanStatus `bson:"status"`
	Source      domain.PlanSource `bson:"source"`
	SelectedAt  time.Time         `bson:"selectedAt"`
	StartDate   string            `bson:"startDate,omitempty"`
	EndDate     string            `bson:"endDate,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt"`
}

func toDocument(p *domain.PlanRecord) (*planDocument, error) {
	var data bson.Raw
	if len(p.PlanData) > 0 {
		if err := bson.UnmarshalExtJSON(p.PlanData, false, &data); err != nil {
			return nil, err
		}
	}
	return &planDocument{
		ID:          p.ID,
		UserID:      p.UserID,
		PlanName:    p.PlanName,
		PlanType:    p.PlanType,
		PrimaryGoal: p.PrimaryGoal,
		PlanData:    data,
		Status:      p.Status,
		Source:      p.Source,
		SelectedAt:  p.SelectedAt,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d *planDocument) record() (*domain.PlanRecord, error) {
	var data json.RawMessage
	if len(d.PlanData) > 0 {
		raw, err := bson.MarshalExtJSON(d.PlanData, false, false)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	return &domain.PlanRecord{
		ID:          d.ID,
		UserID:      d.UserID,
		PlanName:    d.PlanName,
		PlanType:    d.PlanType,
		PrimaryGoal: d.PrimaryGoal,
		PlanData:    data,
		Status:      d.Status,
		Source:      d.Source,
		SelectedAt:  d.SelectedAt,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{collection: db.Collection(planCollectionName)}
}

// Save inserts the record, assigning an id and timestamps when missing.
func (r *mongoPlanRepository) Save(ctx context.Context, plan *domain.PlanRecord) error {
	if plan.UserID == "" || len(plan.PlanData) == 0 {
		return errors.New("plan requires userId and planData")
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	doc, err := toDocument(plan)
	if err != nil {
		return err
	}
	_, err = r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return mapErr(err)
}

func (r *mongoPlanRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.PlanRecord, error) {
	var doc planDocument
	if err := r.collection.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.record()
}

// GetActive returns the newest active plan of the user.
func (r *mongoPlanRepository) GetActive(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	return r.findOne(ctx,
		bson.M{"userId": userID, "status": domain.PlanActive},
		options.FindOne().SetSort(bson.D{{Key: "selectedAt", Value: -1}}),
	)
}

// GetByID scopes the lookup to the owner so one user cannot read another's plan.
func (r *mongoPlanRepository) GetByID(ctx context.Context, userID, planID string) (*domain.PlanRecord, error) {
	return r.findOne(ctx, bson.M{"_id": planID, "userId": userID})
}

// ListByUser returns every plan of the user, newest first.
func (r *mongoPlanRepository) ListByUser(ctx context.Context, userID string) ([]domain.PlanRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "selectedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var docs []planDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}

	plans := make([]domain.PlanRecord, 0, len(docs))
	for i := range docs {
		rec, err := docs[i].record()
		if err != nil {
			return nil, err
		}
		plans = append(plans, *rec)
	}
	return plans, nil
}

func (r *mongoPlanRepository) DeactivatePriorActive(ctx context.Context, userID string) error {
	filter := bson.M{"userId": userID, "status": domain.PlanActive}
	update := bson.M{"$set": bson.M{"status": domain.PlanPaused, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return mapErr(err)
}

// EnsurePlanIndexes creates the indexes behind GetActive and ListByUser.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "selectedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
