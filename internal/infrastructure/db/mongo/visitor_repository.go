package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/timeutil"
)

const collectionVisitors = "visitors"

type VisitorRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewVisitorRepository(db *mongo.Database, log zerolog.Logger) *VisitorRepository {
	return &VisitorRepository{col: db.Collection(collectionVisitors), log: log}
}

// visitorDoc is the stored shape. Older clients wrote timeIn/timeOut as epoch
// millis or strings, so both are decoded loosely and normalised on read.
type visitorDoc struct {
	ID                    string                    `bson:"_id"`
	VisitorName           string                    `bson:"visitorName"`
	PhoneNumber           string                    `bson:"phoneNumber"`
	IDNumber              string                    `bson:"idNumber"`
	Gender                string                    `bson:"gender"`
	Category              string                    `bson:"visitorType"`
	VehiclePlate          string                    `bson:"vehiclePlate,omitempty"`
	PurposeOfVisit        string                    `bson:"purposeOfVisit"`
	Residence             string                    `bson:"residence"`
	InstitutionOccupation string                    `bson:"institutionOccupation"`
	TagNumber             string                    `bson:"tagNumber"`
	TagNotGiven           bool                      `bson:"tagNotGiven"`
	TimeIn                any                       `bson:"timeIn"`
	TimeOut               any                       `bson:"timeOut,omitempty"`
	CheckedOut            bool                      `bson:"checkedOut"`
	CheckedInBy           string                    `bson:"checkedInBy"`
	CheckedOutBy          string                    `bson:"checkedOutBy,omitempty"`
	LastEditedBy          string                    `bson:"lastEditedBy,omitempty"`
	LastEditedAt          *time.Time                `bson:"lastEditedAt,omitempty"`
	EditHistory           []domain.EditHistoryEntry `bson:"editHistory"`
}

func toVisitorDoc(v *domain.VisitorRecord) visitorDoc {
	doc := visitorDoc{
		ID:                    v.ID,
		VisitorName:           v.VisitorName,
		PhoneNumber:           v.PhoneNumber,
		IDNumber:              v.IDNumber,
		Gender:                v.Gender,
		Category:              string(v.Category),
		VehiclePlate:          v.VehiclePlate,
		PurposeOfVisit:        v.PurposeOfVisit,
		Residence:             v.Residence,
		InstitutionOccupation: v.InstitutionOccupation,
		TagNumber:             v.TagNumber,
		TagNotGiven:           v.TagNotGiven,
		TimeIn:                v.TimeIn.UTC(),
		CheckedOut:            v.CheckedOut,
		CheckedInBy:           v.CheckedInBy,
		CheckedOutBy:          v.CheckedOutBy,
		LastEditedBy:          v.LastEditedBy,
		LastEditedAt:          v.LastEditedAt,
		EditHistory:           v.EditHistory,
	}
	if v.TimeOut != nil {
		doc.TimeOut = v.TimeOut.UTC()
	}
	if doc.EditHistory == nil {
		doc.EditHistory = []domain.EditHistoryEntry{}
	}
	return doc
}

func (r *VisitorRepository) fromDoc(d visitorDoc) domain.VisitorRecord {
	now := time.Now().UTC()
	v := domain.VisitorRecord{
		ID:                    d.ID,
		VisitorName:           d.VisitorName,
		PhoneNumber:           d.PhoneNumber,
		IDNumber:              d.IDNumber,
		Gender:                d.Gender,
		Category:              domain.VisitorCategory(d.Category),
		VehiclePlate:          d.VehiclePlate,
		PurposeOfVisit:        d.PurposeOfVisit,
		Residence:             d.Residence,
		InstitutionOccupation: d.InstitutionOccupation,
		TagNumber:             d.TagNumber,
		TagNotGiven:           d.TagNotGiven,
		CheckedOut:            d.CheckedOut,
		CheckedInBy:           d.CheckedInBy,
		CheckedOutBy:          d.CheckedOutBy,
		LastEditedBy:          d.LastEditedBy,
		LastEditedAt:          d.LastEditedAt,
		EditHistory:           d.EditHistory,
	}

	timeIn, ok := timeutil.ToInstant(d.TimeIn, now)
	if !ok {
		r.log.Warn().Str("visitor_id", d.ID).Interface("time_in", d.TimeIn).Msg("unparseable timeIn, using now")
	}
	v.TimeIn = timeIn

	if d.TimeOut != nil {
		timeOut, ok := timeutil.ToInstant(d.TimeOut, now)
		if !ok {
			r.log.Warn().Str("visitor_id", d.ID).Interface("time_out", d.TimeOut).Msg("unparseable timeOut, using now")
		}
		v.TimeOut = &timeOut
	}
	return v
}

// Create inserts a new visitor document.
func (r *VisitorRepository) Create(ctx context.Context, v *domain.VisitorRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toVisitorDoc(v)); err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

// FindByID retrieves a visitor by id.
func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*domain.VisitorRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc visitorDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	v := r.fromDoc(doc)
	return &v, nil
}

// List returns visitors matching f, newest check-in first.
func (r *VisitorRepository) List(ctx context.Context, f ports.ListVisitorsFilter) ([]domain.VisitorRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	timeIn := bson.M{}
	if !f.DateFrom.IsZero() {
		timeIn["$gte"] = f.DateFrom.UTC()
	}
	if !f.DateTo.IsZero() {
		timeIn["$lt"] = f.DateTo.UTC()
	}
	if len(timeIn) > 0 {
		filter["timeIn"] = timeIn
	}
	if f.Category != "" {
		filter["visitorType"] = f.Category
	}
	if f.CheckedOut != nil {
		if *f.CheckedOut {
			filter["checkedOut"] = true
		} else {
			filter["checkedOut"] = bson.M{"$ne": true}
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timeIn", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []visitorDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode visitors: %w", err)
	}

	out := make([]domain.VisitorRecord, len(docs))
	for i, d := range docs {
		out[i] = r.fromDoc(d)
	}
	return out, nil
}

// ApplyEdit sets one field and appends the history entry in a single update.
func (r *VisitorRepository) ApplyEdit(ctx context.Context, id, field string, value any, entry domain.EditHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, editUpdate(field, value, entry))
	if err != nil {
		return fmt.Errorf("apply edit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVisitorNotFound
	}
	return nil
}

// editUpdate mirrors the side effects audit.RecordEdit applies in memory.
func editUpdate(field string, value any, entry domain.EditHistoryEntry) bson.M {
	set := bson.M{
		field:          value,
		"lastEditedBy": entry.EditedBy,
		"lastEditedAt": entry.EditedAt.UTC(),
	}
	switch field {
	case "tagNumber":
		if value != "" {
			set["tagNotGiven"] = false
		}
	case "visitorType":
		if value != string(domain.CategoryVehicle) {
			set["vehiclePlate"] = ""
		}
	}
	return bson.M{
		"$set":  set,
		"$push": bson.M{"editHistory": entry},
	}
}

// Checkout marks the visit finished only if it is still open, so two
// concurrent checkouts cannot both succeed.
func (r *VisitorRepository) Checkout(ctx context.Context, id, operator string, at time.Time, entry domain.EditHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "checkedOut": bson.M{"$ne": true}}
	update := bson.M{
		"$set": bson.M{
			"checkedOut":   true,
			"timeOut":      at.UTC(),
			"checkedOutBy": operator,
			"lastEditedBy": operator,
			"lastEditedAt": entry.EditedAt.UTC(),
		},
		"$push": bson.M{"editHistory": entry},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("checkout visitor: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("checkout visitor: %w", err)
	}
	if n == 0 {
		return domain.ErrVisitorNotFound
	}
	return domain.ErrAlreadyCheckedOut
}

// EnsureIndexes creates necessary indexes on the visitors collection.
func (r *VisitorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timeIn", Value: -1}}},
		{Keys: bson.D{{Key: "checkedOut", Value: 1}, {Key: "timeIn", Value: 1}}},
		{Keys: bson.D{{Key: "visitorType", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
