package menu

import (
	"context"
	"errors"
	"time"

	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionFetcher reads the menu document stored for a booking and exposes it
// under the "data" shape.
type CollectionFetcher struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewCollectionFetcher(collection *mongo.Collection, timeout time.Duration) *CollectionFetcher {
	return &CollectionFetcher{collection: collection, timeout: timeout}
}

func (f *CollectionFetcher) Name() string {
	return "mongo:" + f.collection.Name()
}

func (f *CollectionFetcher) Fetch(ctx context.Context, booking *model.Booking, _ string) (bson.Raw, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	filter := bson.M{"bookingRef": bson.M{"$in": bson.A{booking.Id, booking.Id.Hex()}}}
	doc, err := f.collection.FindOne(ctx, filter).DecodeBytes()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &FetchError{Fetcher: f.Name(), Reason: "no menu document"}
	}
	if err != nil {
		return nil, &FetchError{Fetcher: f.Name(), Reason: "query failed", Cause: err}
	}

	return bson.Marshal(bson.D{{Key: "data", Value: doc}})
}
