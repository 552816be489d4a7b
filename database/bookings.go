package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingStore interface {
	GetBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, bookingId string) (model.Booking, error)
}

type MongoBookingStore struct {
	collection *mongo.Collection
}

func NewMongoBookingStore(db *mongo.Database) *MongoBookingStore {
	return &MongoBookingStore{collection: db.Collection(BookingsCollection)}
}

func (s *MongoBookingStore) GetBookings(ctx context.Context) ([]model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cur, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %v", err)
	}
	defer cur.Close(ctx)

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %v", err)
	}
	return bookings, nil
}

func (s *MongoBookingStore) GetBooking(ctx context.Context, bookingId string) (model.Booking, error) {
	objId, err := primitive.ObjectIDFromHex(bookingId)
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w: invalid id %v", ErrBookingNotFound, bookingId)
	}

	var booking model.Booking
	err = s.collection.FindOne(ctx, bson.D{primitive.E{Key: "_id", Value: objId}}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, fmt.Errorf("%w: no booking with id %v", ErrBookingNotFound, bookingId)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("server side problem occured while reading booking from database: %v", err)
	}
	return booking, nil
}

// LocalBookingStore serves bookings from a JSON file; used when no MongoDB is configured.
type LocalBookingStore struct {
	path string
}

func NewLocalBookingStore(path string) *LocalBookingStore {
	return &LocalBookingStore{path: path}
}

func (s *LocalBookingStore) ReadLocalDB() ([]model.Booking, error) {
	bookings := []model.Booking{}

	fileBytes, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(s.path, []byte("[]"), 0644); err != nil {
			return nil, err
		}
		return bookings, nil
	} else if err != nil {
		return nil, err
	}

	err = json.Unmarshal(fileBytes, &bookings)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (s *LocalBookingStore) GetBookings(_ context.Context) ([]model.Booking, error) {
	bookings, err := s.ReadLocalDB()
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings info from database: %v", err)
	}
	return bookings, nil
}

func (s *LocalBookingStore) GetBooking(ctx context.Context, bookingId string) (model.Booking, error) {
	bookings, err := s.GetBookings(ctx)
	if err != nil {
		return model.Booking{}, err
	}

	for _, booking := range bookings {
		if booking.Id.Hex() == bookingId {
			return booking, nil
		}
	}

	return model.Booking{}, fmt.Errorf("%w: no booking with id %v in database", ErrBookingNotFound, bookingId)
}
