package doctorRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"telecare/database"
	"telecare/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const doctorCacheTTL = 10 * time.Minute

// MongoDoctorRepo reads doctor profiles from MongoDB with a read-through
// Redis cache in front. Cache misses and cache write failures fall back to
// the database silently.
type MongoDoctorRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

// NewMongoDoctorRepo returns a repository bound to the doctors collection.
func NewMongoDoctorRepo(cache *redis.Client) *MongoDoctorRepo {
	return &MongoDoctorRepo{coll: database.Collection("doctors"), cache: cache}
}

func doctorCacheKey(id string) string {
	return "doctor:" + id
}

// GetByID retrieves a doctor by its ID, preferring the cache.
func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, doctorCacheKey(id)).Result(); err == nil {
			var doc models.Doctor
			if err := json.Unmarshal([]byte(raw), &doc); err == nil {
				return &doc, nil
			}
		}
	}

	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching doctor %s: %w", id, err)
	}

	if r.cache != nil {
		if raw, err := json.Marshal(&doc); err == nil {
			r.cache.Set(ctx, doctorCacheKey(id), raw, doctorCacheTTL)
		}
	}
	return &doc, nil
}
