package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	domainRepo "github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// directorySource serves doctor/room enrichment lookups with a Redis
// read-through in front of the database. Redis being down only costs the
// cache: the lookup degrades to a direct DB read.
type directorySource struct {
	db    *gorm.DB
	redis *redis.Client
	log   *logrus.Logger
	ttl   time.Duration
}

func NewDirectorySource(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) domainRepo.DirectorySource {
	return &directorySource{
		db:    db,
		redis: redisClient,
		log:   log,
		ttl:   ttl,
	}
}

func (r *directorySource) FetchDoctorInfo(ctx context.Context, doctorID int) (*entity.DoctorInfo, error) {
	key := fmt.Sprintf("directory:doctor:%d", doctorID)

	var cached entity.DoctorInfo
	if r.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	var info entity.DoctorInfo
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("doctor %d: %w", doctorID, domainRepo.ErrNotFound)
		}
		return nil, domainRepo.NewFetchError("doctor info", err)
	}

	r.writeCache(ctx, key, &info)
	return &info, nil
}

func (r *directorySource) FetchRoomInfo(ctx context.Context, roomID int) (*entity.RoomInfo, error) {
	key := fmt.Sprintf("directory:room:%d", roomID)

	var cached entity.RoomInfo
	if r.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	var info entity.RoomInfo
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", roomID, domainRepo.ErrNotFound)
		}
		return nil, domainRepo.NewFetchError("room info", err)
	}

	r.writeCache(ctx, key, &info)
	return &info, nil
}

func (r *directorySource) readCache(ctx context.Context, key string, out interface{}) bool {
	if r.redis == nil {
		return false
	}
	raw, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warnf("Failed to read directory cache %s: %+v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		r.log.Warnf("Failed to decode directory cache %s: %+v", key, err)
		return false
	}
	return true
}

func (r *directorySource) writeCache(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.log.Warnf("Failed to write directory cache %s: %+v", key, err)
	}
}
