package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Defaults seed newly created queues.
type Defaults struct {
	WorkingHoursStart   string
	WorkingHoursEnd     string
	SlotDurationMinutes int
}

// Store provides persistence for doctor queues, one JSON value per
// (doctor, date).
type Store struct {
	redis    *redis.Client
	defaults Defaults
}

// NewStore creates a new doctor queue store.
func NewStore(redisClient *redis.Client, defaults Defaults) *Store {
	if defaults.WorkingHoursStart == "" {
		defaults.WorkingHoursStart = "09:00"
	}
	if defaults.WorkingHoursEnd == "" {
		defaults.WorkingHoursEnd = "21:00"
	}
	if defaults.SlotDurationMinutes <= 0 {
		defaults.SlotDurationMinutes = 15
	}
	return &Store{redis: redisClient, defaults: defaults}
}

func (s *Store) key(doctorID, date string) string {
	return fmt.Sprintf("queue:doctor:%s:%s", doctorID, date)
}

// NewQueue returns a fresh queue seeded with the store defaults.
func (s *Store) NewQueue(doctorID, date string) *DoctorQueue {
	return &DoctorQueue{
		DoctorID:            doctorID,
		Date:                date,
		WorkingHoursStart:   s.defaults.WorkingHoursStart,
		WorkingHoursEnd:     s.defaults.WorkingHoursEnd,
		SlotDurationMinutes: s.defaults.SlotDurationMinutes,
		IsAvailable:         true,
		Stats: Stats{
			ByStatus:   make(map[string]int),
			BySeverity: make(map[string]int),
		},
	}
}

// GetOrCreate retrieves the queue for (doctor, date), creating and
// persisting a default one on first access. Idempotent: repeated calls
// return the same queue.
func (s *Store) GetOrCreate(ctx context.Context, doctorID, date string) (*DoctorQueue, error) {
	data, err := s.redis.Get(ctx, s.key(doctorID, date)).Bytes()
	if err == redis.Nil {
		q := s.NewQueue(doctorID, date)
		if err := s.Save(ctx, q); err != nil {
			return nil, err
		}
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("queue: get: %w", err)
	}

	var q DoctorQueue
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("queue: unmarshal: %w", err)
	}
	return &q, nil
}

// Save persists the queue.
func (s *Store) Save(ctx context.Context, q *DoctorQueue) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("queue: marshal: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(q.DoctorID, q.Date), data, 0).Err(); err != nil {
		return fmt.Errorf("queue: set: %w", err)
	}
	return nil
}
