package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

const (
	jobDetailTTL = 10 * time.Minute
	jobListTTL   = 5 * time.Minute

	jobDetailPrefix = "job:detail:"
	jobListPrefix   = "job:list:"
)

// JobCache is a read-through cache in front of the job repository. All
// methods tolerate a nil client or a dead redis: callers fall back to the
// database and the cache stays silent.
type JobCache struct {
	client *redis.Client
}

func NewJobCache(client *redis.Client) *JobCache {
	return &JobCache{client: client}
}

func (c *JobCache) GetJob(ctx context.Context, id common.UUID) (*job.Job, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, jobDetailPrefix+id.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var j job.Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, false
	}
	return &j, true
}

func (c *JobCache) SetJob(ctx context.Context, j *job.Job) {
	if c == nil || c.client == nil || j == nil {
		return
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return
	}
	c.client.Set(ctx, jobDetailPrefix+j.ID.String(), raw, jobDetailTTL)
}

func (c *JobCache) GetList(ctx context.Context, key string) ([]job.Job, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, jobListPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var jobs []job.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, false
	}
	return jobs, true
}

func (c *JobCache) SetList(ctx context.Context, key string, jobs []job.Job) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	c.client.Set(ctx, jobListPrefix+key, raw, jobListTTL)
}

// Invalidate drops the detail entry for one job and every cached list.
// Called after any write that changes what readers should see.
func (c *JobCache) Invalidate(ctx context.Context, id common.UUID) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, jobDetailPrefix+id.String())
	iter := c.client.Scan(ctx, 0, jobListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}
