package mem

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pruner is anything that can drop its expired entries.
type Pruner interface {
	Prune() int
}

// Janitor prunes a cache on a cron schedule.
type Janitor struct {
	cache  Pruner
	cron   *cron.Cron
	logger *zap.Logger
}

func NewJanitor(cache Pruner, logger *zap.Logger) *Janitor {
	return &Janitor{cache: cache, logger: logger}
}

// Start accepts a standard five field expression or a descriptor such as
// "@every 5m".
func (j *Janitor) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := j.cache.Prune(); removed > 0 {
			j.logger.Debug("pruned image cache", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return err
	}
	j.cron = c
	c.Start()
	return nil
}

func (j *Janitor) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}
