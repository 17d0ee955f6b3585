package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"homerun-be/pkg/store"
)

type IntakeRepository struct {
	cache *cache.Cache
}

func NewIntakeRepository() *IntakeRepository {
	// Anonymous intakes are held for 24 hours, and expired items
	// are purged every 10 minutes
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &IntakeRepository{
		cache: c,
	}
}

func (r *IntakeRepository) Save(intake *store.Intake) {
	r.cache.Set(intake.ClaimToken, intake, cache.DefaultExpiration)
}

func (r *IntakeRepository) Get(claimToken string) (*store.Intake, bool) {
	if x, found := r.cache.Get(claimToken); found {
		return x.(*store.Intake), true
	}
	return nil, false
}

func (r *IntakeRepository) Delete(claimToken string) {
	r.cache.Delete(claimToken)
}
