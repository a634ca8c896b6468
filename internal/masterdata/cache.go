// Package masterdata provides a read-only, per-task cache of TGC,
// mortality and constraint master data. It is adapted from the teacher's
// pkg/storage/json.go RWMutex-guarded struct, repurposed here: instead of
// caching a JSON history file on disk, it caches database rows in memory
// for the lifetime of one recompute task (spec.md §5: "master data is
// cached per task for the lifetime of the job; cache coherency is not
// required because admin changes to master data are followed by an
// explicit recompute").
package masterdata

import (
	"sync"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// Cache is read-through and safe for concurrent reads from one task's
// sequential day loop plus any goroutines the caller spawns around it.
type Cache struct {
	db   *gorm.DB
	lock sync.RWMutex

	tgcModels       map[uint]*models.TGCModel
	mortalityModels map[uint]*models.MortalityModel
	constraintSets  map[uint][]models.StageConstraint
	stages          map[uint]models.LifecycleStage
}

// New constructs an empty per-task cache bound to db.
func New(db *gorm.DB) *Cache {
	return &Cache{
		db:              db,
		tgcModels:       make(map[uint]*models.TGCModel),
		mortalityModels: make(map[uint]*models.MortalityModel),
		constraintSets:  make(map[uint][]models.StageConstraint),
		stages:          make(map[uint]models.LifecycleStage),
	}
}

// TGCModel loads and caches a TGC model by id.
func (c *Cache) TGCModel(id uint) (*models.TGCModel, error) {
	c.lock.RLock()
	if m, ok := c.tgcModels[id]; ok {
		c.lock.RUnlock()
		return m, nil
	}
	c.lock.RUnlock()

	var m models.TGCModel
	if err := c.db.Preload("StageOverrides").Preload("TemperatureProfile").First(&m, id).Error; err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.tgcModels[id] = &m
	c.lock.Unlock()
	return &m, nil
}

// MortalityModel loads and caches a mortality model by id.
func (c *Cache) MortalityModel(id uint) (*models.MortalityModel, error) {
	c.lock.RLock()
	if m, ok := c.mortalityModels[id]; ok {
		c.lock.RUnlock()
		return m, nil
	}
	c.lock.RUnlock()

	var m models.MortalityModel
	if err := c.db.Preload("StageOverrides").First(&m, id).Error; err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.mortalityModels[id] = &m
	c.lock.Unlock()
	return &m, nil
}

// StageConstraints loads and caches all StageConstraint rows for a
// constraint set.
func (c *Cache) StageConstraints(constraintSetID uint) ([]models.StageConstraint, error) {
	c.lock.RLock()
	if rows, ok := c.constraintSets[constraintSetID]; ok {
		c.lock.RUnlock()
		return rows, nil
	}
	c.lock.RUnlock()

	var rows []models.StageConstraint
	if err := c.db.Where("constraint_set_id = ?", constraintSetID).Find(&rows).Error; err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.constraintSets[constraintSetID] = rows
	c.lock.Unlock()
	return rows, nil
}

// Stage loads and caches a lifecycle stage by id.
func (c *Cache) Stage(id uint) (models.LifecycleStage, error) {
	c.lock.RLock()
	if s, ok := c.stages[id]; ok {
		c.lock.RUnlock()
		return s, nil
	}
	c.lock.RUnlock()

	var s models.LifecycleStage
	if err := c.db.First(&s, id).Error; err != nil {
		return models.LifecycleStage{}, err
	}

	c.lock.Lock()
	c.stages[id] = s
	c.lock.Unlock()
	return s, nil
}
