package activity

import "gorm.io/gorm"

// Activity is an audit record attached to an entity. System marks entries
// written by automation rather than a user action.
type Activity struct {
	gorm.Model
	EntityType  string `gorm:"size:50;not null;index:idx_activity_entity" json:"entityType"`
	EntityID    uint   `gorm:"not null;index:idx_activity_entity" json:"entityId"`
	Description string `json:"description"`
	ActorID     uint   `json:"actorId"` // 0 when written by the system
	System      bool   `gorm:"default:false" json:"system"`
}
