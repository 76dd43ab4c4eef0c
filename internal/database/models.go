// Package database holds the persistent catalog schema and the store
// connection lifecycle.
//
// Series, seasons and episodes are flat collections joined by natural keys
// (series name, season number, episode number), not by surrogate foreign
// keys. The id column is store-internal; clients never address rows by it.
package database

import (
	"time"
)

// Movie is a flat catalog entry with no children.
type Movie struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string     `gorm:"not null;uniqueIndex" json:"name"`
	Thumbnail    string     `gorm:"not null" json:"thumbnail"`
	StreamingURL string     `gorm:"not null" json:"streaming_url"`
	AddedBy      *int       `json:"added_by,omitempty"`
	AddedAt      time.Time  `gorm:"index" json:"added_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Series is the root of the hierarchy. Name is the natural key every child
// row references.
type Series struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Thumbnail   string    `gorm:"not null" json:"thumbnail"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Type        string    `gorm:"type:varchar(16);not null;default:series" json:"type"`
	AddedAt     time.Time `gorm:"index" json:"added_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Season belongs to a series by name. Natural key: (series_name,
// season_number), enforced by a composite unique index.
type Season struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SeriesName   string    `gorm:"not null;uniqueIndex:idx_season_natural_key;index" json:"series_name"`
	SeasonNumber int       `gorm:"not null;uniqueIndex:idx_season_natural_key" json:"season_number"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Episode belongs to a season by (series_name, season_number). Natural key:
// (series_name, season_number, episode_number), enforced by a composite
// unique index.
type Episode struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	SeriesName    string     `gorm:"not null;uniqueIndex:idx_episode_natural_key;index" json:"series_name"`
	SeasonNumber  int        `gorm:"not null;uniqueIndex:idx_episode_natural_key" json:"season_number"`
	EpisodeNumber int        `gorm:"not null;uniqueIndex:idx_episode_natural_key" json:"episode_number"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	StreamingURL  string     `gorm:"not null" json:"streaming_url"`
	Thumbnail     string     `json:"thumbnail,omitempty"`
	Duration      string     `json:"duration,omitempty"`
	AirDate       *time.Time `json:"air_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
