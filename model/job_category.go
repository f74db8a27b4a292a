package model

import (
	"database/sql"
	"time"
)

type JobCategory struct {
	ID        string         `json:"id"`
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Image1    sql.NullString `json:"-"`
	Image2    sql.NullString `json:"-"`
	Image3    sql.NullString `json:"-"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"-"`
}
