package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the layout of the stored pull request event timestamps
const TimestampLayout = "2006-01-02 15:04:05"

// TimestampList is a list of event timestamps stored as a JSON array column
type TimestampList []string

// Scan implements sql.Scanner
func (l *TimestampList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into TimestampList", src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Value implements driver.Valuer
func (l TimestampList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MinedRepo is a repository whose pull request history has been mined.
// Rows are written by the external mining worker.
type MinedRepo struct {
	ID                     string        `db:"id"`
	RepoName               string        `db:"repo_name"`
	NumPulls               int           `db:"num_pulls"`
	NumClosedMergedPulls   int           `db:"num_closed_merged_pulls"`
	NumClosedUnmergedPulls int           `db:"num_closed_unmerged_pulls"`
	NumOpenPulls           int           `db:"num_open_pulls"`
	CreatedAtList          TimestampList `db:"created_at_list"`
	ClosedAtList           TimestampList `db:"closed_at_list"`
	MergedAtList           TimestampList `db:"merged_at_list"`
	MinedAt                time.Time     `db:"mined_at"`
}
