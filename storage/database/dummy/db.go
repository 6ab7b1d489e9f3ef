package dummydb

import (
	"sync"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/core/template"
)

type (
	DB struct {
		gradingPeriod *gradingPeriodTable
		settings      *settingsTable
		template      *templateTable
	}

	gradingPeriodTable struct {
		sync.RWMutex
		table map[string]*grading.GradingPeriod
	}

	settingsTable struct {
		sync.RWMutex
		table map[string]*settings.Settings // by user id
	}

	templateTable struct {
		sync.RWMutex
		table map[string]*template.Template
	}
)

func Open() (*DB, error) {
	db := &DB{
		gradingPeriod: &gradingPeriodTable{table: make(map[string]*grading.GradingPeriod)},
		settings:      &settingsTable{table: make(map[string]*settings.Settings)},
		template:      &templateTable{table: make(map[string]*template.Template)},
	}
	return db, nil
}
