package db

import (
	"github.com/terraincognita07/lunara/internal/services"
	"gorm.io/gorm"
)

// CycleLedger binds period and cycle repositories to a single gorm transaction.
type CycleLedger struct {
	database *gorm.DB
}

func NewCycleLedger(database *gorm.DB) *CycleLedger {
	return &CycleLedger{database: database}
}

func (ledger *CycleLedger) WithinTx(fn func(periods services.PeriodRepository, cycles services.CycleRepository) error) error {
	return ledger.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewPeriodRepository(tx), NewCycleRepository(tx))
	})
}
