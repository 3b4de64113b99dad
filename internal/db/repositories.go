package db

import "gorm.io/gorm"

type Repositories struct {
	Periods   *PeriodRepository
	Cycles    *CycleRepository
	Fertility *FertilityRepository
	Ledger    *CycleLedger
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Periods:   NewPeriodRepository(database),
		Cycles:    NewCycleRepository(database),
		Fertility: NewFertilityRepository(database),
		Ledger:    NewCycleLedger(database),
	}
}
