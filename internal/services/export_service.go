package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

var ExportCSVHeaders = []string{
	"Period start",
	"Period end",
	"Cycle",
	"Cycle length",
	"Period length",
	"Peak flow",
	"Ovulation",
	"Ovulation status",
	"Symptoms",
}

type ExportPeriodReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PeriodEntry, error)
}

type ExportCycleReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CycleData, error)
}

type ExportService struct {
	periods ExportPeriodReader
	cycles  ExportCycleReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

// ExportEntry is one period joined with the cycle it opened.
type ExportEntry struct {
	PeriodStart     string               `json:"period_start"`
	PeriodEnd       string               `json:"period_end,omitempty"`
	CycleNumber     int                  `json:"cycle_number,omitempty"`
	CycleLength     *int                 `json:"cycle_length,omitempty"`
	PeriodLength    *int                 `json:"period_length,omitempty"`
	PeakFlow        models.FlowIntensity `json:"peak_flow,omitempty"`
	Ovulation       string               `json:"ovulation,omitempty"`
	OvulationStatus string               `json:"ovulation_status,omitempty"`
	Symptoms        []string             `json:"symptoms"`
}

func NewExportService(periods ExportPeriodReader, cycles ExportCycleReader) *ExportService {
	return &ExportService{
		periods: periods,
		cycles:  cycles,
	}
}

func (service *ExportService) BuildEntries(userID uint, from *time.Time, to *time.Time) ([]ExportEntry, error) {
	fromStart, toEnd, err := dayRangeBounds(from, to)
	if err != nil {
		return nil, err
	}

	periods, err := service.periods.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("load periods: %w", err)
	}
	cycles, err := service.cycles.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	return BuildExportEntries(periods, cycles), nil
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.BuildEntries(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].PeriodStart,
		DateTo:       entries[len(entries)-1].PeriodStart,
	}, nil
}

func BuildExportEntries(periods []models.PeriodEntry, cycles []models.CycleData) []ExportEntry {
	cyclesByStart := make(map[string]models.CycleData, len(cycles))
	for _, cycle := range cycles {
		cyclesByStart[cycle.StartDate.Format(DateLayout)] = cycle
	}

	ordered := make([]models.PeriodEntry, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	entries := make([]ExportEntry, 0, len(ordered))
	for _, period := range ordered {
		entry := ExportEntry{
			PeriodStart: period.StartDate.Format(DateLayout),
			PeakFlow:    peakFlow(period.FlowIntensity),
			Symptoms:    distinctSymptomNames(period.Symptoms),
		}
		if period.EndDate != nil {
			entry.PeriodEnd = period.EndDate.Format(DateLayout)
		}
		if cycle, ok := cyclesByStart[entry.PeriodStart]; ok {
			entry.CycleNumber = cycle.CycleNumber
			entry.CycleLength = cycle.CycleLength
			entry.PeriodLength = cycle.PeriodLength
			if cycle.Ovulation.Known() {
				entry.Ovulation = cycle.Ovulation.Date.Format(DateLayout)
				entry.OvulationStatus = string(cycle.Ovulation.Status)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func (entry ExportEntry) CSVRecord() []string {
	cycleNumber := ""
	if entry.CycleNumber > 0 {
		cycleNumber = strconv.Itoa(entry.CycleNumber)
	}
	return []string{
		entry.PeriodStart,
		entry.PeriodEnd,
		cycleNumber,
		optionalIntString(entry.CycleLength),
		optionalIntString(entry.PeriodLength),
		string(entry.PeakFlow),
		entry.Ovulation,
		entry.OvulationStatus,
		strings.Join(entry.Symptoms, "; "),
	}
}

func peakFlow(values []models.FlowIntensity) models.FlowIntensity {
	var peak models.FlowIntensity
	for _, value := range values {
		if value.Rank() > peak.Rank() {
			peak = value
		}
	}
	return peak
}

func distinctSymptomNames(symptoms []models.Symptom) []string {
	names := make([]string, 0, len(symptoms))
	seen := make(map[string]struct{}, len(symptoms))
	for _, symptom := range symptoms {
		key := strings.ToLower(symptom.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, symptom.Name)
	}
	return names
}

func optionalIntString(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
