/*
Package config is the static configuration bundle read once at startup
(spec §6). Every numeric/table constant referenced by the workforce and
project simulators lives here as a concrete Go value, in the same
spirit as the teacher's factory package turning policy definitions into
concrete structs rather than re-reading loose configuration at runtime:
NewDefault builds the whole bundle from literals, and a caller overrides
individual fields by assigning them on the returned value (the driver calls
Validate() once before the run starts; an invalid value is a fatal
ConfigError, never discovered mid-run).
*/
package config

import (
	"fmt"

	"github.com/FX93Y2/ConsultFirmDBMockup/simerr"
)

// TitleID is the 1..6 rank used throughout the simulator.
type TitleID int

const (
	TitleAnalyst          TitleID = 1
	TitleConsultant       TitleID = 2
	TitleSeniorConsultant TitleID = 3
	TitleManager          TitleID = 4
	TitleSeniorManager    TitleID = 5
	TitlePartner          TitleID = 6
)

var AllTitles = []TitleID{TitleAnalyst, TitleConsultant, TitleSeniorConsultant, TitleManager, TitleSeniorManager, TitlePartner}

// SalaryRange is an inclusive [Min, Max] draw range in integer currency units.
type SalaryRange struct {
	Min int
	Max int
}

// BillingRateRange is an hourly rate draw range in currency units.
type BillingRateRange struct {
	Min float64
	Max float64
}

// DurationBucket is a weighted project-duration bucket, in months.
type DurationBucket struct {
	MinMonths int
	MaxMonths int
	Weight    float64
}

// ExpansionThreshold activates BusinessUnitID once total headcount first
// reaches Headcount. Thresholds are evaluated in ascending Headcount order.
type ExpansionThreshold struct {
	Headcount    int
	BusinessUnitID int
}

// SeasonalWindow is a weighted hiring window within a year, by month range
// (1-12, inclusive).
type SeasonalWindow struct {
	Name       string
	StartMonth int
	EndMonth   int
	Weight     float64
}

type Config struct {
	HorizonStartYear   int
	HorizonEndYear     int
	InitialConsultants int
	Seed               int64

	// 4.D Workforce Simulator
	GrowthRateByYear             map[int]float64
	DefaultGrowthRate            float64
	AttritionProbability         map[TitleID]float64
	TitleDistributionTargets     map[TitleID]float64
	LayoffWeights                map[TitleID]float64
	MaxLayoffFraction            float64
	SalaryRanges                 map[TitleID]SalaryRange
	MinYearsInRoleForPromotion   map[TitleID]int
	BasePromotionProbability     map[TitleID]float64
	PromotionProbabilityCeiling  float64
	ExpansionThresholds          []ExpansionThreshold
	LocalePoolByBusinessUnit     map[int][]string
	SeasonalHiringWindows        []SeasonalWindow
	ContinuationRaiseMin         float64
	ContinuationRaiseMax         float64

	// 4.F Capacity Oracle
	MaxDailyHoursPerTitle      map[TitleID]float64
	MinDailyHoursPerProject    map[TitleID]float64
	MaxProjectsPerConsultant   map[TitleID]int

	// 4.G Project Creator
	MinTeamSize                  int
	MaxTeamSize                  int
	AverageWorkingHoursPerDay    float64
	ProjectDurationBuckets       []DurationBucket
	DeliverableCountMin          int
	DeliverableCountMax          int
	DeliverableMinHoursFloor     float64
	BaseBillingRates             map[TitleID]BillingRateRange
	FixedProjectRateDiscount     float64
	OverheadPercentage           float64
	ExpenseCategoryPercentages   map[string]float64
	PMEligibleMinTitle           TitleID
	TeamLeadMinTitle             TitleID
	MaxTeamLeadsPerProject       int

	// 4.H Daily Work Allocator
	ProjectCancelAfterDays int
}

// NewDefault returns the configuration bundle with every default from
// spec §4 populated. Callers override individual fields on the returned
// value before calling Validate.
func NewDefault() *Config {
	return &Config{
		HorizonStartYear:   2015,
		HorizonEndYear:     2015,
		InitialConsultants: 20,
		Seed:               42,

		GrowthRateByYear:  map[int]float64{},
		DefaultGrowthRate: 0.05,

		AttritionProbability: map[TitleID]float64{
			TitleAnalyst: 0.010, TitleConsultant: 0.009, TitleSeniorConsultant: 0.008,
			TitleManager: 0.007, TitleSeniorManager: 0.006, TitlePartner: 0.005,
		},

		TitleDistributionTargets: map[TitleID]float64{
			TitleAnalyst: 0.25, TitleConsultant: 0.30, TitleSeniorConsultant: 0.25,
			TitleManager: 0.12, TitleSeniorManager: 0.06, TitlePartner: 0.02,
		},

		LayoffWeights: map[TitleID]float64{
			TitleAnalyst: 0.35, TitleConsultant: 0.25, TitleSeniorConsultant: 0.20,
			TitleManager: 0.10, TitleSeniorManager: 0.07, TitlePartner: 0.03,
		},
		MaxLayoffFraction: 0.20,

		SalaryRanges: map[TitleID]SalaryRange{
			TitleAnalyst:          {Min: 60000, Max: 80000},
			TitleConsultant:       {Min: 80000, Max: 105000},
			TitleSeniorConsultant: {Min: 105000, Max: 135000},
			TitleManager:          {Min: 135000, Max: 170000},
			TitleSeniorManager:    {Min: 170000, Max: 210000},
			TitlePartner:          {Min: 210000, Max: 280000},
		},

		MinYearsInRoleForPromotion: map[TitleID]int{
			TitleAnalyst: 2, TitleConsultant: 2, TitleSeniorConsultant: 3, TitleManager: 3, TitleSeniorManager: 4,
		},
		BasePromotionProbability: map[TitleID]float64{
			TitleAnalyst: 0.25, TitleConsultant: 0.20, TitleSeniorConsultant: 0.15, TitleManager: 0.12, TitleSeniorManager: 0.08,
		},
		PromotionProbabilityCeiling: 0.75,

		ExpansionThresholds: []ExpansionThreshold{
			{Headcount: 0, BusinessUnitID: 1},
			{Headcount: 50, BusinessUnitID: 2},
			{Headcount: 150, BusinessUnitID: 3},
			{Headcount: 300, BusinessUnitID: 4},
		},

		LocalePoolByBusinessUnit: map[int][]string{
			1: {"en_US"},
			2: {"en_US", "en_GB"},
			3: {"de_DE", "en_GB"},
			4: {"ja_JP", "zh_CN"},
		},

		SeasonalHiringWindows: []SeasonalWindow{
			{Name: "Spring", StartMonth: 3, EndMonth: 5, Weight: 0.4},
			{Name: "Fall", StartMonth: 9, EndMonth: 11, Weight: 0.4},
			{Name: "Other", StartMonth: 1, EndMonth: 12, Weight: 0.2},
		},

		ContinuationRaiseMin: 0.02,
		ContinuationRaiseMax: 0.05,

		MaxDailyHoursPerTitle: map[TitleID]float64{
			TitleAnalyst: 8, TitleConsultant: 8, TitleSeniorConsultant: 7,
			TitleManager: 6, TitleSeniorManager: 5.5, TitlePartner: 5,
		},
		MinDailyHoursPerProject: map[TitleID]float64{
			TitleAnalyst: 4, TitleConsultant: 4, TitleSeniorConsultant: 3,
			TitleManager: 2.5, TitleSeniorManager: 2, TitlePartner: 2,
		},
		MaxProjectsPerConsultant: map[TitleID]int{
			TitleAnalyst: 1, TitleConsultant: 2, TitleSeniorConsultant: 3,
			TitleManager: 4, TitleSeniorManager: 5, TitlePartner: 6,
		},

		MinTeamSize:               10,
		MaxTeamSize:               15,
		AverageWorkingHoursPerDay: 6.0,

		ProjectDurationBuckets: []DurationBucket{
			{MinMonths: 1, MaxMonths: 3, Weight: 0.5},
			{MinMonths: 3, MaxMonths: 6, Weight: 0.3},
			{MinMonths: 6, MaxMonths: 12, Weight: 0.2},
		},

		DeliverableCountMin:      3,
		DeliverableCountMax:      7,
		DeliverableMinHoursFloor: 10,

		BaseBillingRates: map[TitleID]BillingRateRange{
			TitleAnalyst:          {Min: 90, Max: 120},
			TitleConsultant:       {Min: 120, Max: 160},
			TitleSeniorConsultant: {Min: 160, Max: 210},
			TitleManager:          {Min: 210, Max: 270},
			TitleSeniorManager:    {Min: 270, Max: 340},
			TitlePartner:          {Min: 340, Max: 450},
		},
		FixedProjectRateDiscount: 0.10,
		OverheadPercentage:       0.35,

		ExpenseCategoryPercentages: map[string]float64{
			"Travel": 0.15, "Equipment": 0.10, "Software": 0.08, "Training": 0.05,
			"Subcontractor": 0.20, "Entertainment": 0.03, "Office": 0.02,
			"Telecom": 0.04, "Legal": 0.05, "Misc": 0.03,
		},

		PMEligibleMinTitle:     TitleManager,
		TeamLeadMinTitle:       TitleSeniorConsultant,
		MaxTeamLeadsPerProject: 3,

		ProjectCancelAfterDays: 120,
	}
}

// GrowthRate returns the configured growth rate for a year, falling back
// to DefaultGrowthRate when the year has no override.
func (c *Config) GrowthRate(year int) float64 {
	if r, ok := c.GrowthRateByYear[year]; ok {
		return r
	}
	return c.DefaultGrowthRate
}

// Validate checks every constant is in range, returning a ConfigError
// for the first violation found. Called once at startup.
func (c *Config) Validate() error {
	if c.HorizonEndYear < c.HorizonStartYear {
		return &simerr.ConfigError{Field: "HorizonEndYear", Detail: "must be >= HorizonStartYear"}
	}
	if c.InitialConsultants <= 0 {
		return &simerr.ConfigError{Field: "InitialConsultants", Detail: "must be positive"}
	}
	sum := 0.0
	for _, t := range AllTitles {
		v, ok := c.TitleDistributionTargets[t]
		if !ok || v <= 0 {
			return &simerr.ConfigError{Field: "TitleDistributionTargets", Detail: fmt.Sprintf("missing or non-positive for title %d", t)}
		}
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		return &simerr.ConfigError{Field: "TitleDistributionTargets", Detail: "must sum to ~1.0"}
	}
	for _, t := range AllTitles {
		if _, ok := c.MaxDailyHoursPerTitle[t]; !ok {
			return &simerr.ConfigError{Field: "MaxDailyHoursPerTitle", Detail: fmt.Sprintf("missing title %d", t)}
		}
		if _, ok := c.MinDailyHoursPerProject[t]; !ok {
			return &simerr.ConfigError{Field: "MinDailyHoursPerProject", Detail: fmt.Sprintf("missing title %d", t)}
		}
		if _, ok := c.MaxProjectsPerConsultant[t]; !ok {
			return &simerr.ConfigError{Field: "MaxProjectsPerConsultant", Detail: fmt.Sprintf("missing title %d", t)}
		}
		if _, ok := c.SalaryRanges[t]; !ok {
			return &simerr.ConfigError{Field: "SalaryRanges", Detail: fmt.Sprintf("missing title %d", t)}
		}
	}
	if c.MinTeamSize <= 0 || c.MaxTeamSize < c.MinTeamSize {
		return &simerr.ConfigError{Field: "MinTeamSize/MaxTeamSize", Detail: "invalid team size range"}
	}
	if len(c.ExpansionThresholds) == 0 || c.ExpansionThresholds[0].BusinessUnitID != 1 {
		return &simerr.ConfigError{Field: "ExpansionThresholds", Detail: "unit 1 must be the first, always-active threshold"}
	}
	return nil
}
