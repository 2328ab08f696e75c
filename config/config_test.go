package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/config"
)

func TestNewDefault_Validates(t *testing.T) {
	cfg := config.NewDefault()
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsEndBeforeStart(t *testing.T) {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = 2020
	cfg.HorizonEndYear = 2019
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveInitialConsultants(t *testing.T) {
	cfg := config.NewDefault()
	cfg.InitialConsultants = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsTitleDistributionNotSummingToOne(t *testing.T) {
	cfg := config.NewDefault()
	cfg.TitleDistributionTargets[config.TitleAnalyst] = 0.9
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMissingTitleCoverage(t *testing.T) {
	cfg := config.NewDefault()
	delete(cfg.MaxDailyHoursPerTitle, config.TitlePartner)
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsFirstExpansionThresholdNotUnitOne(t *testing.T) {
	cfg := config.NewDefault()
	cfg.ExpansionThresholds[0].BusinessUnitID = 2
	assert.Error(t, cfg.Validate())
}

func TestGrowthRate_FallsBackToDefault(t *testing.T) {
	cfg := config.NewDefault()
	cfg.DefaultGrowthRate = 0.05
	cfg.GrowthRateByYear = map[int]float64{2016: -0.15}
	assert.Equal(t, 0.05, cfg.GrowthRate(2015))
	assert.Equal(t, -0.15, cfg.GrowthRate(2016))
}
