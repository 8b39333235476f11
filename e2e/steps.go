package e2e

import (
	"github.com/cucumber/godog"

	"carebase/e2e/steps/common"
	"carebase/e2e/steps/patient"
	"carebase/e2e/steps/workflow"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (tenant scope, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register patient-specific steps
	patient.RegisterSteps(ctx, tc)

	// Register workflow-specific steps
	workflow.RegisterSteps(ctx, tc)
}
