package main

import (
	"context"
	"fmt"
	"os"

	"github.com/grovetools/tend/pkg/app"
	"github.com/grovetools/tend/pkg/harness"
)

func main() {
	scenarios := []*harness.Scenario{
		PlenaryListScenario(),
		PlenaryPipelineScenario(),
		PlenaryRunScenario(),
		PlenaryQueryScenario(),
		PlenaryReportScenario(),
	}

	if err := app.Execute(context.Background(), scenarios); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
