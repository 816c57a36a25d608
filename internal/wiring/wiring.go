// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/Viskhan-95/golden-chicken/internal/adapters/catalog"
	_ "github.com/Viskhan-95/golden-chicken/internal/adapters/config"
	_ "github.com/Viskhan-95/golden-chicken/internal/adapters/logger"
	_ "github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/Viskhan-95/golden-chicken/internal/app"
)
