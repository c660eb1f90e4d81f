package main

import (
	"context"

	"modelwatch/cmd/modelwatch/commands"
	"modelwatch/lib/serviceutil"
	"modelwatch/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx := serviceutil.SignalContext()
	err := telemetry.SetupFromEnv(ctx, "modelwatch")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
