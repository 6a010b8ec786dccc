package policy

import "github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
