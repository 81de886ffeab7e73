package vehicle_lookup

import (
	"context"

	"github.com/ign-garage/booking-service/internal/integrations/vehicledata"
)

type VehicleDataClient interface {
	Lookup(ctx context.Context, registration string) (*vehicledata.Vehicle, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
